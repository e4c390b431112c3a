// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the shape of the optional JSON config file.
type StructuredJSONConfig struct {
	App struct {
		RecentWindow    Duration `json:"recent_window"`
		RefreshInterval Duration `json:"refresh_interval"`
		LogFile         string   `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		Path        string   `json:"path"`
		LockTimeout Duration `json:"lock_timeout"`
	} `json:"storage,omitempty"`

	Vault struct {
		Backend        string `json:"backend"`
		FilePath       string `json:"file_path"`
		Passphrase     string `json:"passphrase"`
		KeyID          string `json:"key_id"`
		KeyringService string `json:"keyring_service"`
	} `json:"vault,omitempty"`

	Diagnostics struct {
		Endpoint string   `json:"endpoint"`
		Timeout  Duration `json:"timeout"`
	} `json:"diagnostics,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			RecentWindow:    time.Duration(jsonCfg.App.RecentWindow),
			RefreshInterval: time.Duration(jsonCfg.App.RefreshInterval),
			LogFile:         jsonCfg.App.LogFile,
		},
		Storage: Storage{
			Path:        jsonCfg.Storage.Path,
			LockTimeout: time.Duration(jsonCfg.Storage.LockTimeout),
		},
		Vault: Vault{
			Backend:        jsonCfg.Vault.Backend,
			FilePath:       jsonCfg.Vault.FilePath,
			Passphrase:     jsonCfg.Vault.Passphrase,
			KeyID:          jsonCfg.Vault.KeyID,
			KeyringService: jsonCfg.Vault.KeyringService,
		},
		Diagnostics: Diagnostics{
			Endpoint: jsonCfg.Diagnostics.Endpoint,
			Timeout:  time.Duration(jsonCfg.Diagnostics.Timeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
