// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientApp holds client behaviour settings.
type ClientApp struct {
	// RecentWindow is the trailing window of the status card.
	RecentWindow time.Duration
	// RefreshInterval is the status cache refresh period.
	RefreshInterval time.Duration
	// LogFile is the client log file path.
	LogFile string
}

// ClientStorage holds the encrypted store settings.
type ClientStorage struct {
	// Path is the store file path.
	Path string
	// LockTimeout bounds waiting for the cross-process store lock.
	LockTimeout time.Duration
}

// ClientVault holds the secure vault settings.
type ClientVault struct {
	// Backend is "keyring" or "file".
	Backend string
	// FilePath is the key file path for the "file" backend.
	FilePath string
	// Passphrase protects the key file.
	Passphrase string
	// KeyID is the vault identifier of the store key.
	KeyID string
	// KeyringService is the OS keyring service name.
	KeyringService string
}

// ClientDiagnostics holds the error-reporting sink settings.
type ClientDiagnostics struct {
	// Endpoint is the sink URL; empty means log-only.
	Endpoint string
	// Timeout bounds one request to the sink.
	Timeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains client behaviour settings.
	App ClientApp
	// Storage contains the store settings.
	Storage ClientStorage
	// Vault contains the secure vault settings.
	Vault ClientVault
	// Diagnostics contains the error-reporting sink settings.
	Diagnostics ClientDiagnostics
	// Args are the positional arguments: the subcommand and its operands.
	Args []string
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			RecentWindow:    cfg.App.RecentWindow,
			RefreshInterval: cfg.App.RefreshInterval,
			LogFile:         cfg.App.LogFile,
		},
		Storage: ClientStorage{
			Path:        cfg.Storage.Path,
			LockTimeout: cfg.Storage.LockTimeout,
		},
		Vault: ClientVault{
			Backend:        cfg.Vault.Backend,
			FilePath:       cfg.Vault.FilePath,
			Passphrase:     cfg.Vault.Passphrase,
			KeyID:          cfg.Vault.KeyID,
			KeyringService: cfg.Vault.KeyringService,
		},
		Diagnostics: ClientDiagnostics{
			Endpoint: cfg.Diagnostics.Endpoint,
			Timeout:  cfg.Diagnostics.Timeout,
		},
		Args: cfg.Args,
	}
}
