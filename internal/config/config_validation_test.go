// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validClientConfig() *ClientConfig {
	return newClientConfig(&StructuredConfig{
		App:         App{RecentWindow: DefaultRecentWindow, RefreshInterval: DefaultRefreshInterval},
		Storage:     Storage{Path: "store.db", LockTimeout: DefaultLockTimeout},
		Vault:       Vault{Backend: "keyring", KeyID: DefaultKeyID},
		Diagnostics: Diagnostics{Timeout: DefaultDiagnosticTimeout},
	})
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *ClientConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*ClientConfig) {}},
		{name: "empty store path", mutate: func(c *ClientConfig) { c.Storage.Path = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "in-memory store", mutate: func(c *ClientConfig) { c.Storage.Path = ":memory:" }, wantErr: ErrInvalidStorageConfigs},
		{name: "unknown vault", mutate: func(c *ClientConfig) { c.Vault.Backend = "tpm" }, wantErr: ErrInvalidVaultConfigs},
		{
			name: "file vault without passphrase",
			mutate: func(c *ClientConfig) {
				c.Vault.Backend = "file"
				c.Vault.FilePath = "keys.json"
			},
			wantErr: ErrInvalidVaultConfigs,
		},
		{
			name: "file vault complete",
			mutate: func(c *ClientConfig) {
				c.Vault.Backend = "file"
				c.Vault.FilePath = "keys.json"
				c.Vault.Passphrase = "p"
			},
		},
		{name: "empty key id", mutate: func(c *ClientConfig) { c.Vault.KeyID = "" }, wantErr: ErrInvalidVaultConfigs},
		{name: "bad endpoint", mutate: func(c *ClientConfig) { c.Diagnostics.Endpoint = "errors.example.org" }, wantErr: ErrInvalidDiagnosticsConfigs},
		{name: "ftp endpoint", mutate: func(c *ClientConfig) { c.Diagnostics.Endpoint = "ftp://errors.example.org" }, wantErr: ErrInvalidDiagnosticsConfigs},
		{name: "https endpoint", mutate: func(c *ClientConfig) { c.Diagnostics.Endpoint = "https://errors.example.org/r" }},
		{name: "zero window", mutate: func(c *ClientConfig) { c.App.RecentWindow = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "zero refresh", mutate: func(c *ClientConfig) { c.App.RefreshInterval = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "custom window", mutate: func(c *ClientConfig) { c.App.RecentWindow = time.Hour }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validClientConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
