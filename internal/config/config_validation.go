// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate checks that the merged [StructuredConfig] is internally
// consistent. Requirements specific to the client runtime are checked by
// [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.App.RecentWindow < 0 || cfg.App.RefreshInterval < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidAppConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.Path == "" || cfg.Storage.Path == ":memory:" || strings.Contains(cfg.Storage.Path, "mode=memory") {
		return fmt.Errorf("%w: store path must name a file", ErrInvalidStorageConfigs)
	}

	switch cfg.Vault.Backend {
	case "keyring":
	case "file":
		if cfg.Vault.FilePath == "" || cfg.Vault.Passphrase == "" {
			return fmt.Errorf("%w: file backend needs a key file path and a passphrase", ErrInvalidVaultConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidVaultConfigs, cfg.Vault.Backend)
	}
	if cfg.Vault.KeyID == "" {
		return fmt.Errorf("%w: empty key id", ErrInvalidVaultConfigs)
	}

	if cfg.Diagnostics.Endpoint != "" {
		u, err := url.Parse(cfg.Diagnostics.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: endpoint must be an http(s) URL", ErrInvalidDiagnosticsConfigs)
		}
	}

	if cfg.App.RecentWindow <= 0 || cfg.App.RefreshInterval <= 0 {
		return fmt.Errorf("%w: window and refresh interval must be positive", ErrInvalidAppConfigs)
	}

	return nil
}
