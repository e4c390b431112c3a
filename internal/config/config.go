// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// trace-backup client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file and finally built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds client behaviour settings: the status-card window, the
	// refresh period of the status cache and the log file.
	App App `envPrefix:"APP_"`

	// Storage holds the location of the encrypted backup store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Vault selects and configures the secure credential vault holding the
	// store master key.
	Vault Vault `envPrefix:"VAULT_"`

	// Diagnostics configures the external error-reporting sink.
	Diagnostics Diagnostics `envPrefix:"DIAGNOSTICS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged after the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// Args are the positional command-line arguments left after flag
	// parsing (the subcommand and its operands).
	Args []string
}

// App holds client-level settings.
type App struct {
	// RecentWindow is the trailing window shown on the status card
	// (e.g. "5m").
	// Env: APP_RECENT_WINDOW
	RecentWindow time.Duration `env:"RECENT_WINDOW"`

	// RefreshInterval is how often the status cache re-reads the store
	// while watching (e.g. "30s").
	// Env: APP_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`

	// LogFile is the path of the client log file. Empty selects a "logs"
	// file next to the executable.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage holds settings of the encrypted backup store.
type Storage struct {
	// Path is the store file path. The journal and lock files are kept
	// next to it.
	// Env: STORAGE_PATH
	Path string `env:"PATH"`

	// LockTimeout bounds how long opening the store waits for another
	// process to release it.
	// Env: STORAGE_LOCK_TIMEOUT
	LockTimeout time.Duration `env:"LOCK_TIMEOUT"`
}

// Vault holds settings of the secure credential vault.
type Vault struct {
	// Backend is "keyring" (OS keyring) or "file" (passphrase-protected
	// key file).
	// Env: VAULT_BACKEND
	Backend string `env:"BACKEND"`

	// FilePath is the key file path for the "file" backend.
	// Env: VAULT_FILE_PATH
	FilePath string `env:"FILE_PATH"`

	// Passphrase protects the key file for the "file" backend. Must be kept
	// confidential.
	// Env: VAULT_PASSPHRASE
	Passphrase string `env:"PASSPHRASE"`

	// KeyID is the identifier the store key is filed under.
	// Env: VAULT_KEY_ID
	KeyID string `env:"KEY_ID"`

	// KeyringService is the OS keyring service name.
	// Env: VAULT_KEYRING_SERVICE
	KeyringService string `env:"KEYRING_SERVICE"`
}

// Diagnostics holds settings of the error-reporting sink.
type Diagnostics struct {
	// Endpoint is the URL diagnostics are posted to. Empty keeps
	// diagnostics in the client log only.
	// Env: DIAGNOSTICS_ENDPOINT
	Endpoint string `env:"ENDPOINT"`

	// Timeout bounds a single diagnostics request.
	// Env: DIAGNOSTICS_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Defaults used for settings left empty by every source.
const (
	DefaultRecentWindow      = 5 * time.Minute
	DefaultRefreshInterval   = 30 * time.Second
	DefaultLockTimeout       = 5 * time.Second
	DefaultDiagnosticTimeout = 5 * time.Second
	DefaultVaultBackend      = "keyring"
	DefaultKeyID             = "com.marintrace.realm_key"
	DefaultKeyringService    = "trace-backup"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			RecentWindow:    DefaultRecentWindow,
			RefreshInterval: DefaultRefreshInterval,
		},
		Storage: Storage{
			LockTimeout: DefaultLockTimeout,
		},
		Vault: Vault{
			Backend:        DefaultVaultBackend,
			KeyID:          DefaultKeyID,
			KeyringService: DefaultKeyringService,
		},
		Diagnostics: Diagnostics{
			Timeout: DefaultDiagnosticTimeout,
		},
	}
}

// GetStructuredConfig loads and merges the configuration from all available
// sources. For every field the first source that sets it wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
