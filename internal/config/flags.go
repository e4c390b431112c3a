// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags from the process command line.
// Positional arguments left after the flags are returned in
// [StructuredConfig.Args].
//
// Flags:
//
//	-store store file path
//	-lock-timeout store lock timeout (e.g., "5s")
//	-vault vault backend: keyring or file
//	-vault-file key file path for the file backend
//	-key-id vault identifier of the store key
//	-keyring-service OS keyring service name
//	-diagnostics diagnostics endpoint URL
//	-diagnostics-timeout diagnostics request timeout (e.g., "5s")
//	-recent-window status card window (e.g., "5m")
//	-refresh-interval status cache refresh period (e.g., "30s")
//	-log-file client log file path
//	-c/-config json file path with configs
//
// The vault passphrase is read from VAULT_PASSPHRASE or the JSON file only,
// never from the command line.
func ParseFlags() *StructuredConfig {
	var storePath string
	var lockTimeout time.Duration
	var vaultBackend string
	var vaultFile string
	var keyID string
	var keyringService string
	var diagnosticsEndpoint string
	var diagnosticsTimeout time.Duration
	var recentWindow time.Duration
	var refreshInterval time.Duration
	var logFile string
	var jsonConfigPath string

	flag.StringVar(&storePath, "store", "", "Store file path")
	flag.DurationVar(&lockTimeout, "lock-timeout", 0, "Store lock timeout (e.g., 5s)")
	flag.StringVar(&vaultBackend, "vault", "", "Vault backend: keyring or file")
	flag.StringVar(&vaultFile, "vault-file", "", "Key file path for the file vault")
	flag.StringVar(&keyID, "key-id", "", "Vault identifier of the store key")
	flag.StringVar(&keyringService, "keyring-service", "", "OS keyring service name")
	flag.StringVar(&diagnosticsEndpoint, "diagnostics", "", "Diagnostics endpoint URL")
	flag.DurationVar(&diagnosticsTimeout, "diagnostics-timeout", 0, "Diagnostics request timeout (e.g., 5s)")
	flag.DurationVar(&recentWindow, "recent-window", 0, "Status card window (e.g., 5m)")
	flag.DurationVar(&refreshInterval, "refresh-interval", 0, "Status cache refresh period (e.g., 30s)")
	flag.StringVar(&logFile, "log-file", "", "Client log file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			RecentWindow:    recentWindow,
			RefreshInterval: refreshInterval,
			LogFile:         logFile,
		},
		Storage: Storage{
			Path:        storePath,
			LockTimeout: lockTimeout,
		},
		Vault: Vault{
			Backend:        vaultBackend,
			FilePath:       vaultFile,
			KeyID:          keyID,
			KeyringService: keyringService,
		},
		Diagnostics: Diagnostics{
			Endpoint: diagnosticsEndpoint,
			Timeout:  diagnosticsTimeout,
		},
		JSONFilePath: jsonConfigPath,
		Args:         flag.Args(),
	}
}
