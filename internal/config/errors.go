// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid store settings
	// (for example, empty path or an in-memory path).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidVaultConfigs indicates invalid vault settings
	// (for example, an unknown backend or a file backend without passphrase).
	ErrInvalidVaultConfigs = errors.New("invalid vault configuration")
	// ErrInvalidDiagnosticsConfigs indicates an unusable diagnostics endpoint.
	ErrInvalidDiagnosticsConfigs = errors.New("invalid diagnostics configuration")
	// ErrInvalidAppConfigs indicates invalid client behaviour settings
	// (for example, a non-positive recent window).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
)
