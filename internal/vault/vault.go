// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"fmt"

	"github.com/MKhiriev/trace-backup/internal/config"
	"github.com/MKhiriev/trace-backup/internal/crypto"
)

const (
	// BackendKeyring selects [KeyringVault].
	BackendKeyring = "keyring"
	// BackendFile selects [FileVault].
	BackendFile = "file"
)

// New builds the vault selected by cfg.Backend. An empty backend selects
// the OS keyring.
func New(cfg config.ClientVault) (crypto.SecretVault, error) {
	switch cfg.Backend {
	case "", BackendKeyring:
		return NewKeyringVault(cfg.KeyringService), nil
	case BackendFile:
		return NewFileVault(cfg.FilePath, cfg.Passphrase, nil), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
