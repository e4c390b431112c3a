// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"errors"

	"github.com/MKhiriev/trace-backup/internal/crypto"
)

var (
	// ErrSecretNotFound is returned when no secret is stored under the
	// requested identifier. It is the same value as
	// [crypto.ErrSecretNotFound] so the key manager can match it.
	ErrSecretNotFound = crypto.ErrSecretNotFound

	// ErrVaultUnavailable is returned when the vault exists but cannot be
	// used: keyring daemon missing, access denied, wrong passphrase,
	// unreadable key file.
	ErrVaultUnavailable = errors.New("vault unavailable")

	// ErrUnknownBackend is returned by [New] for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown vault backend")
)
