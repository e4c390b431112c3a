// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrKeyUnavailable is returned when the secure vault cannot be read or
	// written (device locked, permission denied, malformed entry). No store
	// may be opened without a key, so callers must not retry silently.
	ErrKeyUnavailable = errors.New("store key unavailable")

	// ErrEntropyFailure is returned when random key material cannot be
	// generated. It is fatal to opening the store.
	ErrEntropyFailure = errors.New("failed to generate key material")

	// ErrSecretNotFound is returned by a [SecretVault] when no secret exists
	// under the requested identifier.
	ErrSecretNotFound = errors.New("secret not found in vault")

	// ErrDecryptionFailed is returned when a sealed blob cannot be opened:
	// wrong key, truncated blob or tampered ciphertext.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeyLength is returned when key material has an unexpected
	// size.
	ErrInvalidKeyLength = errors.New("invalid key length")
)
