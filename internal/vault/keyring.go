// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// DefaultKeyringService is the keyring service name entries are filed under.
const DefaultKeyringService = "trace-backup"

// KeyringVault stores secrets in the OS keyring. Keyring items are strings,
// so secrets are base64-encoded.
type KeyringVault struct {
	service string
}

// NewKeyringVault returns a vault filing its items under service. An empty
// service falls back to [DefaultKeyringService].
func NewKeyringVault(service string) *KeyringVault {
	if service == "" {
		service = DefaultKeyringService
	}
	return &KeyringVault{service: service}
}

// Get implements [crypto.SecretVault].
func (k *KeyringVault) Get(id string) ([]byte, error) {
	encoded, err := keyring.Get(k.service, id)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, fmt.Errorf("keyring item %s: %w", id, ErrSecretNotFound)
		}
		return nil, fmt.Errorf("%w: read keyring item %s: %w", ErrVaultUnavailable, id, err)
	}

	secret, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: decode keyring item %s: %w", ErrVaultUnavailable, id, err)
	}

	return secret, nil
}

// Set implements [crypto.SecretVault].
func (k *KeyringVault) Set(id string, secret []byte) error {
	if err := keyring.Set(k.service, id, base64.StdEncoding.EncodeToString(secret)); err != nil {
		return fmt.Errorf("%w: write keyring item %s: %w", ErrVaultUnavailable, id, err)
	}
	return nil
}

// Delete removes the item. A missing item is not an error.
func (k *KeyringVault) Delete(id string) error {
	err := keyring.Delete(k.service, id)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w: delete keyring item %s: %w", ErrVaultUnavailable, id, err)
	}
	return nil
}
