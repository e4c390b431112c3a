// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/MKhiriev/trace-backup/internal/logger"
)

//go:generate mockgen -source=key_manager.go -destination=../mock/secret_vault_mock.go -package=mock

// DefaultKeyID is the application-scoped identifier of the store key in the
// vault.
const DefaultKeyID = "com.marintrace.realm_key"

// SecretVault is a platform secure credential store. Get must return
// [ErrSecretNotFound] (possibly wrapped) when nothing is stored under id;
// any other error means the vault itself is unavailable.
type SecretVault interface {
	Get(id string) ([]byte, error)
	Set(id string, secret []byte) error
}

// KeyManager owns the lifecycle of the store master key: it generates the
// key once, stores it in the vault and retrieves it thereafter. The key is
// cached in memory for the lifetime of the process.
type KeyManager struct {
	vault   SecretVault
	keyID   string
	entropy io.Reader

	mu  sync.Mutex
	key Key
}

// KeyManagerOption customises a [KeyManager].
type KeyManagerOption func(*KeyManager)

// WithEntropySource replaces crypto/rand as the source of new key material.
func WithEntropySource(r io.Reader) KeyManagerOption {
	return func(m *KeyManager) {
		m.entropy = r
	}
}

// NewKeyManager builds a key manager over vault. An empty keyID falls back
// to [DefaultKeyID].
func NewKeyManager(vault SecretVault, keyID string, opts ...KeyManagerOption) *KeyManager {
	if keyID == "" {
		keyID = DefaultKeyID
	}

	m := &KeyManager{
		vault:   vault,
		keyID:   keyID,
		entropy: rand.Reader,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// KeyID returns the vault identifier the key is stored under.
func (m *KeyManager) KeyID() string {
	return m.keyID
}

// GetOrCreateKey returns the store key, generating and storing a fresh one
// on first use. Vault failures yield [ErrKeyUnavailable]; a failing entropy
// source yields [ErrEntropyFailure].
func (m *KeyManager) GetOrCreateKey(ctx context.Context) (Key, error) {
	log := logger.FromContext(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.key != nil {
		return m.key.Clone(), nil
	}

	secret, err := m.vault.Get(m.keyID)
	switch {
	case err == nil:
		key := Key(secret)
		if !key.Valid() {
			log.Error().
				Str("func", "KeyManager.GetOrCreateKey").
				Str("key_id", m.keyID).
				Int("length", len(secret)).
				Msg("vault entry has unexpected length")
			return nil, fmt.Errorf("%w: %w: got %d bytes", ErrKeyUnavailable, ErrInvalidKeyLength, len(secret))
		}
		m.key = key.Clone()
		log.Debug().Str("func", "KeyManager.GetOrCreateKey").Msg("store key retrieved from vault")
		return m.key.Clone(), nil

	case errors.Is(err, ErrSecretNotFound):
		log.Info().Str("func", "KeyManager.GetOrCreateKey").Msg("no store key in vault, generating a new one")

	default:
		log.Err(err).
			Str("func", "KeyManager.GetOrCreateKey").
			Str("key_id", m.keyID).
			Msg("vault is unavailable")
		return nil, fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
	}

	key := make(Key, KeySize)
	if _, err = io.ReadFull(m.entropy, key); err != nil {
		log.Err(err).Str("func", "KeyManager.GetOrCreateKey").Msg("failed to read random key material")
		return nil, fmt.Errorf("%w: %w", ErrEntropyFailure, err)
	}

	if err = m.vault.Set(m.keyID, key); err != nil {
		log.Err(err).
			Str("func", "KeyManager.GetOrCreateKey").
			Str("key_id", m.keyID).
			Msg("failed to store new key in vault")
		return nil, fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
	}

	m.key = key
	return m.key.Clone(), nil
}
