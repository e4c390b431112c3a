// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/MKhiriev/trace-backup/internal/crypto"
	"github.com/MKhiriev/trace-backup/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// mapVault is an in-memory SecretVault standing in for one installation.
type mapVault struct {
	mu      sync.Mutex
	secrets map[string][]byte
	sets    int
}

func newMapVault() *mapVault {
	return &mapVault{secrets: make(map[string][]byte)}
}

func (v *mapVault) Get(id string) ([]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, ok := v.secrets[id]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", id, crypto.ErrSecretNotFound)
	}
	return bytes.Clone(s), nil
}

func (v *mapVault) Set(id string, secret []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sets++
	v.secrets[id] = bytes.Clone(secret)
	return nil
}

func TestKeyManager_DefaultKeyID(t *testing.T) {
	m := crypto.NewKeyManager(newMapVault(), "")
	assert.Equal(t, crypto.DefaultKeyID, m.KeyID())
}

func TestKeyManager_GeneratesOnFirstCall(t *testing.T) {
	vault := newMapVault()
	m := crypto.NewKeyManager(vault, "test.key")

	key, err := m.GetOrCreateKey(context.Background())
	require.NoError(t, err)
	assert.Len(t, key, crypto.KeySize)

	stored, err := vault.Get("test.key")
	require.NoError(t, err)
	assert.Equal(t, []byte(key), stored)
}

func TestKeyManager_KeyIsStableWithinInstallation(t *testing.T) {
	vault := newMapVault()

	k1, err := crypto.NewKeyManager(vault, "test.key").GetOrCreateKey(context.Background())
	require.NoError(t, err)

	// a second process of the same installation shares only the vault
	k2, err := crypto.NewKeyManager(vault, "test.key").GetOrCreateKey(context.Background())
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
	assert.Equal(t, 1, vault.sets)
}

func TestKeyManager_FreshInstallGetsDifferentKey(t *testing.T) {
	k1, err := crypto.NewKeyManager(newMapVault(), "test.key").GetOrCreateKey(context.Background())
	require.NoError(t, err)
	k2, err := crypto.NewKeyManager(newMapVault(), "test.key").GetOrCreateKey(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
}

func TestKeyManager_CachesKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	vault := mock.NewMockSecretVault(ctrl)

	existing := bytes.Repeat([]byte{0x07}, crypto.KeySize)
	vault.EXPECT().Get("test.key").Return(existing, nil).Times(1)

	m := crypto.NewKeyManager(vault, "test.key")
	for range 3 {
		key, err := m.GetOrCreateKey(context.Background())
		require.NoError(t, err)
		assert.Equal(t, crypto.Key(existing), key)
	}
}

func TestKeyManager_ReturnedKeyIsACopy(t *testing.T) {
	m := crypto.NewKeyManager(newMapVault(), "test.key")

	k1, err := m.GetOrCreateKey(context.Background())
	require.NoError(t, err)
	k1[0] ^= 0xFF

	k2, err := m.GetOrCreateKey(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, k1[0], k2[0])
}

func TestKeyManager_VaultUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	vault := mock.NewMockSecretVault(ctrl)
	vault.EXPECT().Get("test.key").Return(nil, errors.New("device locked"))

	_, err := crypto.NewKeyManager(vault, "test.key").GetOrCreateKey(context.Background())
	require.ErrorIs(t, err, crypto.ErrKeyUnavailable)
	assert.Contains(t, err.Error(), "device locked")
}

func TestKeyManager_VaultRejectsWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	vault := mock.NewMockSecretVault(ctrl)
	vault.EXPECT().Get("test.key").Return(nil, crypto.ErrSecretNotFound)
	vault.EXPECT().Set("test.key", gomock.Any()).Return(errors.New("permission denied"))

	_, err := crypto.NewKeyManager(vault, "test.key").GetOrCreateKey(context.Background())
	assert.ErrorIs(t, err, crypto.ErrKeyUnavailable)
}

func TestKeyManager_MalformedVaultEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	vault := mock.NewMockSecretVault(ctrl)
	vault.EXPECT().Get("test.key").Return([]byte("short"), nil)

	_, err := crypto.NewKeyManager(vault, "test.key").GetOrCreateKey(context.Background())
	require.ErrorIs(t, err, crypto.ErrKeyUnavailable)
	assert.ErrorIs(t, err, crypto.ErrInvalidKeyLength)
}

func TestKeyManager_EntropyFailure(t *testing.T) {
	vault := newMapVault()
	m := crypto.NewKeyManager(vault, "test.key",
		crypto.WithEntropySource(iotest.ErrReader(errors.New("rng broken"))))

	_, err := m.GetOrCreateKey(context.Background())
	require.ErrorIs(t, err, crypto.ErrEntropyFailure)

	// nothing must be stored when generation failed
	_, err = vault.Get("test.key")
	assert.ErrorIs(t, err, crypto.ErrSecretNotFound)
}

func TestKeyManager_ShortEntropyIsFailure(t *testing.T) {
	m := crypto.NewKeyManager(newMapVault(), "test.key",
		crypto.WithEntropySource(bytes.NewReader(make([]byte, 10))))

	_, err := m.GetOrCreateKey(context.Background())
	assert.ErrorIs(t, err, crypto.ErrEntropyFailure)
}

func TestKeyManager_ConcurrentFirstCallsGenerateOnce(t *testing.T) {
	vault := newMapVault()
	m := crypto.NewKeyManager(vault, "test.key")

	var wg sync.WaitGroup
	keys := make([]crypto.Key, 8)
	for i := range keys {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k, err := m.GetOrCreateKey(context.Background())
			assert.NoError(t, err)
			keys[i] = k
		}()
	}
	wg.Wait()

	for _, k := range keys[1:] {
		assert.Equal(t, keys[0], k)
	}
	assert.Equal(t, 1, vault.sets)
}
