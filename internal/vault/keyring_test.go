// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestKeyringVault_SetThenGet(t *testing.T) {
	keyring.MockInit()

	v := NewKeyringVault("")
	secret := bytes.Repeat([]byte{0xAB, 0x00}, 32)

	require.NoError(t, v.Set("test.key", secret))

	got, err := v.Get("test.key")
	require.NoError(t, err)
	assert.Equal(t, secret, got)
}

func TestKeyringVault_MissingSecret(t *testing.T) {
	keyring.MockInit()

	_, err := NewKeyringVault("svc").Get("absent")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestKeyringVault_ServicesAreIsolated(t *testing.T) {
	keyring.MockInit()

	require.NoError(t, NewKeyringVault("a").Set("id", []byte("secret")))

	_, err := NewKeyringVault("b").Get("id")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestKeyringVault_BackendFailure(t *testing.T) {
	keyring.MockInitWithError(errors.New("dbus: no session bus"))

	v := NewKeyringVault("svc")

	_, err := v.Get("id")
	require.ErrorIs(t, err, ErrVaultUnavailable)
	assert.NotErrorIs(t, err, ErrSecretNotFound)

	err = v.Set("id", []byte("x"))
	assert.ErrorIs(t, err, ErrVaultUnavailable)
}

func TestKeyringVault_Delete(t *testing.T) {
	keyring.MockInit()

	v := NewKeyringVault("svc")
	require.NoError(t, v.Set("id", []byte("x")))
	require.NoError(t, v.Delete("id"))
	require.NoError(t, v.Delete("id"))

	_, err := v.Get("id")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}
