// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// storeKeyInfo domain-separates the row encryption key from any other key
// that may be derived from the same master key.
const storeKeyInfo = "trace-backup/store/v1"

// StoreCipher seals and opens store payloads with AES-256-GCM. The AES key
// is derived from the 512-bit master key with HKDF-SHA256.
//
// Blob layout: nonce (12 bytes) ‖ ciphertext ‖ tag.
type StoreCipher struct {
	aead cipher.AEAD
}

// NewStoreCipher derives the row key from key and prepares the AEAD.
func NewStoreCipher(key Key) (*StoreCipher, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeyLength, len(key), KeySize)
	}

	aesKey := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, nil, []byte(storeKeyInfo)), aesKey); err != nil {
		return nil, fmt.Errorf("derive store key: %w", err)
	}

	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &StoreCipher{aead: gcm}, nil
}

// Seal encrypts plaintext and authenticates it together with aad.
func (c *StoreCipher) Seal(plaintext, aad []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return c.aead.Seal(nonce, nonce, plaintext, aad), nil
}

// Open reverses [StoreCipher.Seal]. Any mismatch (wrong key, wrong aad,
// truncated or tampered blob) yields [ErrDecryptionFailed].
func (c *StoreCipher) Open(blob, aad []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(blob) < nonceSize+c.aead.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryptionFailed)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return plaintext, nil
}
