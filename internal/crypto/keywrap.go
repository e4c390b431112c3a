// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const saltSize = 16

// KeyWrapper protects key material with a passphrase for vaults that have
// no platform keystore behind them:
//
//	Salt    = GenerateSalt()
//	KEK     = DeriveKEK(passphrase, Salt)   (Argon2id)
//	Wrapped = Wrap(secret, KEK)             (AES-256-GCM, nonce ‖ ciphertext)
type KeyWrapper struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// lowered for tests or constrained devices.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewKeyWrapper constructs a [KeyWrapper] with the Argon2id parameters
// recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewKeyWrapper() *KeyWrapper {
	return NewKeyWrapperWithParams(1, 64*1024, 4)
}

// NewKeyWrapperWithParams constructs a [KeyWrapper] with explicit Argon2id
// cost parameters. memory is in KiB.
func NewKeyWrapperWithParams(time, memory uint32, threads uint8) *KeyWrapper {
	return &KeyWrapper{
		argonTime:    time,
		argonMemory:  memory,
		argonThreads: threads,
		argonKeyLen:  32,
	}
}

// GenerateSalt reads 16 random bytes from the OS CSPRNG.
func (k *KeyWrapper) GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEntropyFailure, err)
	}
	return salt, nil
}

// DeriveKEK derives a 256-bit key-encryption key from passphrase and salt.
func (k *KeyWrapper) DeriveKEK(passphrase string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(passphrase),
		salt,
		k.argonTime,
		k.argonMemory,
		k.argonThreads,
		k.argonKeyLen,
	)
}

// Wrap encrypts secret with kek. A random nonce is prepended to the
// ciphertext: blob = nonce ‖ ciphertext.
func (k *KeyWrapper) Wrap(secret, kek []byte) ([]byte, error) {
	gcm, err := newGCM(kek)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEntropyFailure, err)
	}

	return gcm.Seal(nonce, nonce, secret, nil), nil
}

// Unwrap reverses [KeyWrapper.Wrap]. A wrong passphrase surfaces here as
// [ErrDecryptionFailed] because the GCM tag does not verify.
func (k *KeyWrapper) Unwrap(blob, kek []byte) ([]byte, error) {
	gcm, err := newGCM(kek)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryptionFailed)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	secret, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return secret, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
