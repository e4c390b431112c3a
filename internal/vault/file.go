// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/MKhiriev/trace-backup/internal/crypto"
)

const fileVaultVersion = 1

// FileVault stores secrets in a single JSON file, each one wrapped with a
// key derived from a passphrase:
//
//	KEK     = Argon2id(passphrase, salt)
//	wrapped = AES-256-GCM(KEK, secret)
//
// The file is replaced atomically on every write.
type FileVault struct {
	path       string
	passphrase string
	wrapper    *crypto.KeyWrapper

	mu sync.Mutex
}

type fileVaultDocument struct {
	Version int                        `json:"version"`
	Secrets map[string]fileVaultSecret `json:"secrets"`
}

type fileVaultSecret struct {
	Salt    []byte `json:"salt"`
	Wrapped []byte `json:"wrapped"`
}

// NewFileVault returns a vault backed by the file at path. A nil wrapper
// uses [crypto.NewKeyWrapper] defaults.
func NewFileVault(path, passphrase string, wrapper *crypto.KeyWrapper) *FileVault {
	if wrapper == nil {
		wrapper = crypto.NewKeyWrapper()
	}
	return &FileVault{
		path:       path,
		passphrase: passphrase,
		wrapper:    wrapper,
	}
}

// Get implements [crypto.SecretVault].
func (f *FileVault) Get(id string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return nil, err
	}

	entry, ok := doc.Secrets[id]
	if !ok {
		return nil, fmt.Errorf("key file entry %s: %w", id, ErrSecretNotFound)
	}

	kek := f.wrapper.DeriveKEK(f.passphrase, entry.Salt)
	secret, err := f.wrapper.Unwrap(entry.Wrapped, kek)
	if err != nil {
		return nil, fmt.Errorf("%w: unwrap key file entry %s: %w", ErrVaultUnavailable, id, err)
	}

	return secret, nil
}

// Set implements [crypto.SecretVault].
func (f *FileVault) Set(id string, secret []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil && !errors.Is(err, ErrSecretNotFound) {
		return err
	}

	salt, err := f.wrapper.GenerateSalt()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVaultUnavailable, err)
	}
	wrapped, err := f.wrapper.Wrap(secret, f.wrapper.DeriveKEK(f.passphrase, salt))
	if err != nil {
		return fmt.Errorf("%w: wrap secret: %w", ErrVaultUnavailable, err)
	}

	doc.Secrets[id] = fileVaultSecret{Salt: salt, Wrapped: wrapped}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode key file: %w", ErrVaultUnavailable, err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err = os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("%w: create key file dir: %w", ErrVaultUnavailable, err)
		}
	}

	if err = atomic.WriteFile(f.path, bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("%w: write key file: %w", ErrVaultUnavailable, err)
	}

	return nil
}

// load reads the key file. A missing file yields an empty document together
// with ErrSecretNotFound.
func (f *FileVault) load() (fileVaultDocument, error) {
	empty := fileVaultDocument{Version: fileVaultVersion, Secrets: make(map[string]fileVaultSecret)}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return empty, fmt.Errorf("key file %s: %w", f.path, ErrSecretNotFound)
		}
		return empty, fmt.Errorf("%w: read key file: %w", ErrVaultUnavailable, err)
	}

	var doc fileVaultDocument
	if err = json.Unmarshal(data, &doc); err != nil {
		return empty, fmt.Errorf("%w: decode key file: %w", ErrVaultUnavailable, err)
	}
	if doc.Version != fileVaultVersion {
		return empty, fmt.Errorf("%w: unsupported key file version %d", ErrVaultUnavailable, doc.Version)
	}
	if doc.Secrets == nil {
		doc.Secrets = make(map[string]fileVaultSecret)
	}

	return doc, nil
}
