// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/MKhiriev/trace-backup/internal/crypto"
	"github.com/MKhiriev/trace-backup/internal/logger"
	"github.com/MKhiriev/trace-backup/models"
)

const (
	defaultLockTimeout = 5 * time.Second
	lockRetryDelay     = 50 * time.Millisecond
)

// keyCheckPlaintext is sealed into store_meta when a store is created. A
// store that was sealed with a different key fails to open it.
var keyCheckPlaintext = []byte("trace-backup key check v1")

var keyCheckAAD = []byte("key_check")

// storeFileSuffixes are the files SQLite may keep next to the store.
var storeFileSuffixes = []string{"", "-wal", "-shm", "-journal"}

// EncryptedStore opens the on-disk backup store. The file holds an SQLite
// database whose payload columns are sealed with a key derived from the
// master key supplied by a [KeyProvider].
//
// EncryptedStore does not serialize callers; the owner of the store must
// make sure only one handle is open at a time within a process. Across
// processes a lock file next to the store enforces the same.
type EncryptedStore struct {
	path        string
	keys        KeyProvider
	lockTimeout time.Duration
	logger      *logger.Logger
}

// EncryptedStoreOption customises an [EncryptedStore].
type EncryptedStoreOption func(*EncryptedStore)

// WithLockTimeout bounds how long Open waits for another process to
// release the store.
func WithLockTimeout(d time.Duration) EncryptedStoreOption {
	return func(s *EncryptedStore) {
		s.lockTimeout = d
	}
}

// NewEncryptedStore returns a store rooted at path.
func NewEncryptedStore(path string, keys KeyProvider, log *logger.Logger, opts ...EncryptedStoreOption) *EncryptedStore {
	s := &EncryptedStore{
		path:        path,
		keys:        keys,
		lockTimeout: defaultLockTimeout,
		logger:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the store file path.
func (s *EncryptedStore) Path() string {
	return s.path
}

// Open returns a live handle on the store, creating an empty store when the
// file does not exist. The schema is migrated before the handle is
// returned.
//
// Key errors ([crypto.ErrKeyUnavailable], [crypto.ErrEntropyFailure]) and
// [ErrSchemaTooNew] are returned unchanged. A file that is not a database,
// fails the integrity check or was sealed with another key yields
// [ErrStoreCorrupted].
func (s *EncryptedStore) Open(ctx context.Context) (*Handle, error) {
	return s.open(ctx, false)
}

// Recreate deletes the store file together with its journal files and
// opens a fresh, empty store. All entries are lost. The master key is kept.
//
// The store lock is taken before anything is removed and held until the
// new handle is closed. A store held by another process is left alone and
// [ErrStoreLocked] is returned.
func (s *EncryptedStore) Recreate(ctx context.Context) (*Handle, error) {
	return s.open(ctx, true)
}

func (s *EncryptedStore) open(ctx context.Context, recreate bool) (*Handle, error) {
	log := logger.FromContext(ctx)

	key, err := s.keys.GetOrCreateKey(ctx)
	if err != nil {
		log.Err(err).Str("func", "EncryptedStore.open").Msg("store key is unavailable")
		return nil, err
	}

	cipher, err := crypto.NewStoreCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", crypto.ErrKeyUnavailable, err)
	}

	lock, err := s.lock(ctx)
	if err != nil {
		log.Err(err).Str("func", "EncryptedStore.open").Str("path", s.path).Msg("failed to lock store")
		return nil, err
	}

	if recreate {
		if err = s.removeFiles(ctx); err != nil {
			_ = lock.Unlock()
			return nil, err
		}
	}

	h, err := s.openLocked(ctx, cipher, lock)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	return h, nil
}

// openLocked connects to and prepares the store. The caller holds lock and
// releases it when an error is returned.
func (s *EncryptedStore) openLocked(ctx context.Context, cipher *crypto.StoreCipher, lock *flock.Flock) (*Handle, error) {
	db, err := NewConnectSQLite(ctx, s.path, s.logger)
	if err != nil {
		return nil, err
	}

	if err = s.prepare(ctx, db, cipher); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "EncryptedStore.openLocked").Str("path", s.path).Msg("failed to prepare store")
		_ = db.Close()
		return nil, err
	}

	return &Handle{
		db:      db,
		lock:    lock,
		entries: NewBackupEntryRepository(db, cipher, s.logger),
	}, nil
}

// removeFiles deletes the store and its journal files. The store lock must
// be held.
func (s *EncryptedStore) removeFiles(ctx context.Context) error {
	log := logger.FromContext(ctx)

	for _, suffix := range storeFileSuffixes {
		err := os.Remove(s.path + suffix)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Err(err).Str("func", "EncryptedStore.removeFiles").Str("file", s.path+suffix).Msg("failed to remove store file")
			return fmt.Errorf("remove store file: %w", err)
		}
	}
	log.Warn().Str("func", "EncryptedStore.removeFiles").Str("path", s.path).Msg("store file removed, recreating")

	return nil
}

func (s *EncryptedStore) lock(ctx context.Context) (*flock.Flock, error) {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("error creating store directory: %w", err)
		}
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	lock := flock.New(s.path + ".lock")
	locked, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreLocked, err)
	}
	if !locked {
		return nil, ErrStoreLocked
	}

	return lock, nil
}

// prepare runs the integrity check, the migrations and the key check.
func (s *EncryptedStore) prepare(ctx context.Context, db *DB, cipher *crypto.StoreCipher) error {
	if err := db.checkIntegrity(ctx); err != nil {
		return err
	}

	if _, err := db.Migrate(ctx); err != nil {
		if errors.Is(err, ErrSchemaTooNew) {
			return err
		}
		return db.corruptedOr(errors.New("migrate store"), err)
	}

	return s.verifyKey(ctx, db, cipher)
}

func (s *EncryptedStore) verifyKey(ctx context.Context, db *DB, cipher *crypto.StoreCipher) error {
	var sealed []byte
	err := db.QueryRowContext(ctx, getKeyCheck).Scan(&sealed)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		sealed, err = cipher.Seal(keyCheckPlaintext, keyCheckAAD)
		if err != nil {
			return fmt.Errorf("seal key check: %w", err)
		}
		if _, err = db.ExecContext(ctx, saveKeyCheck, sealed); err != nil {
			return db.corruptedOr(ErrExecutingStatement, err)
		}
		return nil

	case err != nil:
		return db.corruptedOr(ErrExecutingQuery, err)
	}

	plain, err := cipher.Open(sealed, keyCheckAAD)
	if err != nil || !bytes.Equal(plain, keyCheckPlaintext) {
		return fmt.Errorf("%w: store was sealed with a different key", ErrStoreCorrupted)
	}

	return nil
}

// Handle is an open store. It must be closed to release the file lock.
type Handle struct {
	db      *DB
	lock    *flock.Flock
	entries BackupEntryRepository
}

// Insert durably writes entry. A nil error means the entry is present.
func (h *Handle) Insert(ctx context.Context, entry models.BackupEntry) error {
	return h.entries.Save(ctx, entry)
}

// List returns the entries matching filter, newest first.
func (h *Handle) List(ctx context.Context, filter ListFilter) ([]models.BackupEntry, error) {
	return h.entries.List(ctx, filter)
}

// Close closes the database and releases the file lock.
func (h *Handle) Close() error {
	err := h.db.Close()
	if unlockErr := h.lock.Unlock(); unlockErr != nil {
		err = errors.Join(err, unlockErr)
	}
	return err
}
