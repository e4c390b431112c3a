// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/trace-backup/internal/crypto"
	"github.com/MKhiriev/trace-backup/models"
)

// ErrorClassificator classifies driver errors.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// KeyProvider hands out the store master key. [crypto.KeyManager]
// implements it.
type KeyProvider interface {
	GetOrCreateKey(ctx context.Context) (crypto.Key, error)
}

// BackupEntryRepository is the low-level access to the backup_entries
// table of one open store.
type BackupEntryRepository interface {
	Save(ctx context.Context, entry models.BackupEntry) error
	List(ctx context.Context, filter ListFilter) ([]models.BackupEntry, error)
}
