// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"

	"github.com/MKhiriev/trace-backup/migrations"
)

// Sentinel errors returned by the encrypted store. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrStoreCorrupted is returned when the store file cannot be read as a
	// backup store: it is not a database, the integrity check fails, it was
	// sealed with a different key, or a row does not decrypt or decode.
	// The only recovery is [EncryptedStore.Recreate].
	ErrStoreCorrupted = errors.New("backup store corrupted")

	// ErrSchemaTooNew is returned when the store was written by a newer
	// build. The store must not be recreated in that case.
	ErrSchemaTooNew = migrations.ErrSchemaTooNew

	// ErrStoreLocked is returned when another process holds the store lock
	// for longer than the configured lock timeout.
	ErrStoreLocked = errors.New("backup store is locked by another process")

	// ErrEntryNotSaved is returned when an INSERT completes without error
	// but affects no rows.
	ErrEntryNotSaved = errors.New("backup entry was not saved")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan backup entry rows")
)
