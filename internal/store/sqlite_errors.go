// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrorClassification is the result type returned by
// [ErrorClassificator.Classify]. It tells the caller whether a failed
// database operation may be retried, must be abandoned, or means the store
// file itself is unusable.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be retried.
	// This is the default classification for unrecognised errors, constraint
	// violations and I/O errors.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the failed operation may succeed if attempted
	// again (the database was busy or locked).
	Retryable

	// Corrupted indicates that the file is not a readable SQLite database.
	Corrupted
)

// SQLiteErrorClassifier implements [ErrorClassificator] for SQLite. It
// inspects the result code carried by a go-sqlite3 error.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier].
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator]. If err is nil or is not a
// go-sqlite3 error, [NonRetryable] is returned.
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return ClassifySQLiteError(sqliteErr)
	}

	return NonRetryable
}

// ClassifySQLiteError maps a primary SQLite result code to an
// [ErrorClassification].
// See https://www.sqlite.org/rescode.html for the full list.
//
// Corrupted codes: SQLITE_CORRUPT (11), SQLITE_NOTADB (26), SQLITE_FORMAT (24).
//
// Retryable codes: SQLITE_BUSY (5), SQLITE_LOCKED (6).
func ClassifySQLiteError(sqliteErr sqlite3.Error) ErrorClassification {
	switch sqliteErr.Code {
	case sqlite3.ErrCorrupt,
		sqlite3.ErrNotADB,
		sqlite3.ErrFormat:
		return Corrupted

	case sqlite3.ErrBusy,
		sqlite3.ErrLocked:
		return Retryable
	}

	return NonRetryable
}

// corruptedOr wraps err with [ErrStoreCorrupted] when the classifier says
// the file is unusable, and with fallback otherwise.
func (db *DB) corruptedOr(fallback, err error) error {
	if db.errorClassificator.Classify(err) == Corrupted {
		return fmt.Errorf("%w: %w", ErrStoreCorrupted, err)
	}
	return fmt.Errorf("%w: %w", fallback, err)
}
