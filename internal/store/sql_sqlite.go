// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/trace-backup/internal/logger"
)

// sqliteParams are appended to the store path. The journal is kept in WAL
// mode, so a store consists of up to three files: path, path-wal and
// path-shm. Deleted content is overwritten with zeros.
const sqliteParams = "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on&_secure_delete=on"

// NewConnectSQLite opens the SQLite store file at path, creating it if it
// does not exist. Driver errors that mean the file is not a usable database
// are returned wrapped in [ErrStoreCorrupted].
func NewConnectSQLite(ctx context.Context, path string, log *logger.Logger) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating store directory")
			return nil, fmt.Errorf("error creating store directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path+sqliteParams)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error opening database")
		return nil, fmt.Errorf("error opening connection to store: %w", err)
	}

	db := &DB{
		DB:                 conn,
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             log,
	}

	// ping database; the journal pragma reads the header, so a file that is
	// not a database fails here
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, db.corruptedOr(errors.New("error connecting to store"), err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Str("path", path).Msg("connected to store successfully")

	return db, nil
}

// checkIntegrity runs PRAGMA quick_check. Any result other than a single
// "ok" row means the file is damaged.
func (db *DB) checkIntegrity(ctx context.Context) error {
	rows, err := db.QueryContext(ctx, quickCheck)
	if err != nil {
		return db.corruptedOr(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var problems []string
	for rows.Next() {
		var line string
		if err = rows.Scan(&line); err != nil {
			return db.corruptedOr(ErrScanningRows, err)
		}
		if line != "ok" {
			problems = append(problems, line)
		}
	}
	if err = rows.Err(); err != nil {
		return db.corruptedOr(ErrScanningRows, err)
	}

	if len(problems) > 0 {
		db.logger.Error().
			Str("func", "DB.checkIntegrity").
			Strs("problems", problems).
			Msg("store integrity check failed")
		return fmt.Errorf("%w: integrity check reported %d problem(s)", ErrStoreCorrupted, len(problems))
	}

	return nil
}
