// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/trace-backup/internal/logger"
	"github.com/MKhiriev/trace-backup/migrations"
)

// DB is an open store database together with its error classifier.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate brings the schema up to date. [ErrSchemaTooNew] is returned
// unchanged.
func (db *DB) Migrate(ctx context.Context) (migrations.Plan, error) {
	return migrations.Migrate(ctx, db.DB, db.logger)
}
