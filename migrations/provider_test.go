// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, db *sql.DB) *goose.Provider {
	t.Helper()

	p, err := goose.NewProvider(goose.DialectSQLite3, db, embedMigrations)
	require.NoError(t, err)
	return p
}
