// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import sq "github.com/Masterminds/squirrel"

const (
	quickCheck = `PRAGMA quick_check;`

	getKeyCheck = `SELECT value FROM store_meta WHERE name = 'key_check';`

	saveKeyCheck = `INSERT INTO store_meta (name, value) VALUES ('key_check', ?);`

	saveBackupEntry = `
		INSERT INTO backup_entries (
			id,
			created_at,
			data,
			report
		) VALUES (?, ?, ?, ?);`
)

const (
	backupEntriesTable = "backup_entries"

	columnID        = "id"
	columnSeq       = "seq"
	columnCreatedAt = "created_at"
	columnData      = "data"
	columnReport    = "report"
)

// buildListBackupEntriesQuery selects the entries dated at or after
// filter.Since, newest first. Ties on created_at are broken by insertion
// order, latest first. The kind lives inside the sealed report and is
// filtered after decryption.
func buildListBackupEntriesQuery(filter ListFilter) (string, []any, error) {
	query := sq.Select(columnID, columnCreatedAt, columnData, columnReport).
		From(backupEntriesTable).
		OrderBy(columnCreatedAt+" DESC", columnSeq+" DESC")

	if !filter.Since.IsZero() {
		query = query.Where(sq.GtOrEq{columnCreatedAt: filter.Since.UnixNano()})
	}

	return query.ToSql()
}
