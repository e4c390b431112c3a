// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/trace-backup/internal/crypto"
	"github.com/MKhiriev/trace-backup/internal/logger"
	"github.com/MKhiriev/trace-backup/models"
)

func newMockRepository(t *testing.T) (BackupEntryRepository, sqlmock.Sqlmock, *crypto.StoreCipher) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	cipher, err := crypto.NewStoreCipher(keyOf(7))
	require.NoError(t, err)

	db := &DB{DB: conn, errorClassificator: NewSQLiteErrorClassifier(), logger: logger.Nop()}
	return NewBackupEntryRepository(db, cipher, logger.Nop()), mock, cipher
}

var (
	insertPattern = regexp.QuoteMeta("INSERT INTO backup_entries")
	listPattern   = regexp.QuoteMeta("SELECT id, created_at, data, report FROM backup_entries")
	listColumns   = []string{"id", "created_at", "data", "report"}
)

func TestBackupEntryRepository_Save(t *testing.T) {
	repo, mock, _ := newMockRepository(t)

	at := time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec(insertPattern).
		WithArgs("id-1", at.UnixNano(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Save(context.Background(), models.NewBackupEntry("id-1", "x", at, models.TestReport{Result: models.TestResultNegative}))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBackupEntryRepository_SaveExecErrorRollsBack(t *testing.T) {
	repo, mock, _ := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertPattern).WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), models.NewBackupEntry("id-1", "x", time.Now(), nil))
	require.ErrorIs(t, err, ErrExecutingStatement)
	assert.NotErrorIs(t, err, ErrStoreCorrupted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBackupEntryRepository_SaveCorruptionIsClassified(t *testing.T) {
	repo, mock, _ := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertPattern).WillReturnError(sqlite3.Error{Code: sqlite3.ErrCorrupt})
	mock.ExpectRollback()

	err := repo.Save(context.Background(), models.NewBackupEntry("id-1", "x", time.Now(), nil))
	assert.ErrorIs(t, err, ErrStoreCorrupted)
}

func TestBackupEntryRepository_SaveNoRowsAffected(t *testing.T) {
	repo, mock, _ := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertPattern).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), models.NewBackupEntry("id-1", "x", time.Now(), nil))
	assert.ErrorIs(t, err, ErrEntryNotSaved)
}

func TestBackupEntryRepository_SaveBeginAndCommitErrors(t *testing.T) {
	repo, mock, _ := newMockRepository(t)

	mock.ExpectBegin().WillReturnError(errors.New("busy"))
	err := repo.Save(context.Background(), models.NewBackupEntry("id-1", "x", time.Now(), nil))
	require.ErrorIs(t, err, ErrBeginningTransaction)

	mock.ExpectBegin()
	mock.ExpectExec(insertPattern).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))
	err = repo.Save(context.Background(), models.NewBackupEntry("id-2", "x", time.Now(), nil))
	assert.ErrorIs(t, err, ErrCommitingTransaction)
}

func TestBackupEntryRepository_ListBuildsFilteredQuery(t *testing.T) {
	repo, mock, cipher := newMockRepository(t)

	since := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	data, err := cipher.Seal([]byte("hello"), dataAAD("a"))
	require.NoError(t, err)

	mock.ExpectQuery(listPattern+` WHERE created_at >= \? ORDER BY created_at DESC, seq DESC`).
		WithArgs(since.UnixNano()).
		WillReturnRows(sqlmock.NewRows(listColumns))

	entries, err := repo.List(context.Background(), ListFilter{Since: since, Kind: models.ReportKindDaily})
	require.NoError(t, err)
	assert.Empty(t, entries)

	mock.ExpectQuery(listPattern + ` ORDER BY created_at DESC, seq DESC`).
		WillReturnRows(sqlmock.NewRows(listColumns).AddRow("a", since.UnixNano(), data, nil))

	entries, err = repo.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0].Data)
	assert.True(t, entries[0].Date.Equal(since))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBackupEntryRepository_ListFiltersKindAfterDecryption(t *testing.T) {
	repo, mock, cipher := newMockRepository(t)

	sealRow := func(id string, report string) (data, sealed []byte) {
		var err error
		data, err = cipher.Seal([]byte(id), dataAAD(id))
		require.NoError(t, err)
		if report != "" {
			sealed, err = cipher.Seal([]byte(report), reportAAD(id))
			require.NoError(t, err)
		}
		return data, sealed
	}
	dData, dReport := sealRow("d", `{"daily_report":{"symptom_count":1}}`)
	tData, tReport := sealRow("t", `{"test_report":{"result":"positive"}}`)
	lData, _ := sealRow("l", "")

	mock.ExpectQuery(listPattern + ` ORDER BY created_at DESC, seq DESC`).
		WillReturnRows(sqlmock.NewRows(listColumns).
			AddRow("t", int64(3), tData, tReport).
			AddRow("d", int64(2), dData, dReport).
			AddRow("l", int64(1), lData, nil))

	entries, err := repo.List(context.Background(), ListFilter{Kind: models.ReportKindDaily})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "d", entries[0].ID)
	assert.Equal(t, models.DailyReport{SymptomCount: 1}, entries[0].Report)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBackupEntryRepository_ListQueryErrors(t *testing.T) {
	repo, mock, _ := newMockRepository(t)

	mock.ExpectQuery(listPattern).WillReturnError(errors.New("connection reset"))
	_, err := repo.List(context.Background(), ListFilter{})
	require.ErrorIs(t, err, ErrExecutingQuery)

	mock.ExpectQuery(listPattern).WillReturnError(sqlite3.Error{Code: sqlite3.ErrNotADB})
	_, err = repo.List(context.Background(), ListFilter{})
	require.ErrorIs(t, err, ErrStoreCorrupted)

	mock.ExpectQuery(listPattern).
		WillReturnRows(sqlmock.NewRows(listColumns).
			AddRow("a", int64(1), []byte{1}, nil, nil).
			RowError(0, sqlite3.Error{Code: sqlite3.ErrCorrupt}))
	_, err = repo.List(context.Background(), ListFilter{})
	assert.ErrorIs(t, err, ErrStoreCorrupted)
}

func TestBackupEntryRepository_ListRejectsAmbiguousReport(t *testing.T) {
	repo, mock, cipher := newMockRepository(t)

	data, err := cipher.Seal([]byte("x"), dataAAD("a"))
	require.NoError(t, err)
	report, err := cipher.Seal([]byte(`{"daily_report":{},"test_report":{"result":"positive"}}`), reportAAD("a"))
	require.NoError(t, err)

	mock.ExpectQuery(listPattern).
		WillReturnRows(sqlmock.NewRows(listColumns).AddRow("a", int64(1), data, report))

	_, err = repo.List(context.Background(), ListFilter{})
	require.ErrorIs(t, err, ErrStoreCorrupted)
	assert.ErrorIs(t, err, models.ErrAmbiguousReport)
}

func TestBackupEntryRepository_ListEmptyReportIsCorrupted(t *testing.T) {
	repo, mock, cipher := newMockRepository(t)

	data, err := cipher.Seal([]byte("x"), dataAAD("a"))
	require.NoError(t, err)
	report, err := cipher.Seal([]byte(`{}`), reportAAD("a"))
	require.NoError(t, err)

	mock.ExpectQuery(listPattern).
		WillReturnRows(sqlmock.NewRows(listColumns).AddRow("a", int64(1), data, report))

	_, err = repo.List(context.Background(), ListFilter{})
	assert.ErrorIs(t, err, ErrStoreCorrupted)
}

// noBytes matches a NULL blob argument.
type noBytes struct{}

func (noBytes) Match(v driver.Value) bool {
	b, ok := v.([]byte)
	return v == nil || (ok && b == nil)
}

func TestBackupEntryRepository_SaveNilPointerReport(t *testing.T) {
	repo, mock, _ := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertPattern).
		WithArgs("id-1", sqlmock.AnyArg(), sqlmock.AnyArg(), noBytes{}).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	entry := models.BackupEntry{ID: "id-1", Date: time.Now(), Report: (*models.ContactReport)(nil)}
	require.NotPanics(t, func() {
		require.NoError(t, repo.Save(context.Background(), entry))
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
