// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/trace-backup/internal/crypto"
	"github.com/MKhiriev/trace-backup/internal/logger"
	"github.com/MKhiriev/trace-backup/models"
)

// ListFilter narrows a listing. The zero value lists everything.
type ListFilter struct {
	// Since keeps entries whose date is at or after Since. Zero means no
	// lower bound.
	Since time.Time

	// Kind keeps entries whose report has this kind. Empty means any kind,
	// including entries without a report. It is applied after decryption.
	Kind models.ReportKind
}

type backupEntryRepository struct {
	*DB
	cipher *crypto.StoreCipher
	logger *logger.Logger
}

// NewBackupEntryRepository returns a repository over db whose payload
// columns are sealed with cipher.
func NewBackupEntryRepository(db *DB, cipher *crypto.StoreCipher, logger *logger.Logger) BackupEntryRepository {
	return &backupEntryRepository{
		DB:     db,
		cipher: cipher,
		logger: logger,
	}
}

// Save writes one entry in its own transaction. Either the entry is present
// after a nil return or nothing was written.
func (r *backupEntryRepository) Save(ctx context.Context, entry models.BackupEntry) error {
	log := logger.FromContext(ctx)

	data, err := r.cipher.Seal([]byte(entry.Data), dataAAD(entry.ID))
	if err != nil {
		log.Err(err).Str("func", "backupEntryRepository.Save").Str("id", entry.ID).Msg("failed to seal entry data")
		return fmt.Errorf("seal entry data: %w", err)
	}

	var report []byte
	if raw := models.RawReportFrom(entry.Report); !raw.IsEmpty() {
		payload, err := json.Marshal(raw)
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		if report, err = r.cipher.Seal(payload, reportAAD(entry.ID)); err != nil {
			log.Err(err).Str("func", "backupEntryRepository.Save").Str("id", entry.ID).Msg("failed to seal report")
			return fmt.Errorf("seal report: %w", err)
		}
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "backupEntryRepository.Save").Msg("failed to begin transaction")
		return r.corruptedOr(ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, saveBackupEntry,
		entry.ID,
		entry.Date.UnixNano(),
		data,
		report,
	)
	if err != nil {
		log.Err(err).
			Str("func", "backupEntryRepository.Save").
			Str("id", entry.ID).
			Msg("failed to insert backup entry")
		return r.corruptedOr(ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrEntryNotSaved
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "backupEntryRepository.Save").
			Str("id", entry.ID).
			Msg("failed to commit backup entry")
		return r.corruptedOr(ErrCommitingTransaction, err)
	}

	return nil
}

// List returns the entries matching filter, newest first. Entries with the
// same date keep their insertion order reversed. Every row in the date
// range is decrypted before the kind filter applies; a row that does not
// decrypt or decode fails the whole listing with [ErrStoreCorrupted].
func (r *backupEntryRepository) List(ctx context.Context, filter ListFilter) ([]models.BackupEntry, error) {
	log := logger.FromContext(ctx)

	stmt, args, err := buildListBackupEntriesQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "backupEntryRepository.List").Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Err(err).Str("func", "backupEntryRepository.List").Msg("failed to execute list query")
		return nil, r.corruptedOr(ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.BackupEntry, 0)
	for rows.Next() {
		var (
			id        string
			createdAt int64
			data      []byte
			report    []byte
		)
		if err = rows.Scan(&id, &createdAt, &data, &report); err != nil {
			log.Err(err).Str("func", "backupEntryRepository.List").Msg("failed to scan backup entry row")
			return nil, r.corruptedOr(ErrScanningRows, err)
		}

		entry, err := r.decode(id, createdAt, data, report)
		if err != nil {
			log.Err(err).
				Str("func", "backupEntryRepository.List").
				Str("id", id).
				Msg("failed to decode backup entry")
			return nil, err
		}

		if kind, _ := entry.Kind(); filter.Kind != "" && kind != filter.Kind {
			continue
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "backupEntryRepository.List").Msg("error occurred during rows iteration")
		return nil, r.corruptedOr(ErrScanningRows, err)
	}

	return entries, nil
}

func (r *backupEntryRepository) decode(id string, createdAt int64, data, sealedReport []byte) (models.BackupEntry, error) {
	plain, err := r.cipher.Open(data, dataAAD(id))
	if err != nil {
		return models.BackupEntry{}, fmt.Errorf("%w: entry %s data: %w", ErrStoreCorrupted, id, err)
	}

	if sealedReport == nil {
		return models.NewBackupEntry(id, string(plain), time.Unix(0, createdAt), nil), nil
	}

	payload, err := r.cipher.Open(sealedReport, reportAAD(id))
	if err != nil {
		return models.BackupEntry{}, fmt.Errorf("%w: entry %s report: %w", ErrStoreCorrupted, id, err)
	}

	var raw models.RawReport
	if err = json.Unmarshal(payload, &raw); err != nil {
		return models.BackupEntry{}, fmt.Errorf("%w: entry %s report: %w", ErrStoreCorrupted, id, err)
	}

	report, err := raw.Report()
	if err != nil {
		return models.BackupEntry{}, fmt.Errorf("%w: entry %s: %w", ErrStoreCorrupted, id, err)
	}
	if report == nil {
		return models.BackupEntry{}, fmt.Errorf("%w: entry %s has an empty report", ErrStoreCorrupted, id)
	}

	return models.NewBackupEntry(id, string(plain), time.Unix(0, createdAt), report), nil
}

func dataAAD(id string) []byte   { return []byte("data:" + id) }
func reportAAD(id string) []byte { return []byte("report:" + id) }
