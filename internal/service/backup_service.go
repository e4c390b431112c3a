// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/trace-backup/internal/app"
	"github.com/MKhiriev/trace-backup/internal/logger"
	"github.com/MKhiriev/trace-backup/internal/store"
	"github.com/MKhiriev/trace-backup/internal/utils"
	"github.com/MKhiriev/trace-backup/models"
)

const (
	opInsert     = "insert"
	opListAll    = "list_all"
	opListWithin = "list_within"
	opListKind   = "list_kind"
	opToday      = "has_submitted_kind_today"
)

// BackupStore opens handles on the encrypted backup store.
// *store.EncryptedStore satisfies it.
type BackupStore interface {
	Open(ctx context.Context) (*store.Handle, error)
	Recreate(ctx context.Context) (*store.Handle, error)
}

// BackupService is the single owner of the local backup store. All store
// access goes through one mutex, so at most one handle is open and at most
// one recovery runs at a time within the process.
//
// Every call opens the store, runs its operation and closes the store
// again. When the store turns out to be corrupted, either on open or while
// the operation runs, it is recreated empty once and the operation is
// retried on the fresh store. A second failure is final for the call.
type BackupService struct {
	store       BackupStore
	diagnostics DiagnosticReporter
	notifier    Notifier
	ids         IDGenerator
	now         func() time.Time
	logger      *logger.Logger

	mu sync.Mutex
}

// BackupServiceOption customises a [BackupService].
type BackupServiceOption func(*BackupService)

// WithClock replaces time.Now. Day boundaries are computed in the location
// of the returned times.
func WithClock(now func() time.Time) BackupServiceOption {
	return func(s *BackupService) {
		s.now = now
	}
}

// WithIDGenerator replaces the UUIDv7 entry identifier generator.
func WithIDGenerator(ids IDGenerator) BackupServiceOption {
	return func(s *BackupService) {
		s.ids = ids
	}
}

func NewBackupService(backupStore BackupStore, diagnostics DiagnosticReporter, notifier Notifier, logger *logger.Logger, opts ...BackupServiceOption) *BackupService {
	s := &BackupService{
		store:       backupStore,
		diagnostics: diagnostics,
		notifier:    notifier,
		ids:         utils.NewUUIDGenerator(),
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert writes one new entry dated now and returns it. Any failure is
// reported, shown as a notice and returned wrapped in [ErrWriteFailed]
// together with its cause.
func (s *BackupService) Insert(ctx context.Context, data string, report models.Report) (models.BackupEntry, error) {
	entry := models.NewBackupEntry(s.ids.Generate(), data, s.now().Round(0), report)

	err := s.withStore(ctx, opInsert, func(h *store.Handle) error {
		return h.Insert(ctx, entry)
	})
	if err != nil {
		s.logger.Err(err).
			Str("func", "BackupService.Insert").
			Str("entry_id", entry.ID).
			Msg("failed to back up entry")
		s.reportDiagnostic(ctx, opInsert, diagnosticKind(err, DiagnosticWriteFailed), err)
		s.notify(app.NoticeBackupFailedTitle, err.Error())
		return models.BackupEntry{}, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	return entry, nil
}

// ListAll returns every entry, newest first. ok is false when the store
// could not be read; the failure is reported and shown as a notice instead
// of being returned.
func (s *BackupService) ListAll(ctx context.Context) (entries []models.BackupEntry, ok bool) {
	entries, err := s.list(ctx, opListAll, store.ListFilter{})
	if err != nil {
		s.notify(app.NoticeListFailedTitle, err.Error())
		return nil, false
	}
	return entries, true
}

// ListWithin returns the entries dated no earlier than now minus window,
// newest first. ok is false when the store could not be read.
func (s *BackupService) ListWithin(ctx context.Context, window time.Duration) (entries []models.BackupEntry, ok bool) {
	entries, err := s.list(ctx, opListWithin, store.ListFilter{Since: s.now().Add(-window)})
	if err != nil {
		s.notify(app.NoticeSearchFailedTitle, err.Error())
		return nil, false
	}
	return entries, true
}

// ListKind returns the entries of kind dated no earlier than since, newest
// first. A zero since lists the whole history. ok is false when the store
// could not be read. A kind that names no report variant is rejected with
// an error wrapping [models.ErrUnknownReportKind]; the store is not opened.
func (s *BackupService) ListKind(ctx context.Context, kind models.ReportKind, since time.Time) (entries []models.BackupEntry, ok bool, err error) {
	kind, err = s.validKind(kind, "BackupService.ListKind")
	if err != nil {
		return nil, false, err
	}

	entries, err = s.list(ctx, opListKind, store.ListFilter{Since: since, Kind: kind})
	if err != nil {
		s.notify(app.NoticeListFailedTitle, err.Error())
		return nil, false, nil
	}
	return entries, true, nil
}

// HasSubmittedKindToday reports whether an entry of kind was backed up
// since the start of the current day. When the store cannot be read it
// returns an error wrapping [ErrCheckUnavailable]; callers must not read
// that as "not submitted". A kind that names no report variant is rejected
// with an error wrapping [models.ErrUnknownReportKind].
func (s *BackupService) HasSubmittedKindToday(ctx context.Context, kind models.ReportKind) (bool, error) {
	kind, err := s.validKind(kind, "BackupService.HasSubmittedKindToday")
	if err != nil {
		return false, err
	}

	entries, err := s.list(ctx, opToday, store.ListFilter{Since: startOfDay(s.now()), Kind: kind})
	if err != nil {
		s.notify(app.NoticeCheckFailedTitle, fmt.Sprintf(app.NoticeCheckFailedFormat, err.Error()))
		return false, fmt.Errorf("%w: %w", ErrCheckUnavailable, err)
	}
	return len(entries) > 0, nil
}

func (s *BackupService) list(ctx context.Context, operation string, filter store.ListFilter) ([]models.BackupEntry, error) {
	var entries []models.BackupEntry
	err := s.withStore(ctx, operation, func(h *store.Handle) error {
		var err error
		entries, err = h.List(ctx, filter)
		return err
	})
	if err != nil {
		s.logger.Err(err).
			Str("func", "BackupService.list").
			Str("operation", operation).
			Msg("failed to read backups")
		s.reportDiagnostic(ctx, operation, diagnosticKind(err, DiagnosticCheckUnavailable), err)
		return nil, err
	}

	if entries == nil {
		entries = []models.BackupEntry{}
	}
	return entries, nil
}

// withStore runs fn against an open store, recreating the store at most
// once when it is found corrupted.
func (s *BackupService) withStore(ctx context.Context, operation string, fn func(*store.Handle) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.store.Open(ctx)
	if err == nil {
		err = s.run(h, fn)
	}
	if !errors.Is(err, store.ErrStoreCorrupted) {
		return err
	}

	s.logger.Warn().
		Err(err).
		Str("func", "BackupService.withStore").
		Str("operation", operation).
		Msg("backup store is corrupted, recreating")
	s.reportDiagnostic(ctx, operation, DiagnosticStoreCorrupted, err)
	s.notify(app.NoticeStoreRecreatedTitle, app.NoticeStoreRecreatedMessage)

	h, err = s.store.Recreate(ctx)
	if err != nil {
		return fmt.Errorf("recreate store: %w", err)
	}

	return s.run(h, fn)
}

// run closes h after fn returns, also when fn panics.
func (s *BackupService) run(h *store.Handle, fn func(*store.Handle) error) error {
	defer func() {
		if err := h.Close(); err != nil {
			s.logger.Err(err).Str("func", "BackupService.run").Msg("failed to close backup store")
		}
	}()
	return fn(h)
}

func (s *BackupService) validKind(kind models.ReportKind, fn string) (models.ReportKind, error) {
	parsed, err := models.ParseReportKind(string(kind))
	if err != nil {
		s.logger.Warn().Err(err).Str("func", fn).Msg("invalid report kind")
		return "", err
	}
	return parsed, nil
}

func (s *BackupService) notify(title, message string) {
	s.notifier.Notify(models.Notice{Title: title, Message: message})
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
