// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/trace-backup/internal/crypto"
	"github.com/MKhiriev/trace-backup/internal/store"
	"github.com/MKhiriev/trace-backup/models"
)

// Diagnostic kinds reported to the error-reporting sink.
const (
	DiagnosticKeyUnavailable   = "key_unavailable"
	DiagnosticEntropyFailure   = "entropy_failure"
	DiagnosticStoreCorrupted   = "store_corrupted"
	DiagnosticSchemaTooNew     = "schema_too_new"
	DiagnosticWriteFailed      = "write_failed"
	DiagnosticCheckUnavailable = "check_unavailable"
)

// diagnosticKind names err by the most specific failure in its chain.
// fallback is used when the chain carries none of the known failures.
func diagnosticKind(err error, fallback string) string {
	switch {
	case errors.Is(err, crypto.ErrEntropyFailure):
		return DiagnosticEntropyFailure
	case errors.Is(err, crypto.ErrKeyUnavailable):
		return DiagnosticKeyUnavailable
	case errors.Is(err, store.ErrSchemaTooNew):
		return DiagnosticSchemaTooNew
	case errors.Is(err, store.ErrStoreCorrupted):
		return DiagnosticStoreCorrupted
	default:
		return fallback
	}
}

// annotationOf returns the remote annotation carried by err, if any.
func annotationOf(err error) string {
	var annotated Annotated
	if errors.As(err, &annotated) {
		return annotated.Annotation()
	}
	return ""
}

func (s *BackupService) reportDiagnostic(ctx context.Context, operation, kind string, err error) {
	d := models.Diagnostic{
		Kind:        kind,
		Operation:   operation,
		Description: err.Error(),
		Annotation:  annotationOf(err),
		At:          s.now(),
	}

	if reportErr := s.diagnostics.Report(ctx, d); reportErr != nil {
		s.logger.Err(reportErr).
			Str("func", "BackupService.reportDiagnostic").
			Str("kind", kind).
			Str("operation", operation).
			Msg("failed to forward diagnostic")
	}
}
