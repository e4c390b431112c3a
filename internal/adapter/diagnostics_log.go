// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"

	"github.com/MKhiriev/trace-backup/internal/logger"
	"github.com/MKhiriev/trace-backup/models"
)

type logDiagnosticReporter struct {
	logger *logger.Logger
}

// NewLogDiagnosticReporter returns a [DiagnosticReporter] that only writes
// diagnostics to logger.
func NewLogDiagnosticReporter(logger *logger.Logger) DiagnosticReporter {
	return &logDiagnosticReporter{logger: logger}
}

func (l *logDiagnosticReporter) Report(_ context.Context, d models.Diagnostic) error {
	event := l.logger.Warn().
		Str("func", "logDiagnosticReporter.Report").
		Str("kind", d.Kind).
		Str("operation", d.Operation).
		Str("description", d.Description).
		Time("at", d.At)
	if d.Annotation != "" {
		event = event.Str("annotation", d.Annotation)
	}
	event.Msg("backup store diagnostic")

	return nil
}
