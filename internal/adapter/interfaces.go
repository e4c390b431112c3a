// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the diagnostic channel of the trace-backup
// client: the sinks store-level failures are forwarded to.
//
// The primary abstraction is [DiagnosticReporter]. The package ships an
// HTTP implementation ([NewHTTPDiagnosticReporter]) that posts diagnostics
// to an error-reporting endpoint, and a log-only implementation
// ([NewLogDiagnosticReporter]) used when no endpoint is configured.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrTooManyRequests]
// for 429).
package adapter

import (
	"context"

	"github.com/MKhiriev/trace-backup/internal/config"
	"github.com/MKhiriev/trace-backup/internal/logger"
	"github.com/MKhiriev/trace-backup/models"
)

// DiagnosticReporter forwards one diagnostic to an error-reporting sink.
type DiagnosticReporter interface {
	// Report delivers d. Implementations must not retain d after returning.
	Report(ctx context.Context, d models.Diagnostic) error
}

// NewDiagnosticReporter returns the HTTP sink when cfg names an endpoint and
// the log-only sink otherwise.
func NewDiagnosticReporter(cfg config.ClientDiagnostics, logger *logger.Logger) (DiagnosticReporter, error) {
	if cfg.Endpoint == "" {
		return NewLogDiagnosticReporter(logger), nil
	}
	return NewHTTPDiagnosticReporter(cfg, logger)
}
