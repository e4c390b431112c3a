// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/trace-backup/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// DiagnosticReporter forwards store-level failures to an external
// error-reporting sink.
type DiagnosticReporter interface {
	Report(ctx context.Context, diagnostic models.Diagnostic) error
}

// Notifier presents non-blocking notices to the user. Notify must return
// without waiting for the user to dismiss the notice.
type Notifier interface {
	Notify(notice models.Notice)
}

// IDGenerator produces backup entry identifiers.
type IDGenerator interface {
	Generate() string
}
