// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"time"

	"github.com/MKhiriev/trace-backup/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the command named by args[0] and blocks until it is done.
	Run(ctx context.Context, args []string) error
}

// Backups is the part of the backup service the client uses.
// *service.BackupService satisfies it.
type Backups interface {
	Insert(ctx context.Context, data string, report models.Report) (models.BackupEntry, error)
	ListAll(ctx context.Context) ([]models.BackupEntry, bool)
	ListWithin(ctx context.Context, window time.Duration) ([]models.BackupEntry, bool)
	ListKind(ctx context.Context, kind models.ReportKind, since time.Time) ([]models.BackupEntry, bool, error)
	HasSubmittedKindToday(ctx context.Context, kind models.ReportKind) (bool, error)
}
