// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// BackupEntry is one immutable record of a single report attempt kept in
// the local encrypted backup store.
type BackupEntry struct {
	// ID is the client-generated identifier of the entry (UUIDv7).
	ID string `json:"id"`

	// Data is a human-readable rendering of the report. It is a diagnostic
	// payload and is never parsed back.
	Data string `json:"data"`

	// Date is the creation time. It is the only sort and filter key.
	Date time.Time `json:"date"`

	// Report is the structured payload. It is nil for legacy or partial
	// records.
	Report Report `json:"-"`
}

// NewBackupEntry builds an entry. The entry is never modified afterwards.
// report is stored in value form; a nil pointer variant means no report.
func NewBackupEntry(id, data string, date time.Time, report Report) BackupEntry {
	return BackupEntry{
		ID:     id,
		Data:   data,
		Date:   date,
		Report: NormalizeReport(report),
	}
}

// Kind returns the variant kind of the entry and false when the entry
// carries no structured report.
func (e BackupEntry) Kind() (ReportKind, bool) {
	report := NormalizeReport(e.Report)
	if report == nil {
		return "", false
	}
	return report.Kind(), true
}
