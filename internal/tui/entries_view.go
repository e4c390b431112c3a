// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/trace-backup/internal/service"
	"github.com/MKhiriev/trace-backup/models"
)

const (
	dateLayout    = "2006-01-02 15:04:05"
	maxDataLength = 60
	unknownResult = "unavailable: local backups could not be read"
)

// DescribeReport renders a report as the human-readable data stored next
// to it. A nil report yields an empty string.
func DescribeReport(r models.Report) string {
	switch v := r.(type) {
	case models.DailyReport:
		return fmt.Sprintf("daily report: %d symptoms, proximity exposure: %s, travel: %s",
			v.SymptomCount, yesNo(v.HadProximityExposure), yesNo(v.HadTravel))
	case models.TestReport:
		return fmt.Sprintf("test report: %s", v.Result)
	case models.ContactReport:
		return fmt.Sprintf("contact report: %s", strings.Join(v.TargetIdentifiers, ", "))
	default:
		return ""
	}
}

// RenderEntries renders a backup listing. known=false means the store
// could not be read, which is shown differently from an empty history.
func RenderEntries(title string, entries []models.BackupEntry, known bool) string {
	if !known {
		return renderPage(title, unknownResult, "")
	}

	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderEntryLine(e))
	}

	return renderPage(title, b.String(), fmt.Sprintf("%d entries", len(entries)))
}

func renderEntryLine(e models.BackupEntry) string {
	kind := "-"
	if k, ok := e.Kind(); ok {
		kind = string(k)
	}
	return fmt.Sprintf("%s  %s %s", e.Date.Format(dateLayout), kindStyle.Render(kind), fitText(e.Data, maxDataLength))
}

// RenderStatusCard renders the cached recent-window status.
func RenderStatusCard(snap service.StatusSnapshot, window time.Duration) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Backed up in the last %s", window)))
	b.WriteString("\n")

	switch {
	case !snap.Known:
		b.WriteString(unknownResult)
	case len(snap.Entries) == 0:
		b.WriteString("nothing yet")
	default:
		for i, e := range snap.Entries {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(renderEntryLine(e))
		}
	}

	if !snap.UpdatedAt.IsZero() {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("updated " + snap.UpdatedAt.Format(dateLayout)))
	}

	return statusBoxStyle.Render(b.String())
}

// RenderTodayCheck renders the answer to "was kind submitted today". A
// non-nil err means the answer is unknown.
func RenderTodayCheck(kind models.ReportKind, submitted bool, err error) string {
	switch {
	case err != nil:
		return fmt.Sprintf("%s report submitted today: unknown (%s)", kind, HumanizeError(err))
	case submitted:
		return fmt.Sprintf("%s report submitted today: yes", kind)
	default:
		return fmt.Sprintf("%s report submitted today: no", kind)
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
