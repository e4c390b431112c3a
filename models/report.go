// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrAmbiguousReport is returned when a persisted report carries more
	// than one populated variant.
	ErrAmbiguousReport = errors.New("report has more than one populated variant")

	// ErrUnknownReportKind is returned when a report kind string does not
	// name one of the supported variants.
	ErrUnknownReportKind = errors.New("unknown report kind")

	// ErrUnknownTestResult is returned when a test result string is neither
	// "positive" nor "negative".
	ErrUnknownTestResult = errors.New("unknown test result")
)

// ReportKind names one variant of [Report].
type ReportKind string

const (
	// ReportKindDaily is the daily symptom questionnaire.
	ReportKindDaily ReportKind = "daily"

	// ReportKindTest is a self-reported test result.
	ReportKindTest ReportKind = "test"

	// ReportKindContact is a list of contacts the user interacted with.
	ReportKindContact ReportKind = "contact"
)

// ParseReportKind converts user or storage input into a [ReportKind].
func ParseReportKind(s string) (ReportKind, error) {
	switch k := ReportKind(strings.ToLower(strings.TrimSpace(s))); k {
	case ReportKindDaily, ReportKindTest, ReportKindContact:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownReportKind, s)
	}
}

// TestResult is the outcome of a reported test.
type TestResult string

const (
	TestResultPositive TestResult = "positive"
	TestResultNegative TestResult = "negative"
)

// ParseTestResult converts user input into a [TestResult].
func ParseTestResult(s string) (TestResult, error) {
	switch r := TestResult(strings.ToLower(strings.TrimSpace(s))); r {
	case TestResultPositive, TestResultNegative:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTestResult, s)
	}
}

// Report is the structured payload of a backup entry. The set of
// implementations is closed: only [DailyReport], [TestReport] and
// [ContactReport] satisfy it.
type Report interface {
	Kind() ReportKind
	isReport()
}

// DailyReport is the daily symptom questionnaire. Values are stored as
// given; SymptomCount is not range-checked.
type DailyReport struct {
	SymptomCount         int  `json:"symptom_count"`
	HadProximityExposure bool `json:"proximity"`
	HadTravel            bool `json:"travel"`
}

// TestReport carries a single test result.
type TestReport struct {
	Result TestResult `json:"result"`
}

// ContactReport lists the local-part identifiers of reported contacts in
// the order they were selected.
type ContactReport struct {
	TargetIdentifiers []string `json:"targets"`
}

func (DailyReport) Kind() ReportKind   { return ReportKindDaily }
func (TestReport) Kind() ReportKind    { return ReportKindTest }
func (ContactReport) Kind() ReportKind { return ReportKindContact }

func (DailyReport) isReport()   {}
func (TestReport) isReport()    {}
func (ContactReport) isReport() {}

// ContactIdentifier returns the local part (everything before the first
// "@") of an account identifier. The format is not validated.
func ContactIdentifier(accountID string) string {
	local, _, _ := strings.Cut(accountID, "@")
	return local
}

// RawReport is the persisted shape of a [Report]: three independently
// optional fields of which at most one may be set.
type RawReport struct {
	Daily   *DailyReport   `json:"daily_report,omitempty"`
	Test    *TestReport    `json:"test_report,omitempty"`
	Contact *ContactReport `json:"contact_report,omitempty"`
}

// NormalizeReport returns the value form of r. Pointer variants are
// dereferenced and a nil pointer yields a nil Report, so callers can rely on
// a non-nil result having a usable Kind.
func NormalizeReport(r Report) Report {
	switch v := r.(type) {
	case *DailyReport:
		if v == nil {
			return nil
		}
		return *v
	case *TestReport:
		if v == nil {
			return nil
		}
		return *v
	case *ContactReport:
		if v == nil {
			return nil
		}
		return *v
	default:
		return r
	}
}

// RawReportFrom converts a report into its persisted shape. A nil report,
// including a nil pointer variant, yields an empty RawReport.
func RawReportFrom(r Report) RawReport {
	switch v := NormalizeReport(r).(type) {
	case DailyReport:
		return RawReport{Daily: &v}
	case TestReport:
		return RawReport{Test: &v}
	case ContactReport:
		v.TargetIdentifiers = slices.Clone(v.TargetIdentifiers)
		return RawReport{Contact: &v}
	default:
		return RawReport{}
	}
}

// Report returns the single populated variant. An empty RawReport returns
// (nil, nil); more than one populated variant is rejected with
// [ErrAmbiguousReport].
func (r RawReport) Report() (Report, error) {
	populated := 0
	var out Report

	if r.Daily != nil {
		populated++
		out = *r.Daily
	}
	if r.Test != nil {
		populated++
		out = *r.Test
	}
	if r.Contact != nil {
		populated++
		out = *r.Contact
	}

	if populated > 1 {
		return nil, ErrAmbiguousReport
	}

	return out, nil
}

// IsEmpty reports whether no variant is populated.
func (r RawReport) IsEmpty() bool {
	return r.Daily == nil && r.Test == nil && r.Contact == nil
}
