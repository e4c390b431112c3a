// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Diagnostic is a store-level failure forwarded to the external
// error-reporting sink.
type Diagnostic struct {
	// Kind is the taxonomy name of the failure (e.g. "store_corrupted").
	Kind string `json:"kind"`

	// Operation is the repository operation that failed.
	Operation string `json:"operation"`

	// Description is the human-readable error text.
	Description string `json:"description"`

	// Annotation carries a deeper remote-API error annotation verbatim when
	// one triggered the failure.
	Annotation string `json:"annotation,omitempty"`

	// At is when the failure was observed.
	At time.Time `json:"at"`
}
