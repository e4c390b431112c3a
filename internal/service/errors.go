// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrWriteFailed is returned by Insert when the entry could not be
	// written, including after an attempted recovery. The cause is wrapped
	// alongside it.
	ErrWriteFailed = errors.New("backup entry was not written")

	// ErrCheckUnavailable is returned by HasSubmittedKindToday when the
	// store could not be read. It means "unknown", never "not submitted".
	ErrCheckUnavailable = errors.New("submission check unavailable")
)

// Annotated is implemented by errors that carry an annotation from the
// remote submission API. The annotation is forwarded to the diagnostic
// sink verbatim.
type Annotated interface {
	error
	Annotation() string
}
