// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Notice is a non-blocking, dismissible message for the user. Notices are
// shown by an external presenter and never interrupt report submission.
type Notice struct {
	Title   string
	Message string
}
