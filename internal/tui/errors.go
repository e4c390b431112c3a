// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/trace-backup/internal/crypto"
	"github.com/MKhiriev/trace-backup/internal/store"
)

// HumanizeError turns a backup failure into a short sentence for the user.
// Errors without a known cause are returned as is.
func HumanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, crypto.ErrKeyUnavailable):
		return "The backup key could not be read from the secure vault"
	case errors.Is(err, crypto.ErrEntropyFailure):
		return "A new backup key could not be generated"
	case errors.Is(err, store.ErrSchemaTooNew):
		return "The local backup was written by a newer version of the app; please update"
	case errors.Is(err, store.ErrStoreLocked):
		return "The local backup is in use by another process"
	case errors.Is(err, store.ErrStoreCorrupted):
		return "The local backup file is damaged"
	default:
		return err.Error()
	}
}
