// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/MKhiriev/trace-backup/internal/config"
	"github.com/MKhiriev/trace-backup/internal/logger"
)

// NewClientStore builds the encrypted backup store described by cfg. No
// file is touched until [EncryptedStore.Open] is called.
func NewClientStore(cfg config.ClientStorage, keys KeyProvider, logger *logger.Logger) *EncryptedStore {
	logger.Info().Str("path", cfg.Path).Msg("creating backup store...")

	var opts []EncryptedStoreOption
	if cfg.LockTimeout > 0 {
		opts = append(opts, WithLockTimeout(cfg.LockTimeout))
	}

	return NewEncryptedStore(cfg.Path, keys, logger, opts...)
}
