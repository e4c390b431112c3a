// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations owns the on-disk schema of the backup store.
//
// Schema versions are the numeric prefixes of the embedded goose SQL files
// and only ever grow. Every step is explicit: a step that adds optional
// columns leaves existing rows NULL rather than deriving values from
// existing data. A store whose version is newer than the newest embedded
// migration is refused with [ErrSchemaTooNew].
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/pressly/goose/v3"

	"github.com/MKhiriev/trace-backup/internal/logger"
)

//go:embed *.sql
var embedMigrations embed.FS

// versionTable is the goose bookkeeping table.
const versionTable = "goose_db_version"

// ErrSchemaTooNew is returned when the store was written by a newer build
// than the running one. Such a store must be left untouched.
var ErrSchemaTooNew = errors.New("store schema is newer than supported")

// Plan is an ordered list of schema versions to apply to move a store from
// From to To.
type Plan struct {
	From  int64
	To    int64
	Steps []int64
}

// Empty reports whether the plan has nothing to apply.
func (p Plan) Empty() bool {
	return len(p.Steps) == 0
}

// NewPlan computes the steps needed to move a store at version disk to
// version code, using the versions in available. Steps are strictly
// increasing. disk > code yields [ErrSchemaTooNew].
func NewPlan(disk, code int64, available []int64) (Plan, error) {
	if disk > code {
		return Plan{}, fmt.Errorf("%w: store is at version %d, newest known is %d", ErrSchemaTooNew, disk, code)
	}

	versions := slices.Clone(available)
	slices.Sort(versions)
	versions = slices.Compact(versions)

	plan := Plan{From: disk, To: disk}
	for _, v := range versions {
		if v > disk && v <= code {
			plan.Steps = append(plan.Steps, v)
			plan.To = v
		}
	}

	return plan, nil
}

// LatestVersion returns the highest embedded schema version.
func LatestVersion() (int64, error) {
	versions, err := embeddedVersions()
	if err != nil {
		return 0, err
	}
	if len(versions) == 0 {
		return 0, nil
	}
	return slices.Max(versions), nil
}

func embeddedVersions() ([]int64, error) {
	names, err := fs.Glob(embedMigrations, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	versions := make([]int64, 0, len(names))
	for _, name := range names {
		v, err := goose.NumericComponent(name)
		if err != nil {
			return nil, fmt.Errorf("migration %s: %w", name, err)
		}
		versions = append(versions, v)
	}
	return versions, nil
}

// Migrate brings the schema of db up to [LatestVersion] and returns the
// plan that was applied. Running it against a current store applies an
// empty plan and changes nothing.
func Migrate(ctx context.Context, db *sql.DB, log *logger.Logger) (Plan, error) {
	if db == nil {
		return Plan{}, errors.New("migration error: db is nil")
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, embedMigrations,
		goose.WithVerbose(true),
		goose.WithLogger(logger.NewGooseLogger(log)),
	)
	if err != nil {
		return Plan{}, fmt.Errorf("migration error creating provider: %w", err)
	}

	disk, err := diskVersion(ctx, db, provider)
	if err != nil {
		return Plan{}, fmt.Errorf("migration error reading store version: %w", err)
	}

	available, err := embeddedVersions()
	if err != nil {
		return Plan{}, err
	}
	code := int64(0)
	if len(available) > 0 {
		code = slices.Max(available)
	}

	plan, err := NewPlan(disk, code, available)
	if err != nil {
		return Plan{}, err
	}
	if plan.Empty() {
		log.Debug().Str("func", "migrations.Migrate").Int64("version", disk).Msg("store schema is current")
		return plan, nil
	}

	if _, err = provider.UpTo(ctx, plan.To); err != nil {
		return Plan{}, fmt.Errorf("migration error: %w", err)
	}

	log.Info().
		Str("func", "migrations.Migrate").
		Int64("from", plan.From).
		Int64("to", plan.To).
		Msg("store schema migrated")

	return plan, nil
}

// diskVersion returns the schema version recorded in db. A database
// without the goose version table is at version 0.
func diskVersion(ctx context.Context, db *sql.DB, provider *goose.Provider) (int64, error) {
	var tables int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, versionTable,
	).Scan(&tables)
	if err != nil {
		return 0, err
	}
	if tables == 0 {
		return 0, nil
	}

	return provider.GetDBVersion(ctx)
}

// Version returns the schema version recorded in db.
func Version(ctx context.Context, db *sql.DB) (int64, error) {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, embedMigrations)
	if err != nil {
		return 0, fmt.Errorf("create migration provider: %w", err)
	}
	return diskVersion(ctx, db, provider)
}
