// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/trace-backup/models"
)

const (
	defaultRecentWindow    = 5 * time.Minute
	defaultRefreshInterval = 30 * time.Second
)

// RecentLister lists the entries backed up within a window.
// *BackupService satisfies it.
type RecentLister interface {
	ListWithin(ctx context.Context, window time.Duration) ([]models.BackupEntry, bool)
}

// StatusSnapshot is the cached result of the last refresh. Known is false
// until a refresh succeeded, and again after a refresh failed.
type StatusSnapshot struct {
	Entries   []models.BackupEntry
	Known     bool
	UpdatedAt time.Time
}

// StatusCacheJob keeps the entries of the recent window in memory so a
// status card can be rendered without touching the store.
type StatusCacheJob struct {
	lister RecentLister
	window time.Duration

	mu       sync.Mutex
	snapshot StatusSnapshot
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewStatusCacheJob creates a job that caches lister.ListWithin(window). A
// zero or negative window defaults to 5 minutes. The job is idle until
// Start or Refresh is called.
func NewStatusCacheJob(lister RecentLister, window time.Duration) *StatusCacheJob {
	if window <= 0 {
		window = defaultRecentWindow
	}
	return &StatusCacheJob{lister: lister, window: window}
}

// Start stops any previously running job, then launches a background
// goroutine that refreshes the cache every interval. If interval is zero
// or negative it defaults to 30 seconds. The goroutine exits when ctx is
// cancelled or Stop is called.
func (j *StatusCacheJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.Refresh(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine and blocks until it has exited.
// Safe to call when the job is not running.
func (j *StatusCacheJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// Refresh reloads the cache synchronously and returns the new snapshot.
func (j *StatusCacheJob) Refresh(ctx context.Context) StatusSnapshot {
	entries, ok := j.lister.ListWithin(ctx, j.window)

	snap := StatusSnapshot{
		Entries:   entries,
		Known:     ok,
		UpdatedAt: time.Now(),
	}

	j.mu.Lock()
	j.snapshot = snap
	j.mu.Unlock()

	return j.copySnapshot(snap)
}

// Snapshot returns the cached entries without touching the store.
func (j *StatusCacheJob) Snapshot() StatusSnapshot {
	j.mu.Lock()
	snap := j.snapshot
	j.mu.Unlock()

	return j.copySnapshot(snap)
}

func (j *StatusCacheJob) copySnapshot(snap StatusSnapshot) StatusSnapshot {
	snap.Entries = slices.Clone(snap.Entries)
	return snap
}
