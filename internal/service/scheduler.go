package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrSyncInProgress reports that a pass for the configured sheet is already
// running; the trigger is a no-op.
var ErrSyncInProgress = errors.New("sync already in progress")

// ErrNotConfigured reports that no sheet has been configured yet.
var ErrNotConfigured = errors.New("no sheet configured")

// Scheduler drives the sync service: one pass at startup when a sheet is
// configured, one every interval, and on demand through Trigger. Passes for
// the same configuration never overlap; the in-flight guard makes a
// concurrent trigger a no-op instead of queueing it.
type Scheduler struct {
	Sync     *SyncService
	Interval time.Duration
	Logger   zerolog.Logger

	mu      sync.Mutex
	cfg     SheetConfig
	running bool
}

// Configure replaces the active sheet configuration. Callers usually trigger
// a pass right after.
func (sc *Scheduler) Configure(cfg SheetConfig) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cfg = cfg
}

func (sc *Scheduler) Config() (SheetConfig, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.cfg, sc.cfg.SheetID != ""
}

// Trigger runs one pass for the active configuration, serialized against the
// periodic ticker.
func (sc *Scheduler) Trigger(ctx context.Context) (SyncSummary, error) {
	sc.mu.Lock()
	cfg := sc.cfg
	if cfg.SheetID == "" {
		sc.mu.Unlock()
		return SyncSummary{}, ErrNotConfigured
	}
	if sc.running {
		sc.mu.Unlock()
		return SyncSummary{}, ErrSyncInProgress
	}
	sc.running = true
	sc.mu.Unlock()

	defer func() {
		sc.mu.Lock()
		sc.running = false
		sc.mu.Unlock()
	}()
	return sc.Sync.Run(ctx, cfg)
}

// Start launches the periodic loop. It returns immediately; the loop stops
// when ctx is cancelled. Failures are logged and retried on the next tick,
// never propagated.
func (sc *Scheduler) Start(ctx context.Context) {
	go func() {
		sc.runOnce(ctx)

		ticker := time.NewTicker(sc.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sc.runOnce(ctx)
			}
		}
	}()
	sc.Logger.Info().Dur("interval", sc.Interval).Msg("sheet sync scheduler started")
}

func (sc *Scheduler) runOnce(ctx context.Context) {
	if _, err := sc.Trigger(ctx); err != nil {
		switch {
		case errors.Is(err, ErrNotConfigured):
			// nothing to do until an admin configures a sheet
		case errors.Is(err, ErrSyncInProgress):
			sc.Logger.Debug().Msg("sync pass still running, skipping tick")
		default:
			sc.Logger.Error().Err(err).Msg("scheduled sync pass failed")
		}
	}
}
