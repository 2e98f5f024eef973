package service

import (
	"context"
	"time"

	"github.com/MKhiriev/photosync/internal/logger"
)

// SyncJob runs a sync once, or repeatedly in watch mode.
type SyncJob struct {
	run      func(ctx context.Context) error
	interval time.Duration
	logger   *logger.Logger
}

// NewSyncJob creates a SyncJob calling run. A positive interval enables
// watch mode.
func NewSyncJob(run func(ctx context.Context) error, interval time.Duration, log *logger.Logger) *SyncJob {
	return &SyncJob{run: run, interval: interval, logger: log}
}

// Run calls run once. In watch mode it then calls run again on every tick
// until ctx is cancelled; a run that outlasts the interval swallows the
// ticks it overlapped, so runs never overlap. The first run error is
// returned. Cancellation while idle between runs is not an error.
func (j *SyncJob) Run(ctx context.Context) error {
	if err := j.run(ctx); err != nil {
		return err
	}
	if j.interval <= 0 {
		return nil
	}

	j.logger.Info().Dur("interval", j.interval).Msg("watch mode: waiting for next sync")

	t := time.NewTicker(j.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info().Msg("watch mode stopped")
			return nil
		case <-t.C:
			if err := j.run(ctx); err != nil {
				return err
			}
		}
	}
}
