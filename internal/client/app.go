package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/photosync/internal/adapter"
	"github.com/MKhiriev/photosync/internal/catalog"
	"github.com/MKhiriev/photosync/internal/config"
	"github.com/MKhiriev/photosync/internal/console"
	"github.com/MKhiriev/photosync/internal/logger"
	"github.com/MKhiriev/photosync/internal/ratelimit"
	"github.com/MKhiriev/photosync/internal/retry"
	"github.com/MKhiriev/photosync/internal/service"
	"github.com/MKhiriev/photosync/internal/store"
)

var ErrInvalidApp = errors.New("invalid app configuration")

var _ Client = (*App)(nil)

type App struct {
	cfg     *config.StructuredConfig
	remote  adapter.PhotoService
	source  catalog.Source
	printer *console.Printer
	logger  *logger.Logger
}

func NewApp(
	cfg *config.StructuredConfig,
	remote adapter.PhotoService,
	source catalog.Source,
	printer *console.Printer,
	log *logger.Logger,
) (*App, error) {
	if cfg == nil || remote == nil || source == nil || printer == nil {
		return nil, ErrInvalidApp
	}
	return &App{cfg: cfg, remote: remote, source: source, printer: printer, logger: log}, nil
}

// Run opens the sync stores, runs the sync job and closes the stores before
// returning, whatever the outcome.
func (a *App) Run(ctx context.Context) (err error) {
	stores, err := store.NewSyncStores(ctx, a.cfg.Storage, a.cfg.Workers.RecordSkipped, a.logger)
	if err != nil {
		return fmt.Errorf("open sync stores: %w", err)
	}
	defer func() {
		if closeErr := stores.Close(); closeErr != nil {
			a.logger.Err(closeErr).Msg("error closing sync stores")
			err = errors.Join(err, closeErr)
		}
	}()

	limiter := ratelimit.New(a.cfg.Workers.MinInterval)
	retrier := retry.NewRetrier(limiter, retry.Policy{
		MaxRetries: a.cfg.Workers.MaxRetries,
		Delay:      a.cfg.Workers.RetryDelay,
	}, a.logger)

	engine, err := service.NewSyncEngine(stores, a.remote, retrier, a.printer, service.EngineOptions{
		MaxFileSize:        a.cfg.Workers.MaxFileSize,
		ExcludedExtensions: a.cfg.Workers.ExcludedExtensions,
		RecordSkipped:      a.cfg.Workers.RecordSkipped,
	}, a.logger)
	if err != nil {
		return fmt.Errorf("create sync engine: %w", err)
	}

	a.logger.Info().
		Dur("min_interval", limiter.Interval()).
		Int("max_retries", a.cfg.Workers.MaxRetries).
		Dur("retry_delay", a.cfg.Workers.RetryDelay).
		Str("driver", a.cfg.Storage.Driver).
		Msg("sync engine ready")

	job := service.NewSyncJob(func(ctx context.Context) error {
		return a.syncOnce(ctx, engine)
	}, a.cfg.Workers.SyncInterval, a.logger)

	return job.Run(ctx)
}

func (a *App) syncOnce(ctx context.Context, engine service.SyncEngine) error {
	c, err := a.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	report, err := engine.Run(ctx, c)
	a.printer.Summary(report)
	if err != nil {
		return fmt.Errorf("sync run %s: %w", report.RunID, err)
	}
	return nil
}
