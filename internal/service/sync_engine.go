// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/MKhiriev/photosync/internal/adapter"
	"github.com/MKhiriev/photosync/internal/logger"
	"github.com/MKhiriev/photosync/internal/retry"
	"github.com/MKhiriev/photosync/internal/store"
	"github.com/MKhiriev/photosync/internal/utils"
	"github.com/MKhiriev/photosync/internal/workers"
	"github.com/MKhiriev/photosync/models"
)

// EngineOptions tunes the upload phase.
type EngineOptions struct {
	// MaxFileSize is the largest file uploaded, in bytes. Zero means no limit.
	MaxFileSize int64
	// ExcludedExtensions are never uploaded; compared case-insensitively.
	ExcludedExtensions []string
	// RecordSkipped enables the skipped ledger. It requires stores.Skipped.
	RecordSkipped bool
}

type syncEngine struct {
	stores   *store.SyncStores
	remote   adapter.PhotoService
	retrier  *retry.Retrier
	reporter Reporter
	opts     EngineOptions
	excluded map[string]struct{}
	ids      *utils.UUIDGenerator
	logger   *logger.Logger

	stat func(name string) (os.FileInfo, error)
	now  func() time.Time
}

// NewSyncEngine wires a [SyncEngine]. reporter may be nil.
func NewSyncEngine(
	stores *store.SyncStores,
	remote adapter.PhotoService,
	retrier *retry.Retrier,
	reporter Reporter,
	opts EngineOptions,
	log *logger.Logger,
) (SyncEngine, error) {
	if stores == nil || stores.Uploaded == nil || stores.Geotagged == nil ||
		stores.Albums == nil || stores.Memberships == nil {
		return nil, fmt.Errorf("%w: sync stores are not open", ErrInvalidArgument)
	}
	if remote == nil || retrier == nil {
		return nil, fmt.Errorf("%w: remote service and retrier are required", ErrInvalidArgument)
	}
	if opts.RecordSkipped && stores.Skipped == nil {
		return nil, fmt.Errorf("%w: skipped ledger enabled without a skipped store", ErrInvalidArgument)
	}
	if reporter == nil {
		reporter = nopReporter{}
	}

	excluded := make(map[string]struct{}, len(opts.ExcludedExtensions))
	for _, ext := range opts.ExcludedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		excluded[ext] = struct{}{}
	}

	return &syncEngine{
		stores:   stores,
		remote:   remote,
		retrier:  retrier,
		reporter: reporter,
		opts:     opts,
		excluded: excluded,
		ids:      utils.NewUUIDGenerator(),
		logger:   log,
		stat:     os.Stat,
		now:      time.Now,
	}, nil
}

func (e *syncEngine) Run(ctx context.Context, catalog models.Catalog) (models.SyncReport, error) {
	report := models.SyncReport{RunID: e.ids.Generate(), Started: e.now()}

	log := e.logger.ForRun(report.RunID)
	ctx = log.WithContext(ctx)
	log.Info().
		Int("photos", len(catalog.Photos)).
		Int("albums", len(catalog.Albums)).
		Msg("sync run started")

	phase := func(name string, fn func(context.Context, models.Catalog) (models.PhaseReport, error)) workers.Worker {
		return workers.Func{WorkerName: name, Fn: func(ctx context.Context) error {
			rep, err := fn(ctx, catalog)
			rep.Phase = name
			report.Phases = append(report.Phases, rep)
			e.reporter.PhaseFinished(rep)
			logger.FromContext(ctx).Info().
				Str("phase", name).
				Int("pending", rep.Pending).
				Int("committed", rep.Committed).
				Int("recovered", rep.Recovered).
				Int("skipped", rep.Skipped).
				Int("exhausted", rep.Exhausted).
				Int("deferred", rep.Deferred).
				Msg("sync phase finished")
			return err
		}}
	}

	err := workers.NewWorkers(
		phase(PhaseUpload, e.uploadPhotos),
		phase(PhaseGeotag, e.geotagPhotos),
		phase(PhaseAlbums, e.syncAlbums),
	).Run(ctx)

	report.Finished = e.now()
	if err != nil {
		log.Err(err).Dur("took", report.Duration()).Msg("sync run aborted")
		return report, err
	}

	log.Info().Int("committed", report.Committed()).Dur("took", report.Duration()).Msg("sync run finished")
	return report, nil
}

// emit counts ev in rep and forwards it to the reporter.
func (e *syncEngine) emit(rep *models.PhaseReport, ev models.ItemEvent) {
	rep.Count(ev.Status)
	e.reporter.Item(ev)
}

// commit records key → value in st. A failed write aborts the run: the
// remote side effect already happened and must not be repeated blindly.
func commit(ctx context.Context, st store.Store, key, value string) error {
	rec, err := st.Put(ctx, key, value)
	if err != nil {
		return fmt.Errorf("commit %s to %s: %w", rec.String(), st.Name(), err)
	}
	logger.FromContext(ctx).Debug().Str("store", st.Name()).Str("record", rec.String()).Msg("committed")
	return nil
}

// validRemoteID reports whether id can be stored as a mapping value.
func validRemoteID(id string) bool {
	if store.ValidateID(id) != nil {
		return false
	}
	return strings.IndexFunc(id, unicode.IsSpace) < 0
}
