// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the photosync sync engine: three sequential
// phases (upload, geotag, album sync) that drive the remote photo service
// from a local catalog and record every confirmed result in the sync stores.
//
// Every remote call goes through a retry.Retrier, so calls are paced by the
// shared rate limiter and transient failures are retried a bounded number of
// times. A result is committed to its store only after the remote service
// confirmed it, which makes a run safe to interrupt and repeat.
package service

import (
	"context"

	"github.com/MKhiriev/photosync/models"
)

// Phase names used in reports, logs and progress output.
const (
	PhaseUpload = "upload"
	PhaseGeotag = "geotag"
	PhaseAlbums = "albums"
)

// FailedAlbumID is committed in place of a remote album ID when the remote
// service rejected the album's key photo. Albums holding it are never
// re-created and receive no members.
const FailedAlbumID = "X"

// SyncEngine runs one full synchronisation of a catalog.
type SyncEngine interface {
	// Run executes the upload, geotag and album phases in order against
	// catalog and returns the per-phase report. A non-nil error means the run
	// was aborted: the context ended, a store write failed, or the remote
	// service returned an unrecognised error for an album operation. Work
	// committed before the abort stays committed.
	Run(ctx context.Context, catalog models.Catalog) (models.SyncReport, error)
}

// Reporter receives progress of a run. Implementations must not block.
type Reporter interface {
	PhaseStarted(phase string, pending int)
	Item(event models.ItemEvent)
	PhaseFinished(report models.PhaseReport)
}

type nopReporter struct{}

func (nopReporter) PhaseStarted(string, int)         {}
func (nopReporter) Item(models.ItemEvent)            {}
func (nopReporter) PhaseFinished(models.PhaseReport) {}
