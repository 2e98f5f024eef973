// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/MKhiriev/photosync/internal/config"
	"github.com/MKhiriev/photosync/internal/logger"
)

// Store names. They double as the SQLite partition and the base of the log
// file names.
const (
	UploadedStoreName    = "uploaded-photo-ids"
	GeotaggedStoreName   = "geoed-photo-ids"
	AlbumsStoreName      = "created-album-ids"
	MembershipsStoreName = "photos-in-album-ids"
	SkippedStoreName     = "skipped-photo-ids"
)

// SQLiteFileName is the database file used by the sqlite driver.
const SQLiteFileName = "photosync.db"

// SyncStores groups every store the sync engine reads and commits to.
type SyncStores struct {
	// Uploaded maps a local photo ID to its remote photo ID.
	Uploaded Store
	// Geotagged maps a local photo ID to the "lat#lon" that was set remotely.
	Geotagged Store
	// Albums maps a local album ID to its remote album ID.
	Albums Store
	// Memberships maps a local photo ID to the set of local album IDs it was
	// added to.
	Memberships Store
	// Skipped maps a local photo ID to the reason it was skipped for good.
	// Nil unless the skipped ledger is enabled.
	Skipped Store

	db *SQLiteDB
}

type storeSpec struct {
	name string
	mode Mode
	dst  *Store
}

// NewSyncStores opens every sync store under cfg.DataDir using the
// configured driver. When any store fails to open, the ones already opened
// are closed before returning.
func NewSyncStores(ctx context.Context, cfg config.Storage, withSkipped bool, log *logger.Logger) (*SyncStores, error) {
	log.Info().Str("driver", cfg.Driver).Str("dir", cfg.DataDir).Msg("opening sync stores...")

	s := &SyncStores{}
	specs := []storeSpec{
		{name: UploadedStoreName, mode: ModeSingle, dst: &s.Uploaded},
		{name: GeotaggedStoreName, mode: ModeSingle, dst: &s.Geotagged},
		{name: AlbumsStoreName, mode: ModeSingle, dst: &s.Albums},
		{name: MembershipsStoreName, mode: ModeMulti, dst: &s.Memberships},
	}
	if withSkipped {
		specs = append(specs, storeSpec{name: SkippedStoreName, mode: ModeSingle, dst: &s.Skipped})
	}

	if cfg.Driver == config.DriverSQLite {
		db, err := NewConnectSQLite(ctx, filepath.Join(cfg.DataDir, SQLiteFileName), log)
		if err != nil {
			return nil, err
		}
		s.db = db
	} else if cfg.Driver != "" && cfg.Driver != config.DriverFile {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}

	for _, spec := range specs {
		j, err := s.newJournal(cfg, spec.name, log)
		if err != nil {
			return nil, errors.Join(err, s.Close())
		}

		st, err := open(ctx, spec.name, spec.mode, j, log)
		if err != nil {
			return nil, errors.Join(err, s.Close())
		}
		*spec.dst = st
	}

	return s, nil
}

func (s *SyncStores) newJournal(cfg config.Storage, name string, log *logger.Logger) (journal, error) {
	if s.db != nil {
		return newSQLiteJournal(s.db.DB, name), nil
	}
	return openFileJournal(filepath.Join(cfg.DataDir, name+"-map.txt"), log)
}

// Close flushes and closes every open store, then the shared database, and
// returns all failures joined. Safe to call on a partially opened value.
func (s *SyncStores) Close() error {
	var errs []error
	for _, st := range []Store{s.Uploaded, s.Geotagged, s.Albums, s.Memberships, s.Skipped} {
		if st == nil {
			continue
		}
		if err := st.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close sync state database: %w", err))
		}
		s.db = nil
	}

	return errors.Join(errs...)
}
