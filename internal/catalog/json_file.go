// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/MKhiriev/photosync/internal/logger"
	"github.com/MKhiriev/photosync/internal/store"
	"github.com/MKhiriev/photosync/models"
)

type jsonFileSource struct {
	path   string
	logger *logger.Logger
}

// NewJSONFileSource returns a [Source] reading the catalog exported to the
// JSON file at path.
func NewJSONFileSource(path string, log *logger.Logger) Source {
	return &jsonFileSource{path: path, logger: log}
}

// Load reads and validates the catalog file. Relative photo paths are
// resolved against the directory of the catalog file.
func (s *jsonFileSource) Load(ctx context.Context) (models.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return models.Catalog{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("%w: %w", ErrCatalogUnreadable, err)
	}

	var c models.Catalog
	if err = json.Unmarshal(data, &c); err != nil {
		return models.Catalog{}, fmt.Errorf("%w: decode %s: %w", ErrInvalidCatalog, s.path, err)
	}

	if err = validate(c); err != nil {
		return models.Catalog{}, fmt.Errorf("%w: %s: %w", ErrInvalidCatalog, s.path, err)
	}

	base := filepath.Dir(s.path)
	for i := range c.Photos {
		c.Photos[i].PrimaryPath = resolve(base, c.Photos[i].PrimaryPath)
		c.Photos[i].FallbackPath = resolve(base, c.Photos[i].FallbackPath)
	}

	s.logger.Info().
		Str("path", s.path).
		Int("photos", len(c.Photos)).
		Int("albums", len(c.Albums)).
		Msg("catalog loaded")

	return c, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func validate(c models.Catalog) error {
	photos := make(map[string]struct{}, len(c.Photos))
	for i, p := range c.Photos {
		if err := store.ValidateID(p.LocalID); err != nil {
			return fmt.Errorf("photo #%d: %w", i, err)
		}
		if _, dup := photos[p.LocalID]; dup {
			return fmt.Errorf("duplicate photo id %q", p.LocalID)
		}
		photos[p.LocalID] = struct{}{}
	}

	albums := make(map[string]struct{}, len(c.Albums))
	for i, a := range c.Albums {
		if err := store.ValidateID(a.AlbumID); err != nil {
			return fmt.Errorf("album #%d: %w", i, err)
		}
		if _, dup := albums[a.AlbumID]; dup {
			return fmt.Errorf("duplicate album id %q", a.AlbumID)
		}
		albums[a.AlbumID] = struct{}{}

		if a.KeyPhotoID != "" {
			if err := store.ValidateID(a.KeyPhotoID); err != nil {
				return fmt.Errorf("album %q key photo: %w", a.AlbumID, err)
			}
		}
		for _, id := range a.PhotoIDs {
			if err := store.ValidateID(id); err != nil {
				return fmt.Errorf("album %q member: %w", a.AlbumID, err)
			}
		}
	}
	return nil
}
