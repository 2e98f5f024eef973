// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package catalog loads the local library snapshot that a sync run works
// from. The snapshot is read-only for the duration of the run.
package catalog

import (
	"context"

	"github.com/MKhiriev/photosync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/catalog_source_mock.go -package=mock

// Source supplies the catalog for one sync run.
type Source interface {
	Load(ctx context.Context) (models.Catalog, error)
}
