// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client of the remote photo-hosting service.
//
// The primary abstraction is [PhotoService], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPPhotoService]) built on resty.
//
// Failures reported by the service in its structured payload are returned as
// *[APIError] carrying the service's numeric code. Transport failures and
// other non-2xx responses are mapped by mapHTTPError to the sentinel values in
// errors.go so that callers can use [errors.Is] without knowing the protocol.
package adapter

import (
	"context"

	"github.com/MKhiriev/photosync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/photo_service_mock.go -package=mock

// PhotoService defines the remote operations the sync engine relies on.
// Every method is a single remote call; pacing and retries are the caller's
// concern.
type PhotoService interface {
	// Upload sends the file at path and returns the remote photo ID assigned
	// by the service.
	Upload(ctx context.Context, path string) (string, error)

	// SetLocation attaches loc to the remote photo photoID.
	SetLocation(ctx context.Context, photoID string, loc models.Location) error

	// CreateAlbum creates a remote album titled title with primaryPhotoID as
	// its key photo and returns the remote album ID. The key photo becomes
	// the album's first member.
	CreateAlbum(ctx context.Context, title, primaryPhotoID string) (string, error)

	// AddPhoto adds the remote photo photoID to the remote album albumID.
	AddPhoto(ctx context.Context, albumID, photoID string) error
}
