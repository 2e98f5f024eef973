// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MKhiriev/photosync/internal/adapter"
	"github.com/MKhiriev/photosync/internal/logger"
	"github.com/MKhiriev/photosync/internal/retry"
	"github.com/MKhiriev/photosync/internal/store"
	"github.com/MKhiriev/photosync/models"
)

// recoverableMemberCodes are remote answers to an add-photo call that leave
// nothing left to do for the pair.
var recoverableMemberCodes = []int{
	adapter.CodeAlbumNotFound,
	adapter.CodePhotoNotFound,
	adapter.CodePhotoAlreadyInAlbum,
}

// syncAlbums creates missing remote albums in creation order and adds every
// uploaded member that is not yet recorded as added.
func (e *syncEngine) syncAlbums(ctx context.Context, catalog models.Catalog) (models.PhaseReport, error) {
	log := logger.FromContext(ctx)
	rep := models.PhaseReport{Phase: PhaseAlbums}

	albums := append([]models.AlbumItem(nil), catalog.Albums...)
	sort.SliceStable(albums, func(i, j int) bool { return albums[i].CreatedAt < albums[j].CreatedAt })

	rep.Pending = e.pendingAlbumUnits(albums)
	e.reporter.PhaseStarted(PhaseAlbums, rep.Pending)

	for _, album := range albums {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		if err := store.ValidateID(album.AlbumID); err != nil {
			log.Warn().Str("album", album.AlbumID).Err(err).Msg("album id cannot be recorded, skipping")
			e.emit(&rep, models.ItemEvent{Phase: PhaseAlbums, ItemID: album.AlbumID, Status: models.ItemSkipped, Detail: skipReasonBadID})
			continue
		}

		remoteAlbumID, created := e.stores.Albums.Get(album.AlbumID)
		if !created {
			var (
				proceed bool
				err     error
			)
			remoteAlbumID, proceed, err = e.createAlbum(ctx, &rep, album)
			if err != nil {
				return rep, err
			}
			if !proceed {
				continue
			}
		}

		if remoteAlbumID == FailedAlbumID {
			log.Info().Str("album", album.AlbumID).Msg("album could not be created remotely, not adding members")
			continue
		}

		if err := e.addMembers(ctx, &rep, album, remoteAlbumID); err != nil {
			return rep, err
		}
	}

	return rep, nil
}

// createAlbum creates album remotely and commits its remote ID. proceed is
// false when the album has no remote ID to add members to.
func (e *syncEngine) createAlbum(ctx context.Context, rep *models.PhaseReport, album models.AlbumItem) (string, bool, error) {
	log := logger.FromContext(ctx)

	keyLocalID, keyRemoteID, ok := e.keyPhoto(album)
	if !ok {
		e.emit(rep, models.ItemEvent{Phase: PhaseAlbums, ItemID: album.AlbumID, Status: models.ItemDeferred, Detail: "no uploaded photo"})
		return "", false, nil
	}

	out := retry.Call(ctx, e.retrier, "create_album", func(ctx context.Context) (string, error) {
		id, err := e.remote.CreateAlbum(ctx, album.Name, keyRemoteID)
		if err != nil {
			return "", err
		}
		id = strings.TrimSpace(id)
		if !validRemoteID(id) || id == FailedAlbumID {
			return "", fmt.Errorf("%w: %q for album %s", ErrInvalidRemoteID, id, album.AlbumID)
		}
		return id, nil
	}, adapter.IsAPIError)

	switch out.Decision {
	case retry.Success:
		if err := commit(ctx, e.stores.Albums, album.AlbumID, out.Value); err != nil {
			return "", false, err
		}
		// the key photo is the first member of a new remote album
		if err := commit(ctx, e.stores.Memberships, keyLocalID, album.AlbumID); err != nil {
			return "", false, err
		}
		e.emit(rep, models.ItemEvent{Phase: PhaseAlbums, ItemID: album.AlbumID, Status: models.ItemCommitted, Detail: out.Value})
		return out.Value, true, nil

	case retry.FatalSkip:
		if !adapter.HasCode(out.Err, adapter.CodePhotoNotFound) {
			return "", false, fmt.Errorf("%w: create album %s: %w", ErrRemoteFatal, album.AlbumID, out.Err)
		}
		log.Warn().Err(out.Err).Str("album", album.AlbumID).Msg("key photo unknown remotely, marking album as failed")
		if err := commit(ctx, e.stores.Albums, album.AlbumID, FailedAlbumID); err != nil {
			return "", false, err
		}
		e.emit(rep, models.ItemEvent{Phase: PhaseAlbums, ItemID: album.AlbumID, Status: models.ItemRecovered, Detail: "key photo not found"})
		return FailedAlbumID, true, nil

	case retry.ExhaustedSkip:
		e.emit(rep, models.ItemEvent{Phase: PhaseAlbums, ItemID: album.AlbumID, Status: models.ItemExhausted, Detail: out.Err.Error()})
		return "", false, nil

	default:
		return "", false, fmt.Errorf("create album %s: %w", album.AlbumID, out.Err)
	}
}

// addMembers adds every uploaded member of album that is not yet recorded
// as added to the remote album.
func (e *syncEngine) addMembers(ctx context.Context, rep *models.PhaseReport, album models.AlbumItem, remoteAlbumID string) error {
	log := logger.FromContext(ctx)
	seen := make(map[string]struct{}, len(album.PhotoIDs))

	for _, localID := range album.PhotoIDs {
		if _, dup := seen[localID]; dup {
			continue
		}
		seen[localID] = struct{}{}

		if e.stores.Memberships.Associated(localID, album.AlbumID) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		item := album.AlbumID + "/" + localID
		if store.ValidateID(localID) != nil {
			e.emit(rep, models.ItemEvent{Phase: PhaseAlbums, ItemID: item, Status: models.ItemSkipped, Detail: skipReasonBadID})
			continue
		}
		remotePhotoID, uploaded := e.stores.Uploaded.Get(localID)
		if !uploaded {
			e.emit(rep, models.ItemEvent{Phase: PhaseAlbums, ItemID: item, Status: models.ItemDeferred, Detail: "not uploaded"})
			continue
		}

		out := retry.Call(ctx, e.retrier, "add_photo", func(ctx context.Context) (struct{}, error) {
			return struct{}{}, e.remote.AddPhoto(ctx, remoteAlbumID, remotePhotoID)
		}, adapter.IsAPIError)

		switch out.Decision {
		case retry.Success:
			if err := commit(ctx, e.stores.Memberships, localID, album.AlbumID); err != nil {
				return err
			}
			e.emit(rep, models.ItemEvent{Phase: PhaseAlbums, ItemID: item, Status: models.ItemCommitted, Detail: remoteAlbumID})

		case retry.FatalSkip:
			if !adapter.HasCode(out.Err, recoverableMemberCodes...) {
				return fmt.Errorf("%w: add photo %s to album %s: %w", ErrRemoteFatal, localID, album.AlbumID, out.Err)
			}
			log.Info().Err(out.Err).Str("album", album.AlbumID).Str("photo", localID).Msg("recognised remote answer, recording membership")
			if err := commit(ctx, e.stores.Memberships, localID, album.AlbumID); err != nil {
				return err
			}
			e.emit(rep, models.ItemEvent{Phase: PhaseAlbums, ItemID: item, Status: models.ItemRecovered, Detail: out.Err.Error()})

		case retry.ExhaustedSkip:
			e.emit(rep, models.ItemEvent{Phase: PhaseAlbums, ItemID: item, Status: models.ItemExhausted, Detail: out.Err.Error()})

		default:
			return fmt.Errorf("add photo %s to album %s: %w", localID, album.AlbumID, out.Err)
		}
	}
	return nil
}

// keyPhoto returns the local and remote ID of the photo a new remote album
// is seeded with: the album's key photo when uploaded, otherwise its first
// uploaded member.
func (e *syncEngine) keyPhoto(album models.AlbumItem) (string, string, bool) {
	if album.KeyPhotoID != "" {
		if remoteID, ok := e.stores.Uploaded.Get(album.KeyPhotoID); ok {
			return album.KeyPhotoID, remoteID, true
		}
	}
	for _, localID := range album.PhotoIDs {
		if remoteID, ok := e.stores.Uploaded.Get(localID); ok {
			return localID, remoteID, true
		}
	}
	return "", "", false
}

// pendingAlbumUnits counts album creations and member additions still
// outstanding.
func (e *syncEngine) pendingAlbumUnits(albums []models.AlbumItem) int {
	n := 0
	for _, album := range albums {
		if store.ValidateID(album.AlbumID) != nil {
			continue
		}
		seen := make(map[string]struct{}, len(album.PhotoIDs))
		remoteID, created := e.stores.Albums.Get(album.AlbumID)
		if !created {
			n++
			// the key photo joins the album on creation
			if keyLocalID, _, ok := e.keyPhoto(album); ok {
				seen[keyLocalID] = struct{}{}
			}
		}
		if remoteID == FailedAlbumID {
			continue
		}
		for _, localID := range album.PhotoIDs {
			if _, dup := seen[localID]; dup || store.ValidateID(localID) != nil {
				continue
			}
			seen[localID] = struct{}{}
			if !e.stores.Memberships.Associated(localID, album.AlbumID) {
				n++
			}
		}
	}
	return n
}
