package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/photosync/internal/logger"
	"github.com/MKhiriev/photosync/internal/retry"
	"github.com/MKhiriev/photosync/internal/store"
	"github.com/MKhiriev/photosync/models"
)

// geotagPhotos sets the location of every uploaded photo that carries one
// and commits localID → "lat#lon" once the remote service confirmed it.
func (e *syncEngine) geotagPhotos(ctx context.Context, catalog models.Catalog) (models.PhaseReport, error) {
	log := logger.FromContext(ctx)
	rep := models.PhaseReport{Phase: PhaseGeotag}

	pending := make([]models.PhotoItem, 0)
	for _, p := range catalog.Photos {
		if !p.HasLocation() {
			continue
		}
		if _, done := e.stores.Geotagged.Get(p.LocalID); done {
			continue
		}
		pending = append(pending, p)
	}
	rep.Pending = len(pending)
	e.reporter.PhaseStarted(PhaseGeotag, rep.Pending)

	for _, photo := range pending {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		if err := store.ValidateID(photo.LocalID); err != nil {
			e.emit(&rep, models.ItemEvent{Phase: PhaseGeotag, ItemID: photo.LocalID, Status: models.ItemSkipped, Detail: skipReasonBadID})
			continue
		}

		remoteID, uploaded := e.stores.Uploaded.Get(photo.LocalID)
		if !uploaded {
			e.emit(&rep, models.ItemEvent{Phase: PhaseGeotag, ItemID: photo.LocalID, Status: models.ItemDeferred, Detail: "not uploaded"})
			continue
		}

		loc := *photo.Location
		if !loc.Valid() {
			log.Warn().Str("photo", photo.LocalID).Str("location", loc.String()).Msg("invalid coordinates, skipping")
			e.emit(&rep, models.ItemEvent{Phase: PhaseGeotag, ItemID: photo.LocalID, Status: models.ItemSkipped, Detail: "invalid coordinates"})
			continue
		}

		out := retry.Call(ctx, e.retrier, "set_location", func(ctx context.Context) (struct{}, error) {
			return struct{}{}, e.remote.SetLocation(ctx, remoteID, loc)
		}, nil)

		switch out.Decision {
		case retry.Success:
			if err := commit(ctx, e.stores.Geotagged, photo.LocalID, loc.String()); err != nil {
				return rep, err
			}
			e.emit(&rep, models.ItemEvent{Phase: PhaseGeotag, ItemID: photo.LocalID, Status: models.ItemCommitted, Detail: loc.String()})
		case retry.FatalSkip:
			e.emit(&rep, models.ItemEvent{Phase: PhaseGeotag, ItemID: photo.LocalID, Status: models.ItemSkipped, Detail: out.Err.Error()})
		case retry.ExhaustedSkip:
			e.emit(&rep, models.ItemEvent{Phase: PhaseGeotag, ItemID: photo.LocalID, Status: models.ItemExhausted, Detail: out.Err.Error()})
		case retry.Canceled:
			return rep, fmt.Errorf("geotag %s: %w", photo.LocalID, out.Err)
		}
	}

	return rep, nil
}
