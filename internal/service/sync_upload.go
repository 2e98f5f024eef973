package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/photosync/internal/logger"
	"github.com/MKhiriev/photosync/internal/retry"
	"github.com/MKhiriev/photosync/internal/store"
	"github.com/MKhiriev/photosync/models"
)

// Reasons recorded in the skipped ledger.
const (
	skipReasonNoPath   = "no-path"
	skipReasonExcluded = "excluded-extension"
	skipReasonMissing  = "missing-file"
	skipReasonTooBig   = "too-big"
	skipReasonRejected = "rejected"
	skipReasonBadID    = "invalid-id"
)

// uploadPhotos uploads every photo that has no remote ID yet and commits
// localID → remoteID for each confirmed upload.
func (e *syncEngine) uploadPhotos(ctx context.Context, catalog models.Catalog) (models.PhaseReport, error) {
	log := logger.FromContext(ctx)
	rep := models.PhaseReport{Phase: PhaseUpload}

	pending := make([]models.PhotoItem, 0, len(catalog.Photos))
	for _, p := range catalog.Photos {
		if _, done := e.stores.Uploaded.Get(p.LocalID); done {
			continue
		}
		if e.opts.RecordSkipped {
			if _, skipped := e.stores.Skipped.Get(p.LocalID); skipped {
				continue
			}
		}
		pending = append(pending, p)
	}
	rep.Pending = len(pending)
	e.reporter.PhaseStarted(PhaseUpload, rep.Pending)

	for _, photo := range pending {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		if err := store.ValidateID(photo.LocalID); err != nil {
			// cannot be committed, so it is never uploaded
			log.Warn().Str("photo", photo.LocalID).Err(err).Msg("photo id cannot be recorded, skipping")
			e.emit(&rep, models.ItemEvent{Phase: PhaseUpload, ItemID: photo.LocalID, Status: models.ItemSkipped, Detail: skipReasonBadID})
			continue
		}

		path, err := e.resolvePath(photo)
		if err != nil {
			log.Info().Str("photo", photo.LocalID).Err(err).Msg("photo not uploadable, skipping")
			if err = e.skip(ctx, &rep, photo.LocalID, skipReason(err)); err != nil {
				return rep, err
			}
			continue
		}

		out := retry.Call(ctx, e.retrier, "upload", func(ctx context.Context) (string, error) {
			return e.uploadFile(ctx, path)
		}, nil)

		switch out.Decision {
		case retry.Success:
			if err = commit(ctx, e.stores.Uploaded, photo.LocalID, out.Value); err != nil {
				return rep, err
			}
			e.emit(&rep, models.ItemEvent{Phase: PhaseUpload, ItemID: photo.LocalID, Status: models.ItemCommitted, Detail: out.Value})
		case retry.FatalSkip:
			if err = e.skip(ctx, &rep, photo.LocalID, skipReason(out.Err)); err != nil {
				return rep, err
			}
		case retry.ExhaustedSkip:
			e.emit(&rep, models.ItemEvent{Phase: PhaseUpload, ItemID: photo.LocalID, Status: models.ItemExhausted, Detail: out.Err.Error()})
		case retry.Canceled:
			return rep, out.Err
		}
	}

	return rep, nil
}

// resolvePath picks the file to upload: the primary path when it exists,
// the fallback path otherwise.
func (e *syncEngine) resolvePath(photo models.PhotoItem) (string, error) {
	path := photo.PrimaryPath
	if path == "" || !e.exists(path) {
		if photo.FallbackPath != "" {
			path = photo.FallbackPath
		}
	}
	if path == "" {
		return "", errNoPath
	}

	if _, excluded := e.excluded[strings.ToLower(filepath.Ext(path))]; excluded {
		return "", fmt.Errorf("%w: %s", errExcludedExtension, path)
	}
	return path, nil
}

func (e *syncEngine) exists(path string) bool {
	_, err := e.stat(path)
	return err == nil
}

// uploadFile is the retried upload operation. Local problems are fatal; an
// unusable remote ID is transient.
func (e *syncEngine) uploadFile(ctx context.Context, path string) (string, error) {
	info, err := e.stat(path)
	if err != nil {
		return "", retry.Fatal(fmt.Errorf("stat %s: %w", path, err))
	}
	if info.IsDir() {
		return "", retry.Fatal(fmt.Errorf("%s is a directory", path))
	}
	if e.opts.MaxFileSize > 0 && info.Size() > e.opts.MaxFileSize {
		return "", retry.Fatal(fmt.Errorf("%w: %s is %d bytes, limit %d", ErrFileTooBig, path, info.Size(), e.opts.MaxFileSize))
	}

	id, err := e.remote.Upload(ctx, path)
	if err != nil {
		return "", err
	}

	id = strings.TrimSpace(id)
	if !validRemoteID(id) {
		return "", fmt.Errorf("%w: %q for %s", ErrInvalidRemoteID, id, path)
	}
	return id, nil
}

// skip counts a locally rejected photo and, when the ledger is enabled,
// records it so later runs do not try again.
func (e *syncEngine) skip(ctx context.Context, rep *models.PhaseReport, localID, reason string) error {
	if e.opts.RecordSkipped {
		if err := commit(ctx, e.stores.Skipped, localID, reason); err != nil {
			return err
		}
	}
	e.emit(rep, models.ItemEvent{Phase: PhaseUpload, ItemID: localID, Status: models.ItemSkipped, Detail: reason})
	return nil
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, errNoPath):
		return skipReasonNoPath
	case errors.Is(err, errExcludedExtension):
		return skipReasonExcluded
	case errors.Is(err, ErrFileTooBig):
		return skipReasonTooBig
	case errors.Is(err, fs.ErrNotExist):
		return skipReasonMissing
	default:
		return skipReasonRejected
	}
}
