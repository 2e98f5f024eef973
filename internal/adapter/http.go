package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"

	"github.com/MKhiriev/photosync/internal/config"
	"github.com/MKhiriev/photosync/internal/logger"
	"github.com/MKhiriev/photosync/internal/utils"
	"github.com/MKhiriev/photosync/models"
)

const uploadFormField = "photo"

type httpPhotoService struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

type locationRequest struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

type createAlbumRequest struct {
	Title          string `json:"title"`
	PrimaryPhotoID string `json:"primary_photo_id"`
}

type addPhotoRequest struct {
	PhotoID string `json:"photo_id"`
}

// NewHTTPPhotoService constructs an HTTP/REST implementation of
// [PhotoService]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress, configures the underlying HTTP client with the
// resolved base URL and request timeout, and attaches appCfg.AccessToken as a
// bearer token to every request.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPPhotoService(adapterCfg config.Adapter, appCfg config.App, logger *logger.Logger) (PhotoService, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(logger)
	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &httpPhotoService{
		client: client,
		token:  strings.TrimSpace(appCfg.AccessToken),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Upload implements [PhotoService]. It sends the file as the "photo" field of
// a multipart POST /upload and returns the photo_id of the response.
func (h *httpPhotoService) Upload(ctx context.Context, path string) (string, error) {
	resp, err := h.authedRequest(ctx).
		SetFile(uploadFormField, path).
		Post("/upload")
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}

	h.logger.Debug().Str("path", path).Str("photo_id", env.PhotoID).Msg("photo uploaded")
	return env.PhotoID, nil
}

// SetLocation implements [PhotoService] via POST /photos/{id}/location.
func (h *httpPhotoService) SetLocation(ctx context.Context, photoID string, loc models.Location) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", photoID).
		SetBody(locationRequest{Latitude: loc.Latitude, Longitude: loc.Longitude}).
		Post("/photos/{id}/location")
	if err != nil {
		return fmt.Errorf("set location request: %w", err)
	}

	if _, err = decodeEnvelope(resp); err != nil {
		return fmt.Errorf("set location of %s: %w", photoID, err)
	}
	return nil
}

// CreateAlbum implements [PhotoService] via POST /albums and returns the
// album_id of the response.
func (h *httpPhotoService) CreateAlbum(ctx context.Context, title, primaryPhotoID string) (string, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(createAlbumRequest{Title: title, PrimaryPhotoID: primaryPhotoID}).
		Post("/albums")
	if err != nil {
		return "", fmt.Errorf("create album request: %w", err)
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return "", fmt.Errorf("create album %q: %w", title, err)
	}
	return env.AlbumID, nil
}

// AddPhoto implements [PhotoService] via POST /albums/{id}/photos.
func (h *httpPhotoService) AddPhoto(ctx context.Context, albumID, photoID string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", albumID).
		SetBody(addPhotoRequest{PhotoID: photoID}).
		Post("/albums/{id}/photos")
	if err != nil {
		return fmt.Errorf("add photo request: %w", err)
	}

	if _, err = decodeEnvelope(resp); err != nil {
		return fmt.Errorf("add photo %s to album %s: %w", photoID, albumID, err)
	}
	return nil
}

func (h *httpPhotoService) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetAuthToken(h.token)
	}
	return req
}
