package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrUnavailable         = errors.New("service unavailable")
	ErrMalformedResponse   = errors.New("malformed response")
)

// Codes reported by the remote service in a failure payload.
const (
	// CodeAlbumNotFound means the target album does not exist remotely.
	CodeAlbumNotFound = 1
	// CodePhotoNotFound means the referenced photo does not exist remotely.
	CodePhotoNotFound = 2
	// CodePhotoAlreadyInAlbum means the photo is already a member of the
	// album.
	CodePhotoAlreadyInAlbum = 3
)

// APIError is a failure the remote service reported in its structured
// payload, as opposed to a transport failure.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote api error %d", e.Code)
	}
	return fmt.Sprintf("remote api error %d: %s", e.Code, e.Message)
}

// AsAPIError returns the *APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAPIError reports whether err carries a structured remote failure.
func IsAPIError(err error) bool {
	_, ok := AsAPIError(err)
	return ok
}

// HasCode reports whether err carries an *APIError with one of codes.
func HasCode(err error, codes ...int) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	for _, c := range codes {
		if apiErr.Code == c {
			return true
		}
	}
	return false
}
