package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

const (
	statOK   = "ok"
	statFail = "fail"
)

// envelope is the common shape of every service response. Only the fields
// relevant to the called endpoint are populated.
type envelope struct {
	Stat    string `json:"stat"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	PhotoID string `json:"photo_id,omitempty"`
	AlbumID string `json:"album_id,omitempty"`
}

// decodeEnvelope maps resp to the decoded envelope or an error. A failure
// payload yields *APIError regardless of the HTTP status; any other non-2xx
// response is mapped by mapHTTPError.
func decodeEnvelope(resp *resty.Response) (envelope, error) {
	var env envelope
	body := resp.Body()

	if len(body) > 0 && json.Unmarshal(body, &env) == nil && env.Stat == statFail {
		return env, &APIError{Code: env.Code, Message: env.Message}
	}

	if err := mapHTTPError(resp); err != nil {
		return env, err
	}

	if env.Stat != statOK {
		return env, fmt.Errorf("%w: unexpected stat %q", ErrMalformedResponse, env.Stat)
	}
	return env, nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrTooManyRequests, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	case http.StatusBadGateway:
		return fmt.Errorf("%w: %s", ErrBadGateway, body)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", ErrUnavailable, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}
