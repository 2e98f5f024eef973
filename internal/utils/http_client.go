package utils

import (
	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/photosync/internal/logger"
)

// UserAgent identifies photosync to the remote service.
const UserAgent = "photosync"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient(log)
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance whose internal
// diagnostics go to log.
//
// resty's own retry mechanism stays disabled: retries of remote calls are
// owned by the retry package, which also paces them.
func NewHTTPClient(log *logger.Logger) *HTTPClient {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("User-Agent", UserAgent).
		SetLogger(restyLogger{log})

	return &HTTPClient{Client: client}
}

// restyLogger forwards resty's printf-style diagnostics to zerolog.
type restyLogger struct {
	log *logger.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error().Msgf(format, v...)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn().Msgf(format, v...)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug().Msgf(format, v...)
}
