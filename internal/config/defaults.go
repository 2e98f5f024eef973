package config

import (
	"os"
	"path/filepath"
	"time"
)

// Defaults mirror the limits of the remote service the tool was written
// for: 3600 calls per hour and 1 GiB uploads.
const (
	DefaultMaxRetries     = 30
	DefaultRetryDelay     = 10 * time.Second
	DefaultMinInterval    = 1010 * time.Millisecond
	DefaultMaxFileSize    = int64(1) << 30
	DefaultRequestTimeout = 2 * time.Minute
)

// DefaultExcludedExtensions are video containers the remote service rejects.
var DefaultExcludedExtensions = []string{".mov", ".mp4"}

func defaults() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			Driver:  DriverFile,
			DataDir: defaultDataDir(),
		},
		Adapter: Adapter{
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{
			MaxRetries:         DefaultMaxRetries,
			RetryDelay:         DefaultRetryDelay,
			MinInterval:        DefaultMinInterval,
			MaxFileSize:        DefaultMaxFileSize,
			ExcludedExtensions: append([]string(nil), DefaultExcludedExtensions...),
		},
	}
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "photosync-data"
	}
	return filepath.Join(dir, "photosync")
}
