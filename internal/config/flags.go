package config

import (
	"flag"
	"fmt"
	"strings"
	"time"
)

// ParseFlags parses command-line arguments (without the program name) into a
// partial [StructuredConfig].
//
// Flags:
//
//	-a remote API base URL
//	-token remote API access token
//	-d data directory for sync state
//	-storage-driver "file" or "sqlite"
//	-catalog catalog file path
//	-c/-config json file path with configs
//	-log-file log file path
//	-request-timeout remote request timeout (e.g., "60s")
//	-max-retries retries after a transient failure
//	-retry-delay pause between retries (e.g., "10s")
//	-min-interval minimum gap between remote calls (e.g., "1.01s")
//	-max-file-size largest uploadable file in bytes
//	-exclude comma-separated excluded extensions
//	-record-skipped remember locally skipped photos
//	-sync-interval re-run period, 0 for a single run
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("photosync", flag.ContinueOnError)

	var (
		address, token, dataDir, driver string
		catalogPath, jsonPath, logFile  string
		excluded                        string
		requestTimeout, retryDelay      time.Duration
		minInterval, syncInterval       time.Duration
		maxRetries                      int
		maxFileSize                     int64
		recordSkipped                   bool
	)

	fs.StringVar(&address, "a", "", "Remote API base URL")
	fs.StringVar(&token, "token", "", "Remote API access token")
	fs.StringVar(&dataDir, "d", "", "Sync state directory")
	fs.StringVar(&driver, "storage-driver", "", "Sync state backend: file or sqlite")
	fs.StringVar(&catalogPath, "catalog", "", "Catalog file path")
	fs.StringVar(&jsonPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Remote request timeout (e.g., 60s)")
	fs.IntVar(&maxRetries, "max-retries", 0, "Retries after a transient failure")
	fs.DurationVar(&retryDelay, "retry-delay", 0, "Pause between retries (e.g., 10s)")
	fs.DurationVar(&minInterval, "min-interval", 0, "Minimum gap between remote calls (e.g., 1.01s)")
	fs.Int64Var(&maxFileSize, "max-file-size", 0, "Largest uploadable file in bytes")
	fs.StringVar(&excluded, "exclude", "", "Comma-separated excluded file extensions")
	fs.BoolVar(&recordSkipped, "record-skipped", false, "Remember photos skipped for local reasons")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Re-run period, 0 for a single run")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			AccessToken: token,
			LogFile:     logFile,
		},
		Storage: Storage{
			Driver:  driver,
			DataDir: dataDir,
		},
		Adapter: Adapter{
			HTTPAddress:    address,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			MaxRetries:         maxRetries,
			RetryDelay:         retryDelay,
			MinInterval:        minInterval,
			MaxFileSize:        maxFileSize,
			ExcludedExtensions: splitList(excluded),
			RecordSkipped:      recordSkipped,
			SyncInterval:       syncInterval,
		},
		Catalog: Catalog{
			Path: catalogPath,
		},
		JSONFilePath: jsonPath,
	}, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
