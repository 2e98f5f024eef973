// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Storage drivers accepted by [Storage.Driver].
const (
	// DriverFile keeps every sync store in its own append-only text log.
	DriverFile = "file"
	// DriverSQLite keeps all sync stores in a single SQLite database.
	DriverSQLite = "sqlite"
)

// StructuredConfig is the top-level configuration container for the
// photosync application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the access token and the
	// log file location.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the persisted sync state.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds configuration of the remote photo service client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the sync engine tuning: retry policy, rate ceiling and
	// upload filters.
	Workers Workers `envPrefix:"WORKERS_"`

	// Catalog locates the local library catalog.
	Catalog Catalog `envPrefix:"CATALOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// AccessToken is the bearer token used to authenticate against the
	// remote photo service. Acquiring it is outside of photosync.
	// Env: APP_ACCESS_TOKEN
	AccessToken string `env:"ACCESS_TOKEN"`

	// LogFile is the path of the JSON log file. Empty means stdout.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage holds the location and backend of the persisted sync state.
type Storage struct {
	// Driver selects the journal backend: "file" (default) or "sqlite".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// DataDir is the directory holding the mapping logs or the SQLite
	// database. Created when missing.
	// Env: STORAGE_DATA_DIR
	DataDir string `env:"DATA_DIR"`
}

// Adapter holds network settings of the remote photo service client.
type Adapter struct {
	// HTTPAddress is the base URL of the remote API
	// (e.g. "https://photos.example.com/api").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single remote request (e.g. "60s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds the sync engine settings.
type Workers struct {
	// MaxRetries is the number of re-attempts after a transient failure.
	// Env: WORKERS_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`

	// RetryDelay is the fixed pause between attempts.
	// Env: WORKERS_RETRY_DELAY
	RetryDelay time.Duration `env:"RETRY_DELAY"`

	// MinInterval is the minimum wall-clock gap between two remote calls.
	// Env: WORKERS_MIN_INTERVAL
	MinInterval time.Duration `env:"MIN_INTERVAL"`

	// MaxFileSize is the largest file, in bytes, that will be uploaded.
	// Env: WORKERS_MAX_FILE_SIZE
	MaxFileSize int64 `env:"MAX_FILE_SIZE"`

	// ExcludedExtensions lists file extensions that are never uploaded,
	// compared case-insensitively (e.g. ".mov,.mp4").
	// Env: WORKERS_EXCLUDED_EXTENSIONS
	ExcludedExtensions []string `env:"EXCLUDED_EXTENSIONS" envSeparator:","`

	// RecordSkipped enables the skipped-photo ledger: photos skipped for a
	// local reason are recorded and not re-attempted on later runs.
	// Env: WORKERS_RECORD_SKIPPED
	RecordSkipped bool `env:"RECORD_SKIPPED"`

	// SyncInterval re-runs the sync periodically when positive. Zero means
	// a single run.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Catalog locates the local library catalog file.
type Catalog struct {
	// Path is the JSON catalog exported from the local library.
	// Env: CATALOG_PATH
	Path string `env:"PATH"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields, defaults fill the rest):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
