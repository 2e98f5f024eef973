package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid remote adapter settings
	// (for example, missing API address or non-positive request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid sync state settings
	// (for example, unknown driver or empty data directory).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing access token).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid engine settings
	// (for example, negative retry count).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidCatalogConfigs indicates a missing catalog path.
	ErrInvalidCatalogConfigs = errors.New("invalid catalog configuration")
)
