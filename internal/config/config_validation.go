// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if strings.TrimSpace(cfg.App.AccessToken) == "" {
		return fmt.Errorf("%w: access token is required", ErrInvalidAppConfigs)
	}

	switch cfg.Storage.Driver {
	case DriverFile, DriverSQLite:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver)
	}
	if cfg.Storage.DataDir == "" {
		return fmt.Errorf("%w: data directory is required", ErrInvalidStorageConfigs)
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	w := cfg.Workers
	if w.MaxRetries < 0 || w.RetryDelay < 0 || w.MinInterval < 0 || w.MaxFileSize <= 0 || w.SyncInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Catalog.Path == "" {
		return ErrInvalidCatalogConfigs
	}

	return nil
}
