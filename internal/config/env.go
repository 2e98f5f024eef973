// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads the APP_, STORAGE_, ADAPTER_, WORKERS_ and CATALOG_
// variables into cfg. Entries of WORKERS_EXCLUDED_EXTENSIONS are trimmed the
// same way as the -exclude flag, so ".mov, .mp4" and ".mov,.mp4" agree.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	cfg.Workers.ExcludedExtensions = splitList(strings.Join(cfg.Workers.ExcludedExtensions, ","))
	return nil
}
