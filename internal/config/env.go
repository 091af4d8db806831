// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// environment overrides the process environment. Tests set it; nil means
// os.Environ.
var environment map[string]string

// parseEnv populates cfg from environment variables using caarlos0/env and
// the `env`/`envPrefix` tags on [StructuredConfig].
func parseEnv(cfg any) error {
	opts := env.Options{}
	if environment != nil {
		opts.Environment = environment
	}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
