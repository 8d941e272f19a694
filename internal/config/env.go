// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target type).
func parseEnv(cfg any) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

// parseDotEnv reads KEY=VALUE pairs from path with godotenv and maps them
// onto cfg with the same tags as [parseEnv]. The process environment is not
// modified. It reports false when the file does not exist.
func parseDotEnv(path string, cfg any) (bool, error) {
	if path == "" || !fileExists(path) {
		return false, nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return false, fmt.Errorf("error reading .env file: %w", err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return false, fmt.Errorf("error getting .env configs: %w", err)
	}

	return true, nil
}
