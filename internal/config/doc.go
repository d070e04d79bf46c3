// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the api-cost-tracker configuration.
//
// The configuration describes AI API providers (pricing rule, budget,
// optimization hint) and the projects that consume them. It is read once per
// run and never mutated afterwards.
//
// # File Formats
//
// The decoder is chosen by file extension:
//
//   - .json (default): encoding/json
//   - .toml: github.com/BurntSushi/toml
//   - .yaml, .yml: gopkg.in/yaml.v3
//
// All formats use the same camelCase keys.
//
// # Usage
//
//	path, _ := config.ResolvePath(flagValue)
//	created, err := config.EnsureExists(path)
//	if created {
//	    // a starter config was written; tell the user and stop
//	}
//	cfg, err := config.Load(path)
//	if err := cfg.Validate(); err != nil {
//	    // ValidateErrors: report as warnings
//	}
//
// # Environment Variables
//
//   - API_COST_TRACKER_CONFIG: config path when --config is not given
//   - API_COST_TRACKER_CURRENCY: overrides the currency symbol
package config
