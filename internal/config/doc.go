// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// tokenpress.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - CompressorConfig: Compression run defaults (level, format, timeout)
//   - StatsConfig: Usage-statistics store behavior
//   - DashboardConfig: Live dashboard appearance and refresh
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (TOKENPRESS_*)
//   - ~/.tokenpress/config.toml
//   - ~/.tokenpress/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	level := cfg.Compressor.DefaultLevel
//	statsPath, _ := cfg.StatsPath()
package config
