// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Shared bootstrap helpers for the CLI command handlers.
//
// Every command builds its pricing/stats plumbing the same way: detector from
// the config file plus environment, calculator on top, storage at the
// configured stats path. These helpers keep that wiring in one place.

package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/tokenpress/internal/config"
	"github.com/jeranaias/tokenpress/internal/pricing"
	"github.com/jeranaias/tokenpress/internal/stats"
	"github.com/jeranaias/tokenpress/internal/tokens"
)

// =============================================================================
// PRICING BOOTSTRAP
// =============================================================================

// calculatorFor builds a cost calculator honoring an optional --model
// override. The flag is pinned on the calculator itself, above every
// detection source: a model named on the command line must win even under a
// front-end marker or a config-file model.
func calculatorFor(model string) *pricing.Calculator {
	cfgPath, _ := config.PathTOML()
	return pricing.NewCalculatorWithModel(pricing.NewDetector(cfgPath), model)
}

// =============================================================================
// STATS BOOTSTRAP
// =============================================================================

// storageFromConfig opens the stats storage at the configured path.
func storageFromConfig(cfg *config.Config) (*stats.Storage, error) {
	path, err := cfg.StatsPath()
	if err != nil {
		return nil, fmt.Errorf("resolve stats path: %w", err)
	}
	return stats.NewStorage(path), nil
}

// trackerFromConfig builds a tracker when stats collection is enabled,
// nil otherwise.
func trackerFromConfig(cfg *config.Config, calc *pricing.Calculator) (*stats.Tracker, error) {
	if !cfg.Stats.Enabled {
		return nil, nil
	}
	storage, err := storageFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	tracker := stats.NewTracker(storage, tokens.HeuristicCounter{}, calc)
	tracker.SetReconcileSummary(cfg.Stats.ReconcileSummary)
	return tracker, nil
}

// engineFromConfig builds a query engine over the configured storage.
func engineFromConfig(cfg *config.Config, calc *pricing.Calculator) (*stats.Engine, error) {
	storage, err := storageFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return stats.NewEngine(storage, calc), nil
}

// selectorFromArgs maps the window flags onto a date selector. Flag
// precedence mirrors the selector's own: --days, then --from/--to, then
// --period.
func selectorFromArgs(args Args) stats.DateSelector {
	return stats.DateSelector{
		RelativeDays: args.Days,
		StartDate:    args.From,
		EndDate:      args.To,
		Period:       args.Period,
	}
}

// =============================================================================
// FLAG NORMALIZATION
// =============================================================================

// normalizeLevel validates a level string, falling back to def when empty.
func normalizeLevel(s, def string) (stats.Level, error) {
	if s == "" {
		s = def
	}
	switch strings.ToLower(s) {
	case "full":
		return stats.LevelFull, nil
	case "signatures", "sigs":
		return stats.LevelSignatures, nil
	case "minimal", "min":
		return stats.LevelMinimal, nil
	default:
		return "", fmt.Errorf("unknown compression level %q (want full, signatures, or minimal)", s)
	}
}

// normalizeFormat validates an output format string, falling back to def
// when empty.
func normalizeFormat(s, def string) (stats.OutputFormat, error) {
	if s == "" {
		s = def
	}
	switch strings.ToLower(s) {
	case "text":
		return stats.FormatText, nil
	case "summary":
		return stats.FormatSummary, nil
	case "json":
		return stats.FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, summary, or json)", s)
	}
}
