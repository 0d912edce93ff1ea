// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export_cmd.go - Export command implementation for tokenpress.
//
// Command: export
//
// Examples:
//   tokenpress export                             Markdown report in cwd
//   tokenpress export --export-format csv         CSV report
//   tokenpress export --days 30 --output reports  Last month into reports/
//
// Flags:
//   --export-format FORMAT  markdown, json, csv (default markdown)
//   --output DIR, -o DIR    Output directory (default .)
//   plus the stats window flags (--days, --from, --to, --period, --details)

package cli

import (
	"fmt"

	"github.com/jeranaias/tokenpress/internal/config"
	"github.com/jeranaias/tokenpress/internal/export"
	"github.com/jeranaias/tokenpress/internal/stats"
)

// HandleExport handles the "export" command: query a window and write the
// report to a timestamped file.
func HandleExport(args Args) error {
	cfg := config.Global()

	engine, err := engineFromConfig(cfg, calculatorFor(args.Model))
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	limit := args.Limit
	if limit == 0 {
		limit = cfg.Stats.DetailLimit
	}
	rep, err := engine.Query(stats.QueryOptions{
		Selector:       selectorFromArgs(args),
		IncludeDetails: args.Details,
		Limit:          limit,
	})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	opts := &export.Options{
		OutputDir:       args.OutputDir,
		IncludeMetadata: true,
		IncludeDetails:  args.Details,
	}
	exporter, err := export.ForFormat(args.ExportFormat, opts)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	path, err := export.ToFile(rep, exporter, opts)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if !args.Quiet {
		fmt.Println(SuccessStyle.Render("✓ ") + ValueStyle.Render("exported to "+path))
	}
	return nil
}
