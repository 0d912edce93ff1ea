// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// stats_cmd.go - Stats command implementation for tokenpress.
//
// Command: stats
// Aliases: usage
//
// Examples:
//   tokenpress stats                        Lifetime totals
//   tokenpress stats --days 7               Last week
//   tokenpress stats --from -1m --details   Last month with per-file records
//   tokenpress stats --period today         Legacy period selector
//   tokenpress stats --json                 Machine-readable report
//
// The report is built as markdown and rendered through glamour when stdout
// is a color-capable terminal; piped output gets the raw markdown.

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/tokenpress/internal/config"
	"github.com/jeranaias/tokenpress/internal/export"
	"github.com/jeranaias/tokenpress/internal/stats"
)

// HandleStats handles the "stats" command.
func HandleStats(args Args) error {
	cfg := config.Global()

	engine, err := engineFromConfig(cfg, calculatorFor(args.Model))
	if err != nil {
		return fmt.Errorf("stats: %w", err)
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
		return fmt.Errorf("stats: %w", err)
	}

	if args.JSON {
		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("stats: encode report: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	opts := &export.Options{IncludeMetadata: !args.Quiet, IncludeDetails: args.Details}
	md, err := export.NewMarkdownExporter(opts).Export(rep)
	if err != nil {
		return fmt.Errorf("stats: build report: %w", err)
	}

	fmt.Print(renderMarkdown(string(md), cfg.Dashboard.Theme))
	return nil
}

// renderMarkdown renders a markdown report for terminal display. Piped or
// colorless output gets the raw markdown unchanged.
func renderMarkdown(md, theme string) string {
	if !ColorsEnabled() {
		return md
	}

	styleOpt := glamour.WithAutoStyle()
	switch theme {
	case "dark", "light":
		styleOpt = glamour.WithStandardStyle(theme)
	}

	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(GetTerminalWidth()),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
