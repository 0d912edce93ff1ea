// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// run_cmd.go - Run command implementation for tokenpress.
//
// Command: run
// Aliases: compress
//
// Examples:
//   tokenpress run src/main.go                Compress one file
//   tokenpress run --level minimal src/*.go   Aggressive compression
//   tokenpress run -f summary pkg/parser.go   Summary output
//
// Output contract:
//   stdout  The compressed rendition, file after file, suitable for piping
//   stderr  Per-file savings summary (suppressed by --quiet)
//
// Flags:
//   -l, --level LEVEL    full, signatures, minimal (default from config)
//   -f, --format FORMAT  text, summary, json (default from config)

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/tokenpress/internal/compress"
	"github.com/jeranaias/tokenpress/internal/config"
	"github.com/jeranaias/tokenpress/internal/stats"
)

// HandleRun handles the "run" command: compress each file through the
// external compressor and record the savings.
//
// Files are processed independently; one failure does not stop the rest.
func HandleRun(args Args) error {
	if len(args.Files) == 0 {
		return fmt.Errorf("run: no files given (usage: tokenpress run <file>...)")
	}

	cfg := config.Global()

	level, err := normalizeLevel(args.Level, cfg.Compressor.DefaultLevel)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	format, err := normalizeFormat(args.Format, cfg.Compressor.DefaultFormat)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	calc := calculatorFor(args.Model)
	tracker, err := trackerFromConfig(cfg, calc)
	if err != nil {
		// Stats plumbing failing must not block compression.
		fmt.Fprintln(os.Stderr, WarningStyle.Render(fmt.Sprintf("stats disabled: %v", err)))
		tracker = nil
	}

	runner := compress.NewRunner(
		cfg.Compressor.Path,
		cfg.Compressor.Args,
		time.Duration(cfg.Compressor.TimeoutSecs)*time.Second,
		tracker,
	)
	opts := compress.Options{
		Level:        level,
		Format:       format,
		MaxFileBytes: cfg.Compressor.MaxFileBytes,
	}

	var records []stats.Record
	failed := 0
	for _, file := range args.Files {
		res, err := runner.Run(context.Background(), file, opts)
		if res == nil {
			failed++
			fmt.Fprintln(os.Stderr, ErrorStyle.Render(fmt.Sprintf("✗ %s: %v", file, err)))
			continue
		}
		if err != nil {
			// Compression succeeded, only the bookkeeping failed.
			fmt.Fprintln(os.Stderr, WarningStyle.Render(fmt.Sprintf("! %s: %v", file, err)))
		}

		fmt.Print(res.Output)

		if res.Recorded {
			records = append(records, res.Record)
			if !args.Quiet {
				printRunSummary(res.Record)
			}
		}
	}

	if args.JSON && len(records) > 0 {
		if out, err := json.MarshalIndent(records, "", "  "); err == nil {
			fmt.Fprintln(os.Stderr, string(out))
		}
	}

	if failed > 0 {
		return fmt.Errorf("run: %d of %d files failed", failed, len(args.Files))
	}
	return nil
}

// printRunSummary writes one styled savings line per file to stderr so it
// never contaminates piped stdout.
func printRunSummary(rec stats.Record) {
	label := fmt.Sprintf("%s: %d → %d tokens (saved %d, %.1f%%)",
		rec.SubjectPath,
		rec.OriginalTokens,
		rec.CompressedTokens,
		rec.TokensSaved,
		rec.SavingsPercent,
	)
	if rec.Estimated {
		label += " [estimated]"
	}
	if rec.Cost != nil {
		label += fmt.Sprintf(" ≈ $%.2f saved", rec.Cost.CostUSD)
	}
	fmt.Fprintln(os.Stderr, SuccessStyle.Render("✓ ")+ValueStyle.Render(label))
}
