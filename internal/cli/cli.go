// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing for tokenpress.
package cli

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "2.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdRun Command = iota
	CmdStats
	CmdExport
	CmdConfig
	CmdDashboard
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool // Output in JSON format
	Model   string

	// run
	Files  []string
	Level  string
	Format string

	// stats / export window selection
	Days    int
	From    string
	To      string
	Period  string
	Details bool
	Limit   int

	// export
	ExportFormat string
	OutputDir    string

	// config
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `tokenpress - code compression with usage tracking

Tokenpress runs an external code compressor over source files, measures the
token savings, and keeps a local multi-tier usage history with cost estimates.

Usage:
  tokenpress run <file>...       Compress files and record the savings
  tokenpress stats               Show usage statistics
  tokenpress export              Export a usage report to a file
  tokenpress config [show|get|set|path|keys]  Configuration
  tokenpress dashboard           Live usage dashboard
  tokenpress version             Show version
  tokenpress help                Show this help

Run Options:
  --level LEVEL     Compression level: full, signatures, minimal
  --format FORMAT   Output format: text, summary, json

Stats / Export Window Selection:
  --days N          Last N days (1-365)
  --from DATE       Window start ("now", "today", "-7d", "2025-01-01", ...)
  --to DATE         Window end (same forms; default now)
  --period PERIOD   Legacy period: all, today, week, month

Stats Options:
  --details         Include recent per-file records
  --limit N         Max detail records (default 10, max 100)
  --json            Output the report as JSON

Export Options:
  --export-format FORMAT  markdown, json, or csv (default markdown)
  --output DIR            Output directory (default .)

Global Flags:
  -q, --quiet       Minimal output
  -v, --verbose     Debug output
  --model NAME      Override the model used for cost estimates
  --json            Output in JSON format

Examples:
  tokenpress run src/main.go                    Compress one file
  tokenpress run --level minimal src/*.go       Aggressive compression
  tokenpress stats --days 7                     Last week's savings
  tokenpress stats --from -1m --details         Last month with details
  tokenpress export --export-format csv         CSV report in cwd
  tokenpress config set model claude-opus-4     Pin the billing model
  tokenpress dashboard                          Watch savings live

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("tokenpress version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s\n", runtime.Version())
}

// Parse parses command-line argv (without the program name) and returns the
// command and args.
func Parse(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdHelp, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "run", "compress":
		parseRunArgs(&parsedArgs, remaining)
		return CmdRun, parsedArgs

	case "stats", "usage":
		parseWindowArgs(&parsedArgs, remaining)
		return CmdStats, parsedArgs

	case "export":
		parseExportArgs(&parsedArgs, remaining)
		return CmdExport, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "dashboard", "dash":
		return CmdDashboard, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown word: treat it as a file for run, the common case.
		parseRunArgs(&parsedArgs, append([]string{cmd}, remaining...))
		return CmdRun, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--model":
			if i+1 < len(args) {
				i++
				parsedArgs.Model = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--model=") {
				parsedArgs.Model = strings.TrimPrefix(arg, "--model=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseRunArgs parses run command specific arguments.
func parseRunArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]

		switch arg {
		case "-l", "--level":
			if i+1 < len(remaining) {
				i++
				args.Level = remaining[i]
			}
		case "-f", "--format":
			if i+1 < len(remaining) {
				i++
				args.Format = remaining[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--level="):
				args.Level = strings.TrimPrefix(arg, "--level=")
			case strings.HasPrefix(arg, "--format="):
				args.Format = strings.TrimPrefix(arg, "--format=")
			case !strings.HasPrefix(arg, "-"):
				args.Files = append(args.Files, arg)
			}
		}
	}
}

// parseWindowArgs parses the date-window flags shared by stats and export.
func parseWindowArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]

		switch arg {
		case "--days":
			if i+1 < len(remaining) {
				i++
				if n, err := strconv.Atoi(remaining[i]); err == nil {
					args.Days = n
				}
			}
		case "--from":
			if i+1 < len(remaining) {
				i++
				args.From = remaining[i]
			}
		case "--to":
			if i+1 < len(remaining) {
				i++
				args.To = remaining[i]
			}
		case "--period":
			if i+1 < len(remaining) {
				i++
				args.Period = remaining[i]
			}
		case "--details":
			args.Details = true
		case "--limit":
			if i+1 < len(remaining) {
				i++
				if n, err := strconv.Atoi(remaining[i]); err == nil {
					args.Limit = n
				}
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--days="):
				if n, err := strconv.Atoi(strings.TrimPrefix(arg, "--days=")); err == nil {
					args.Days = n
				}
			case strings.HasPrefix(arg, "--from="):
				args.From = strings.TrimPrefix(arg, "--from=")
			case strings.HasPrefix(arg, "--to="):
				args.To = strings.TrimPrefix(arg, "--to=")
			case strings.HasPrefix(arg, "--period="):
				args.Period = strings.TrimPrefix(arg, "--period=")
			case strings.HasPrefix(arg, "--limit="):
				if n, err := strconv.Atoi(strings.TrimPrefix(arg, "--limit=")); err == nil {
					args.Limit = n
				}
			}
		}
	}
}

// parseExportArgs parses export command specific arguments.
func parseExportArgs(args *Args, remaining []string) {
	args.ExportFormat = "markdown"
	args.OutputDir = "."
	parseWindowArgs(args, remaining)

	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]

		switch arg {
		case "--export-format":
			if i+1 < len(remaining) {
				i++
				args.ExportFormat = remaining[i]
			}
		case "--output", "-o":
			if i+1 < len(remaining) {
				i++
				args.OutputDir = remaining[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--export-format="):
				args.ExportFormat = strings.TrimPrefix(arg, "--export-format=")
			case strings.HasPrefix(arg, "--output="):
				args.OutputDir = strings.TrimPrefix(arg, "--output=")
			}
		}
	}
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
}

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		fmt.Printf("{\n  \"version\": %q,\n  \"git_commit\": %q,\n  \"build_date\": %q,\n  \"go_version\": %q\n}\n",
			Version, GitCommit, BuildDate, runtime.Version())
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
