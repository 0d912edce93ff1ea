// tokenpress - CLI front-end for an external code compressor with usage tracking.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	"github.com/jeranaias/tokenpress/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "2.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	// Parse CLI arguments
	cmd, args := cli.Parse(os.Args[1:])

	// Route to appropriate handler
	var err error
	switch cmd {
	case cli.CmdRun:
		err = cli.HandleRun(args)
	case cli.CmdStats:
		err = cli.HandleStats(args)
	case cli.CmdExport:
		err = cli.HandleExport(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdDashboard:
		err = cli.HandleDashboard(args)
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		cli.HandleHelp()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}
