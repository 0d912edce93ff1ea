// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// dashboard_cmd.go - Dashboard command implementation for tokenpress.
//
// Command: dashboard
// Aliases: dash
//
// Launches the live usage dashboard TUI. Requires an interactive terminal.
//
// Keys:
//   1/2/3, tab   Switch between summary, history, and breakdown views
//   r            Reload from disk
//   q, ctrl+c    Quit

package cli

import (
	"fmt"
	"time"

	"github.com/jeranaias/tokenpress/internal/config"
	"github.com/jeranaias/tokenpress/internal/ui"
)

// HandleDashboard handles the "dashboard" command.
func HandleDashboard(args Args) error {
	if err := RequiresTTY("show the dashboard"); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}

	cfg := config.Global()
	storage, err := storageFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}

	return ui.Run(storage, calculatorFor(args.Model), ui.Config{
		Theme:    cfg.Dashboard.Theme,
		Refresh:  time.Duration(cfg.Dashboard.RefreshSecs) * time.Second,
		ShowCost: cfg.Dashboard.ShowCost,
	})
}
