// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the live usage dashboard TUI for tokenpress.
//
// # Key Types
//
//   - Model: The bubbletea model driving the dashboard
//   - Config: Dashboard appearance and refresh settings
//   - View: Which dashboard pane is active (summary, history, breakdown)
//
// The dashboard reloads on a timer and whenever the stats file changes on
// disk, so savings recorded by concurrent tokenpress runs show up live.
package ui
