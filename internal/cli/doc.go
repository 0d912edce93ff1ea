// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and command handlers for
// tokenpress.
//
// # Key Types
//
//   - Command: The parsed top-level command
//   - Args: Parsed flags and positional arguments
//
// Parsing is hand-rolled: global flags first, then the command word, then
// command-specific flags. Output styling goes through the shared lipgloss
// styles with TTY and NO_COLOR detection.
package cli
