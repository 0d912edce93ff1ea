// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export provides usage-report export functionality for tokenpress.
// Supports exporting query reports to Markdown, JSON, and CSV.
//
// # Key Types
//
//   - Exporter: Format-specific report serializer
//   - Options: Output directory and metadata behavior
//
// # Usage
//
//	path, err := export.ToFile(report, export.NewMarkdownExporter(nil), nil)
package export
