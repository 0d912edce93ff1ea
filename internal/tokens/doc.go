// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tokens provides token counting for compression measurements.
//
// Real tokenizers differ per model, so the package exposes a Counter
// interface that callers can satisfy with a model-specific implementation.
// The built-in HeuristicCounter blends word and character estimates and is
// accurate enough for savings reporting. When a counter fails, callers fall
// back to FallbackCount (one token per four characters, rounded up) so that
// ingestion never fails on counting.
package tokens
