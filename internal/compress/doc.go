// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compress runs the external compressor binary and feeds the results
// into the usage-statistics tracker.
//
// The compression algorithm itself is opaque: tokenpress only invokes the
// configured binary, captures its output, and measures token savings. When
// the source file can be read, the run is recorded as measured; when it
// cannot, the original size is estimated from the compressed output.
//
// # Key Types
//
//   - Runner: Executes compression runs with a context timeout
//   - Result: Captured output plus the persisted usage record
package compress
