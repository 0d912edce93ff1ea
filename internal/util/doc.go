// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for tokenpress.
//
// The main export is AtomicWriteFile, used by the stats storage and the
// config writer so that a crash mid-write never leaves a truncated file
// behind.
package util
