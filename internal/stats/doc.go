// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stats implements the tiered usage-statistics store for tokenpress.
//
// Every compression run produces one Record. Records live in three retention
// tiers of decreasing granularity:
//
//   - recent: verbatim records for the last 30 days
//   - daily: per-UTC-day aggregates for days 31-395
//   - monthly: per-UTC-month aggregates up to five years, then pruned
//
// A lifetime Summary is incremented at ingestion and never decremented by
// pruning, so the all-time totals survive tier demotion.
//
// # Key Types
//
//   - Record: one compression run's measured or estimated usage
//   - Store: the three tiers plus the lifetime summary
//   - Storage: JSON persistence with atomic writes and legacy migration
//   - Tracker: the ingestion pipeline (count, attribute, append, save)
//   - Engine: the date-range query engine reconciling all tiers
//
// The store is single-writer by design. Each ingestion or query is one
// synchronous read-modify-write of the whole persisted file; concurrent
// external writers are undefined behavior.
package stats
