// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pricing provides cost attribution for compression savings.
//
// # Key Types
//
//   - Catalog entries: static model id -> price-per-million-tokens mapping
//   - Detector: resolves which client/model pair applies, once per process
//   - Calculator: converts a token-savings count into a dollar estimate
//
// Cost attribution is strictly best-effort. The Calculator only returns an
// error for nonsensical input; every internal failure degrades to a
// zero-cost result attributed to the default model so that ingestion is
// never blocked on pricing.
package pricing
