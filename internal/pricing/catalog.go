// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pricing

import "sort"

// =============================================================================
// MODEL CATALOG
// =============================================================================

// ModelPrice describes one catalog entry.
// Prices are USD per one million input tokens; compression savings are
// measured against prompt (input) token rates.
type ModelPrice struct {
	// DisplayName is the human-readable model name.
	DisplayName string
	// PerMillionUSD is the input price in USD per 1M tokens.
	PerMillionUSD float64
}

// DefaultModelID is used when no client or model can be detected.
const DefaultModelID = "claude-sonnet-4"

// catalog maps model ids to prices.
// Pricing reference: published API rates as of mid-2025.
var catalog = map[string]ModelPrice{
	"claude-opus-4":     {DisplayName: "Claude Opus 4", PerMillionUSD: 15.00},
	"claude-sonnet-4":   {DisplayName: "Claude Sonnet 4", PerMillionUSD: 3.00},
	"claude-3-5-haiku":  {DisplayName: "Claude 3.5 Haiku", PerMillionUSD: 0.80},
	"gpt-4o":            {DisplayName: "GPT-4o", PerMillionUSD: 2.50},
	"gpt-4o-mini":       {DisplayName: "GPT-4o mini", PerMillionUSD: 0.15},
	"gpt-4-1":           {DisplayName: "GPT-4.1", PerMillionUSD: 2.00},
	"gemini-2-5-pro":    {DisplayName: "Gemini 2.5 Pro", PerMillionUSD: 1.25},
	"gemini-2-0-flash":  {DisplayName: "Gemini 2.0 Flash", PerMillionUSD: 0.10},
	"deepseek-v3":       {DisplayName: "DeepSeek V3", PerMillionUSD: 0.27},
}

// Lookup returns the price entry for a model id.
func Lookup(modelID string) (ModelPrice, bool) {
	p, ok := catalog[modelID]
	return p, ok
}

// IsKnown reports whether a model id exists in the catalog.
func IsKnown(modelID string) bool {
	_, ok := catalog[modelID]
	return ok
}

// Models returns all catalog model ids in sorted order.
func Models() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
