// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stats

import (
	"sort"
	"time"

	"github.com/jeranaias/tokenpress/internal/pricing"
)

// =============================================================================
// QUERY ENGINE
// =============================================================================

const (
	// DefaultDetailLimit is the detail-record count when none is requested.
	DefaultDetailLimit = 10
	// MaxDetailLimit caps the detail-record count.
	MaxDetailLimit = 100
)

// QueryOptions selects what a query returns.
type QueryOptions struct {
	Selector       DateSelector
	IncludeDetails bool
	// Limit caps detail records; 0 means DefaultDetailLimit, values above
	// MaxDetailLimit are clamped.
	Limit int
}

// ModelCost is the per-model cost breakdown built from attributed records.
type ModelCost struct {
	Count       int     `json:"count"`
	TokensSaved int     `json:"tokens_saved"`
	CostUSD     float64 `json:"cost_usd"`
}

// Report is the result of a query: totals reconciled across all tiers for
// the resolved window, derived averages, and optional recent-record detail.
type Report struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	TotalCompressions     int `json:"total_compressions"`
	TotalOriginalTokens   int `json:"total_original_tokens"`
	TotalCompressedTokens int `json:"total_compressed_tokens"`
	TotalTokensSaved      int `json:"total_tokens_saved"`

	AverageCompressionRatio   float64 `json:"average_compression_ratio"`
	AverageSavingsPercent     float64 `json:"average_savings_percent"`
	AverageCostPerCompression float64 `json:"average_cost_per_compression"`

	TotalCostUSD float64 `json:"total_cost_usd"`
	// CostEstimated is set when no matched record carried attribution and
	// the total cost was instead estimated from the aggregate savings with
	// the currently detected model. An approximation, not a true sum.
	CostEstimated bool   `json:"cost_estimated,omitempty"`
	CostModelID   string `json:"cost_model_id,omitempty"`

	ByModel map[string]ModelCost `json:"by_model,omitempty"`

	// Details holds matched recent records, newest first, when requested.
	Details []Record `json:"details,omitempty"`
}

// Engine answers date-range queries against the persisted store.
type Engine struct {
	storage *Storage
	calc    *pricing.Calculator
	now     func() time.Time
}

// NewEngine creates a query engine over storage, using calc for fallback
// cost estimation.
func NewEngine(storage *Storage, calc *pricing.Calculator) *Engine {
	return &Engine{storage: storage, calc: calc, now: time.Now}
}

// Query resolves the date window, reads the persisted store, and reconciles
// totals across the three tiers.
//
// Only ErrInvalidDateRange, ErrInvalidRelativeDays, and date parse failures
// are surfaced; everything else degrades to whatever data is available.
func (e *Engine) Query(opts QueryOptions) (*Report, error) {
	now := e.now()
	start, end, err := opts.Selector.Window(now)
	if err != nil {
		return nil, err
	}

	s := e.storage.Load()
	rep := &Report{Start: start, End: end, ByModel: make(map[string]ModelCost)}

	// Recent tier: per-record filtering and the only source of per-model
	// cost attribution.
	var matched []Record
	attributed := false
	for _, r := range s.Recent {
		if r.Timestamp.Before(start) || r.Timestamp.After(end) {
			continue
		}
		matched = append(matched, r)
		rep.TotalCompressions++
		rep.TotalOriginalTokens += r.OriginalTokens
		rep.TotalCompressedTokens += r.CompressedTokens
		rep.TotalTokensSaved += r.TokensSaved

		if r.Cost != nil {
			attributed = true
			mc := rep.ByModel[r.Cost.ModelID]
			mc.Count++
			mc.TokensSaved += r.TokensSaved
			mc.CostUSD += r.Cost.CostUSD
			rep.ByModel[r.Cost.ModelID] = mc
			rep.TotalCostUSD += r.Cost.CostUSD
		}
	}

	// Daily tier: whole days whose start falls inside the window.
	for k, agg := range s.Daily {
		dayStart := k.Start()
		if dayStart.Before(start) || dayStart.After(end) {
			continue
		}
		rep.TotalCompressions += agg.Count
		rep.TotalOriginalTokens += agg.OriginalTokens
		rep.TotalCompressedTokens += agg.CompressedTokens
		rep.TotalTokensSaved += agg.TokensSaved
	}

	// Monthly tier: any overlap pulls the whole month in, no proration.
	for k, agg := range s.Monthly {
		if !k.Start().After(end) && k.End().After(start) {
			rep.TotalCompressions += agg.Count
			rep.TotalOriginalTokens += agg.OriginalTokens
			rep.TotalCompressedTokens += agg.CompressedTokens
			rep.TotalTokensSaved += agg.TokensSaved
		}
	}

	if rep.TotalOriginalTokens > 0 {
		rep.AverageCompressionRatio = roundRatio(float64(rep.TotalCompressedTokens) / float64(rep.TotalOriginalTokens))
		rep.AverageSavingsPercent = roundPercent(float64(rep.TotalTokensSaved) / float64(rep.TotalOriginalTokens) * 100)
	}

	// Without any attributed record, estimate the total from aggregate
	// savings with the currently detected model.
	if !attributed && rep.TotalCompressions > 0 && e.calc != nil {
		if attr, err := e.calc.Calculate(float64(rep.TotalTokensSaved), ""); err == nil {
			rep.TotalCostUSD = attr.CostUSD
			rep.CostEstimated = true
			rep.CostModelID = attr.ModelID
		}
	}

	if rep.TotalCompressions > 0 {
		rep.AverageCostPerCompression = rep.TotalCostUSD / float64(rep.TotalCompressions)
	}

	if opts.IncludeDetails {
		sort.Slice(matched, func(i, j int) bool {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		})
		limit := opts.Limit
		if limit <= 0 {
			limit = DefaultDetailLimit
		}
		if limit > MaxDetailLimit {
			limit = MaxDetailLimit
		}
		if len(matched) > limit {
			matched = matched[:limit]
		}
		rep.Details = matched
	}

	if len(rep.ByModel) == 0 {
		rep.ByModel = nil
	}
	return rep, nil
}
