// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stats

import (
	"math"
	"time"

	"github.com/jeranaias/tokenpress/internal/pricing"
)

// =============================================================================
// RECORD
// =============================================================================

// Level is the compression level the external compressor was asked for.
type Level string

const (
	// LevelFull keeps bodies and comments, compacting syntax only.
	LevelFull Level = "full"
	// LevelSignatures keeps declarations and signatures, dropping bodies.
	LevelSignatures Level = "signatures"
	// LevelMinimal keeps only the structural skeleton.
	LevelMinimal Level = "minimal"
)

// OutputFormat is the compressor output format for a run.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatSummary OutputFormat = "summary"
	FormatJSON    OutputFormat = "json"
)

// Record is one completed compression run's usage statistics.
// Records are immutable once ingested.
type Record struct {
	ID          string    `json:"id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	SubjectPath string    `json:"subject_path"`

	OriginalTokens   int `json:"original_tokens"`
	CompressedTokens int `json:"compressed_tokens"`
	TokensSaved      int `json:"tokens_saved"`

	// CompressionRatio is compressed/original, rounded to 3 decimals.
	CompressionRatio float64 `json:"compression_ratio"`
	// SavingsPercent is tokens-saved/original*100, rounded to 1 decimal.
	SavingsPercent float64 `json:"savings_percent"`

	Level  Level        `json:"level"`
	Format OutputFormat `json:"output_format"`

	// Estimated marks records whose original token count was derived from
	// the compressed output because the source was unreadable.
	Estimated bool `json:"estimated,omitempty"`

	// Cost is attached only when attribution succeeded wholesale; a record
	// either carries the full attribution or none of it.
	Cost *pricing.Attribution `json:"cost,omitempty"`
}

// =============================================================================
// AGGREGATES AND SUMMARY
// =============================================================================

// DailyAggregate is the sum of all records in one UTC day.
type DailyAggregate struct {
	Count            int `json:"count"`
	OriginalTokens   int `json:"original_tokens"`
	CompressedTokens int `json:"compressed_tokens"`
	TokensSaved      int `json:"tokens_saved"`
}

// add folds one record's counts into the aggregate.
func (a *DailyAggregate) add(r Record) {
	a.Count++
	a.OriginalTokens += r.OriginalTokens
	a.CompressedTokens += r.CompressedTokens
	a.TokensSaved += r.TokensSaved
}

// MonthlyAggregate is the sum of all records in one UTC month.
type MonthlyAggregate struct {
	Count            int `json:"count"`
	OriginalTokens   int `json:"original_tokens"`
	CompressedTokens int `json:"compressed_tokens"`
	TokensSaved      int `json:"tokens_saved"`
}

func (a *MonthlyAggregate) add(count, original, compressed, saved int) {
	a.Count += count
	a.OriginalTokens += original
	a.CompressedTokens += compressed
	a.TokensSaved += saved
}

// Summary holds lifetime running totals. It is incremented at ingestion and
// never touched by aggregation or pruning.
type Summary struct {
	TotalCompressions     int `json:"total_compressions"`
	TotalOriginalTokens   int `json:"total_original_tokens"`
	TotalCompressedTokens int `json:"total_compressed_tokens"`
	TotalTokensSaved      int `json:"total_tokens_saved"`
}

// =============================================================================
// ROUNDING
// =============================================================================

// roundRatio rounds a compression ratio to 3 decimal places.
func roundRatio(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// roundPercent rounds a savings percentage to 1 decimal place.
func roundPercent(v float64) float64 {
	return math.Round(v*10) / 10
}
