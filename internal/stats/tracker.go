// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stats

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/tokenpress/internal/pricing"
	"github.com/jeranaias/tokenpress/internal/tokens"
)

// =============================================================================
// INGESTION PIPELINE
// =============================================================================

// estimateMultipliers derive an original token count from the compressed
// count when the source could not be read. Higher compression levels imply
// a larger original.
var estimateMultipliers = map[Level]float64{
	LevelMinimal:    10.0,
	LevelSignatures: 6.0,
	LevelFull:       4.0,
}

const defaultEstimateMultiplier = 4.0

// Tracker turns completed compression runs into persisted records.
//
// Each call is one full read-modify-write of the persisted store. Token
// counting and cost attribution both degrade rather than fail: a counter
// error falls back to the char/4 heuristic, and attribution is simply
// omitted when the calculator declines.
type Tracker struct {
	storage *Storage
	counter tokens.Counter
	calc    *pricing.Calculator

	// reconcile rebuilds the lifetime summary from retained tiers after
	// aggregation (the reconcile_summary config flag).
	reconcile bool

	now func() time.Time
}

// NewTracker creates an ingestion tracker.
// counter may be nil, in which case the built-in heuristic counter is used.
func NewTracker(storage *Storage, counter tokens.Counter, calc *pricing.Calculator) *Tracker {
	if counter == nil {
		counter = tokens.HeuristicCounter{}
	}
	return &Tracker{
		storage: storage,
		counter: counter,
		calc:    calc,
		now:     time.Now,
	}
}

// SetReconcileSummary opts in to reconciling the lifetime summary down to
// the retained tiers on every save.
func (t *Tracker) SetReconcileSummary(on bool) {
	t.reconcile = on
}

// RecordMeasured ingests a run where both the original and compressed text
// are available.
//
// The returned record is always valid; a non-nil error means only that the
// store could not be persisted (the logical event still happened).
func (t *Tracker) RecordMeasured(path, originalText, compressedText string, level Level, format OutputFormat) (Record, error) {
	original := t.countTokens(originalText)
	compressed := t.countTokens(compressedText)
	return t.ingest(t.build(path, original, compressed, level, format, false))
}

// RecordEstimated ingests a run where the original content was unreadable.
// The original token count is derived from the compressed count using the
// level's expansion multiplier.
func (t *Tracker) RecordEstimated(path, compressedText string, level Level, format OutputFormat) (Record, error) {
	compressed := t.countTokens(compressedText)

	mult, ok := estimateMultipliers[level]
	if !ok {
		mult = defaultEstimateMultiplier
	}
	original := int(math.Round(float64(compressed) * mult))

	return t.ingest(t.build(path, original, compressed, level, format, true))
}

// countTokens runs the configured counter with the char/4 fallback.
func (t *Tracker) countTokens(text string) int {
	n, err := t.counter.Count(text)
	if err != nil || n < 0 {
		return tokens.FallbackCount(text)
	}
	return n
}

// build assembles a record with derived fields and best-effort attribution.
func (t *Tracker) build(path string, original, compressed int, level Level, format OutputFormat, estimated bool) Record {
	saved := original - compressed

	r := Record{
		ID:               uuid.NewString(),
		Timestamp:        t.now().UTC(),
		SubjectPath:      path,
		OriginalTokens:   original,
		CompressedTokens: compressed,
		TokensSaved:      saved,
		Level:            level,
		Format:           format,
		Estimated:        estimated,
	}
	if original > 0 {
		r.CompressionRatio = roundRatio(float64(compressed) / float64(original))
		r.SavingsPercent = roundPercent(float64(saved) / float64(original) * 100)
	}

	// Attribution is all-or-nothing: attach only when the calculator
	// succeeds, never partial fields.
	if t.calc != nil {
		if attr, err := t.calc.Calculate(float64(saved), ""); err == nil {
			r.Cost = &attr
		}
	}
	return r
}

// ingest appends the record, rolls the tiers, and persists.
func (t *Tracker) ingest(r Record) (Record, error) {
	s := t.storage.Load()
	s.Append(r)
	if t.reconcile {
		s.Aggregate(t.now())
		s.ReconcileSummary()
	}
	if err := t.storage.Save(s); err != nil {
		// Non-fatal: the caller gets the record either way.
		return r, err
	}
	return r, nil
}
