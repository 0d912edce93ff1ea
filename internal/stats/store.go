// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stats

import "time"

// =============================================================================
// RETENTION
// =============================================================================

const (
	// RecentDays is how long verbatim records are kept.
	RecentDays = 30
	// DailyDays is the horizon for per-day aggregates; records between 31
	// and 395 days old live here.
	DailyDays = 365
	// MonthlyYears is the horizon for per-month aggregates. Months older
	// than this are pruned entirely (the lifetime summary is untouched).
	MonthlyYears = 5
)

// =============================================================================
// STORE
// =============================================================================

// Store owns the three retention tiers plus the lifetime summary.
type Store struct {
	Recent  []Record
	Daily   map[DayKey]DailyAggregate
	Monthly map[MonthKey]MonthlyAggregate
	Summary Summary
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		Recent:  make([]Record, 0),
		Daily:   make(map[DayKey]DailyAggregate),
		Monthly: make(map[MonthKey]MonthlyAggregate),
	}
}

// Append adds a record to the recent tier and increments the lifetime
// summary. This is the only mutation the summary ever receives.
func (s *Store) Append(r Record) {
	s.Recent = append(s.Recent, r)
	s.Summary.TotalCompressions++
	s.Summary.TotalOriginalTokens += r.OriginalTokens
	s.Summary.TotalCompressedTokens += r.CompressedTokens
	s.Summary.TotalTokensSaved += r.TokensSaved
}

// Aggregate rolls records down the retention tiers relative to now.
//
// It is idempotent: running it twice against the same clock yields an
// identical store. Counts are conserved between recent, daily, and monthly;
// only the monthly prune step discards data, and the summary is never
// modified here.
func (s *Store) Aggregate(now time.Time) {
	recentCutoff := now.AddDate(0, 0, -RecentDays)
	dailyCutoff := now.AddDate(0, 0, -DailyDays)

	// Step 1: partition recent by age.
	kept := make([]Record, 0, len(s.Recent))
	for _, r := range s.Recent {
		switch {
		case r.Timestamp.After(recentCutoff):
			kept = append(kept, r)
		case r.Timestamp.After(dailyCutoff):
			s.foldDaily(r)
		default:
			s.foldMonthly(r)
		}
	}
	s.Recent = kept

	// Step 2: demote daily aggregates past the daily horizon.
	for k, agg := range s.Daily {
		if k.Start().Before(dailyCutoff) {
			mk := MonthKey{Year: k.Year, Month: k.Month}
			m := s.Monthly[mk]
			m.add(agg.Count, agg.OriginalTokens, agg.CompressedTokens, agg.TokensSaved)
			s.Monthly[mk] = m
			delete(s.Daily, k)
		}
	}

	// Step 3: prune months entirely outside the monthly horizon.
	pruneCutoff := now.AddDate(0, 0, -MonthlyYears*365)
	for k := range s.Monthly {
		if !k.End().After(pruneCutoff) {
			delete(s.Monthly, k)
		}
	}
}

func (s *Store) foldDaily(r Record) {
	k := DayKeyOf(r.Timestamp)
	agg := s.Daily[k]
	agg.add(r)
	s.Daily[k] = agg
}

func (s *Store) foldMonthly(r Record) {
	k := MonthKeyOf(r.Timestamp)
	agg := s.Monthly[k]
	agg.add(1, r.OriginalTokens, r.CompressedTokens, r.TokensSaved)
	s.Monthly[k] = agg
}

// RetainedCompressions sums the record count across the retained tiers.
// Always <= Summary.TotalCompressions once monthly pruning has occurred.
func (s *Store) RetainedCompressions() int {
	n := len(s.Recent)
	for _, agg := range s.Daily {
		n += agg.Count
	}
	for _, agg := range s.Monthly {
		n += agg.Count
	}
	return n
}

// ReconcileSummary rebuilds the lifetime summary from the retained tiers,
// discarding totals for pruned months. This is opt-in behavior behind the
// reconcile_summary config flag; the default keeps lifetime totals forever.
func (s *Store) ReconcileSummary() {
	var sum Summary
	for _, r := range s.Recent {
		sum.TotalCompressions++
		sum.TotalOriginalTokens += r.OriginalTokens
		sum.TotalCompressedTokens += r.CompressedTokens
		sum.TotalTokensSaved += r.TokensSaved
	}
	for _, agg := range s.Daily {
		sum.TotalCompressions += agg.Count
		sum.TotalOriginalTokens += agg.OriginalTokens
		sum.TotalCompressedTokens += agg.CompressedTokens
		sum.TotalTokensSaved += agg.TokensSaved
	}
	for _, agg := range s.Monthly {
		sum.TotalCompressions += agg.Count
		sum.TotalOriginalTokens += agg.OriginalTokens
		sum.TotalCompressedTokens += agg.CompressedTokens
		sum.TotalTokensSaved += agg.TokensSaved
	}
	s.Summary = sum
}

// migrateLegacy classifies records from the pre-2.0 flat schema into tiers
// by their age at migration time. The legacy summary is carried unchanged.
func migrateLegacy(records []Record, summary Summary, now time.Time) *Store {
	s := NewStore()
	s.Summary = summary

	recentCutoff := now.AddDate(0, 0, -RecentDays)
	dailyCutoff := now.AddDate(0, 0, -DailyDays)
	for _, r := range records {
		switch {
		case r.Timestamp.After(recentCutoff):
			s.Recent = append(s.Recent, r)
		case r.Timestamp.After(dailyCutoff):
			s.foldDaily(r)
		default:
			s.foldMonthly(r)
		}
	}
	return s
}
