// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stats

import (
	"reflect"
	"testing"
	"time"
)

func mkRecord(ts time.Time, original, compressed int) Record {
	return Record{
		Timestamp:        ts,
		SubjectPath:      "src/main.go",
		OriginalTokens:   original,
		CompressedTokens: compressed,
		TokensSaved:      original - compressed,
		Level:            LevelFull,
		Format:           FormatText,
	}
}

func TestStore_AppendIncrementsSummary(t *testing.T) {
	s := NewStore()
	now := time.Now().UTC()

	s.Append(mkRecord(now, 100, 40))
	s.Append(mkRecord(now, 200, 50))

	if s.Summary.TotalCompressions != 2 {
		t.Errorf("total compressions: got %d, want 2", s.Summary.TotalCompressions)
	}
	if s.Summary.TotalOriginalTokens != 300 {
		t.Errorf("total original: got %d, want 300", s.Summary.TotalOriginalTokens)
	}
	if s.Summary.TotalTokensSaved != 210 {
		t.Errorf("total saved: got %d, want 210", s.Summary.TotalTokensSaved)
	}
}

func TestStore_AggregateTierBoundary(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	boundary := now.AddDate(0, 0, -RecentDays)

	s := NewStore()
	s.Append(mkRecord(boundary.Add(-time.Second), 100, 40)) // just past the horizon
	s.Append(mkRecord(boundary.Add(time.Second), 100, 40))  // just inside it

	s.Aggregate(now)

	if len(s.Recent) != 1 {
		t.Fatalf("recent count: got %d, want 1", len(s.Recent))
	}
	if !s.Recent[0].Timestamp.After(boundary) {
		t.Error("wrong record kept in recent")
	}
	if got := len(s.Daily); got != 1 {
		t.Fatalf("daily count: got %d, want 1", got)
	}
	key := DayKeyOf(boundary.Add(-time.Second))
	if agg := s.Daily[key]; agg.Count != 1 || agg.TokensSaved != 60 {
		t.Errorf("daily aggregate: got %+v", agg)
	}
}

func TestStore_AggregateDemotesToMonthly(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	s := NewStore()
	old := now.AddDate(0, 0, -(DailyDays + 10))
	s.Append(mkRecord(old, 500, 100))

	s.Aggregate(now)

	if len(s.Recent) != 0 || len(s.Daily) != 0 {
		t.Fatalf("record should be monthly: recent=%d daily=%d", len(s.Recent), len(s.Daily))
	}
	agg := s.Monthly[MonthKeyOf(old)]
	if agg.Count != 1 || agg.OriginalTokens != 500 {
		t.Errorf("monthly aggregate: got %+v", agg)
	}
}

func TestStore_AggregateDemotesStaleDaily(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	staleDay := DayKeyOf(now.AddDate(0, 0, -(DailyDays + 1)))

	s := NewStore()
	s.Daily[staleDay] = DailyAggregate{Count: 3, OriginalTokens: 300, CompressedTokens: 90, TokensSaved: 210}

	s.Aggregate(now)

	if len(s.Daily) != 0 {
		t.Fatal("stale daily entry should have been demoted")
	}
	agg := s.Monthly[MonthKey{Year: staleDay.Year, Month: staleDay.Month}]
	if agg.Count != 3 || agg.TokensSaved != 210 {
		t.Errorf("monthly after demotion: got %+v", agg)
	}
}

func TestStore_AggregatePrunesOldMonths(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	s := NewStore()
	s.Summary = Summary{TotalCompressions: 10, TotalOriginalTokens: 1000, TotalCompressedTokens: 300, TotalTokensSaved: 700}

	ancient := MonthKeyOf(now.AddDate(-6, 0, 0))
	recentMonth := MonthKeyOf(now.AddDate(0, -20, 0))
	s.Monthly[ancient] = MonthlyAggregate{Count: 4, TokensSaved: 100}
	s.Monthly[recentMonth] = MonthlyAggregate{Count: 6, TokensSaved: 600}

	s.Aggregate(now)

	if _, ok := s.Monthly[ancient]; ok {
		t.Error("six-year-old month should be pruned")
	}
	if _, ok := s.Monthly[recentMonth]; !ok {
		t.Error("in-horizon month should survive")
	}

	// Pruning never touches the lifetime summary.
	if s.Summary.TotalCompressions != 10 {
		t.Errorf("summary modified by pruning: %+v", s.Summary)
	}
}

func TestStore_AggregateIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	s := NewStore()
	s.Append(mkRecord(now.Add(-time.Hour), 100, 40))
	s.Append(mkRecord(now.AddDate(0, 0, -45), 200, 60))
	s.Append(mkRecord(now.AddDate(0, 0, -400), 300, 90))
	s.Append(mkRecord(now.AddDate(-2, 0, 0), 400, 100))

	s.Aggregate(now)
	recent := append([]Record(nil), s.Recent...)
	daily := make(map[DayKey]DailyAggregate, len(s.Daily))
	for k, v := range s.Daily {
		daily[k] = v
	}
	monthly := make(map[MonthKey]MonthlyAggregate, len(s.Monthly))
	for k, v := range s.Monthly {
		monthly[k] = v
	}

	s.Aggregate(now)

	if !reflect.DeepEqual(recent, s.Recent) {
		t.Error("recent changed on second aggregation")
	}
	if !reflect.DeepEqual(daily, s.Daily) {
		t.Error("daily changed on second aggregation")
	}
	if !reflect.DeepEqual(monthly, s.Monthly) {
		t.Error("monthly changed on second aggregation")
	}
}

func TestStore_AggregateConservesCounts(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	s := NewStore()
	ages := []int{0, 1, 29, 31, 100, 364, 366, 700} // all within the monthly horizon
	for _, days := range ages {
		s.Append(mkRecord(now.AddDate(0, 0, -days), 100, 40))
	}

	s.Aggregate(now)
	s.Aggregate(now)

	if got := s.RetainedCompressions(); got != len(ages) {
		t.Errorf("retained compressions: got %d, want %d", got, len(ages))
	}
	if s.Summary.TotalCompressions != len(ages) {
		t.Errorf("summary compressions: got %d, want %d", s.Summary.TotalCompressions, len(ages))
	}
	if s.Summary.TotalOriginalTokens != 100*len(ages) {
		t.Errorf("summary original tokens: got %d", s.Summary.TotalOriginalTokens)
	}
}

func TestStore_MigrateLegacyConservation(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	records := []Record{
		mkRecord(now.Add(-time.Hour), 100, 40),        // recent
		mkRecord(now.AddDate(0, 0, -60), 200, 60),     // daily
		mkRecord(now.AddDate(0, 0, -500), 300, 90),    // monthly
	}
	legacySummary := Summary{TotalCompressions: 3, TotalOriginalTokens: 600, TotalCompressedTokens: 190, TotalTokensSaved: 410}

	s := migrateLegacy(records, legacySummary, now)

	if len(s.Recent) != 1 {
		t.Errorf("recent: got %d, want 1", len(s.Recent))
	}
	if len(s.Daily) != 1 {
		t.Errorf("daily: got %d, want 1", len(s.Daily))
	}
	if len(s.Monthly) != 1 {
		t.Errorf("monthly: got %d, want 1", len(s.Monthly))
	}
	if s.RetainedCompressions() != 3 {
		t.Errorf("every legacy record must land in exactly one tier: retained=%d", s.RetainedCompressions())
	}
	if s.Summary != legacySummary {
		t.Errorf("legacy summary must be carried unchanged: got %+v", s.Summary)
	}
}

func TestStore_ReconcileSummary(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	s := NewStore()
	s.Append(mkRecord(now, 100, 40))
	s.Summary.TotalCompressions = 50 // pretend pruning left the summary ahead

	s.ReconcileSummary()

	if s.Summary.TotalCompressions != 1 {
		t.Errorf("reconciled compressions: got %d, want 1", s.Summary.TotalCompressions)
	}
	if s.Summary.TotalTokensSaved != 60 {
		t.Errorf("reconciled saved: got %d, want 60", s.Summary.TotalTokensSaved)
	}
}
