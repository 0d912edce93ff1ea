// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stats

import (
	"errors"
	"testing"
	"time"
)

func TestParseFlexibleDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "now", input: "now", want: now},
		{name: "today", input: "today", want: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
		{name: "relative days", input: "-7d", want: now.Add(-7 * 24 * time.Hour)},
		{name: "relative weeks", input: "-2w", want: now.Add(-14 * 24 * time.Hour)},
		{name: "relative months", input: "-1m", want: now.Add(-30 * 24 * time.Hour)},
		{name: "relative years", input: "-1y", want: now.Add(-365 * 24 * time.Hour)},
		{name: "iso date", input: "2025-01-01", want: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "iso datetime", input: "2025-01-01T12:30:00", want: time.Date(2025, 1, 1, 12, 30, 0, 0, time.UTC)},
		{name: "rfc3339", input: "2025-01-01T12:30:00Z", want: time.Date(2025, 1, 1, 12, 30, 0, 0, time.UTC)},
		{name: "bogus", input: "bogus", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "positive offset rejected", input: "+7d", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlexibleDate(tt.input, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFlexibleDate(%q) failed: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseFlexibleDate(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateSelector_RelativeDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	start, end, err := DateSelector{RelativeDays: 7}.Window(now)
	if err != nil {
		t.Fatalf("Window failed: %v", err)
	}
	if !end.Equal(now) {
		t.Errorf("end: got %v, want now", end)
	}
	if !start.Equal(now.Add(-7 * 24 * time.Hour)) {
		t.Errorf("start: got %v", start)
	}

	for _, days := range []int{-1, 366, 1000} {
		_, _, err := DateSelector{RelativeDays: days}.Window(now)
		if !errors.Is(err, ErrInvalidRelativeDays) {
			t.Errorf("RelativeDays=%d: got %v, want ErrInvalidRelativeDays", days, err)
		}
	}
}

func TestDateSelector_RelativeDaysWinsOverDates(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	start, _, err := DateSelector{RelativeDays: 1, StartDate: "2020-01-01"}.Window(now)
	if err != nil {
		t.Fatalf("Window failed: %v", err)
	}
	if !start.Equal(now.Add(-24 * time.Hour)) {
		t.Errorf("relativeDays should take precedence: start=%v", start)
	}
}

func TestDateSelector_ExplicitDates(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	// Missing start defaults to epoch zero; missing end defaults to now.
	start, end, err := DateSelector{EndDate: "2025-06-01"}.Window(now)
	if err != nil {
		t.Fatalf("Window failed: %v", err)
	}
	if !start.Equal(time.Unix(0, 0).UTC()) {
		t.Errorf("default start: got %v", start)
	}
	if !end.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end: got %v", end)
	}

	// A future end is clamped to now, not rejected.
	_, end, err = DateSelector{StartDate: "2025-06-01", EndDate: "2030-01-01"}.Window(now)
	if err != nil {
		t.Fatalf("Window failed: %v", err)
	}
	if !end.Equal(now) {
		t.Errorf("future end should clamp to now: got %v", end)
	}

	// Inverted ranges fail.
	_, _, err = DateSelector{StartDate: "2025-06-10", EndDate: "2025-06-01"}.Window(now)
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("inverted range: got %v, want ErrInvalidDateRange", err)
	}

	// Unparseable dates fail.
	if _, _, err = (DateSelector{StartDate: "nonsense"}).Window(now); err == nil {
		t.Error("unparseable start should fail")
	}
}

func TestDateSelector_LegacyPeriod(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		period    string
		wantStart time.Time
	}{
		{"all", time.Unix(0, 0).UTC()},
		{"", time.Unix(0, 0).UTC()},
		{"today", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"week", now.Add(-7 * 24 * time.Hour)},
		{"month", now.Add(-30 * 24 * time.Hour)},
		{"garbage", time.Unix(0, 0).UTC()},
	}

	for _, tt := range tests {
		start, end, err := DateSelector{Period: tt.period}.Window(now)
		if err != nil {
			t.Fatalf("period %q failed: %v", tt.period, err)
		}
		if !start.Equal(tt.wantStart) {
			t.Errorf("period %q start: got %v, want %v", tt.period, start, tt.wantStart)
		}
		if !end.Equal(now) {
			t.Errorf("period %q end: got %v, want now", tt.period, end)
		}
	}
}

func TestDayKeyRoundTrip(t *testing.T) {
	ts := time.Date(2025, 3, 7, 23, 59, 59, 0, time.UTC)
	k := DayKeyOf(ts)

	if k.String() != "2025-03-07" {
		t.Errorf("day key string: got %q", k.String())
	}
	parsed, err := ParseDayKey(k.String())
	if err != nil {
		t.Fatalf("ParseDayKey failed: %v", err)
	}
	if parsed != k {
		t.Errorf("round trip mismatch: %v vs %v", parsed, k)
	}
	if !k.Start().Equal(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("day start: got %v", k.Start())
	}
}

func TestMonthKeyRoundTrip(t *testing.T) {
	k := MonthKeyOf(time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC))

	if k.String() != "2025-12" {
		t.Errorf("month key string: got %q", k.String())
	}
	parsed, err := ParseMonthKey(k.String())
	if err != nil {
		t.Fatalf("ParseMonthKey failed: %v", err)
	}
	if parsed != k {
		t.Errorf("round trip mismatch: %v vs %v", parsed, k)
	}
	if !k.End().Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("month end: got %v", k.End())
	}
}
