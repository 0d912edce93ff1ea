// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stats

import (
	"fmt"
	"time"
)

// =============================================================================
// STRUCTURED DATE KEYS
// =============================================================================

// Tier maps are keyed by value types rather than formatted strings so that
// key arithmetic (day start, month overlap) is exact and cannot drift from
// the string form. The persisted file still uses "YYYY-MM-DD" / "YYYY-MM"
// strings; see storage.go.

// DayKey identifies one UTC day.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// DayKeyOf returns the UTC day containing t.
func DayKeyOf(t time.Time) DayKey {
	u := t.UTC()
	return DayKey{Year: u.Year(), Month: u.Month(), Day: u.Day()}
}

// ParseDayKey parses a "YYYY-MM-DD" key.
func ParseDayKey(s string) (DayKey, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return DayKey{}, fmt.Errorf("parse day key %q: %w", s, err)
	}
	return DayKeyOf(t), nil
}

// String renders the persisted "YYYY-MM-DD" form.
func (k DayKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

// Start returns UTC midnight at the beginning of the day.
func (k DayKey) Start() time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.UTC)
}

// MonthKey identifies one UTC month.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthKeyOf returns the UTC month containing t.
func MonthKeyOf(t time.Time) MonthKey {
	u := t.UTC()
	return MonthKey{Year: u.Year(), Month: u.Month()}
}

// ParseMonthKey parses a "YYYY-MM" key.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("parse month key %q: %w", s, err)
	}
	return MonthKeyOf(t), nil
}

// String renders the persisted "YYYY-MM" form.
func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Start returns UTC midnight on the first of the month.
func (k MonthKey) Start() time.Time {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the exclusive end of the month (start of the next month).
func (k MonthKey) End() time.Time {
	return k.Start().AddDate(0, 1, 0)
}
