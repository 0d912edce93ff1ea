// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stats

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// =============================================================================
// DATE WINDOW RESOLUTION
// =============================================================================

var (
	// ErrInvalidDateRange is surfaced when a resolved start is after its end.
	ErrInvalidDateRange = errors.New("stats: start date is after end date")
	// ErrInvalidRelativeDays is surfaced when relative-days is outside 1..365.
	ErrInvalidRelativeDays = errors.New("stats: relative days must be between 1 and 365")
)

// DateSelector is the caller-facing date window specification.
// Precedence, first match wins: RelativeDays, then StartDate/EndDate, then
// the legacy Period.
type DateSelector struct {
	// RelativeDays selects [now-N days, now]; valid range 1..365.
	RelativeDays int
	// StartDate and EndDate are flexible date strings, each optional.
	StartDate string
	EndDate   string
	// Period is the legacy selector: all, today, week, month.
	Period string
}

// relativeSpec matches "-<N><unit>" date strings, e.g. "-7d" or "-2w".
var relativeSpec = regexp.MustCompile(`^-(\d+)([dwmy])$`)

// unitDays maps a relative-spec unit letter to a day count.
var unitDays = map[string]int{"d": 1, "w": 7, "m": 30, "y": 365}

// ParseFlexibleDate parses the date forms accepted by the query engine:
//
//	"now"              the current instant
//	"today"            local midnight
//	"-<N><unit>"       N days/weeks/months/years ago (d=1, w=7, m=30, y=365 days)
//	"2006-01-02"       ISO date, UTC midnight
//	ISO-8601 datetime  with or without zone offset
func ParseFlexibleDate(s string, now time.Time) (time.Time, error) {
	switch s {
	case "now":
		return now, nil
	case "today":
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	}

	if m := relativeSpec.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("stats: parse relative date %q: %w", s, err)
		}
		return now.Add(-time.Duration(n*unitDays[m[2]]) * 24 * time.Hour), nil
	}

	for _, layout := range []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("stats: unrecognized date %q", s)
}

// Window resolves the selector into a concrete [start, end] pair.
//
// An end later than now is clamped to now rather than rejected. A start
// after the end is ErrInvalidDateRange.
func (sel DateSelector) Window(now time.Time) (start, end time.Time, err error) {
	switch {
	case sel.RelativeDays != 0:
		if sel.RelativeDays < 1 || sel.RelativeDays > 365 {
			return time.Time{}, time.Time{}, ErrInvalidRelativeDays
		}
		return now.Add(-time.Duration(sel.RelativeDays) * 24 * time.Hour), now, nil

	case sel.StartDate != "" || sel.EndDate != "":
		start = time.Unix(0, 0).UTC()
		end = now
		if sel.StartDate != "" {
			if start, err = ParseFlexibleDate(sel.StartDate, now); err != nil {
				return time.Time{}, time.Time{}, err
			}
		}
		if sel.EndDate != "" {
			if end, err = ParseFlexibleDate(sel.EndDate, now); err != nil {
				return time.Time{}, time.Time{}, err
			}
		}
		if end.After(now) {
			end = now
		}
		if start.After(end) {
			return time.Time{}, time.Time{}, ErrInvalidDateRange
		}
		return start, end, nil
	}

	switch sel.Period {
	case "today":
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), now, nil
	case "week":
		return now.Add(-7 * 24 * time.Hour), now, nil
	case "month":
		return now.Add(-30 * 24 * time.Hour), now, nil
	default:
		// "all", empty, or anything unrecognized: the full history.
		return time.Unix(0, 0).UTC(), now, nil
	}
}
