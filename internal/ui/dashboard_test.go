// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tokenpress/internal/pricing"
	"github.com/jeranaias/tokenpress/internal/stats"
)

func noEnv(string) string { return "" }

// seededModel builds a dashboard over a temp store holding a few records.
func seededModel(t *testing.T) Model {
	t.Helper()

	storage := stats.NewStorage(filepath.Join(t.TempDir(), "usage.json"))
	store := stats.NewStore()
	now := time.Now().UTC()
	for i, saved := range []int{100, 200, 300} {
		store.Append(stats.Record{
			Timestamp:        now.Add(-time.Duration(i) * time.Hour),
			SubjectPath:      "src/main.go",
			OriginalTokens:   saved * 2,
			CompressedTokens: saved,
			TokensSaved:      saved,
			Level:            stats.LevelFull,
			Format:           stats.FormatText,
		})
	}
	if err := storage.Save(store); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	calc := pricing.NewCalculator(pricing.NewDetectorWithEnv("", noEnv))
	return New(storage, calc, Config{Refresh: time.Second, ShowCost: true})
}

// load runs the load command synchronously and applies the result.
func load(t *testing.T, m Model) Model {
	t.Helper()

	msg := m.loadCmd()()
	loaded, ok := msg.(loadedMsg)
	if !ok {
		t.Fatalf("loadCmd returned %T", msg)
	}
	if loaded.err != nil {
		t.Fatalf("load failed: %v", loaded.err)
	}
	next, _ := m.Update(loaded)
	return next.(Model)
}

func TestDashboard_SummaryView(t *testing.T) {
	m := load(t, seededModel(t))

	view := m.View()
	for _, want := range []string{
		"tokenpress dashboard",
		"Lifetime Totals",
		"600 tokens",
		"src/main.go",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("summary view missing %q", want)
		}
	}
}

func TestDashboard_LoadingBeforeFirstSnapshot(t *testing.T) {
	m := seededModel(t)
	if !strings.Contains(m.View(), "loading usage data") {
		t.Error("expected loading state before first snapshot")
	}
}

func TestDashboard_KeySwitchesViews(t *testing.T) {
	m := load(t, seededModel(t))

	tests := []struct {
		key  string
		view View
	}{
		{"2", ViewHistory},
		{"3", ViewBreakdown},
		{"1", ViewSummary},
		{"h", ViewHistory},
		{"b", ViewBreakdown},
		{"s", ViewSummary},
	}
	for _, tt := range tests {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)})
		m = next.(Model)
		if m.view != tt.view {
			t.Errorf("key %q: view = %d, want %d", tt.key, m.view, tt.view)
		}
	}
}

func TestDashboard_TabCyclesViews(t *testing.T) {
	m := load(t, seededModel(t))

	for _, want := range []View{ViewHistory, ViewBreakdown, ViewSummary} {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(Model)
		if m.view != want {
			t.Errorf("tab: view = %d, want %d", m.view, want)
		}
	}
}

func TestDashboard_QuitKeys(t *testing.T) {
	m := load(t, seededModel(t))

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Errorf("key %v should quit", key)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %v: got %T, want tea.QuitMsg", key, cmd())
		}
	}
}

func TestDashboard_HistoryView(t *testing.T) {
	m := load(t, seededModel(t))
	m.view = ViewHistory

	view := m.View()
	if !strings.Contains(view, "Daily Savings") {
		t.Error("history view missing title")
	}
	// All three seeded records land on today or yesterday.
	if !strings.Contains(view, "saved") {
		t.Error("history view missing bars")
	}
}

func TestDashboard_BreakdownView(t *testing.T) {
	m := load(t, seededModel(t))
	m.view = ViewBreakdown

	view := m.View()
	if !strings.Contains(view, "Savings by Level") {
		t.Error("breakdown view missing title")
	}
	if !strings.Contains(view, "full") {
		t.Error("breakdown view missing level row")
	}
}

func TestDashboard_DailySavingsFoldsTiers(t *testing.T) {
	m := load(t, seededModel(t))

	days := m.dailySavings(historyDays)
	if len(days) != historyDays {
		t.Fatalf("days: got %d, want %d", len(days), historyDays)
	}

	total := 0
	for _, d := range days {
		total += d.saved
	}
	if total != 600 {
		t.Errorf("total saved across days = %d, want 600", total)
	}
}

func TestDashboard_ErrorShown(t *testing.T) {
	m := seededModel(t)
	next, _ := m.Update(loadedMsg{err: stats.ErrInvalidDateRange})
	m = next.(Model)

	if !strings.Contains(m.View(), "error:") {
		t.Error("error state not rendered")
	}
}

func TestRenderBar_Clamped(t *testing.T) {
	if got := renderBar(50, 10); !strings.Contains(got, strings.Repeat("#", 10)) {
		t.Errorf("overflow bar: %q", got)
	}
	if got := renderBar(-3, 10); strings.Contains(got, "#") {
		t.Errorf("negative bar should be empty: %q", got)
	}
}

func TestPadPath(t *testing.T) {
	if got := padPath("ab", 6); len(got) != 6 {
		t.Errorf("short path not padded: %q", got)
	}
	got := padPath("internal/very/long/path/main.go", 12)
	if !strings.HasPrefix(got, "…") || !strings.HasSuffix(got, "main.go") {
		t.Errorf("long path should keep the tail: %q", got)
	}
}
