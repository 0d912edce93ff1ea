// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// views.go - Dashboard view rendering.

package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/tokenpress/internal/stats"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	dashTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Cyan

	dashSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("14"))

	dashLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(16)

	dashValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dashGreenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	dashDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	dashErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Underline(true)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))
)

// historyDays is how many trailing days the history view charts.
const historyDays = 14

// =============================================================================
// TOP-LEVEL VIEW
// =============================================================================

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(dashTitleStyle.Render("tokenpress dashboard"))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch {
	case m.loading && m.report == nil:
		b.WriteString(m.spinner.View())
		b.WriteString(" loading usage data...\n")
	case m.err != nil:
		b.WriteString(dashErrStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	case m.report == nil:
		b.WriteString(dashDimStyle.Render("no usage data yet"))
		b.WriteString("\n")
	default:
		switch m.view {
		case ViewHistory:
			b.WriteString(m.renderHistory())
		case ViewBreakdown:
			b.WriteString(m.renderBreakdown())
		default:
			b.WriteString(m.renderSummary())
		}
	}

	b.WriteString("\n")
	b.WriteString(dashDimStyle.Render("1 summary · 2 history · 3 breakdown · r reload · q quit"))
	if !m.loaded.IsZero() {
		b.WriteString(dashDimStyle.Render("   refreshed " + m.loaded.Format("15:04:05")))
	}
	b.WriteString("\n")
	return b.String()
}

// renderTabs renders the view selector.
func (m Model) renderTabs() string {
	names := []string{"Summary", "History", "Breakdown"}
	parts := make([]string, len(names))
	for i, name := range names {
		if View(i) == m.view {
			parts[i] = tabActiveStyle.Render(name)
		} else {
			parts[i] = tabInactiveStyle.Render(name)
		}
	}
	return strings.Join(parts, "  ")
}

// =============================================================================
// SUMMARY VIEW
// =============================================================================

// renderSummary shows lifetime totals and the most recent compressions.
func (m Model) renderSummary() string {
	rep := m.report
	var b strings.Builder

	b.WriteString(dashSectionStyle.Render("Lifetime Totals"))
	b.WriteString("\n")
	writeRow(&b, "Compressions", fmt.Sprintf("%d", rep.TotalCompressions))
	writeRow(&b, "Original", fmt.Sprintf("%d tokens", rep.TotalOriginalTokens))
	writeRow(&b, "Compressed", fmt.Sprintf("%d tokens", rep.TotalCompressedTokens))
	b.WriteString(dashLabelStyle.Render("Saved"))
	b.WriteString(dashGreenStyle.Render(fmt.Sprintf("%d tokens (%.1f%%)", rep.TotalTokensSaved, rep.AverageSavingsPercent)))
	b.WriteString("\n")
	writeRow(&b, "Avg ratio", fmt.Sprintf("%.3f", rep.AverageCompressionRatio))

	if m.cfg.ShowCost && rep.TotalCostUSD > 0 {
		label := fmt.Sprintf("$%.2f", rep.TotalCostUSD)
		if rep.CostEstimated {
			label += fmt.Sprintf(" (estimated, %s)", rep.CostModelID)
		}
		b.WriteString(dashLabelStyle.Render("Cost saved"))
		b.WriteString(dashGreenStyle.Render(label))
		b.WriteString("\n")
	}

	if len(rep.Details) > 0 {
		b.WriteString("\n")
		b.WriteString(dashSectionStyle.Render("Recent Compressions"))
		b.WriteString("\n")
		count := len(rep.Details)
		if count > 5 {
			count = 5
		}
		for _, r := range rep.Details[:count] {
			line := fmt.Sprintf("  %s  %s  saved %d (%.1f%%)",
				r.Timestamp.Format("Jan 02 15:04"),
				padPath(r.SubjectPath, 32),
				r.TokensSaved,
				r.SavingsPercent,
			)
			if r.Estimated {
				line += dashDimStyle.Render(" ~")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// =============================================================================
// HISTORY VIEW
// =============================================================================

// renderHistory charts tokens saved per day over the trailing two weeks,
// merging the recent records with the daily aggregate tier.
func (m Model) renderHistory() string {
	var b strings.Builder
	b.WriteString(dashSectionStyle.Render(fmt.Sprintf("Daily Savings - Last %d Days", historyDays)))
	b.WriteString("\n")

	days := m.dailySavings(historyDays)

	maxSaved := 0
	for _, d := range days {
		if d.saved > maxSaved {
			maxSaved = d.saved
		}
	}
	if maxSaved == 0 {
		b.WriteString(dashDimStyle.Render("  no activity in this window"))
		b.WriteString("\n")
		return b.String()
	}

	for _, d := range days {
		width := d.saved * 30 / maxSaved
		b.WriteString(fmt.Sprintf("  %s %s %d saved (%d runs)\n",
			d.day.Format("Jan 02"),
			renderBar(width, 30),
			d.saved,
			d.count,
		))
	}
	return b.String()
}

// daySavings is one history row.
type daySavings struct {
	day   time.Time
	saved int
	count int
}

// dailySavings folds recent records and daily aggregates into per-day rows
// for the trailing n days, oldest first.
func (m Model) dailySavings(n int) []daySavings {
	type bucket struct{ saved, count int }
	buckets := make(map[stats.DayKey]bucket, n)

	if m.store != nil {
		for _, r := range m.store.Recent {
			k := stats.DayKeyOf(r.Timestamp)
			bk := buckets[k]
			bk.saved += r.TokensSaved
			bk.count++
			buckets[k] = bk
		}
		for k, agg := range m.store.Daily {
			bk := buckets[k]
			bk.saved += agg.TokensSaved
			bk.count += agg.Count
			buckets[k] = bk
		}
	}

	now := time.Now().UTC()
	days := make([]daySavings, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		k := stats.DayKeyOf(day)
		bk := buckets[k]
		days = append(days, daySavings{day: k.Start(), saved: bk.saved, count: bk.count})
	}
	return days
}

// =============================================================================
// BREAKDOWN VIEW
// =============================================================================

// renderBreakdown shows savings by compression level and cost by model.
func (m Model) renderBreakdown() string {
	var b strings.Builder

	b.WriteString(dashSectionStyle.Render("Savings by Level (recent records)"))
	b.WriteString("\n")
	b.WriteString(m.renderLevelBreakdown())

	if m.cfg.ShowCost && len(m.report.ByModel) > 0 {
		b.WriteString("\n")
		b.WriteString(dashSectionStyle.Render("Cost by Model"))
		b.WriteString("\n")

		models := make([]string, 0, len(m.report.ByModel))
		for id := range m.report.ByModel {
			models = append(models, id)
		}
		sort.Strings(models)

		for _, id := range models {
			mc := m.report.ByModel[id]
			b.WriteString(fmt.Sprintf("  %s  %d runs, %d tokens saved, %s\n",
				padPath(id, 24),
				mc.Count,
				mc.TokensSaved,
				dashGreenStyle.Render(fmt.Sprintf("$%.2f", mc.CostUSD)),
			))
		}
	}

	return b.String()
}

// renderLevelBreakdown aggregates the recent tier by compression level.
func (m Model) renderLevelBreakdown() string {
	type bucket struct{ saved, count int }
	byLevel := make(map[stats.Level]bucket)
	total := 0

	if m.store != nil {
		for _, r := range m.store.Recent {
			bk := byLevel[r.Level]
			bk.saved += r.TokensSaved
			bk.count++
			byLevel[r.Level] = bk
			total += r.TokensSaved
		}
	}
	if total == 0 {
		return dashDimStyle.Render("  no recent records") + "\n"
	}

	var b strings.Builder
	for _, level := range []stats.Level{stats.LevelFull, stats.LevelSignatures, stats.LevelMinimal} {
		bk, ok := byLevel[level]
		if !ok {
			continue
		}
		percent := float64(bk.saved) / float64(total) * 100
		b.WriteString(fmt.Sprintf("  %-11s %s %d saved (%.1f%%, %d runs)\n",
			string(level),
			renderBar(int(percent*25/100), 25),
			bk.saved,
			percent,
			bk.count,
		))
	}
	return b.String()
}

// =============================================================================
// HELPERS
// =============================================================================

// renderBar renders a horizontal bar of the given filled width.
func renderBar(value, maxWidth int) string {
	if value < 0 {
		value = 0
	}
	if value > maxWidth {
		value = maxWidth
	}
	filled := dashGreenStyle.Render(strings.Repeat("#", value))
	empty := dashDimStyle.Render(strings.Repeat("-", maxWidth-value))
	return filled + empty
}

// padPath truncates or pads a path to a fixed display width, keeping the
// tail, which carries the file name.
func padPath(path string, width int) string {
	w := runewidth.StringWidth(path)
	if w > width {
		return "…" + runewidth.TruncateLeft(path, w-width+1, "")
	}
	return runewidth.FillRight(path, width)
}

// writeRow writes one label/value line.
func writeRow(b *strings.Builder, label, value string) {
	b.WriteString(dashLabelStyle.Render(label))
	b.WriteString(dashValueStyle.Render(value))
	b.WriteString("\n")
}
