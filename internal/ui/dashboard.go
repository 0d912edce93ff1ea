// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// dashboard.go - Live usage dashboard for tokenpress.
//
// Keys:
//   1, s     Summary view
//   2, h     History view (daily savings)
//   3, b     Breakdown view (by model and level)
//   tab      Cycle views
//   r        Reload from disk
//   q, esc   Quit

package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tokenpress/internal/pricing"
	"github.com/jeranaias/tokenpress/internal/stats"
)

// =============================================================================
// CONFIG AND MODEL
// =============================================================================

// DefaultRefresh is the reload interval when the config gives none.
const DefaultRefresh = 5 * time.Second

// Config controls dashboard appearance and refresh behavior.
type Config struct {
	Theme    string
	Refresh  time.Duration
	ShowCost bool
}

// View selects which dashboard pane is active.
type View int

const (
	ViewSummary View = iota
	ViewHistory
	ViewBreakdown
)

// Model is the bubbletea model for the dashboard.
type Model struct {
	storage *stats.Storage
	engine  *stats.Engine
	cfg     Config

	view    View
	width   int
	height  int
	spinner spinner.Model
	loading bool

	// snapshot of the last successful load
	report *stats.Report
	store  *stats.Store
	loaded time.Time
	err    error

	// watch delivers a signal whenever the stats file changes on disk
	watch     <-chan struct{}
	stopWatch func()
}

// =============================================================================
// MESSAGES
// =============================================================================

// tickMsg fires on the periodic refresh interval.
type tickMsg time.Time

// fileChangedMsg fires when the stats file changed on disk.
type fileChangedMsg struct{}

// loadedMsg carries a fresh snapshot of the store and the lifetime report.
type loadedMsg struct {
	report *stats.Report
	store  *stats.Store
	err    error
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

// New creates a dashboard model over the given storage.
func New(storage *stats.Storage, calc *pricing.Calculator, cfg Config) Model {
	if cfg.Refresh <= 0 {
		cfg.Refresh = DefaultRefresh
	}

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	return Model{
		storage: storage,
		engine:  stats.NewEngine(storage, calc),
		cfg:     cfg,
		spinner: sp,
		loading: true,
	}
}

// Run builds the dashboard and runs it until the user quits.
func Run(storage *stats.Storage, calc *pricing.Calculator, cfg Config) error {
	m := New(storage, calc, cfg)

	if ch, stop, err := watchFile(storage.Path()); err == nil {
		m.watch = ch
		m.stopWatch = stop
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	if m.stopWatch != nil {
		m.stopWatch()
	}
	return err
}

// =============================================================================
// BUBBLETEA LIFECYCLE
// =============================================================================

// Init starts the spinner, the first load, and the refresh timer.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.loadCmd(), m.tickCmd()}
	if m.watch != nil {
		cmds = append(cmds, m.watchCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "1", "s":
			m.view = ViewSummary
		case "2", "h":
			m.view = ViewHistory
		case "3", "b":
			m.view = ViewBreakdown
		case "tab":
			m.view = (m.view + 1) % 3
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.loadCmd(), m.tickCmd())

	case fileChangedMsg:
		cmds := []tea.Cmd{m.loadCmd()}
		if m.watch != nil {
			cmds = append(cmds, m.watchCmd())
		}
		return m, tea.Batch(cmds...)

	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.report = msg.report
			m.store = msg.store
			m.loaded = time.Now()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// =============================================================================
// COMMANDS
// =============================================================================

// loadCmd reads the store and queries the lifetime report off the UI loop.
func (m Model) loadCmd() tea.Cmd {
	engine, storage := m.engine, m.storage
	return func() tea.Msg {
		rep, err := engine.Query(stats.QueryOptions{
			Selector:       stats.DateSelector{Period: "all"},
			IncludeDetails: true,
		})
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{report: rep, store: storage.Load()}
	}
}

// tickCmd schedules the next periodic refresh.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.Refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// watchCmd waits for the next file-change signal.
func (m Model) watchCmd() tea.Cmd {
	ch := m.watch
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}
