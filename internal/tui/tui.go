// Package tui renders the dashboard in the terminal. It is a pure
// consumer: all data arrives through the Provider interface as a
// controller status plus the latest complete snapshot, and every
// render derives from that one snapshot so panels never mix data from
// two fetches.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/civicsense/civicdash/internal/civic"
	"github.com/civicsense/civicdash/internal/refresh"
)

// Provider is the slice of the refresh controller the TUI reads from.
// The TUI never talks to the API client directly.
type Provider interface {
	Status() refresh.Status
	Snapshot() (*civic.Snapshot, bool)
	RequestRefresh()
}

type tab int

const (
	tabOverview tab = iota
	tabAnalytics
	tabMap
	tabCount
)

type Model struct {
	provider        Provider
	refreshInterval time.Duration
	keys            KeyMap

	status   refresh.Status
	snapshot *civic.Snapshot
	orgs     []civic.Organization
	now      time.Time

	tab      tab
	selected int // index into the urgency-sorted parent ticket list
	width    int
	height   int
	spinner  spinner.Model
}

type tickMsg time.Time

// NewModel builds the dashboard model. orgs is the one-shot
// organization listing fetched at startup; it only decorates the
// header and may be empty.
func NewModel(provider Provider, orgs []civic.Organization, refreshInterval time.Duration) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = headerStyle

	snap, _ := provider.Snapshot()
	return Model{
		provider:        provider,
		refreshInterval: refreshInterval,
		keys:            DefaultKeyMap,
		status:          provider.Status(),
		snapshot:        snap,
		orgs:            orgs,
		now:             time.Now(),
		spinner:         sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd(m.refreshInterval))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.provider.RequestRefresh()
			m.status = m.provider.Status()
			return m, nil
		case key.Matches(msg, m.keys.TabOverview):
			m.tab = tabOverview
		case key.Matches(msg, m.keys.TabAnalytics):
			m.tab = tabAnalytics
		case key.Matches(msg, m.keys.TabMap):
			m.tab = tabMap
		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % tabCount
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, m.keys.Down):
			if m.snapshot != nil && m.selected < len(m.snapshot.ParentTickets)-1 {
				m.selected++
			}
		}
		return m, nil

	case tickMsg:
		m.status = m.provider.Status()
		if snap, ok := m.provider.Snapshot(); ok {
			m.snapshot = snap
		}
		m.now = time.Time(msg)
		// Clamp selection if the ticket list shrank.
		if m.snapshot != nil && m.selected >= len(m.snapshot.ParentTickets) {
			m.selected = len(m.snapshot.ParentTickets) - 1
			if m.selected < 0 {
				m.selected = 0
			}
		}
		return m, tickCmd(m.refreshInterval)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	if !m.status.HasSnapshot || m.snapshot == nil {
		return renderNoData(m.status, m.spinner.View())
	}

	return renderDashboard(m)
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
