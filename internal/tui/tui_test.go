package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicsense/civicdash/internal/civic"
	"github.com/civicsense/civicdash/internal/refresh"
)

type fakeProvider struct {
	status          refresh.Status
	snapshot        *civic.Snapshot
	refreshRequests int
}

func (p *fakeProvider) Status() refresh.Status { return p.status }

func (p *fakeProvider) Snapshot() (*civic.Snapshot, bool) {
	return p.snapshot, p.snapshot != nil
}

func (p *fakeProvider) RequestRefresh() { p.refreshRequests++ }

func fptr(f float64) *float64 { return &f }

func testProvider() *fakeProvider {
	now := time.Now().UTC()
	return &fakeProvider{
		status: refresh.Status{
			State:       refresh.StateIdle,
			LastSuccess: now,
			HasSnapshot: true,
		},
		snapshot: &civic.Snapshot{
			Organization: civic.Organization{ID: "org-1", Name: "Demo City"},
			Metrics: civic.Metrics{
				TotalOpenTickets:    12,
				CriticalOpen:        1,
				OpenParentTickets:   2,
				ClosedParentTickets: 8,
				MergedTickets:       5,
				TotalReports:        20,
				AvgSentiment:        fptr(-0.34),
			},
			ParentTickets: []civic.Ticket{
				{
					ID:             "f251c99a-05c1",
					Category:       "pothole",
					Description:    "Huge pothole on Elm Street near the school",
					CrossStreet:    "Elm & 3rd",
					Priority:       "critical",
					SentimentScore: fptr(-0.6),
					ChildCount:     4,
				},
				{ID: "b2", Priority: "low", Description: "Faded crosswalk paint"},
			},
			AllTickets: []civic.Ticket{
				{ID: "a1", Category: "pothole", Lat: fptr(37.77), Lon: fptr(-122.41), Priority: "critical", Description: "Pothole"},
				{ID: "a2", Category: "noise"},
			},
			RecentActivity: []civic.ActivityEvent{
				{
					Timestamp:   civic.Timestamp{Time: now.Add(-90 * time.Minute)},
					Type:        "ticket_created",
					Description: "New pothole report",
				},
			},
			FetchedAt: now,
		},
	}
}

func TestViewOverview(t *testing.T) {
	m := NewModel(testProvider(), []civic.Organization{{ID: "org-1", Name: "Demo City"}}, time.Second)
	view := m.View()

	assert.Contains(t, view, "Demo City")
	assert.Contains(t, view, "Live Metrics")
	assert.Contains(t, view, "12")
	assert.Contains(t, view, "-0.34")
	assert.Contains(t, view, "f251c99a")
	assert.Contains(t, view, "Critical")
	assert.Contains(t, view, "Elm & 3rd")
	assert.Contains(t, view, "4 merged reports")
	assert.Contains(t, view, "1h ago")
	assert.Contains(t, view, "Ticket Created")
}

func TestViewAnalyticsTab(t *testing.T) {
	m := NewModel(testProvider(), nil, time.Second)
	m.tab = tabAnalytics
	view := m.View()

	assert.Contains(t, view, "Issues by Category")
	assert.Contains(t, view, "pothole")
	assert.Contains(t, view, "Tickets by Priority")
	assert.Contains(t, view, "Resolution Rate")
	assert.Contains(t, view, "80.0%")
	assert.Contains(t, view, "Deduplication Rate")
}

func TestViewMapTab(t *testing.T) {
	m := NewModel(testProvider(), nil, time.Second)
	m.tab = tabMap
	view := m.View()

	assert.Contains(t, view, "Ticket Locations (1)")
	assert.Contains(t, view, "37.77")
	assert.Contains(t, view, "#a1")
}

func TestViewErrorBannerKeepsData(t *testing.T) {
	provider := testProvider()
	provider.status.State = refresh.StateError
	provider.status.LastError = "API error: HTTP 500"

	m := NewModel(provider, nil, time.Second)
	view := m.View()

	// Advisory banner renders over the last good snapshot, not
	// instead of it.
	assert.Contains(t, view, "API error: HTTP 500")
	assert.Contains(t, view, "Live Metrics")
	assert.Contains(t, view, "f251c99a")
}

func TestViewNoData(t *testing.T) {
	provider := &fakeProvider{
		status: refresh.Status{State: refresh.StateError, LastError: "request timed out"},
	}
	m := NewModel(provider, nil, time.Second)
	view := m.View()

	assert.Contains(t, view, "No data available")
	assert.Contains(t, view, "request timed out")
	assert.NotContains(t, view, "Live Metrics")
}

func TestRefreshKeyRequestsRefresh(t *testing.T) {
	provider := testProvider()
	m := NewModel(provider, nil, time.Second)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	_ = updated

	assert.Equal(t, 1, provider.refreshRequests)
}

func TestTabCycling(t *testing.T) {
	m := NewModel(testProvider(), nil, time.Second)
	require.Equal(t, tabOverview, m.tab)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Equal(t, tabAnalytics, m.tab)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Equal(t, tabMap, m.tab)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Equal(t, tabOverview, m.tab)
}

func TestTickRefreshesFromProvider(t *testing.T) {
	provider := testProvider()
	m := NewModel(provider, nil, time.Second)

	provider.snapshot.Metrics.TotalOpenTickets = 99
	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)

	assert.NotNil(t, cmd) // reschedules the next tick
	assert.True(t, strings.Contains(m.View(), "99"))
}

func TestSelectionClampedWhenListShrinks(t *testing.T) {
	provider := testProvider()
	m := NewModel(provider, nil, time.Second)
	m.selected = 1

	provider.snapshot = &civic.Snapshot{
		Organization:   provider.snapshot.Organization,
		ParentTickets:  []civic.Ticket{},
		AllTickets:     []civic.Ticket{},
		RecentActivity: []civic.ActivityEvent{},
	}
	next, _ := m.Update(tickMsg(time.Now()))
	m = next.(Model)

	assert.Equal(t, 0, m.selected)
	assert.Contains(t, m.View(), "no active parent tickets")
}
