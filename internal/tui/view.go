package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/civicsense/civicdash/internal/civic"
	"github.com/civicsense/civicdash/internal/refresh"
	"github.com/civicsense/civicdash/internal/views"
)

const (
	maxTicketsShown  = 10
	maxActivityShown = 8
	maxBarWidth      = 30
)

func renderDashboard(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n")

	if m.status.State == refresh.StateError && m.status.LastError != "" {
		banner := fmt.Sprintf("⚠ %s — showing last good data from %s",
			m.status.LastError, views.RelativeTime(m.status.LastSuccess, m.now))
		b.WriteString(errorBannerStyle.Render(banner))
		b.WriteString("\n")
	}

	b.WriteString(renderMetrics(m.snapshot.Metrics))

	switch m.tab {
	case tabAnalytics:
		b.WriteString(renderAnalytics(m.snapshot))
	case tabMap:
		b.WriteString(renderGeo(m.snapshot.AllTickets))
	default:
		b.WriteString(renderTickets(m.snapshot.ParentTickets, m.selected))
		b.WriteString(renderActivity(m.snapshot.RecentActivity, m))
	}

	b.WriteString(renderFooter(m))
	return b.String()
}

func renderHeader(m Model) string {
	org := m.snapshot.Organization.Name
	if org == "" {
		org = m.snapshot.Organization.ID
	}
	tabName := [...]string{"overview", "analytics", "map"}[m.tab]

	header := fmt.Sprintf("civicdash │ %s │ %s", org, tabName)
	if len(m.orgs) > 1 {
		header = fmt.Sprintf("civicdash │ %s (%d orgs) │ %s", org, len(m.orgs), tabName)
	}
	if m.status.State == refresh.StateFetching {
		header += " " + m.spinner.View()
	}
	return headerStyle.Render(header)
}

func renderMetrics(metrics civic.Metrics) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📈 Live Metrics"))
	b.WriteString("\n")

	cells := []struct {
		label string
		value string
	}{
		{"Open Tickets", fmt.Sprintf("%d", metrics.TotalOpenTickets)},
		{"Critical", fmt.Sprintf("%d", metrics.CriticalOpen)},
		{"Reports", fmt.Sprintf("%d", metrics.TotalReports)},
		{"Avg Sentiment", views.FormatSentimentValue(metrics.AvgSentiment)},
		{"Merged", fmt.Sprintf("%d", metrics.MergedTickets)},
	}

	parts := make([]string, 0, len(cells))
	for _, cell := range cells {
		parts = append(parts,
			metricLabelStyle.Render(cell.label)+" "+metricValueStyle.Render(cell.value))
	}
	b.WriteString("  " + strings.Join(parts, "  │  "))
	b.WriteString("\n")
	return b.String()
}

func renderTickets(tickets []civic.Ticket, selected int) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("🎫 Active Parent Tickets (%d)", len(tickets))))
	b.WriteString("\n")

	if len(tickets) == 0 {
		b.WriteString(emptyStyle.Render("  (no active parent tickets)"))
		b.WriteString("\n")
		return b.String()
	}

	sorted := views.SortByUrgency(tickets)
	shown := sorted
	if len(shown) > maxTicketsShown {
		shown = shown[:maxTicketsShown]
	}

	for i, t := range shown {
		location := t.CrossStreet
		if location == "" {
			location = "location not specified"
		}
		desc := runewidth.Truncate(t.Description, 60, "...")

		line := fmt.Sprintf("  #%s %s │ 📍 %s │ %s",
			views.ShortID(t.ID),
			lipgloss.NewStyle().Foreground(priorityColor(t.Priority)).Render(views.PriorityLabel(t.Priority)),
			location, desc)

		meta := fmt.Sprintf("      %s",
			lipgloss.NewStyle().
				Foreground(sentimentColor(views.ClassifySentiment(t.SentimentScore))).
				Render(views.FormatSentiment(t.SentimentScore)))
		if t.ChildCount > 0 {
			meta += fmt.Sprintf(" │ %d merged reports", t.ChildCount)
		}

		style := ticketStyle
		if i == selected {
			style = selectedTicketStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
		b.WriteString(style.Render(meta))
		b.WriteString("\n")
	}

	if len(sorted) > maxTicketsShown {
		b.WriteString(emptyStyle.Render(fmt.Sprintf("  … %d more", len(sorted)-maxTicketsShown)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderAnalytics(snap *civic.Snapshot) string {
	var b strings.Builder

	b.WriteString(renderHistogram("📊 Issues by Category", views.CategoryHistogram(snap.AllTickets)))
	b.WriteString(renderHistogram("🚦 Tickets by Priority", views.PriorityHistogram(snap.ParentTickets)))

	b.WriteString(sectionStyle.Render("⚙ Performance"))
	b.WriteString("\n")
	if rate, ok := views.ResolutionRate(snap.Metrics); ok {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			metricLabelStyle.Render("Resolution Rate"),
			metricValueStyle.Render(fmt.Sprintf("%.1f%%", rate))))
	}
	if rate, ok := views.DedupRate(snap.Metrics); ok {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			metricLabelStyle.Render("Deduplication Rate"),
			metricValueStyle.Render(fmt.Sprintf("%.1f%%", rate))))
	}
	b.WriteString(fmt.Sprintf("  %s %s  %s %s\n",
		metricLabelStyle.Render("Reports Today"),
		metricValueStyle.Render(fmt.Sprintf("%d", snap.Metrics.ReportsToday)),
		metricLabelStyle.Render("Tickets Today"),
		metricValueStyle.Render(fmt.Sprintf("%d", snap.Metrics.TicketsToday))))
	return b.String()
}

func renderHistogram(title string, counts map[string]int) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")

	if len(counts) == 0 {
		b.WriteString(emptyStyle.Render("  (no data)"))
		b.WriteString("\n")
		return b.String()
	}

	type row struct {
		key   string
		count int
	}
	rows := make([]row, 0, len(counts))
	maxCount := 0
	labelWidth := 0
	for k, v := range counts {
		rows = append(rows, row{k, v})
		if v > maxCount {
			maxCount = v
		}
		if w := runewidth.StringWidth(k); w > labelWidth {
			labelWidth = w
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].key < rows[j].key
	})

	for _, r := range rows {
		width := r.count * maxBarWidth / maxCount
		if width == 0 {
			width = 1
		}
		b.WriteString(fmt.Sprintf("  %s %s %d\n",
			runewidth.FillRight(r.key, labelWidth),
			barStyle.Render(strings.Repeat("█", width)),
			r.count))
	}
	return b.String()
}

func renderActivity(events []civic.ActivityEvent, m Model) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🕒 Recent Activity"))
	b.WriteString("\n")

	if len(events) == 0 {
		b.WriteString(emptyStyle.Render("  (no recent activity)"))
		b.WriteString("\n")
		return b.String()
	}

	shown := events
	if len(shown) > maxActivityShown {
		shown = shown[:maxActivityShown]
	}
	for _, e := range shown {
		b.WriteString(fmt.Sprintf("  %s %s: %s\n",
			metricValueStyle.Render(views.RelativeTime(e.Timestamp.Time, m.now)),
			views.HumanizeActivityType(e.Type),
			runewidth.Truncate(e.Description, 70, "...")))
	}
	return b.String()
}

func renderGeo(tickets []civic.Ticket) string {
	var b strings.Builder
	points := views.GeoPoints(tickets)
	b.WriteString(sectionStyle.Render(fmt.Sprintf("🗺 Ticket Locations (%d)", len(points))))
	b.WriteString("\n")

	if len(points) == 0 {
		b.WriteString(emptyStyle.Render("  (no tickets with geographic coordinates)"))
		b.WriteString("\n")
		return b.String()
	}

	for _, p := range points {
		b.WriteString(fmt.Sprintf("  %9.5f, %10.5f  %s  #%s %s\n",
			p.Lat, p.Lon,
			lipgloss.NewStyle().Foreground(priorityColor(p.Priority)).Render(views.PriorityLabel(p.Priority)),
			views.ShortID(p.ID),
			p.Excerpt))
	}
	return b.String()
}

func renderNoData(status refresh.Status, spinnerView string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("civicdash"))
	b.WriteString("\n\n")

	if status.State == refresh.StateFetching {
		b.WriteString(fmt.Sprintf("  %s loading live data…\n", spinnerView))
		return b.String()
	}

	b.WriteString("  No data available.\n")
	if status.LastError != "" {
		b.WriteString(errorBannerStyle.Render("⚠ " + status.LastError))
		b.WriteString("\n")
	}
	b.WriteString(emptyStyle.Render("  Check that the CivicSense API is reachable. r:retry q:quit"))
	b.WriteString("\n")
	return b.String()
}

func renderFooter(m Model) string {
	updated := "never"
	if !m.status.LastSuccess.IsZero() {
		updated = m.status.LastSuccess.Local().Format("15:04:05")
	}
	footer := fmt.Sprintf("Last updated: %s │ state: %s │ 1:overview 2:analytics 3:map r:refresh q:quit",
		updated, m.status.State)
	return footerStyle.Render(footer)
}
