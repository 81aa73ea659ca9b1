package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/civicsense/civicdash/internal/views"
)

var (
	// Priority colors follow the original map legend: critical red,
	// high orange, normal blue, low green.
	colorCritical = lipgloss.Color("196")
	colorHigh     = lipgloss.Color("208")
	colorNormal   = lipgloss.Color("33")
	colorLow      = lipgloss.Color("46")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			PaddingLeft(1).
			PaddingRight(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginTop(1)

	metricLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	metricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252"))

	ticketStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedTicketStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Background(lipgloss.Color("237"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	errorBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("231")).
				Background(lipgloss.Color("124")).
				PaddingLeft(1).
				PaddingRight(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

func priorityColor(priority string) lipgloss.Color {
	switch views.PriorityRank(priority) {
	case views.RankCritical:
		return colorCritical
	case views.RankHigh:
		return colorHigh
	case views.RankLow:
		return colorLow
	default:
		return colorNormal
	}
}

func sentimentColor(band views.SentimentBand) lipgloss.Color {
	switch band {
	case views.BandVeryNegative:
		return colorCritical
	case views.BandNegative:
		return colorHigh
	case views.BandPositive:
		return colorLow
	case views.BandNeutral:
		return colorNormal
	default:
		return lipgloss.Color("240")
	}
}
