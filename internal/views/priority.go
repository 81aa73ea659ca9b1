// Package views turns a dashboard snapshot into the pure values the
// presentation layer renders: priority ranks, sentiment bands,
// histograms, rates, geo points and relative-time labels. Nothing here
// does I/O or holds state; every function is deterministic in its
// inputs so renders never tear across a snapshot boundary.
package views

import (
	"sort"
	"strings"

	"github.com/civicsense/civicdash/internal/civic"
)

// Priority ranks, lower is more urgent. Unknown or missing priorities
// rank alongside normal.
const (
	RankCritical = iota
	RankHigh
	RankNormal
	RankLow
)

// PriorityRank maps a raw priority string to its urgency rank.
func PriorityRank(priority string) int {
	switch strings.ToLower(priority) {
	case "critical":
		return RankCritical
	case "high":
		return RankHigh
	case "low":
		return RankLow
	default:
		return RankNormal
	}
}

// PriorityLabel maps a raw priority to its display label. Known values
// get canonical labels; anything else passes through title-cased so a
// new backend priority still renders.
func PriorityLabel(priority string) string {
	switch strings.ToLower(priority) {
	case "critical":
		return "Critical"
	case "high":
		return "High"
	case "normal", "":
		return "Normal"
	case "low":
		return "Low"
	default:
		return titleCase(priority)
	}
}

// SortByUrgency returns the tickets ordered most urgent first, newest
// first within a rank. The input slice is not modified.
func SortByUrgency(tickets []civic.Ticket) []civic.Ticket {
	sorted := append([]civic.Ticket(nil), tickets...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := PriorityRank(sorted[i].Priority), PriorityRank(sorted[j].Priority)
		if ri != rj {
			return ri < rj
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt.Time)
	})
	return sorted
}

func titleCase(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '_' || r == ' ' || r == '-'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
