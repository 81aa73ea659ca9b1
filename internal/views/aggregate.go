package views

import "github.com/civicsense/civicdash/internal/civic"

// UnknownKey buckets tickets whose category or priority is absent.
const UnknownKey = "Unknown"

// CategoryHistogram counts tickets per category. Every ticket is
// counted exactly once; tickets without a category land under
// UnknownKey.
func CategoryHistogram(tickets []civic.Ticket) map[string]int {
	counts := make(map[string]int)
	for _, t := range tickets {
		key := t.Category
		if key == "" {
			key = UnknownKey
		}
		counts[key]++
	}
	return counts
}

// PriorityHistogram counts tickets per display priority label.
func PriorityHistogram(tickets []civic.Ticket) map[string]int {
	counts := make(map[string]int)
	for _, t := range tickets {
		key := PriorityLabel(t.Priority)
		if t.Priority == "" {
			key = UnknownKey
		}
		counts[key]++
	}
	return counts
}

// ResolutionRate is the percentage of parent tickets that are closed.
// ok is false when no parent tickets exist; callers omit the metric
// rather than render a division by zero.
func ResolutionRate(m civic.Metrics) (rate float64, ok bool) {
	total := m.ClosedParentTickets + m.OpenParentTickets
	if total == 0 {
		return 0, false
	}
	return float64(m.ClosedParentTickets) / float64(total) * 100, true
}

// DedupRate is the percentage of all reports that were merged into a
// parent as duplicates, with the same zero-denominator guard.
func DedupRate(m civic.Metrics) (rate float64, ok bool) {
	total := m.TotalOpenTickets + m.TotalClosedTickets
	if total == 0 {
		return 0, false
	}
	return float64(m.MergedTickets) / float64(total) * 100, true
}
