package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/civicsense/civicdash/internal/civic"
)

func TestCategoryHistogram(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, CategoryHistogram(nil))
		assert.Empty(t, CategoryHistogram([]civic.Ticket{}))
	})

	t.Run("counts each ticket once", func(t *testing.T) {
		tickets := []civic.Ticket{
			{ID: "1", Category: "pothole"},
			{ID: "2", Category: "pothole"},
			{ID: "3", Category: "streetlight"},
			{ID: "4"},
			{ID: "5"},
		}
		counts := CategoryHistogram(tickets)
		assert.Equal(t, map[string]int{
			"pothole":     2,
			"streetlight": 1,
			UnknownKey:    2,
		}, counts)

		total := 0
		for _, c := range counts {
			total += c
		}
		assert.Equal(t, len(tickets), total)
	})
}

func TestPriorityHistogram(t *testing.T) {
	tickets := []civic.Ticket{
		{ID: "1", Priority: "critical"},
		{ID: "2", Priority: "critical"},
		{ID: "3", Priority: "low"},
		{ID: "4", Priority: ""},
	}
	assert.Equal(t, map[string]int{
		"Critical": 2,
		"Low":      1,
		UnknownKey: 1,
	}, PriorityHistogram(tickets))
}

func TestResolutionRate(t *testing.T) {
	tests := []struct {
		name     string
		metrics  civic.Metrics
		expected float64
		ok       bool
	}{
		{
			name:     "8 closed 2 open",
			metrics:  civic.Metrics{ClosedParentTickets: 8, OpenParentTickets: 2},
			expected: 80.0,
			ok:       true,
		},
		{
			name:    "zero denominator",
			metrics: civic.Metrics{},
			ok:      false,
		},
		{
			name:     "all open",
			metrics:  civic.Metrics{OpenParentTickets: 5},
			expected: 0.0,
			ok:       true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rate, ok := ResolutionRate(tc.metrics)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.expected, rate, 0.001)
			}
		})
	}
}

func TestDedupRate(t *testing.T) {
	t.Run("zero denominator", func(t *testing.T) {
		_, ok := DedupRate(civic.Metrics{MergedTickets: 3})
		assert.False(t, ok)
	})

	t.Run("merged over total reports", func(t *testing.T) {
		rate, ok := DedupRate(civic.Metrics{
			MergedTickets:      5,
			TotalOpenTickets:   15,
			TotalClosedTickets: 5,
		})
		assert.True(t, ok)
		assert.InDelta(t, 25.0, rate, 0.001)
	})
}

// TestHistogramPurity verifies derived views are pure: same input,
// same output, input unchanged.
func TestHistogramPurity(t *testing.T) {
	tickets := []civic.Ticket{
		{ID: "1", Category: "noise"},
		{ID: "2", Category: "pothole"},
	}
	first := CategoryHistogram(tickets)
	second := CategoryHistogram(tickets)
	assert.Equal(t, first, second)
	assert.Equal(t, "noise", tickets[0].Category)
}
