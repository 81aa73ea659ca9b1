package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		elapsed  time.Duration
		expected string
	}{
		{"just now", 0, "0m ago"},
		{"under a minute", 30 * time.Second, "0m ago"},
		{"minutes", 45 * time.Minute, "45m ago"},
		{"exactly one hour", time.Hour, "1h ago"},
		{"ninety minutes floors to one hour", 90 * time.Minute, "1h ago"},
		{"hours", 23 * time.Hour, "23h ago"},
		{"exactly one day", 24 * time.Hour, "1d ago"},
		{"days floor", 49 * time.Hour, "2d ago"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, RelativeTime(now.Add(-tc.elapsed), now))
		})
	}
}

// TestRelativeTimeZoneNormalization checks that a zoned event
// timestamp and a local "now" produce the same label as their UTC
// equivalents.
func TestRelativeTimeZoneNormalization(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	now := time.Date(2026, 8, 30, 19, 0, 0, 0, loc)
	event := time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC) // 90m before now

	assert.Equal(t, "1h ago", RelativeTime(event, now))
}

func TestRelativeTimeFutureClamped(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "0m ago", RelativeTime(now.Add(5*time.Minute), now))
}

func TestHumanizeActivityType(t *testing.T) {
	assert.Equal(t, "Ticket Created", HumanizeActivityType("ticket_created"))
	assert.Equal(t, "Report Merged", HumanizeActivityType("report_merged"))
	assert.Equal(t, "Sms", HumanizeActivityType("sms"))
	assert.Equal(t, "Unknown", HumanizeActivityType(""))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "f251c99a", ShortID("f251c99a-05c1-4f81-b00d-e27cd09ca012"))
	assert.Equal(t, "abc", ShortID("abc"))
}
