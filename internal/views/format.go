package views

import (
	"fmt"
	"time"
)

// RelativeTime buckets the elapsed time between an event and now into
// "{d}d ago", "{h}h ago" or "{m}m ago" with floor division on whole
// units: 90 minutes is "1h ago". Both instants are normalized to UTC
// before subtracting, so a zone-stripped backend timestamp cannot skew
// the label.
func RelativeTime(t, now time.Time) string {
	elapsed := now.UTC().Sub(t.UTC())
	if elapsed < 0 {
		elapsed = 0
	}
	switch {
	case elapsed >= 24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours())/24)
	case elapsed >= time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	}
}

// HumanizeActivityType turns a snake_case event type into a display
// label: "ticket_created" -> "Ticket Created".
func HumanizeActivityType(activityType string) string {
	if activityType == "" {
		return "Unknown"
	}
	return titleCase(activityType)
}

// ShortID abbreviates an opaque ticket id for display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
