package civic

import (
	"encoding/json"
	"time"
)

// Organization identifies a tenant of the CivicSense backend.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type organizationList struct {
	Organizations []Organization `json:"organizations"`
}

// Metrics carries the aggregate counters the backend computes per
// organization. Missing keys decode to zero; avg_sentiment is a pointer
// because "no sentiment yet" must stay distinguishable from 0.0.
type Metrics struct {
	TotalOpenTickets    int      `json:"total_open_tickets"`
	OpenParentTickets   int      `json:"open_parent_tickets"`
	ClosedParentTickets int      `json:"closed_parent_tickets"`
	TotalClosedTickets  int      `json:"total_closed_tickets"`
	CriticalOpen        int      `json:"critical_open"`
	MergedTickets       int      `json:"merged_tickets"`
	TotalReports        int      `json:"total_reports"`
	ReportsToday        int      `json:"reports_today"`
	TicketsToday        int      `json:"tickets_today"`
	AvgSentiment        *float64 `json:"avg_sentiment"`
}

// Ticket is a single issue record. Parent tickets are cluster
// representatives; duplicates folded into a parent show up only in its
// ChildCount. Lat/Lon and SentimentScore are optional on the wire.
type Ticket struct {
	ID             string    `json:"id"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	CrossStreet    string    `json:"cross_street"`
	Priority       string    `json:"priority"`
	Status         string    `json:"status"`
	CreatedAt      Timestamp `json:"created_at"`
	SentimentScore *float64  `json:"sentiment_score"`
	ChildCount     int       `json:"child_count"`
	Lat            *float64  `json:"lat"`
	Lon            *float64  `json:"lon"`
}

// ActivityEvent is one entry of the recent-activity feed. The backend
// serves events newest first; clients preserve that order.
type ActivityEvent struct {
	Timestamp   Timestamp
	Type        string
	Description string
}

// UnmarshalJSON accepts both field spellings the two backend variants
// use: timestamp/activity_time and type/activity_type.
func (e *ActivityEvent) UnmarshalJSON(data []byte) error {
	var raw struct {
		Timestamp    Timestamp `json:"timestamp"`
		ActivityTime Timestamp `json:"activity_time"`
		Type         string    `json:"type"`
		ActivityType string    `json:"activity_type"`
		Description  string    `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Timestamp = raw.Timestamp
	if e.Timestamp.IsZero() {
		e.Timestamp = raw.ActivityTime
	}
	e.Type = raw.Type
	if e.Type == "" {
		e.Type = raw.ActivityType
	}
	e.Description = raw.Description
	return nil
}

// Snapshot is one complete dashboard fetch. It is built only from a
// successful response and never mutated afterwards; a failed fetch
// leaves the previous snapshot in place.
type Snapshot struct {
	Organization   Organization    `json:"organization"`
	Metrics        Metrics         `json:"metrics"`
	ParentTickets  []Ticket        `json:"parentTickets"`
	AllTickets     []Ticket        `json:"allTickets"`
	RecentActivity []ActivityEvent `json:"recentActivity"`
	FetchedAt      time.Time       `json:"-"`
}

// normalize fills nil slices so downstream code never branches on
// absent fields.
func (s *Snapshot) normalize() {
	if s.ParentTickets == nil {
		s.ParentTickets = []Ticket{}
	}
	if s.AllTickets == nil {
		s.AllTickets = []Ticket{}
	}
	if s.RecentActivity == nil {
		s.RecentActivity = []ActivityEvent{}
	}
}

// Timestamp wraps time.Time with lenient decoding. The backend is
// inconsistent about zone suffixes, so every accepted layout is
// normalized to UTC before any arithmetic happens on it.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	// Unparseable timestamps degrade to zero rather than failing the
	// whole snapshot decode.
	t.Time = time.Time{}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}
