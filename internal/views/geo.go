package views

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/civicsense/civicdash/internal/civic"
)

// GeoPoint is one mappable ticket location.
type GeoPoint struct {
	Lat      float64
	Lon      float64
	Priority string
	ID       string
	Excerpt  string
}

const excerptWidth = 50

// GeoPoints extracts the tickets that can be placed on a map: both
// coordinates present and finite. Input order is preserved.
func GeoPoints(tickets []civic.Ticket) []GeoPoint {
	points := make([]GeoPoint, 0, len(tickets))
	for _, t := range tickets {
		if t.Lat == nil || t.Lon == nil {
			continue
		}
		lat, lon := *t.Lat, *t.Lon
		if !finite(lat) || !finite(lon) {
			continue
		}
		points = append(points, GeoPoint{
			Lat:      lat,
			Lon:      lon,
			Priority: t.Priority,
			ID:       t.ID,
			Excerpt:  runewidth.Truncate(t.Description, excerptWidth, "..."),
		})
	}
	return points
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
