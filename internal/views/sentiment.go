package views

import "fmt"

// SentimentBand partitions the [-1, 1] sentiment range. Boundary
// values belong to the lower (more negative) band: -0.5 is Negative's
// floor, not VeryNegative's ceiling.
type SentimentBand int

const (
	BandUnknown SentimentBand = iota
	BandVeryNegative
	BandNegative
	BandNeutral
	BandPositive
)

func (b SentimentBand) String() string {
	switch b {
	case BandVeryNegative:
		return "Very Negative"
	case BandNegative:
		return "Negative"
	case BandNeutral:
		return "Neutral"
	case BandPositive:
		return "Positive"
	default:
		return "Unknown"
	}
}

// ClassifySentiment buckets a sentiment score. A missing score is
// BandUnknown, never silently Neutral.
func ClassifySentiment(score *float64) SentimentBand {
	if score == nil {
		return BandUnknown
	}
	switch s := *score; {
	case s <= -0.5:
		return BandVeryNegative
	case s <= -0.2:
		return BandNegative
	case s <= 0.2:
		return BandNeutral
	default:
		return BandPositive
	}
}

// FormatSentiment renders a score as its band plus value, e.g.
// "Negative (-0.32)", or "Unknown" when absent.
func FormatSentiment(score *float64) string {
	band := ClassifySentiment(score)
	if band == BandUnknown {
		return band.String()
	}
	return fmt.Sprintf("%s (%.2f)", band, *score)
}

// FormatSentimentValue renders a bare score, "N/A" when absent.
func FormatSentimentValue(score *float64) string {
	if score == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *score)
}
