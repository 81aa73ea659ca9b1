package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(f float64) *float64 { return &f }

// TestClassifySentiment checks band boundaries: boundary values belong
// to the lower (more negative) band.
func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		name     string
		score    *float64
		expected SentimentBand
	}{
		{"missing score", nil, BandUnknown},
		{"minimum", fptr(-1.0), BandVeryNegative},
		{"very negative boundary", fptr(-0.5), BandVeryNegative},
		{"just above very negative", fptr(-0.49), BandNegative},
		{"negative boundary", fptr(-0.2), BandNegative},
		{"just above negative", fptr(-0.19), BandNeutral},
		{"zero", fptr(0), BandNeutral},
		{"neutral boundary", fptr(0.2), BandNeutral},
		{"just above neutral", fptr(0.21), BandPositive},
		{"maximum", fptr(1.0), BandPositive},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifySentiment(tc.score))
		})
	}
}

// TestClassifySentimentTotal sweeps the whole range: every score maps
// to exactly one of the four real bands, never Unknown.
func TestClassifySentimentTotal(t *testing.T) {
	for s := -1.0; s <= 1.0; s += 0.01 {
		band := ClassifySentiment(&s)
		assert.NotEqual(t, BandUnknown, band, "score %f", s)
	}
}

func TestFormatSentiment(t *testing.T) {
	assert.Equal(t, "Very Negative (-0.50)", FormatSentiment(fptr(-0.5)))
	assert.Equal(t, "Negative (-0.30)", FormatSentiment(fptr(-0.3)))
	assert.Equal(t, "Positive (0.80)", FormatSentiment(fptr(0.8)))
	assert.Equal(t, "Unknown", FormatSentiment(nil))
}

func TestFormatSentimentValue(t *testing.T) {
	assert.Equal(t, "N/A", FormatSentimentValue(nil))
	assert.Equal(t, "-0.32", FormatSentimentValue(fptr(-0.32)))
}
