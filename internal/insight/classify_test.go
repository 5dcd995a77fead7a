package insight

import (
	"testing"

	"github.com/promolink/PromoLink/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassifyEngagement(t *testing.T) {
	tests := []struct {
		name      string
		rate      float64
		followers int64
		want      models.InsightLevel
	}{
		{"small audience high rate", 5.0, 49_999, models.InsightLevelHigh},
		{"small audience at high threshold", 5.0, 10_000, models.InsightLevelHigh},
		{"small audience medium rate", 2.5, 49_999, models.InsightLevelMedium},
		{"small audience low rate", 2.4, 49_999, models.InsightLevelLow},
		{"mid audience crosses into lower tier", 5.0, 50_000, models.InsightLevelHigh},
		{"mid audience high threshold", 3.5, 50_000, models.InsightLevelHigh},
		{"mid audience medium", 1.5, 499_999, models.InsightLevelMedium},
		{"large audience medium", 2.0, 600_000, models.InsightLevelMedium},
		{"large audience high", 2.5, 600_000, models.InsightLevelHigh},
		{"mega audience high", 1.5, 1_000_000, models.InsightLevelHigh},
		{"mega audience medium", 0.5, 2_000_000, models.InsightLevelMedium},
		{"mega audience low", 0.4, 2_000_000, models.InsightLevelLow},
		{"zero rate", 0, 100, models.InsightLevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyEngagement(tt.rate, tt.followers)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEstimateAuthenticity(t *testing.T) {
	tests := []struct {
		name      string
		rate      float64
		followers int64
		want      models.InsightLevel
	}{
		// Inside the expected band for the tier reads High
		{"tiny audience in band", 5.0, 5_000, models.InsightLevelHigh},
		{"tiny audience at band floor", 3.0, 5_000, models.InsightLevelHigh},
		{"tiny audience at band ceiling", 15.0, 5_000, models.InsightLevelHigh},
		{"small audience in band", 5.0, 50_000, models.InsightLevelHigh},
		{"mid audience in band", 3.0, 500_000, models.InsightLevelHigh},
		{"mega audience in band", 1.0, 2_000_000, models.InsightLevelHigh},

		// Outside the band falls to Medium
		{"tiny audience below band", 1.0, 5_000, models.InsightLevelMedium},
		{"tiny audience above band", 20.0, 5_000, models.InsightLevelMedium},
		{"zero rate", 0, 5_000, models.InsightLevelMedium},
		{"mega audience above band", 50.0, 2_000_000, models.InsightLevelMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateAuthenticity(tt.rate, tt.followers)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The Medium rule's OR means one of its clauses holds for every ratio that
// is not High, so Low can never be produced. Downstream scoring leans on
// this floor; this test pins the behavior.
func TestEstimateAuthenticityNeverLow(t *testing.T) {
	rates := []float64{0, 0.001, 0.5, 1, 3, 15, 50, 100, 1000}
	followers := []int64{0, 1, 9_999, 10_000, 99_999, 100_000, 999_999, 1_000_000, 50_000_000}

	for _, rate := range rates {
		for _, fc := range followers {
			got := EstimateAuthenticity(rate, fc)
			assert.NotEqual(t, models.InsightLevelLow, got,
				"rate=%v followers=%d", rate, fc)
		}
	}
}
