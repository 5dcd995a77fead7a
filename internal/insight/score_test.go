package insight

import (
	"testing"

	"github.com/promolink/PromoLink/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCalculateScore(t *testing.T) {
	tests := []struct {
		name         string
		profile      models.CreatorProfile
		engagement   models.InsightLevel
		authenticity models.InsightLevel
		want         int
	}{
		{
			name:         "bare profile is base only",
			profile:      models.CreatorProfile{},
			engagement:   models.InsightLevelLow,
			authenticity: models.InsightLevelLow,
			want:         50,
		},
		{
			name:         "medium classifiers",
			profile:      models.CreatorProfile{},
			engagement:   models.InsightLevelMedium,
			authenticity: models.InsightLevelMedium,
			want:         67,
		},
		{
			name: "follower tier bonuses stack with availability",
			profile: models.CreatorProfile{
				FollowerCount:      50_000,
				AvailabilityStatus: models.AvailabilityAvailableNow,
			},
			engagement:   models.InsightLevelLow,
			authenticity: models.InsightLevelLow,
			want:         60,
		},
		{
			name: "track record tiers",
			profile: models.CreatorProfile{
				SuccessfulPromotions: 5,
			},
			engagement:   models.InsightLevelLow,
			authenticity: models.InsightLevelLow,
			want:         56,
		},
		{
			name: "everything maxed clamps at 100",
			profile: models.CreatorProfile{
				FollowerCount:        1_000_000,
				AvailabilityStatus:   models.AvailabilityAvailableNow,
				SuccessfulPromotions: 10,
			},
			engagement:   models.InsightLevelHigh,
			authenticity: models.InsightLevelHigh,
			want:         100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateScore(&tt.profile, tt.engagement, tt.authenticity)
			assert.Equal(t, tt.want, got)
		})
	}
}
