package insight

import (
	"testing"

	"github.com/promolink/PromoLink/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestComputeCompletion(t *testing.T) {
	tests := []struct {
		name           string
		profile        models.CreatorProfile
		wantPercentage int
		wantOnboarded  bool
	}{
		{
			name:           "empty profile",
			profile:        models.CreatorProfile{},
			wantPercentage: 0,
			wantOnboarded:  false,
		},
		{
			name: "all six essential fields hit the onboarding threshold",
			profile: models.CreatorProfile{
				Category:           "FOOD",
				PromotionTypes:     []string{"POST"},
				PriceRange:         models.PriceRange{Min: decimal.NewFromInt(100)},
				AvailabilityStatus: models.AvailabilityLimited,
				CollaborationTypes: []string{"PAID"},
				Location:           models.Location{City: strPtr("Austin")},
			},
			wantPercentage: 60,
			wantOnboarded:  true,
		},
		{
			name: "five essentials stay under the threshold",
			profile: models.CreatorProfile{
				Category:           "FOOD",
				PromotionTypes:     []string{"POST"},
				PriceRange:         models.PriceRange{Min: decimal.NewFromInt(100)},
				AvailabilityStatus: models.AvailabilityLimited,
				CollaborationTypes: []string{"PAID"},
			},
			wantPercentage: 50,
			wantOnboarded:  false,
		},
		{
			name: "quality fields alone cannot onboard",
			profile: models.CreatorProfile{
				Bio:             strPtr("Long enough biography"),
				FollowerCount:   5_000,
				EngagementRate:  3.2,
				PortfolioLinks:  []string{"https://example.com"},
				WillingToTravel: strPtr("YES"),
			},
			wantPercentage: 40,
			wantOnboarded:  false,
		},
		{
			name: "short bio and NO travel do not count",
			profile: models.CreatorProfile{
				Bio:             strPtr("too short"),
				WillingToTravel: strPtr("NO"),
				FollowerCount:   5_000,
			},
			wantPercentage: 8,
			wantOnboarded:  false,
		},
		{
			name: "full profile caps at 100",
			profile: models.CreatorProfile{
				Category:           "FOOD",
				PromotionTypes:     []string{"POST"},
				PriceRange:         models.PriceRange{Max: decimal.NewFromInt(500)},
				AvailabilityStatus: models.AvailabilityAvailableNow,
				CollaborationTypes: []string{"PAID"},
				Location:           models.Location{District: strPtr("SoHo")},
				Bio:                strPtr("Long enough biography"),
				FollowerCount:      5_000,
				EngagementRate:     3.2,
				PortfolioLinks:     []string{"https://example.com"},
				WillingToTravel:    strPtr("YES"),
			},
			wantPercentage: 100,
			wantOnboarded:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCompletion(&tt.profile)
			assert.Equal(t, tt.wantPercentage, got.Percentage)
			assert.Equal(t, tt.wantOnboarded, got.OnboardingCompleted)
		})
	}
}
