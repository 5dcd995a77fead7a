package insight

import (
	"testing"

	"github.com/promolink/PromoLink/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIdentifyStrengths(t *testing.T) {
	tests := []struct {
		name    string
		profile models.CreatorProfile
		want    []string
	}{
		{
			name:    "empty profile still reads budget friendly",
			profile: models.CreatorProfile{},
			want:    []string{"Budget-friendly rates"},
		},
		{
			name: "high reach wins over good reach",
			profile: models.CreatorProfile{
				FollowerCount: 100_000,
				PriceRange:    models.PriceRange{Min: decimal.NewFromInt(2000)},
			},
			want: []string{"High reach potential"},
		},
		{
			name: "good reach just under the high cutoff",
			profile: models.CreatorProfile{
				FollowerCount: 99_999,
				PriceRange:    models.PriceRange{Min: decimal.NewFromInt(2000)},
			},
			want: []string{"Good reach potential"},
		},
		{
			name: "exceptional engagement wins over strong",
			profile: models.CreatorProfile{
				EngagementRate: 5,
				PriceRange:     models.PriceRange{Min: decimal.NewFromInt(2000)},
			},
			want: []string{"Exceptional engagement"},
		},
		{
			name: "category produces a niche tag",
			profile: models.CreatorProfile{
				Category:   "FITNESS",
				PriceRange: models.PriceRange{Min: decimal.NewFromInt(2000)},
			},
			want: []string{"FITNESS niche expert"},
		},
		{
			name: "premium tier at the floor",
			profile: models.CreatorProfile{
				PriceRange: models.PriceRange{Min: decimal.NewFromInt(5000)},
			},
			want: []string{"Premium influencer tier"},
		},
		{
			name: "availability counts only when available now",
			profile: models.CreatorProfile{
				AvailabilityStatus: models.AvailabilityLimited,
				PriceRange:         models.PriceRange{Min: decimal.NewFromInt(2000)},
			},
			want: nil,
		},
		{
			name: "track record and rating",
			profile: models.CreatorProfile{
				SuccessfulPromotions: 5,
				AverageRating:        decimal.RequireFromString("4.5"),
				PriceRange:           models.PriceRange{Min: decimal.NewFromInt(2000)},
			},
			want: []string{"Proven track record", "Highly rated by brands"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IdentifyStrengths(&tt.profile)
			assert.Equal(t, tt.want, got)
		})
	}
}

// A profile that matches every rule keeps the first five tags in rule order
func TestIdentifyStrengthsTruncation(t *testing.T) {
	p := models.CreatorProfile{
		FollowerCount:        250_000,
		EngagementRate:       6,
		PromotionTypes:       []string{"STORY", "REEL", "POST"},
		Category:             "BEAUTY",
		PriceRange:           models.PriceRange{Min: decimal.NewFromInt(500)},
		AvailabilityStatus:   models.AvailabilityAvailableNow,
		SuccessfulPromotions: 12,
		AverageRating:        decimal.NewFromInt(5),
	}

	got := IdentifyStrengths(&p)
	assert.Equal(t, []string{
		"High reach potential",
		"Exceptional engagement",
		"Versatile content formats",
		"BEAUTY niche expert",
		"Budget-friendly rates",
	}, got)
}
