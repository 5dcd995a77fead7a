package insight

import (
	"fmt"

	"github.com/promolink/PromoLink/internal/models"
	"github.com/shopspring/decimal"
)

// maxStrengths caps how many strength tags a profile carries.
const maxStrengths = 5

var (
	budgetFriendlyCeiling = decimal.NewFromInt(1000)
	premiumFloor          = decimal.NewFromInt(5000)
	highlyRatedFloor      = decimal.RequireFromString("4.5")
)

// IdentifyStrengths evaluates the strength rules in fixed order and returns
// the first five tags that match. The order decides which tags survive
// truncation, so it must not be rearranged.
func IdentifyStrengths(p *models.CreatorProfile) []string {
	var strengths []string

	switch {
	case p.FollowerCount >= 100_000:
		strengths = append(strengths, "High reach potential")
	case p.FollowerCount >= 50_000:
		strengths = append(strengths, "Good reach potential")
	}

	switch {
	case p.EngagementRate >= 5:
		strengths = append(strengths, "Exceptional engagement")
	case p.EngagementRate >= 3:
		strengths = append(strengths, "Strong engagement")
	}

	if len(p.PromotionTypes) >= 3 {
		strengths = append(strengths, "Versatile content formats")
	}

	if p.Category != "" {
		strengths = append(strengths, fmt.Sprintf("%s niche expert", p.Category))
	}

	if p.PriceRange.Min.LessThan(budgetFriendlyCeiling) {
		strengths = append(strengths, "Budget-friendly rates")
	}
	if p.PriceRange.Min.GreaterThanOrEqual(premiumFloor) {
		strengths = append(strengths, "Premium influencer tier")
	}

	if p.IsAvailable() {
		strengths = append(strengths, "Currently available")
	}

	if p.SuccessfulPromotions >= 5 {
		strengths = append(strengths, "Proven track record")
	}

	if p.AverageRating.GreaterThanOrEqual(highlyRatedFloor) {
		strengths = append(strengths, "Highly rated by brands")
	}

	if len(strengths) > maxStrengths {
		strengths = strengths[:maxStrengths]
	}
	return strengths
}
