package insight

import (
	"github.com/promolink/PromoLink/internal/models"
)

// Score bounds. Every profile starts from the base; bonuses can push the
// raw total past 100, which clamps.
const (
	scoreBase = 50
	scoreMin  = 0
	scoreMax  = 100
)

// CalculateScore computes the composite 0-100 profile score from the two
// classifier results and the profile's reach, availability, and track record.
func CalculateScore(p *models.CreatorProfile, engagement, authenticity models.InsightLevel) int {
	score := scoreBase

	switch engagement {
	case models.InsightLevelHigh:
		score += 20
	case models.InsightLevelMedium:
		score += 10
	}

	switch authenticity {
	case models.InsightLevelHigh:
		score += 15
	case models.InsightLevelMedium:
		score += 7
	}

	switch {
	case p.FollowerCount >= 500_000:
		score += 10
	case p.FollowerCount >= 100_000:
		score += 7
	case p.FollowerCount >= 50_000:
		score += 5
	case p.FollowerCount >= 10_000:
		score += 3
	}

	if p.IsAvailable() {
		score += 5
	}

	switch {
	case p.SuccessfulPromotions >= 10:
		score += 10
	case p.SuccessfulPromotions >= 5:
		score += 6
	case p.SuccessfulPromotions >= 1:
		score += 3
	}

	if score > scoreMax {
		score = scoreMax
	}
	if score < scoreMin {
		score = scoreMin
	}
	return score
}
