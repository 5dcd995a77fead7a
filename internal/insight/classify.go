package insight

import (
	"github.com/promolink/PromoLink/internal/models"
)

// Engagement quality thresholds are tiered by audience size: engagement is
// structurally inversely correlated with follower count, so a flat cutoff
// would systematically penalize large creators.
func engagementThresholds(followerCount int64) (high, medium float64) {
	switch {
	case followerCount < 50_000:
		return 5, 2.5
	case followerCount < 500_000:
		return 3.5, 1.5
	case followerCount < 1_000_000:
		return 2.5, 1
	default:
		return 1.5, 0.5
	}
}

// ClassifyEngagement rates an engagement percentage against the creator's
// follower tier. Total: any non-negative input classifies.
func ClassifyEngagement(engagementRate float64, followerCount int64) models.InsightLevel {
	high, medium := engagementThresholds(followerCount)
	switch {
	case engagementRate >= high:
		return models.InsightLevelHigh
	case engagementRate >= medium:
		return models.InsightLevelMedium
	default:
		return models.InsightLevelLow
	}
}

// Expected engagement fraction band per follower tier.
func authenticityBand(followerCount int64) (min, max float64) {
	switch {
	case followerCount < 10_000:
		return 0.03, 0.15
	case followerCount < 100_000:
		return 0.02, 0.10
	case followerCount < 1_000_000:
		return 0.01, 0.05
	default:
		return 0.005, 0.03
	}
}

// EstimateAuthenticity compares the engagement/follower ratio to the expected
// band for the creator's tier. A ratio inside the band reads High.
//
// The Medium branch intentionally uses an OR: a ratio at or above half the
// band floor, or at or below 1.5x the ceiling, is Medium. That second clause
// holds for almost any small ratio, so Low is only reachable for ratios far
// above the band. This mirrors the shipped rule; do not tighten it without
// also changing the pinning tests.
func EstimateAuthenticity(engagementRate float64, followerCount int64) models.InsightLevel {
	min, max := authenticityBand(followerCount)
	r := engagementRate / 100

	if r >= min && r <= max {
		return models.InsightLevelHigh
	}
	if r >= min*0.5 || r <= max*1.5 {
		return models.InsightLevelMedium
	}
	return models.InsightLevelLow
}
