// Package insight implements the deterministic rule table that turns a
// creator profile into an explainable scoring bundle: engagement quality and
// audience authenticity classification, strength tags, a natural-language
// summary, a composite 0-100 score, and profile completion.
//
// Every function here is pure, total, and safe for concurrent use. Missing
// numeric attributes behave as zero and missing collections as empty; these
// are ranking aids, so a sparse profile degrades its output instead of
// failing. Results are cheap enough to recompute eagerly on every profile
// write, which keeps stored insights consistent with the latest attributes.
package insight

import (
	"time"

	"github.com/promolink/PromoLink/internal/models"
)

// ComputeInsights derives the full insight bundle for a profile. Apart from
// LastAnalyzed, the output is a deterministic function of the input
// attributes.
func ComputeInsights(p *models.CreatorProfile) models.Insights {
	engagement := ClassifyEngagement(p.EngagementRate, p.FollowerCount)
	authenticity := EstimateAuthenticity(p.EngagementRate, p.FollowerCount)

	strengths := IdentifyStrengths(p)
	if strengths == nil {
		strengths = []string{}
	}

	now := time.Now().UTC()
	return models.Insights{
		EngagementQuality:    engagement,
		AudienceAuthenticity: authenticity,
		Strengths:            strengths,
		ProfileSummary:       GenerateSummary(p, engagement, authenticity),
		Score:                CalculateScore(p, engagement, authenticity),
		LastAnalyzed:         &now,
	}
}
