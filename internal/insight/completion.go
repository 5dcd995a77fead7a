package insight

import (
	"github.com/promolink/PromoLink/internal/models"
)

// Completion weighting: six essential fields at 10 points each, five quality
// fields at 8 points each. Onboarding unlocks at 60%, which the essential
// fields alone can reach.
const (
	essentialFieldPoints = 10
	qualityFieldPoints   = 8
	onboardingThreshold  = 60
)

// Completion is the result of the profile completion calculation
type Completion struct {
	Percentage          int  `json:"percentage"`
	OnboardingCompleted bool `json:"onboarding_completed"`
}

// ComputeCompletion scores field presence on the merged attribute set.
// It must always be fed the full merged profile, never an update delta.
// Total: missing fields simply score zero.
func ComputeCompletion(p *models.CreatorProfile) Completion {
	sum := 0

	// Phase 1: essential fields
	if p.Category != "" {
		sum += essentialFieldPoints
	}
	if len(p.PromotionTypes) > 0 {
		sum += essentialFieldPoints
	}
	if p.PriceRange.Min.IsPositive() || p.PriceRange.Max.IsPositive() {
		sum += essentialFieldPoints
	}
	if p.AvailabilityStatus != "" {
		sum += essentialFieldPoints
	}
	if len(p.CollaborationTypes) > 0 {
		sum += essentialFieldPoints
	}
	if p.Location.HasValue() {
		sum += essentialFieldPoints
	}

	// Phase 2: quality fields
	if p.Bio != nil && len(*p.Bio) > 10 {
		sum += qualityFieldPoints
	}
	if p.FollowerCount > 0 {
		sum += qualityFieldPoints
	}
	if p.EngagementRate > 0 {
		sum += qualityFieldPoints
	}
	if len(p.PortfolioLinks) > 0 {
		sum += qualityFieldPoints
	}
	if p.WillingToTravel != nil && *p.WillingToTravel != "" && *p.WillingToTravel != "NO" {
		sum += qualityFieldPoints
	}

	if sum > 100 {
		sum = 100
	}

	return Completion{
		Percentage:          sum,
		OnboardingCompleted: sum >= onboardingThreshold,
	}
}
