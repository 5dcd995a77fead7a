package insight

import (
	"strings"
	"testing"

	"github.com/promolink/PromoLink/internal/models"
	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

func drawProfile(rt *rapid.T) *models.CreatorProfile {
	category := rapid.SampledFrom([]string{"", "FASHION", "FOOD", "FITNESS", "TECH"}).Draw(rt, "category")
	numTypes := rapid.IntRange(0, 4).Draw(rt, "numTypes")
	types := []string{"POST", "STORY", "REEL", "VIDEO"}[:numTypes]

	return &models.CreatorProfile{
		FollowerCount:        rapid.Int64Range(0, 10_000_000).Draw(rt, "followers"),
		EngagementRate:       rapid.Float64Range(0, 100).Draw(rt, "rate"),
		Category:             category,
		PromotionTypes:       types,
		PriceRange:           models.PriceRange{Min: decimal.NewFromInt(rapid.Int64Range(0, 20_000).Draw(rt, "priceMin"))},
		AvailabilityStatus:   rapid.SampledFrom([]models.AvailabilityStatus{models.AvailabilityAvailableNow, models.AvailabilityLimited, models.AvailabilityNotAvailable}).Draw(rt, "availability"),
		SuccessfulPromotions: rapid.IntRange(0, 50).Draw(rt, "promotions"),
		AverageRating:        decimal.NewFromInt(rapid.Int64Range(0, 5).Draw(rt, "rating")),
	}
}

// *For any* profile, the composite score SHALL stay within bounds and the
// strength list SHALL never exceed five tags.
func TestProperty_InsightBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := drawProfile(rt)
		ins := ComputeInsights(p)

		if ins.Score < 0 || ins.Score > 100 {
			t.Fatalf("PROPERTY VIOLATION: score %d out of [0,100]", ins.Score)
		}
		if len(ins.Strengths) > 5 {
			t.Fatalf("PROPERTY VIOLATION: %d strengths, max is 5", len(ins.Strengths))
		}
		if ins.Strengths == nil {
			t.Fatalf("PROPERTY VIOLATION: strengths must never be nil")
		}
		if ins.LastAnalyzed == nil {
			t.Fatalf("PROPERTY VIOLATION: LastAnalyzed must be set")
		}
	})
}

// *For any* profile, recomputing insights from the same attributes SHALL
// produce identical results apart from the analysis timestamp.
func TestProperty_InsightDeterminism(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := drawProfile(rt)

		a := ComputeInsights(p)
		b := ComputeInsights(p)

		if a.EngagementQuality != b.EngagementQuality {
			t.Fatalf("PROPERTY VIOLATION: engagement %s != %s", a.EngagementQuality, b.EngagementQuality)
		}
		if a.AudienceAuthenticity != b.AudienceAuthenticity {
			t.Fatalf("PROPERTY VIOLATION: authenticity %s != %s", a.AudienceAuthenticity, b.AudienceAuthenticity)
		}
		if a.Score != b.Score {
			t.Fatalf("PROPERTY VIOLATION: score %d != %d", a.Score, b.Score)
		}
		if a.ProfileSummary != b.ProfileSummary {
			t.Fatalf("PROPERTY VIOLATION: summaries differ")
		}
		if len(a.Strengths) != len(b.Strengths) {
			t.Fatalf("PROPERTY VIOLATION: strength counts differ")
		}
		for i := range a.Strengths {
			if a.Strengths[i] != b.Strengths[i] {
				t.Fatalf("PROPERTY VIOLATION: strength %d differs: %q != %q", i, a.Strengths[i], b.Strengths[i])
			}
		}
	})
}

// *For any* profile, the summary SHALL name the follower tier and embed the
// formatted follower count.
func TestProperty_SummaryShape(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := drawProfile(rt)
		ins := ComputeInsights(p)

		if !strings.Contains(ins.ProfileSummary, "-influencer in ") {
			t.Fatalf("PROPERTY VIOLATION: summary missing tier clause: %q", ins.ProfileSummary)
		}
		if !strings.Contains(ins.ProfileSummary, FormatFollowers(p.FollowerCount)+" followers") {
			t.Fatalf("PROPERTY VIOLATION: summary missing follower count: %q", ins.ProfileSummary)
		}
	})
}
