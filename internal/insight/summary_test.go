package insight

import (
	"testing"

	"github.com/promolink/PromoLink/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTierLabel(t *testing.T) {
	assert.Equal(t, "nano", TierLabel(0))
	assert.Equal(t, "nano", TierLabel(9_999))
	assert.Equal(t, "micro", TierLabel(10_000))
	assert.Equal(t, "micro", TierLabel(99_999))
	assert.Equal(t, "mid-tier", TierLabel(100_000))
	assert.Equal(t, "mid-tier", TierLabel(499_999))
	assert.Equal(t, "macro", TierLabel(500_000))
	assert.Equal(t, "macro", TierLabel(999_999))
	assert.Equal(t, "mega", TierLabel(1_000_000))
}

func TestFormatFollowers(t *testing.T) {
	assert.Equal(t, "987", FormatFollowers(987))
	assert.Equal(t, "1.0K", FormatFollowers(1_000))
	assert.Equal(t, "45.0K", FormatFollowers(45_000))
	assert.Equal(t, "999.9K", FormatFollowers(999_949))
	assert.Equal(t, "1.0M", FormatFollowers(1_000_000))
	assert.Equal(t, "1.2M", FormatFollowers(1_230_000))
}

func TestGenerateSummary(t *testing.T) {
	p := models.CreatorProfile{
		FollowerCount: 150_000,
		Category:      "fashion",
	}

	got := GenerateSummary(&p, models.InsightLevelHigh, models.InsightLevelMedium)
	assert.Equal(t,
		"Mid-tier-influencer in fashion with 150.0K followers. "+
			"Exceptional engagement rates indicate a highly active audience. "+
			"Audience authenticity is within normal range.",
		got)
}

func TestGenerateSummaryEmptyCategory(t *testing.T) {
	p := models.CreatorProfile{FollowerCount: 500}

	got := GenerateSummary(&p, models.InsightLevelLow, models.InsightLevelHigh)
	assert.Equal(t,
		"Nano-influencer in general with 500 followers. "+
			"Engagement could be improved but offers wide reach. "+
			"Audience appears highly authentic and engaged.",
		got)
}
