package insight

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/promolink/PromoLink/internal/models"
)

// TierLabel buckets a follower count into the industry tier names
func TierLabel(followerCount int64) string {
	switch {
	case followerCount >= 1_000_000:
		return "mega"
	case followerCount >= 500_000:
		return "macro"
	case followerCount >= 100_000:
		return "mid-tier"
	case followerCount >= 10_000:
		return "micro"
	default:
		return "nano"
	}
}

// FormatFollowers renders a follower count as 1.2M / 45.0K / 987
func FormatFollowers(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

var engagementClauses = map[models.InsightLevel]string{
	models.InsightLevelHigh:   "Exceptional engagement rates indicate a highly active audience.",
	models.InsightLevelMedium: "Solid engagement metrics within industry standards.",
	models.InsightLevelLow:    "Engagement could be improved but offers wide reach.",
}

var authenticityClauses = map[models.InsightLevel]string{
	models.InsightLevelHigh:   "Audience appears highly authentic and engaged.",
	models.InsightLevelMedium: "Audience authenticity is within normal range.",
	models.InsightLevelLow:    "Consider reviewing audience quality metrics.",
}

// GenerateSummary composes the one-paragraph profile summary from the tier,
// formatted follower count, and the two classifier results.
func GenerateSummary(p *models.CreatorProfile, engagement, authenticity models.InsightLevel) string {
	category := p.Category
	if category == "" {
		category = "general"
	}

	tier := TierLabel(p.FollowerCount)
	// Capitalize the tier for the sentence opener ("Mid-tier-influencer in ...")
	tier = strings.ToUpper(tier[:1]) + tier[1:]

	var b strings.Builder
	fmt.Fprintf(&b, "%s-influencer in %s with %s followers. ", tier, category, FormatFollowers(p.FollowerCount))
	b.WriteString(engagementClauses[engagement])
	b.WriteString(" ")
	b.WriteString(authenticityClauses[authenticity])
	return b.String()
}
