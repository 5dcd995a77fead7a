package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AvailabilityStatus represents a creator's current availability for campaigns
type AvailabilityStatus string

const (
	AvailabilityAvailableNow AvailabilityStatus = "AVAILABLE_NOW"
	AvailabilityLimited      AvailabilityStatus = "LIMITED_AVAILABILITY"
	AvailabilityNotAvailable AvailabilityStatus = "NOT_AVAILABLE"
)

// InsightLevel is a coarse Low/Medium/High classification
type InsightLevel string

const (
	InsightLevelLow    InsightLevel = "Low"
	InsightLevelMedium InsightLevel = "Medium"
	InsightLevelHigh   InsightLevel = "High"
)

// PriceRange represents a creator's rate card bounds
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Location represents where a creator is based
type Location struct {
	District *string `json:"district,omitempty"`
	City     *string `json:"city,omitempty"`
}

// HasValue reports whether a district or city is present
func (l Location) HasValue() bool {
	return (l.District != nil && *l.District != "") || (l.City != nil && *l.City != "")
}

// Insights is the derived scoring bundle attached to a creator profile.
// It is recomputed in full on every profile write, never patched.
type Insights struct {
	EngagementQuality    InsightLevel `json:"engagement_quality" db:"engagement_quality"`
	AudienceAuthenticity InsightLevel `json:"audience_authenticity" db:"audience_authenticity"`
	Strengths            []string     `json:"strengths" db:"strengths"`
	ProfileSummary       string       `json:"profile_summary" db:"profile_summary"`
	Score                int          `json:"score" db:"insight_score"`
	LastAnalyzed         *time.Time   `json:"last_analyzed,omitempty" db:"last_analyzed"`
}

// CreatorProfile represents a creator's marketplace profile
type CreatorProfile struct {
	UserID               uuid.UUID          `json:"user_id" db:"user_id"`
	FollowerCount        int64              `json:"follower_count" db:"follower_count"`
	EngagementRate       float64            `json:"engagement_rate" db:"engagement_rate"`
	Category             string             `json:"category" db:"category"`
	PromotionTypes       []string           `json:"promotion_types" db:"promotion_types"`
	PriceRange           PriceRange         `json:"price_range"`
	Bio                  *string            `json:"bio,omitempty" db:"bio"`
	AvailabilityStatus   AvailabilityStatus `json:"availability_status" db:"availability_status"`
	Location             Location           `json:"location"`
	CollaborationTypes   []string           `json:"collaboration_types" db:"collaboration_types"`
	PortfolioLinks       []string           `json:"portfolio_links" db:"portfolio_links"`
	PastExperience       *string            `json:"past_experience,omitempty" db:"past_experience"`
	WillingToTravel      *string            `json:"willing_to_travel,omitempty" db:"willing_to_travel"`
	SuccessfulPromotions int                `json:"successful_promotions" db:"successful_promotions"`
	AverageRating        decimal.Decimal    `json:"average_rating" db:"average_rating"`
	Insights             Insights           `json:"insights"`
	CompletionPercentage int                `json:"profile_completion_percentage" db:"completion_percentage"`
	OnboardingCompleted  bool               `json:"onboarding_completed" db:"onboarding_completed"`
	CreatedAt            time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at" db:"updated_at"`
}

// IsAvailable reports whether the creator is currently open for campaigns
func (p *CreatorProfile) IsAvailable() bool {
	return p.AvailabilityStatus == AvailabilityAvailableNow
}
