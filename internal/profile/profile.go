package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/promolink/PromoLink/internal/events"
	"github.com/promolink/PromoLink/internal/insight"
	"github.com/promolink/PromoLink/internal/logging"
	"github.com/promolink/PromoLink/internal/models"
	"github.com/shopspring/decimal"
)

// Service errors
var (
	ErrProfileNotFound      = errors.New("creator profile not found")
	ErrInvalidFollowerCount = errors.New("follower count must be non-negative")
	ErrInvalidEngagement    = errors.New("engagement rate must be non-negative")
	ErrInvalidPriceRange    = errors.New("price range values must be non-negative")
	ErrInvalidAvailability  = errors.New("unknown availability status")
	ErrEmptyPromotionTypes  = errors.New("promotion types must not be empty")
)

// Service handles creator profile operations. Every write recomputes the
// derived insight snapshot and completion from the merged attribute set and
// stores both in the same statement as the triggering change.
type Service struct {
	db     *pgxpool.Pool
	events *events.Publisher
}

// NewService creates a new profile service
func NewService(db *pgxpool.Pool, publisher *events.Publisher) *Service {
	return &Service{
		db:     db,
		events: publisher,
	}
}

// UpsertProfileRequest represents a profile create/update. Nil fields keep
// their existing values; the merge happens before any derived computation.
type UpsertProfileRequest struct {
	FollowerCount        *int64                     `json:"follower_count,omitempty" binding:"omitempty,min=0"`
	EngagementRate       *float64                   `json:"engagement_rate,omitempty" binding:"omitempty,min=0"`
	Category             *string                    `json:"category,omitempty"`
	PromotionTypes       []string                   `json:"promotion_types,omitempty"`
	PriceMin             *decimal.Decimal           `json:"price_min,omitempty"`
	PriceMax             *decimal.Decimal           `json:"price_max,omitempty"`
	Bio                  *string                    `json:"bio,omitempty"`
	AvailabilityStatus   *models.AvailabilityStatus `json:"availability_status,omitempty"`
	LocationDistrict     *string                    `json:"location_district,omitempty"`
	LocationCity         *string                    `json:"location_city,omitempty"`
	CollaborationTypes   []string                   `json:"collaboration_types,omitempty"`
	PortfolioLinks       []string                   `json:"portfolio_links,omitempty"`
	PastExperience       *string                    `json:"past_experience,omitempty"`
	WillingToTravel      *string                    `json:"willing_to_travel,omitempty"`
	SuccessfulPromotions *int                       `json:"successful_promotions,omitempty" binding:"omitempty,min=0"`
	AverageRating        *decimal.Decimal           `json:"average_rating,omitempty"`
}

// Validate checks the request's numeric and enum constraints
func (r *UpsertProfileRequest) Validate() error {
	if r.FollowerCount != nil && *r.FollowerCount < 0 {
		return ErrInvalidFollowerCount
	}
	if r.EngagementRate != nil && *r.EngagementRate < 0 {
		return ErrInvalidEngagement
	}
	if r.PriceMin != nil && r.PriceMin.IsNegative() {
		return ErrInvalidPriceRange
	}
	if r.PriceMax != nil && r.PriceMax.IsNegative() {
		return ErrInvalidPriceRange
	}
	if r.AvailabilityStatus != nil {
		switch *r.AvailabilityStatus {
		case models.AvailabilityAvailableNow, models.AvailabilityLimited, models.AvailabilityNotAvailable:
		default:
			return ErrInvalidAvailability
		}
	}
	if r.PromotionTypes != nil && len(models.NormalizeTokens(r.PromotionTypes)) == 0 {
		return ErrEmptyPromotionTypes
	}
	return nil
}

// profileColumns is the canonical column list for creator_profiles reads
const profileColumns = `
	user_id, follower_count, engagement_rate, category, promotion_types,
	price_min, price_max, bio, availability_status,
	location_district, location_city, collaboration_types, portfolio_links,
	past_experience, willing_to_travel, successful_promotions, average_rating,
	engagement_quality, audience_authenticity, strengths, profile_summary,
	insight_score, last_analyzed, completion_percentage, onboarding_completed,
	created_at, updated_at`

func scanProfile(row pgx.Row) (*models.CreatorProfile, error) {
	var p models.CreatorProfile
	err := row.Scan(
		&p.UserID, &p.FollowerCount, &p.EngagementRate, &p.Category, &p.PromotionTypes,
		&p.PriceRange.Min, &p.PriceRange.Max, &p.Bio, &p.AvailabilityStatus,
		&p.Location.District, &p.Location.City, &p.CollaborationTypes, &p.PortfolioLinks,
		&p.PastExperience, &p.WillingToTravel, &p.SuccessfulPromotions, &p.AverageRating,
		&p.Insights.EngagementQuality, &p.Insights.AudienceAuthenticity, &p.Insights.Strengths,
		&p.Insights.ProfileSummary, &p.Insights.Score, &p.Insights.LastAnalyzed,
		&p.CompletionPercentage, &p.OnboardingCompleted,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByUserID retrieves a creator profile
func (s *Service) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.CreatorProfile, error) {
	p, err := scanProfile(s.db.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM creator_profiles WHERE user_id = $1
	`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// Upsert creates or updates a creator profile. Incoming fields are merged
// over the stored attributes, completion and the insight snapshot are
// recomputed from the merged set, and the whole row is written atomically.
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, req *UpsertProfileRequest) (*models.CreatorProfile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}
	merged := mergeProfile(existing, userID, req)

	completion := insight.ComputeCompletion(merged)
	ins := insight.ComputeInsights(merged)

	p, err := scanProfile(s.db.QueryRow(ctx, `
		INSERT INTO creator_profiles (
			user_id, follower_count, engagement_rate, category, promotion_types,
			price_min, price_max, bio, availability_status,
			location_district, location_city, collaboration_types, portfolio_links,
			past_experience, willing_to_travel, successful_promotions, average_rating,
			engagement_quality, audience_authenticity, strengths, profile_summary,
			insight_score, last_analyzed, completion_percentage, onboarding_completed
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25
		)
		ON CONFLICT (user_id) DO UPDATE SET
			follower_count = EXCLUDED.follower_count,
			engagement_rate = EXCLUDED.engagement_rate,
			category = EXCLUDED.category,
			promotion_types = EXCLUDED.promotion_types,
			price_min = EXCLUDED.price_min,
			price_max = EXCLUDED.price_max,
			bio = EXCLUDED.bio,
			availability_status = EXCLUDED.availability_status,
			location_district = EXCLUDED.location_district,
			location_city = EXCLUDED.location_city,
			collaboration_types = EXCLUDED.collaboration_types,
			portfolio_links = EXCLUDED.portfolio_links,
			past_experience = EXCLUDED.past_experience,
			willing_to_travel = EXCLUDED.willing_to_travel,
			successful_promotions = EXCLUDED.successful_promotions,
			average_rating = EXCLUDED.average_rating,
			engagement_quality = EXCLUDED.engagement_quality,
			audience_authenticity = EXCLUDED.audience_authenticity,
			strengths = EXCLUDED.strengths,
			profile_summary = EXCLUDED.profile_summary,
			insight_score = EXCLUDED.insight_score,
			last_analyzed = EXCLUDED.last_analyzed,
			completion_percentage = EXCLUDED.completion_percentage,
			onboarding_completed = EXCLUDED.onboarding_completed,
			updated_at = NOW()
		RETURNING `+profileColumns+`
	`,
		merged.UserID, merged.FollowerCount, merged.EngagementRate, merged.Category, merged.PromotionTypes,
		merged.PriceRange.Min, merged.PriceRange.Max, merged.Bio, merged.AvailabilityStatus,
		merged.Location.District, merged.Location.City, merged.CollaborationTypes, merged.PortfolioLinks,
		merged.PastExperience, merged.WillingToTravel, merged.SuccessfulPromotions, merged.AverageRating,
		ins.EngagementQuality, ins.AudienceAuthenticity, ins.Strengths, ins.ProfileSummary,
		ins.Score, ins.LastAnalyzed, completion.Percentage, completion.OnboardingCompleted,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	logging.LogInsightRefresh(userID.String(), ins.Score, completion.Percentage,
		string(ins.EngagementQuality), string(ins.AudienceAuthenticity))

	s.events.Publish(ctx, events.ChannelInsightsUpdated, events.InsightsUpdated{
		UserID:               userID.String(),
		Score:                ins.Score,
		EngagementQuality:    string(ins.EngagementQuality),
		AudienceAuthenticity: string(ins.AudienceAuthenticity),
		CompletionPercentage: completion.Percentage,
		OnboardingCompleted:  completion.OnboardingCompleted,
		OccurredAt:           time.Now().UTC(),
	})

	return p, nil
}

// mergeProfile overlays an update onto the stored profile. The result is the
// full merged attribute set the derived computations run on.
func mergeProfile(existing *models.CreatorProfile, userID uuid.UUID, req *UpsertProfileRequest) *models.CreatorProfile {
	merged := &models.CreatorProfile{UserID: userID}
	if existing != nil {
		*merged = *existing
	}

	if req.FollowerCount != nil {
		merged.FollowerCount = *req.FollowerCount
	}
	if req.EngagementRate != nil {
		merged.EngagementRate = *req.EngagementRate
	}
	if req.Category != nil {
		merged.Category = strings.TrimSpace(*req.Category)
	}
	if req.PromotionTypes != nil {
		merged.PromotionTypes = models.NormalizeTokens(req.PromotionTypes)
	}
	if req.PriceMin != nil {
		merged.PriceRange.Min = *req.PriceMin
	}
	if req.PriceMax != nil {
		merged.PriceRange.Max = *req.PriceMax
	}
	if req.Bio != nil {
		merged.Bio = req.Bio
	}
	if req.AvailabilityStatus != nil {
		merged.AvailabilityStatus = *req.AvailabilityStatus
	}
	if req.LocationDistrict != nil {
		merged.Location.District = req.LocationDistrict
	}
	if req.LocationCity != nil {
		merged.Location.City = req.LocationCity
	}
	if req.CollaborationTypes != nil {
		merged.CollaborationTypes = req.CollaborationTypes
	}
	if req.PortfolioLinks != nil {
		merged.PortfolioLinks = req.PortfolioLinks
	}
	if req.PastExperience != nil {
		merged.PastExperience = req.PastExperience
	}
	if req.WillingToTravel != nil {
		merged.WillingToTravel = req.WillingToTravel
	}
	if req.SuccessfulPromotions != nil {
		merged.SuccessfulPromotions = *req.SuccessfulPromotions
	}
	if req.AverageRating != nil {
		merged.AverageRating = *req.AverageRating
	}

	// Slices must never be NULL in the row
	if merged.PromotionTypes == nil {
		merged.PromotionTypes = []string{}
	}
	if merged.CollaborationTypes == nil {
		merged.CollaborationTypes = []string{}
	}
	if merged.PortfolioLinks == nil {
		merged.PortfolioLinks = []string{}
	}

	return merged
}
