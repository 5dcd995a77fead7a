// Package events publishes domain events to Redis pub/sub for the external
// notification dispatcher. Publishing is best-effort: delivery failures are
// logged and never propagated to the triggering request.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Event channels
const (
	ChannelInsightsUpdated = "promolink.insights.updated"
	ChannelCreatorApplied  = "promolink.creator.applied"
	ChannelCreatorInvited  = "promolink.creator.invited"
)

// InsightsUpdated is emitted after a profile write recomputes the insight snapshot
type InsightsUpdated struct {
	UserID               string    `json:"user_id"`
	Score                int       `json:"score"`
	EngagementQuality    string    `json:"engagement_quality"`
	AudienceAuthenticity string    `json:"audience_authenticity"`
	CompletionPercentage int       `json:"completion_percentage"`
	OnboardingCompleted  bool      `json:"onboarding_completed"`
	OccurredAt           time.Time `json:"occurred_at"`
}

// CreatorApplied is emitted after a successful application
type CreatorApplied struct {
	PromotionID         string    `json:"promotion_id"`
	CreatorID           string    `json:"creator_id"`
	MatchScore          int       `json:"match_score"`
	RequestTransitioned bool      `json:"request_transitioned"`
	OccurredAt          time.Time `json:"occurred_at"`
}

// CreatorInvited is emitted when a seller invites a creator
type CreatorInvited struct {
	PromotionID string    `json:"promotion_id"`
	CreatorID   string    `json:"creator_id"`
	SellerID    string    `json:"seller_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher sends domain events over Redis pub/sub
type Publisher struct {
	client *redis.Client
	logger zerolog.Logger
}

// New creates an event publisher from a Redis URL and verifies connectivity
func New(redisURL string) (*Publisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	log.Info().Msg("Event publisher connected to Redis")

	return &Publisher{
		client: client,
		logger: log.Logger.With().Str("component", "events").Logger(),
	}, nil
}

// Publish serializes the payload and publishes it to the channel.
// A nil publisher is a no-op so callers can run without an event sink.
func (p *Publisher) Publish(ctx context.Context, channel string, payload any) {
	if p == nil || p.client == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error().Err(err).Str("channel", channel).Msg("Failed to marshal event")
		return
	}

	if err := p.client.Publish(ctx, channel, body).Err(); err != nil {
		p.logger.Warn().Err(err).Str("channel", channel).Msg("Failed to publish event")
		return
	}

	p.logger.Debug().Str("channel", channel).Msg("Event published")
}

// Close releases the Redis connection
func (p *Publisher) Close() {
	if p == nil || p.client == nil {
		return
	}
	if err := p.client.Close(); err != nil {
		p.logger.Warn().Err(err).Msg("Failed to close Redis client")
	}
}
