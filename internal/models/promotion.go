package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PromotionStatus represents the lifecycle status of a promotion request
type PromotionStatus string

const (
	PromotionStatusOpen              PromotionStatus = "OPEN"
	PromotionStatusCreatorInterested PromotionStatus = "CREATOR_INTERESTED"
	PromotionStatusAccepted          PromotionStatus = "ACCEPTED"
	PromotionStatusCompleted         PromotionStatus = "COMPLETED"
	PromotionStatusCancelled         PromotionStatus = "CANCELLED"
)

// PromotionRequest represents a brand's campaign listing
type PromotionRequest struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	SellerID       uuid.UUID       `json:"seller_id" db:"seller_id"`
	Title          string          `json:"title" db:"title"`
	Description    *string         `json:"description,omitempty" db:"description"`
	TargetCategory string          `json:"target_category" db:"target_category"`
	PromotionTypes []string        `json:"promotion_types" db:"promotion_types"`
	MinFollowers   int64           `json:"min_followers" db:"min_followers"`
	MaxFollowers   int64           `json:"max_followers" db:"max_followers"`
	MinBudget      decimal.Decimal `json:"min_budget" db:"min_budget"`
	MaxBudget      decimal.Decimal `json:"max_budget" db:"max_budget"`
	Status         PromotionStatus `json:"status" db:"status"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// AcceptsApplications reports whether creators may still apply
func (s PromotionStatus) AcceptsApplications() bool {
	return s == PromotionStatusOpen || s == PromotionStatusCreatorInterested
}
