package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchStatus represents a creator's relationship to a promotion request
type MatchStatus string

const (
	MatchStatusApplied  MatchStatus = "APPLIED"
	MatchStatusAccepted MatchStatus = "ACCEPTED"
	MatchStatusRejected MatchStatus = "REJECTED"
	MatchStatusInvited  MatchStatus = "INVITED"
)

// MatchedCreator is the join record tracking one creator's application or
// invitation to one promotion request. The (promotion_id, creator_id) pair
// is unique; re-application overwrites the existing record.
type MatchedCreator struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	PromotionID uuid.UUID   `json:"promotion_id" db:"promotion_id"`
	CreatorID   uuid.UUID   `json:"creator_id" db:"creator_id"`
	MatchScore  int         `json:"match_score" db:"match_score"`
	MatchReason string      `json:"match_reason" db:"match_reason"`
	Status      MatchStatus `json:"status" db:"status"`
	AppliedAt   *time.Time  `json:"applied_at,omitempty" db:"applied_at"`
	RespondedAt *time.Time  `json:"responded_at,omitempty" db:"responded_at"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}
