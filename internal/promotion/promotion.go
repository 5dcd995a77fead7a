package promotion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/promolink/PromoLink/internal/models"
	"github.com/shopspring/decimal"
)

// Service errors
var (
	ErrPromotionNotFound    = errors.New("promotion request not found")
	ErrPromotionNotOwned    = errors.New("promotion request not owned by seller")
	ErrInvalidFollowerRange = errors.New("invalid follower range")
	ErrInvalidBudgetRange   = errors.New("invalid budget range")
	ErrEmptyPromotionTypes  = errors.New("at least one promotion type is required")
	ErrEmptyTargetCategory  = errors.New("target category is required")
	ErrNotCancellable       = errors.New("promotion can no longer be cancelled")
	ErrNotCompletable       = errors.New("promotion must be accepted before completion")
	ErrNoApplicantSelected  = errors.New("promotion has no applicant in applied status")
)

// Service handles promotion request operations for sellers
type Service struct {
	db *pgxpool.Pool
}

// NewService creates a new promotion service
func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// CreatePromotionRequest represents a request to create a campaign listing
type CreatePromotionRequest struct {
	Title          string          `json:"title" binding:"required,min=1,max=200"`
	Description    *string         `json:"description,omitempty"`
	TargetCategory string          `json:"target_category" binding:"required"`
	PromotionTypes []string        `json:"promotion_types" binding:"required"`
	MinFollowers   int64           `json:"min_followers" binding:"min=0"`
	MaxFollowers   int64           `json:"max_followers" binding:"min=0"`
	MinBudget      decimal.Decimal `json:"min_budget"`
	MaxBudget      decimal.Decimal `json:"max_budget"`
}

// Validate checks range and presence constraints
func (r *CreatePromotionRequest) Validate() error {
	if strings.TrimSpace(r.TargetCategory) == "" {
		return ErrEmptyTargetCategory
	}
	if len(r.PromotionTypes) == 0 {
		return ErrEmptyPromotionTypes
	}
	if r.MinFollowers < 0 || r.MaxFollowers < r.MinFollowers {
		return ErrInvalidFollowerRange
	}
	if r.MinBudget.IsNegative() || r.MaxBudget.LessThan(r.MinBudget) {
		return ErrInvalidBudgetRange
	}
	return nil
}

// ListPromotionsResponse represents a paginated list of promotion requests
type ListPromotionsResponse struct {
	Promotions []models.PromotionRequest `json:"promotions"`
	Total      int64                     `json:"total"`
	Page       int                       `json:"page"`
	PageSize   int                       `json:"page_size"`
	TotalPages int                       `json:"total_pages"`
}

const promotionColumns = `
	id, seller_id, title, description, target_category, promotion_types,
	min_followers, max_followers, min_budget, max_budget, status,
	created_at, updated_at`

func scanPromotion(row pgx.Row) (*models.PromotionRequest, error) {
	var p models.PromotionRequest
	err := row.Scan(
		&p.ID, &p.SellerID, &p.Title, &p.Description, &p.TargetCategory, &p.PromotionTypes,
		&p.MinFollowers, &p.MaxFollowers, &p.MinBudget, &p.MaxBudget, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new promotion request in OPEN status
func (s *Service) Create(ctx context.Context, sellerID uuid.UUID, req *CreatePromotionRequest) (*models.PromotionRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	types := models.NormalizeTokens(req.PromotionTypes)
	if len(types) == 0 {
		return nil, ErrEmptyPromotionTypes
	}

	p, err := scanPromotion(s.db.QueryRow(ctx, `
		INSERT INTO promotion_requests (
			seller_id, title, description, target_category, promotion_types,
			min_followers, max_followers, min_budget, max_budget, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+promotionColumns+`
	`, sellerID, req.Title, req.Description, strings.TrimSpace(req.TargetCategory), types,
		req.MinFollowers, req.MaxFollowers, req.MinBudget, req.MaxBudget,
		models.PromotionStatusOpen,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create promotion request: %w", err)
	}
	return p, nil
}

// GetByID retrieves a promotion request by ID
func (s *Service) GetByID(ctx context.Context, promotionID uuid.UUID) (*models.PromotionRequest, error) {
	p, err := scanPromotion(s.db.QueryRow(ctx, `
		SELECT `+promotionColumns+`
		FROM promotion_requests WHERE id = $1
	`, promotionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to get promotion request: %w", err)
	}
	return p, nil
}

// ListBySeller retrieves a seller's promotion requests with pagination
func (s *Service) ListBySeller(ctx context.Context, sellerID uuid.UUID, page, pageSize int) (*ListPromotionsResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var total int64
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM promotion_requests WHERE seller_id = $1
	`, sellerID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count promotion requests: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+promotionColumns+`
		FROM promotion_requests
		WHERE seller_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, sellerID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotion requests: %w", err)
	}
	defer rows.Close()

	var promotions []models.PromotionRequest
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan promotion request: %w", err)
		}
		promotions = append(promotions, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate promotion requests: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &ListPromotionsResponse{
		Promotions: promotions,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Cancel moves a promotion to CANCELLED. Only OPEN or CREATOR_INTERESTED
// requests can be cancelled; the update is conditional on that status so
// concurrent acceptance wins over cancellation.
func (s *Service) Cancel(ctx context.Context, promotionID, sellerID uuid.UUID) (*models.PromotionRequest, error) {
	p, err := s.guardOwnership(ctx, promotionID, sellerID)
	if err != nil {
		return nil, err
	}

	updated, err := scanPromotion(s.db.QueryRow(ctx, `
		UPDATE promotion_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status IN ($3, $4)
		RETURNING `+promotionColumns+`
	`, models.PromotionStatusCancelled, promotionID,
		models.PromotionStatusOpen, models.PromotionStatusCreatorInterested,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: status is %s", ErrNotCancellable, p.Status)
		}
		return nil, fmt.Errorf("failed to cancel promotion request: %w", err)
	}
	return updated, nil
}

// Complete moves an ACCEPTED promotion to COMPLETED
func (s *Service) Complete(ctx context.Context, promotionID, sellerID uuid.UUID) (*models.PromotionRequest, error) {
	p, err := s.guardOwnership(ctx, promotionID, sellerID)
	if err != nil {
		return nil, err
	}

	updated, err := scanPromotion(s.db.QueryRow(ctx, `
		UPDATE promotion_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING `+promotionColumns+`
	`, models.PromotionStatusCompleted, promotionID, models.PromotionStatusAccepted))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: status is %s", ErrNotCompletable, p.Status)
		}
		return nil, fmt.Errorf("failed to complete promotion request: %w", err)
	}
	return updated, nil
}

// AcceptApplicant accepts one applicant: the chosen matched-creator record
// moves to ACCEPTED with a response timestamp and the promotion to ACCEPTED,
// in one transaction.
func (s *Service) AcceptApplicant(ctx context.Context, promotionID, sellerID, creatorID uuid.UUID) (*models.PromotionRequest, error) {
	if _, err := s.guardOwnership(ctx, promotionID, sellerID); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	result, err := tx.Exec(ctx, `
		UPDATE matched_creators
		SET status = $1, responded_at = $2, updated_at = NOW()
		WHERE promotion_id = $3 AND creator_id = $4 AND status = $5
	`, models.MatchStatusAccepted, now, promotionID, creatorID, models.MatchStatusApplied)
	if err != nil {
		return nil, fmt.Errorf("failed to accept applicant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrNoApplicantSelected
	}

	updated, err := scanPromotion(tx.QueryRow(ctx, `
		UPDATE promotion_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING `+promotionColumns+`
	`, models.PromotionStatusAccepted, promotionID, models.PromotionStatusCreatorInterested))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: promotion has no pending applications", ErrNoApplicantSelected)
		}
		return nil, fmt.Errorf("failed to accept promotion request: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return updated, nil
}

// guardOwnership loads the promotion and verifies the seller owns it
func (s *Service) guardOwnership(ctx context.Context, promotionID, sellerID uuid.UUID) (*models.PromotionRequest, error) {
	p, err := s.GetByID(ctx, promotionID)
	if err != nil {
		return nil, err
	}
	if p.SellerID != sellerID {
		return nil, ErrPromotionNotOwned
	}
	return p, nil
}
