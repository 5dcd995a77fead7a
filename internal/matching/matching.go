// Package matching implements the campaign matching filter and the
// application scorer that drives the promotion request state machine.
//
// The matching feed is a hard filter, not a ranked search: a promotion
// request must satisfy every clause (applicable status, exact category,
// shared promotion type, follower range) or it is excluded entirely. The
// apply path enforces the one-record-per-(promotion, creator) invariant
// with a conditional upsert so concurrent applications never duplicate, and
// the OPEN to CREATOR_INTERESTED transition is a conditional update so it
// fires exactly once however many creators apply at the same time.
package matching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/promolink/PromoLink/internal/events"
	"github.com/promolink/PromoLink/internal/logging"
	"github.com/promolink/PromoLink/internal/models"
)

// Service errors
var (
	ErrProfileRequired     = errors.New("creator profile required")
	ErrPromotionNotFound   = errors.New("promotion request not found")
	ErrPromotionNotOpen    = errors.New("promotion is not accepting applications")
	ErrAlreadyApplied      = errors.New("already applied to this promotion")
	ErrApplicationNotFound = errors.New("application not found")
	ErrNotInvited          = errors.New("application is not in invited status")
	ErrPromotionNotOwned   = errors.New("promotion request not owned by seller")
)

// Fallback score when a profile has no analyzed insight snapshot
const defaultMatchScore = 50

// Service handles matching queries and the application flow
type Service struct {
	db     *pgxpool.Pool
	events *events.Publisher
}

// NewService creates a new matching service
func NewService(db *pgxpool.Pool, publisher *events.Publisher) *Service {
	return &Service{
		db:     db,
		events: publisher,
	}
}

// MatchedPromotion is one feed entry: the promotion request plus whether
// this creator already has an active application on it
type MatchedPromotion struct {
	models.PromotionRequest
	HasApplied bool `json:"has_applied"`
}

// MatchFeedResponse represents a paginated matching feed
type MatchFeedResponse struct {
	Promotions []MatchedPromotion `json:"promotions"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// ApplyResult represents the outcome of a successful application
type ApplyResult struct {
	Application         *models.MatchedCreator `json:"application"`
	RequestTransitioned bool                   `json:"request_transitioned"`
}

// ListApplicationsResponse represents a paginated application list
type ListApplicationsResponse struct {
	Applications []models.MatchedCreator `json:"applications"`
	Total        int64                   `json:"total"`
	Page         int                     `json:"page"`
	PageSize     int                     `json:"page_size"`
	TotalPages   int                     `json:"total_pages"`
}

const matchColumns = `
	id, promotion_id, creator_id, match_score, match_reason, status,
	applied_at, responded_at, created_at, updated_at`

func scanMatch(row pgx.Row) (*models.MatchedCreator, error) {
	var m models.MatchedCreator
	err := row.Scan(
		&m.ID, &m.PromotionID, &m.CreatorID, &m.MatchScore, &m.MatchReason, &m.Status,
		&m.AppliedAt, &m.RespondedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Every feed clause lives in this one predicate so the filter is always
// evaluated against a single consistent snapshot, never staged.
const matchPredicate = `
	pr.status IN ($1, $2)
	AND pr.target_category = $3
	AND pr.promotion_types && $4
	AND pr.min_followers <= $5
	AND pr.max_followers >= $5`

// FindMatchingRequests returns the promotion requests a creator qualifies
// for: applicable status, exact category match, at least one shared
// promotion type, and follower count inside the request's range. Results
// are newest-first.
func (s *Service) FindMatchingRequests(ctx context.Context, p *models.CreatorProfile, page, pageSize int) (*MatchFeedResponse, error) {
	if p == nil {
		return nil, ErrProfileRequired
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	promotionTypes := p.PromotionTypes
	if promotionTypes == nil {
		promotionTypes = []string{}
	}

	args := []any{
		models.PromotionStatusOpen, models.PromotionStatusCreatorInterested,
		p.Category, promotionTypes, p.FollowerCount,
	}

	var total int64
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM promotion_requests pr
		WHERE `+matchPredicate+`
	`, args...).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count matching requests: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT pr.id, pr.seller_id, pr.title, pr.description, pr.target_category,
			pr.promotion_types, pr.min_followers, pr.max_followers,
			pr.min_budget, pr.max_budget, pr.status, pr.created_at, pr.updated_at,
			COALESCE(mc.status = $7, FALSE) AS has_applied
		FROM promotion_requests pr
		LEFT JOIN matched_creators mc
			ON mc.promotion_id = pr.id AND mc.creator_id = $6
		WHERE `+matchPredicate+`
		ORDER BY pr.created_at DESC
		LIMIT $8 OFFSET $9
	`, append(args, p.UserID, models.MatchStatusApplied, pageSize, offset)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matching requests: %w", err)
	}
	defer rows.Close()

	var matches []MatchedPromotion
	for rows.Next() {
		var m MatchedPromotion
		err := rows.Scan(
			&m.ID, &m.SellerID, &m.Title, &m.Description, &m.TargetCategory,
			&m.PromotionTypes, &m.MinFollowers, &m.MaxFollowers,
			&m.MinBudget, &m.MaxBudget, &m.Status, &m.CreatedAt, &m.UpdatedAt,
			&m.HasApplied,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan matching request: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matching requests: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &MatchFeedResponse{
		Promotions: matches,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Apply records a creator's application to a promotion request.
//
// The application record is written with a conditional upsert on the unique
// (promotion_id, creator_id) pair: a fresh pair inserts, a prior REJECTED or
// INVITED record is overwritten back to APPLIED with a new timestamp, and an
// existing APPLIED record makes the statement match nothing, which surfaces
// as ErrAlreadyApplied. After a successful write the promotion moves
// OPEN to CREATOR_INTERESTED via a conditional update, so the first
// applicant fires the transition and everyone after is a no-op.
func (s *Service) Apply(ctx context.Context, p *models.CreatorProfile, promotionID uuid.UUID) (*ApplyResult, error) {
	if p == nil {
		return nil, ErrProfileRequired
	}

	matchScore := defaultMatchScore
	if p.Insights.LastAnalyzed != nil {
		matchScore = p.Insights.Score
	}
	matchReason := fmt.Sprintf("Applied by creator. %s specialist with %d followers.",
		p.Category, p.FollowerCount)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the promotion row for the status check so a concurrent cancel
	// cannot land between the check and the application upsert.
	var status models.PromotionStatus
	err = tx.QueryRow(ctx, `
		SELECT status FROM promotion_requests WHERE id = $1 FOR UPDATE
	`, promotionID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to get promotion status: %w", err)
	}
	if !status.AcceptsApplications() {
		return nil, fmt.Errorf("%w: status is %s", ErrPromotionNotOpen, status)
	}

	application, err := scanMatch(tx.QueryRow(ctx, `
		INSERT INTO matched_creators (
			promotion_id, creator_id, match_score, match_reason, status, applied_at
		) VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (promotion_id, creator_id) DO UPDATE SET
			match_score = EXCLUDED.match_score,
			match_reason = EXCLUDED.match_reason,
			status = EXCLUDED.status,
			applied_at = NOW(),
			responded_at = NULL,
			updated_at = NOW()
		WHERE matched_creators.status <> $5
		RETURNING `+matchColumns+`
	`, promotionID, p.UserID, matchScore, matchReason, models.MatchStatusApplied))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The conflict guard refused the update: an APPLIED record exists
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to record application: %w", err)
	}

	result, err := tx.Exec(ctx, `
		UPDATE promotion_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, models.PromotionStatusCreatorInterested, promotionID, models.PromotionStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to transition promotion request: %w", err)
	}
	transitioned := result.RowsAffected() > 0

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logging.LogApplication(promotionID.String(), p.UserID.String(), matchScore, transitioned)

	s.events.Publish(ctx, events.ChannelCreatorApplied, events.CreatorApplied{
		PromotionID:         promotionID.String(),
		CreatorID:           p.UserID.String(),
		MatchScore:          matchScore,
		RequestTransitioned: transitioned,
		OccurredAt:          time.Now().UTC(),
	})

	return &ApplyResult{
		Application:         application,
		RequestTransitioned: transitioned,
	}, nil
}

// Invite creates an INVITED matched-creator record on behalf of the seller.
// Inviting an already-tracked creator is a conflict-free no-op update only
// when the existing record is REJECTED; an APPLIED or ACCEPTED record is
// left untouched and returned as-is.
func (s *Service) Invite(ctx context.Context, promotionID, sellerID, creatorID uuid.UUID) (*models.MatchedCreator, error) {
	var ownerID uuid.UUID
	var status models.PromotionStatus
	err := s.db.QueryRow(ctx, `
		SELECT seller_id, status FROM promotion_requests WHERE id = $1
	`, promotionID).Scan(&ownerID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to get promotion: %w", err)
	}
	if ownerID != sellerID {
		return nil, ErrPromotionNotOwned
	}
	if !status.AcceptsApplications() {
		return nil, fmt.Errorf("%w: status is %s", ErrPromotionNotOpen, status)
	}

	invitation, err := scanMatch(s.db.QueryRow(ctx, `
		INSERT INTO matched_creators (
			promotion_id, creator_id, match_score, match_reason, status
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (promotion_id, creator_id) DO UPDATE SET
			status = EXCLUDED.status,
			responded_at = NULL,
			updated_at = NOW()
		WHERE matched_creators.status = $6
		RETURNING `+matchColumns+`
	`, promotionID, creatorID, defaultMatchScore, "Invited by seller.",
		models.MatchStatusInvited, models.MatchStatusRejected))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Record exists in APPLIED/ACCEPTED/INVITED: return it unchanged
			return s.getMatch(ctx, promotionID, creatorID)
		}
		return nil, fmt.Errorf("failed to record invitation: %w", err)
	}

	logging.LogInvitation(promotionID.String(), creatorID.String(), sellerID.String())

	s.events.Publish(ctx, events.ChannelCreatorInvited, events.CreatorInvited{
		PromotionID: promotionID.String(),
		CreatorID:   creatorID.String(),
		SellerID:    sellerID.String(),
		OccurredAt:  time.Now().UTC(),
	})

	return invitation, nil
}

// Respond records a creator's answer to an invitation, moving the record
// from INVITED to ACCEPTED or REJECTED with a response timestamp
func (s *Service) Respond(ctx context.Context, promotionID, creatorID uuid.UUID, accept bool) (*models.MatchedCreator, error) {
	newStatus := models.MatchStatusRejected
	if accept {
		newStatus = models.MatchStatusAccepted
	}

	updated, err := scanMatch(s.db.QueryRow(ctx, `
		UPDATE matched_creators
		SET status = $1, responded_at = NOW(), updated_at = NOW()
		WHERE promotion_id = $2 AND creator_id = $3 AND status = $4
		RETURNING `+matchColumns+`
	`, newStatus, promotionID, creatorID, models.MatchStatusInvited))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish "no record" from "record not invited"
			if _, gerr := s.getMatch(ctx, promotionID, creatorID); gerr != nil {
				return nil, gerr
			}
			return nil, ErrNotInvited
		}
		return nil, fmt.Errorf("failed to respond to invitation: %w", err)
	}
	return updated, nil
}

// ListByCreator retrieves a creator's applications and invitations
func (s *Service) ListByCreator(ctx context.Context, creatorID uuid.UUID, page, pageSize int) (*ListApplicationsResponse, error) {
	return s.list(ctx, `creator_id`, creatorID, page, pageSize)
}

// ListByPromotion retrieves all applicants for a promotion request, newest
// first, for the owning seller
func (s *Service) ListByPromotion(ctx context.Context, promotionID, sellerID uuid.UUID, page, pageSize int) (*ListApplicationsResponse, error) {
	var ownerID uuid.UUID
	err := s.db.QueryRow(ctx, `
		SELECT seller_id FROM promotion_requests WHERE id = $1
	`, promotionID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to get promotion: %w", err)
	}
	if ownerID != sellerID {
		return nil, ErrPromotionNotOwned
	}

	return s.list(ctx, `promotion_id`, promotionID, page, pageSize)
}

func (s *Service) list(ctx context.Context, keyColumn string, keyID uuid.UUID, page, pageSize int) (*ListApplicationsResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var total int64
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM matched_creators WHERE `+keyColumn+` = $1
	`, keyID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+matchColumns+`
		FROM matched_creators
		WHERE `+keyColumn+` = $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`, keyID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var applications []models.MatchedCreator
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &ListApplicationsResponse{
		Applications: applications,
		Total:        total,
		Page:         page,
		PageSize:     pageSize,
		TotalPages:   totalPages,
	}, nil
}

func (s *Service) getMatch(ctx context.Context, promotionID, creatorID uuid.UUID) (*models.MatchedCreator, error) {
	m, err := scanMatch(s.db.QueryRow(ctx, `
		SELECT `+matchColumns+`
		FROM matched_creators
		WHERE promotion_id = $1 AND creator_id = $2
	`, promotionID, creatorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return m, nil
}
