package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/promolink/PromoLink/internal/errors"
	"github.com/promolink/PromoLink/internal/matching"
	"github.com/promolink/PromoLink/internal/middleware"
	"github.com/promolink/PromoLink/internal/monitoring"
	"github.com/promolink/PromoLink/internal/promotion"
)

// handleCreatePromotion creates a new promotion request owned by the caller
func (s *APIServer) handleCreatePromotion(c *gin.Context) {
	sellerID := middleware.GetUserIDFromContext(c)

	var req promotion.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.NewValidationError(err.Error()))
		return
	}

	pr, err := s.promotionService.Create(c.Request.Context(), sellerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, promotion.ErrEmptyTargetCategory),
			errors.Is(err, promotion.ErrEmptyPromotionTypes),
			errors.Is(err, promotion.ErrInvalidFollowerRange),
			errors.Is(err, promotion.ErrInvalidBudgetRange):
			respondError(c, apierrors.NewValidationError(err.Error()))
		default:
			s.logInternal(c, err, "create_promotion")
			respondError(c, apierrors.ErrInternalServerError)
		}
		return
	}

	monitoring.Get().PromotionsCreated.Inc()

	c.JSON(http.StatusCreated, pr)
}

// handleListPromotions returns the caller's own promotion requests
func (s *APIServer) handleListPromotions(c *gin.Context) {
	sellerID := middleware.GetUserIDFromContext(c)
	page, pageSize, ok := paginationParams(c)
	if !ok {
		return
	}

	resp, err := s.promotionService.ListBySeller(c.Request.Context(), sellerID, page, pageSize)
	if err != nil {
		s.logInternal(c, err, "list_promotions")
		respondError(c, apierrors.ErrInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// handleGetPromotion returns a single promotion request by id
func (s *APIServer) handleGetPromotion(c *gin.Context) {
	promotionID, ok := promotionIDParam(c)
	if !ok {
		return
	}

	pr, err := s.promotionService.GetByID(c.Request.Context(), promotionID)
	if err != nil {
		if errors.Is(err, promotion.ErrPromotionNotFound) {
			respondError(c, apierrors.ErrPromotionNotFoundError)
		} else {
			s.logInternal(c, err, "get_promotion")
			respondError(c, apierrors.ErrInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, pr)
}

// handleCancelPromotion cancels an open or interested promotion request
func (s *APIServer) handleCancelPromotion(c *gin.Context) {
	sellerID := middleware.GetUserIDFromContext(c)
	promotionID, ok := promotionIDParam(c)
	if !ok {
		return
	}

	pr, err := s.promotionService.Cancel(c.Request.Context(), promotionID, sellerID)
	if err != nil {
		switch {
		case errors.Is(err, promotion.ErrPromotionNotFound),
			errors.Is(err, promotion.ErrPromotionNotOwned):
			respondError(c, apierrors.ErrPromotionNotFoundError)
		case errors.Is(err, promotion.ErrNotCancellable):
			respondError(c, apierrors.NewInvalidTransitionError("Promotion can no longer be cancelled"))
		default:
			s.logInternal(c, err, "cancel_promotion")
			respondError(c, apierrors.ErrInternalServerError)
		}
		return
	}

	monitoring.Get().PromotionTransitions.WithLabelValues("ACTIVE", "CANCELLED").Inc()

	c.JSON(http.StatusOK, pr)
}

// handleCompletePromotion marks an accepted promotion request as completed
func (s *APIServer) handleCompletePromotion(c *gin.Context) {
	sellerID := middleware.GetUserIDFromContext(c)
	promotionID, ok := promotionIDParam(c)
	if !ok {
		return
	}

	pr, err := s.promotionService.Complete(c.Request.Context(), promotionID, sellerID)
	if err != nil {
		switch {
		case errors.Is(err, promotion.ErrPromotionNotFound),
			errors.Is(err, promotion.ErrPromotionNotOwned):
			respondError(c, apierrors.ErrPromotionNotFoundError)
		case errors.Is(err, promotion.ErrNotCompletable):
			respondError(c, apierrors.NewInvalidTransitionError("Only accepted promotions can be completed"))
		default:
			s.logInternal(c, err, "complete_promotion")
			respondError(c, apierrors.ErrInternalServerError)
		}
		return
	}

	monitoring.Get().PromotionTransitions.WithLabelValues("ACCEPTED", "COMPLETED").Inc()

	c.JSON(http.StatusOK, pr)
}

// handleListApplicants returns the applicants for a promotion the caller owns
func (s *APIServer) handleListApplicants(c *gin.Context) {
	sellerID := middleware.GetUserIDFromContext(c)
	promotionID, ok := promotionIDParam(c)
	if !ok {
		return
	}
	page, pageSize, ok := paginationParams(c)
	if !ok {
		return
	}

	resp, err := s.matchingService.ListByPromotion(c.Request.Context(), promotionID, sellerID, page, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, matching.ErrPromotionNotFound),
			errors.Is(err, matching.ErrPromotionNotOwned):
			respondError(c, apierrors.ErrPromotionNotFoundError)
		default:
			s.logInternal(c, err, "list_applicants")
			respondError(c, apierrors.ErrInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// handleInviteCreator invites a creator to a promotion the caller owns
func (s *APIServer) handleInviteCreator(c *gin.Context) {
	sellerID := middleware.GetUserIDFromContext(c)
	promotionID, ok := promotionIDParam(c)
	if !ok {
		return
	}

	var req struct {
		CreatorID uuid.UUID `json:"creator_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.NewValidationError(err.Error()))
		return
	}

	invitation, err := s.matchingService.Invite(c.Request.Context(), promotionID, sellerID, req.CreatorID)
	if err != nil {
		switch {
		case errors.Is(err, matching.ErrPromotionNotFound),
			errors.Is(err, matching.ErrPromotionNotOwned):
			respondError(c, apierrors.ErrPromotionNotFoundError)
		case errors.Is(err, matching.ErrPromotionNotOpen):
			respondError(c, apierrors.ErrPromotionClosedError)
		default:
			s.logInternal(c, err, "invite_creator")
			respondError(c, apierrors.ErrInternalServerError)
		}
		return
	}

	monitoring.Get().InvitationsTotal.Inc()

	c.JSON(http.StatusCreated, invitation)
}

// handleAcceptApplicant accepts one applicant and moves the promotion
// to ACCEPTED
func (s *APIServer) handleAcceptApplicant(c *gin.Context) {
	sellerID := middleware.GetUserIDFromContext(c)
	promotionID, ok := promotionIDParam(c)
	if !ok {
		return
	}

	var req struct {
		CreatorID uuid.UUID `json:"creator_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.NewValidationError(err.Error()))
		return
	}

	pr, err := s.promotionService.AcceptApplicant(c.Request.Context(), promotionID, sellerID, req.CreatorID)
	if err != nil {
		switch {
		case errors.Is(err, promotion.ErrPromotionNotFound),
			errors.Is(err, promotion.ErrPromotionNotOwned):
			respondError(c, apierrors.ErrPromotionNotFoundError)
		case errors.Is(err, promotion.ErrNoApplicantSelected):
			respondError(c, apierrors.NewInvalidTransitionError("Creator has no pending application on this promotion"))
		default:
			s.logInternal(c, err, "accept_applicant")
			respondError(c, apierrors.ErrInternalServerError)
		}
		return
	}

	monitoring.Get().PromotionTransitions.WithLabelValues("CREATOR_INTERESTED", "ACCEPTED").Inc()

	c.JSON(http.StatusOK, pr)
}

func promotionIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apierrors.NewInvalidRequestError("Invalid promotion ID"))
		return uuid.Nil, false
	}
	return id, true
}
