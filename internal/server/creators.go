package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/promolink/PromoLink/internal/errors"
	"github.com/promolink/PromoLink/internal/logging"
	"github.com/promolink/PromoLink/internal/matching"
	"github.com/promolink/PromoLink/internal/middleware"
	"github.com/promolink/PromoLink/internal/monitoring"
	"github.com/promolink/PromoLink/internal/profile"
)

// handleGetProfile returns the caller's creator profile
func (s *APIServer) handleGetProfile(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	p, err := s.profileService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			respondError(c, apierrors.ErrProfileNotFoundError)
		} else {
			s.logInternal(c, err, "get_profile")
			respondError(c, apierrors.ErrInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, p)
}

// handleUpsertProfile creates or updates the caller's profile. Every write
// recomputes the insight snapshot and completion state before returning.
func (s *APIServer) handleUpsertProfile(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	var req profile.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.NewValidationError(err.Error()))
		return
	}

	p, err := s.profileService.Upsert(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrInvalidFollowerCount),
			errors.Is(err, profile.ErrInvalidEngagement),
			errors.Is(err, profile.ErrInvalidPriceRange),
			errors.Is(err, profile.ErrInvalidAvailability),
			errors.Is(err, profile.ErrEmptyPromotionTypes):
			respondError(c, apierrors.NewValidationError(err.Error()))
		default:
			s.logInternal(c, err, "upsert_profile")
			respondError(c, apierrors.ErrInternalServerError)
		}
		return
	}

	m := monitoring.Get()
	m.ProfilesUpserted.Inc()
	m.InsightsComputed.Inc()
	m.InsightScores.Observe(float64(p.Insights.Score))

	c.JSON(http.StatusOK, p)
}

// handleGetInsights returns just the insight snapshot and completion state
func (s *APIServer) handleGetInsights(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	p, err := s.profileService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			respondError(c, apierrors.ErrProfileNotFoundError)
		} else {
			s.logInternal(c, err, "get_insights")
			respondError(c, apierrors.ErrInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"insights":              p.Insights,
		"completion_percentage": p.CompletionPercentage,
		"onboarding_completed":  p.OnboardingCompleted,
	})
}

// handleMatchFeed returns the promotion requests the caller qualifies for
func (s *APIServer) handleMatchFeed(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	page, pageSize, ok := paginationParams(c)
	if !ok {
		return
	}

	p, err := s.profileService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			respondError(c, apierrors.ErrProfileRequiredError)
		} else {
			s.logInternal(c, err, "match_feed")
			respondError(c, apierrors.ErrInternalServerError)
		}
		return
	}

	feed, err := s.matchingService.FindMatchingRequests(c.Request.Context(), p, page, pageSize)
	if err != nil {
		s.logInternal(c, err, "match_feed")
		respondError(c, apierrors.ErrInternalServerError)
		return
	}

	m := monitoring.Get()
	m.MatchQueriesTotal.Inc()
	m.MatchResultsReturned.Observe(float64(len(feed.Promotions)))

	c.JSON(http.StatusOK, feed)
}

// handleApply applies the caller to a promotion request
func (s *APIServer) handleApply(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	promotionID, err := uuid.Parse(c.Param("promotionID"))
	if err != nil {
		respondError(c, apierrors.NewInvalidRequestError("Invalid promotion ID"))
		return
	}

	p, err := s.profileService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			respondError(c, apierrors.ErrProfileRequiredError)
		} else {
			s.logInternal(c, err, "apply")
			respondError(c, apierrors.ErrInternalServerError)
		}
		return
	}

	result, err := s.matchingService.Apply(c.Request.Context(), p, promotionID)
	if err != nil {
		m := monitoring.Get()
		switch {
		case errors.Is(err, matching.ErrPromotionNotFound):
			respondError(c, apierrors.ErrPromotionNotFoundError)
		case errors.Is(err, matching.ErrPromotionNotOpen):
			m.ApplicationsTotal.WithLabelValues("closed").Inc()
			respondError(c, apierrors.ErrPromotionClosedError)
		case errors.Is(err, matching.ErrAlreadyApplied):
			m.ApplicationsTotal.WithLabelValues("duplicate").Inc()
			respondError(c, apierrors.ErrAlreadyAppliedError)
		default:
			s.logInternal(c, err, "apply")
			respondError(c, apierrors.ErrInternalServerError)
		}
		return
	}

	m := monitoring.Get()
	m.ApplicationsTotal.WithLabelValues("applied").Inc()
	if result.RequestTransitioned {
		m.PromotionTransitions.WithLabelValues("OPEN", "CREATOR_INTERESTED").Inc()
	}

	c.JSON(http.StatusCreated, result)
}

// handleRespondToInvitation accepts or declines a seller invitation
func (s *APIServer) handleRespondToInvitation(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	promotionID, err := uuid.Parse(c.Param("promotionID"))
	if err != nil {
		respondError(c, apierrors.NewInvalidRequestError("Invalid promotion ID"))
		return
	}

	var req struct {
		Accept *bool `json:"accept" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.NewValidationError(err.Error()))
		return
	}

	application, err := s.matchingService.Respond(c.Request.Context(), promotionID, userID, *req.Accept)
	if err != nil {
		switch {
		case errors.Is(err, matching.ErrApplicationNotFound):
			respondError(c, apierrors.ErrApplicationNotFoundError)
		case errors.Is(err, matching.ErrNotInvited):
			respondError(c, apierrors.ErrNotInvitedError)
		default:
			s.logInternal(c, err, "respond_invitation")
			respondError(c, apierrors.ErrInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, application)
}

// handleListApplications returns the caller's applications and invitations
func (s *APIServer) handleListApplications(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	page, pageSize, ok := paginationParams(c)
	if !ok {
		return
	}

	resp, err := s.matchingService.ListByCreator(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		s.logInternal(c, err, "list_applications")
		respondError(c, apierrors.ErrInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func paginationParams(c *gin.Context) (page, pageSize int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		respondError(c, apierrors.NewInvalidRequestError("Invalid page parameter"))
		return 0, 0, false
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil {
		respondError(c, apierrors.NewInvalidRequestError("Invalid page_size parameter"))
		return 0, 0, false
	}
	return page, pageSize, true
}

func (s *APIServer) logInternal(c *gin.Context, err error, operation string) {
	logging.LogError(err, middleware.GetRequestIDFromContext(c), "server", operation)
}
