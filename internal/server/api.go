package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/promolink/PromoLink/internal/config"
	apierrors "github.com/promolink/PromoLink/internal/errors"
	"github.com/promolink/PromoLink/internal/events"
	"github.com/promolink/PromoLink/internal/logging"
	"github.com/promolink/PromoLink/internal/matching"
	"github.com/promolink/PromoLink/internal/middleware"
	"github.com/promolink/PromoLink/internal/monitoring"
	"github.com/promolink/PromoLink/internal/profile"
	"github.com/promolink/PromoLink/internal/promotion"
)

// APIServer represents the main API server
type APIServer struct {
	config           *config.Config
	router           *gin.Engine
	db               *pgxpool.Pool
	profileService   *profile.Service
	promotionService *promotion.Service
	matchingService  *matching.Service
}

// NewAPIServer creates a new API server instance
func NewAPIServer(cfg *config.Config, db *pgxpool.Pool, publisher *events.Publisher) *APIServer {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware in order
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(monitoring.MetricsMiddleware())
	router.Use(logging.RequestLogger())

	srv := &APIServer{
		config:           cfg,
		router:           router,
		db:               db,
		profileService:   profile.NewService(db, publisher),
		promotionService: promotion.NewService(db),
		matchingService:  matching.NewService(db, publisher),
	}

	srv.setupRoutes()
	return srv
}

// Router returns the gin router
func (s *APIServer) Router() http.Handler {
	return s.router
}

// setupRoutes configures all API routes
func (s *APIServer) setupRoutes() {
	// Health check
	s.router.GET("/health", s.healthCheck)

	// API v1 routes. Identity comes from the X-User-ID header injected by
	// the gateway after authentication; there is no auth surface here.
	v1 := s.router.Group("/api/v1")
	{
		// Creator routes
		creators := v1.Group("/creators/me")
		creators.Use(middleware.Identity())
		{
			creators.GET("", s.handleGetProfile)
			creators.PUT("", s.handleUpsertProfile)
			creators.GET("/insights", s.handleGetInsights)
			creators.GET("/promotions", s.handleMatchFeed)
			creators.GET("/applications", s.handleListApplications)
			creators.POST("/applications/:promotionID", s.handleApply)
			creators.POST("/applications/:promotionID/respond", s.handleRespondToInvitation)
		}

		// Seller-side promotion routes
		promotions := v1.Group("/promotions")
		promotions.Use(middleware.Identity())
		{
			promotions.POST("", s.handleCreatePromotion)
			promotions.GET("", s.handleListPromotions)
			promotions.GET("/:id", s.handleGetPromotion)
			promotions.POST("/:id/cancel", s.handleCancelPromotion)
			promotions.POST("/:id/complete", s.handleCompletePromotion)
			promotions.GET("/:id/applicants", s.handleListApplicants)
			promotions.POST("/:id/invite", s.handleInviteCreator)
			promotions.POST("/:id/accept", s.handleAcceptApplicant)
		}
	}
}

// Health check handler
func (s *APIServer) healthCheck(c *gin.Context) {
	if err := s.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": s.config.Server.Name,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": s.config.Server.Name,
	})
}

// respondError sends a standardized error response
func respondError(c *gin.Context, err *apierrors.APIError) {
	c.JSON(err.HTTPStatus, apierrors.ErrorResponse{
		Error:     *err,
		RequestID: middleware.GetRequestIDFromContext(c),
	})
}
