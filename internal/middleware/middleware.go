package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/promolink/PromoLink/internal/errors"
)

// Context keys for request-scoped values
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
)

// RequestID adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Identity resolves the caller's user id from the X-User-ID header.
// Authentication itself happens upstream; the gateway strips any
// client-supplied value and injects the verified id.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			respondWithError(c, apierrors.NewInvalidRequestError("X-User-ID header is required"))
			c.Abort()
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			respondWithError(c, apierrors.NewInvalidRequestError("X-User-ID must be a valid UUID"))
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserIDFromContext extracts the caller's user id from the gin context.
// Returns uuid.Nil if the Identity middleware did not run.
func GetUserIDFromContext(c *gin.Context) uuid.UUID {
	v, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// GetRequestIDFromContext extracts the request ID from the gin context.
// Returns empty string if not found
func GetRequestIDFromContext(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// CORS configures CORS headers
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		// Check if origin is allowed
		allowed := false
		for _, o := range allowedOrigins {
			if o == origin || o == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID, X-User-ID")
			c.Header("Access-Control-Expose-Headers", "X-Request-ID")
			c.Header("Access-Control-Max-Age", "43200") // 12 hours
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, err *apierrors.APIError) {
	c.JSON(err.HTTPStatus, apierrors.ErrorResponse{
		Error:     *err,
		RequestID: GetRequestIDFromContext(c),
	})
}
