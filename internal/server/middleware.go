package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apperrors "github.com/healthmate/healthmate/internal/errors"
	"github.com/healthmate/healthmate/internal/logger"
)

const userIDKey = "userID"

// requestID tags every request with a correlation id, honoring one supplied
// by the client.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// requestLogger writes one structured line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString("requestID"),
		)
	}
}

// limitBodySize rejects request bodies above maxBytes.
func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated user id in the context.
func (s *Server) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, err := s.auth.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalAuth attaches a user id when a valid token is present but never
// rejects the request.
func (s *Server) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if userID, err := s.auth.VerifyToken(token); err == nil {
				c.Set(userIDKey, userID)
			}
		}
		c.Next()
	}
}

// aiRateLimit applies the per-caller hourly quota to AI-backed endpoints.
func (s *Server) aiRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.sessions == nil {
			c.Next()
			return
		}

		key := c.ClientIP()
		if userID, ok := authedUserID(c); ok {
			key = fmt.Sprintf("user:%d", userID)
		}

		allowed, err := s.sessions.AllowAICall(c.Request.Context(), key)
		if err != nil {
			// Quota bookkeeping must not take the endpoint down.
			logger.Warn("Rate limit check failed", "error", err.Error())
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(apperrors.ErrRateLimited.HTTPStatus(), gin.H{"error": "too many analysis requests, try again later"})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func authedUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}
