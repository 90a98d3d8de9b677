// Package server wires the HTTP JSON API: routing, middleware and handlers.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/healthmate/healthmate/internal/domain"
	apperrors "github.com/healthmate/healthmate/internal/errors"
	"github.com/healthmate/healthmate/internal/logger"
	"github.com/healthmate/healthmate/internal/services"
)

// HealthChecker is what readiness probes need from the database.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Server holds the wired services behind the HTTP handlers.
type Server struct {
	auth     *services.AuthService
	chat     *services.ChatService
	habits   *services.HabitService
	analysis *services.AnalysisService
	analyses domain.AnalysisRepository
	sessions domain.SessionState
	db       HealthChecker
	errs     *apperrors.Handler
}

func New(
	auth *services.AuthService,
	chat *services.ChatService,
	habits *services.HabitService,
	analysis *services.AnalysisService,
	analyses domain.AnalysisRepository,
	sessions domain.SessionState,
	db HealthChecker,
) *Server {
	return &Server{
		auth:     auth,
		chat:     chat,
		habits:   habits,
		analysis: analysis,
		analyses: analyses,
		sessions: sessions,
		db:       db,
		errs:     apperrors.NewHandler(logger.GetLogger()),
	}
}

// Router builds the gin engine with all middleware and routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(),
		limitBodySize(1<<20),
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", s.handleReady)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", s.handleSignup)
			auth.POST("/login", s.handleLogin)
			auth.GET("/me", s.RequireAuth(), s.handleMe)
		}

		api.POST("/analyze", s.OptionalAuth(), s.aiRateLimit(), s.handleAnalyze)
		api.GET("/analyze/session/:sessionId", s.handleSessionAnalysis)
		api.GET("/analyze/history", s.RequireAuth(), s.handleAnalysisHistory)

		api.GET("/chat/:sessionId", s.handleGetChat)
		api.POST("/chat", s.OptionalAuth(), s.handlePostChat)
		api.DELETE("/chat/:sessionId", s.handleClearChat)

		habits := api.Group("/habits", s.RequireAuth())
		{
			habits.POST("", s.handleCreateHabitLog)
			habits.POST("/analyze", s.aiRateLimit(), s.handleAnalyzeHabits)
			habits.GET("/:userId", s.handleListHabitLogs)
			habits.GET("/:userId/summary", s.handleHabitSummary)
		}
	}

	return router
}

func (s *Server) handleReady(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok"})
}

// respondError converts an error into the API's error shape, logging it
// according to its type.
func (s *Server) respondError(c *gin.Context, err error) {
	s.errs.Handle(c.Request.Context(), err)

	if appErr, ok := asAppError(err); ok {
		c.JSON(appErr.HTTPStatus(), gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func asAppError(err error) (*apperrors.AppError, bool) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
