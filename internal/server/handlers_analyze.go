package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/healthmate/healthmate/internal/domain"
	"github.com/healthmate/healthmate/internal/logger"
)

type analyzeRequest struct {
	Complaint string              `json:"complaint" binding:"required"`
	SessionID string              `json:"sessionId"`
	UserInfo  *domain.PatientInfo `json:"userInfo"`
}

// handleAnalyze runs symptom triage. Apart from request-shape validation it
// always answers 200: provider failures degrade inside the service to a
// conservative fallback payload.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Complaint) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "complaint is required"})
		return
	}

	result := s.analysis.Analyze(c.Request.Context(), req.Complaint, req.UserInfo)

	// Best-effort side writes; the triage answer goes out regardless.
	if req.SessionID != "" && s.sessions != nil {
		if err := s.sessions.SetLatestAnalysis(c.Request.Context(), req.SessionID, result); err != nil {
			logger.Warn("Failed to cache session analysis", "error", err.Error())
		}
	}
	if userID, ok := authedUserID(c); ok && s.analyses != nil {
		stored := &domain.StoredAnalysis{
			UserID:    userID,
			SessionID: req.SessionID,
			Complaint: req.Complaint,
			Result:    *result,
		}
		if err := s.analyses.Save(c.Request.Context(), stored); err != nil {
			logger.Warn("Failed to persist analysis", "error", err.Error())
		}
	}

	c.JSON(http.StatusOK, result)
}

// handleSessionAnalysis returns the most recent cached triage result for a
// chat session.
func (s *Server) handleSessionAnalysis(c *gin.Context) {
	if s.sessions == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no analysis for session"})
		return
	}

	result, err := s.sessions.GetLatestAnalysis(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no analysis for session"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleAnalysisHistory(c *gin.Context) {
	userID, _ := authedUserID(c)

	analyses, err := s.analyses.ListByUser(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analyses)
}
