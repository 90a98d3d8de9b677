package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type chatMessageRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Content   string `json:"content" binding:"required"`
	IsUser    bool   `json:"isUser"`
}

func (s *Server) handleGetChat(c *gin.Context) {
	messages, err := s.chat.GetMessages(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (s *Server) handlePostChat(c *gin.Context) {
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId and content are required"})
		return
	}

	var userID *uint
	if id, ok := authedUserID(c); ok {
		userID = &id
	}

	msg, err := s.chat.AddMessage(c.Request.Context(), req.SessionID, req.Content, req.IsUser, userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (s *Server) handleClearChat(c *gin.Context) {
	if err := s.chat.ClearSession(c.Request.Context(), c.Param("sessionId")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
