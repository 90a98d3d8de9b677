package services

import (
	"context"
	"strings"
	"time"

	"github.com/healthmate/healthmate/internal/domain"
	apperrors "github.com/healthmate/healthmate/internal/errors"
)

// ChatService is the append-only per-session message log.
type ChatService struct {
	repo domain.ChatRepository
	now  func() time.Time
}

func NewChatService(repo domain.ChatRepository) *ChatService {
	return &ChatService{repo: repo, now: time.Now}
}

// AddMessage appends one turn to a session.
func (s *ChatService) AddMessage(ctx context.Context, sessionID, content string, isUser bool, userID *uint) (*domain.ChatMessage, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperrors.NewValidationError("sessionId is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("content is required")
	}

	msg := &domain.ChatMessage{
		SessionID: sessionID,
		UserID:    userID,
		Content:   content,
		IsUser:    isUser,
		Timestamp: s.now(),
	}
	if err := s.repo.Append(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// GetMessages returns a session's messages ordered by timestamp ascending.
func (s *ChatService) GetMessages(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

// ClearSession deletes every message in the session. Other sessions are
// untouched.
func (s *ChatService) ClearSession(ctx context.Context, sessionID string) error {
	return s.repo.ClearSession(ctx, sessionID)
}
