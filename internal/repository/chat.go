package repository

import (
	"context"

	apperrors "github.com/healthmate/healthmate/internal/errors"

	"github.com/healthmate/healthmate/internal/database"
	"github.com/healthmate/healthmate/internal/domain"
	"gorm.io/gorm"
)

// ChatRepository is the gorm-backed implementation of domain.ChatRepository.
type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Append(ctx context.Context, msg *domain.ChatMessage) error {
	row := database.ChatMessage{
		SessionID: msg.SessionID,
		UserID:    msg.UserID,
		Content:   msg.Content,
		IsUser:    msg.IsUser,
		Timestamp: msg.Timestamp,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	msg.ID = row.ID
	return nil
}

func (r *ChatRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	var rows []database.ChatMessage
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	messages := make([]domain.ChatMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, domain.ChatMessage{
			ID:        row.ID,
			SessionID: row.SessionID,
			UserID:    row.UserID,
			Content:   row.Content,
			IsUser:    row.IsUser,
			Timestamp: row.Timestamp,
		})
	}
	return messages, nil
}

func (r *ChatRepository) ClearSession(ctx context.Context, sessionID string) error {
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&database.ChatMessage{}).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}
