package domain

import (
	"context"
)

// TextGenerator is the capability exposed by an external generative AI
// provider. Implementations must be swappable without touching callers.
type TextGenerator interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// UserRepository handles user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
}

// ChatRepository handles per-session message persistence.
type ChatRepository interface {
	Append(ctx context.Context, msg *ChatMessage) error
	ListBySession(ctx context.Context, sessionID string) ([]ChatMessage, error)
	ClearSession(ctx context.Context, sessionID string) error
}

// HabitRepository handles habit log persistence.
type HabitRepository interface {
	Create(ctx context.Context, log *HabitLog) error
	ListByUser(ctx context.Context, userID uint, startDate, endDate string) ([]HabitLog, error)
}

// AnalysisRepository persists triage results for authenticated users.
type AnalysisRepository interface {
	Save(ctx context.Context, analysis *StoredAnalysis) error
	ListByUser(ctx context.Context, userID uint) ([]StoredAnalysis, error)
}

// SessionState caches short-lived per-session data and enforces AI call quotas.
type SessionState interface {
	SetLatestAnalysis(ctx context.Context, sessionID string, result *AnalysisResult) error
	GetLatestAnalysis(ctx context.Context, sessionID string) (*AnalysisResult, error)
	AllowAICall(ctx context.Context, key string) (bool, error)
}
