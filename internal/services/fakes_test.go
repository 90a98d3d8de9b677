package services

import (
	"context"
	"strings"

	"github.com/healthmate/healthmate/internal/domain"
	apperrors "github.com/healthmate/healthmate/internal/errors"
)

// fakeGenerator scripts the provider reply for a test.
type fakeGenerator struct {
	response string
	err      error
	calls    int
	lastSys  string
	lastUser string
}

func (f *fakeGenerator) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	f.calls++
	f.lastSys = systemInstruction
	f.lastUser = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// fakeUserRepo is an in-memory domain.UserRepository.
type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	key := strings.ToLower(user.Email)
	if _, exists := f.users[key]; exists {
		return apperrors.ErrEmailTaken
	}
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[key] = &stored
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if user, ok := f.users[strings.ToLower(email)]; ok {
		copy := *user
		return &copy, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			copy := *user
			return &copy, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// fakeChatRepo is an in-memory domain.ChatRepository.
type fakeChatRepo struct {
	messages []domain.ChatMessage
	nextID   uint
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{nextID: 1}
}

func (f *fakeChatRepo) Append(ctx context.Context, msg *domain.ChatMessage) error {
	msg.ID = f.nextID
	f.nextID++
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeChatRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	var out []domain.ChatMessage
	for _, msg := range f.messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) ClearSession(ctx context.Context, sessionID string) error {
	var kept []domain.ChatMessage
	for _, msg := range f.messages {
		if msg.SessionID != sessionID {
			kept = append(kept, msg)
		}
	}
	f.messages = kept
	return nil
}

// fakeHabitRepo is an in-memory domain.HabitRepository.
type fakeHabitRepo struct {
	logs   []domain.HabitLog
	nextID uint
}

func newFakeHabitRepo() *fakeHabitRepo {
	return &fakeHabitRepo{nextID: 1}
}

func (f *fakeHabitRepo) Create(ctx context.Context, log *domain.HabitLog) error {
	log.ID = f.nextID
	f.nextID++
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeHabitRepo) ListByUser(ctx context.Context, userID uint, startDate, endDate string) ([]domain.HabitLog, error) {
	var out []domain.HabitLog
	for _, log := range f.logs {
		if log.UserID != userID {
			continue
		}
		if startDate != "" && log.Date < startDate {
			continue
		}
		if endDate != "" && log.Date > endDate {
			continue
		}
		out = append(out, log)
	}
	// Newest first, matching the SQL implementation.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
