package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/healthmate/healthmate/internal/errors"
)

const testSecret = "test-secret-key"

func newTestAuthService() *AuthService {
	return NewAuthService(newFakeUserRepo(), testSecret, 7*24*time.Hour)
}

func TestSignupAndLoginRoundTrip(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	token, user, err := svc.Signup(ctx, "ada@example.com", "correct-horse", "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if token == "" || user.ID == 0 {
		t.Fatal("signup must return a token and a persisted user")
	}

	loginToken, loginUser, err := svc.Login(ctx, "ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loginToken == "" || loginUser.ID != user.ID {
		t.Fatal("login must return a token for the same user")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, "ada@example.com", "correct-horse", "Ada", ""); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	_, _, err := svc.Signup(ctx, "Ada@Example.com", "another-pass", "Imposter", "")
	if !errors.Is(err, apperrors.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, "not-an-email", "longenough", "A", ""); err == nil {
		t.Fatal("expected error for invalid email")
	}
	if _, _, err := svc.Signup(ctx, "a@b.com", "short", "A", ""); err == nil {
		t.Fatal("expected error for short password")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, "ada@example.com", "correct-horse", "Ada", ""); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	_, _, err := svc.Login(ctx, "ada@example.com", "wrong-horse")
	if !errors.Is(err, apperrors.ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestLoginUnknownEmailIsBadCredentials(t *testing.T) {
	svc := newTestAuthService()
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever1")
	if !errors.Is(err, apperrors.ErrBadCredentials) {
		t.Fatalf("unknown emails must not be distinguishable, got %v", err)
	}
}

func TestTokenPayloadDecodesToUserID(t *testing.T) {
	svc := newTestAuthService()
	token, user, err := svc.Signup(context.Background(), "ada@example.com", "correct-horse", "Ada", "")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	userID, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("token decodes to user %d, expected %d", userID, user.ID)
	}

	// Payload itself carries only userId plus the standard time claims.
	parsed, _ := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	claims := parsed.Claims.(jwt.MapClaims)
	if _, ok := claims["userId"]; !ok {
		t.Fatal("token payload must contain userId")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret, -time.Hour)
	token, _, err := svc.Signup(context.Background(), "ada@example.com", "correct-horse", "Ada", "")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, err := svc.VerifyToken(token); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := newTestAuthService()
	other := NewAuthService(newFakeUserRepo(), "different-secret", time.Hour)

	token, _, err := other.Signup(context.Background(), "eve@example.com", "password123", "Eve", "")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if _, err := svc.VerifyToken(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}
