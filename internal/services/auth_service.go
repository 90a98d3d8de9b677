package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/healthmate/healthmate/internal/domain"
	apperrors "github.com/healthmate/healthmate/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is deliberately above the library default.
const bcryptCost = 12

// AuthService handles signup, login and token verification.
type AuthService struct {
	users       domain.UserRepository
	jwtSecret   []byte
	tokenExpiry time.Duration
}

func NewAuthService(users domain.UserRepository, jwtSecret string, tokenExpiry time.Duration) *AuthService {
	return &AuthService{
		users:       users,
		jwtSecret:   []byte(jwtSecret),
		tokenExpiry: tokenExpiry,
	}
}

// Signup creates a user with a hashed password and returns a signed token.
func (s *AuthService) Signup(ctx context.Context, email, password, firstName, lastName string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", nil, apperrors.NewValidationError("a valid email is required")
	}
	if len(password) < 8 {
		return "", nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	// Uniqueness is enforced both here and by the unique index; the index
	// wins under concurrent signups.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", nil, apperrors.ErrBadCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrBadCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetProfile loads the user behind a verified token.
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// issueToken signs a minimal {userId} payload. Expiry is the only
// invalidation mechanism; there is no refresh flow or revocation list.
func (s *AuthService) issueToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(s.tokenExpiry).Unix(),
		"iat":    time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return signed, nil
}

// VerifyToken parses and validates a bearer token, returning the user id.
func (s *AuthService) VerifyToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, apperrors.ErrInvalidToken
	}
	userID, ok := claims["userId"].(float64)
	if !ok || userID <= 0 {
		return 0, apperrors.ErrInvalidToken
	}
	return uint(userID), nil
}
