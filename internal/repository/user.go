package repository

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/healthmate/healthmate/internal/errors"

	"github.com/healthmate/healthmate/internal/database"
	"github.com/healthmate/healthmate/internal/domain"
	"gorm.io/gorm"
)

// UserRepository is the gorm-backed implementation of domain.UserRepository.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	row := database.User{
		Email:        strings.ToLower(user.Email),
		PasswordHash: user.PasswordHash,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Age:          user.Age,
		Gender:       user.Gender,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrEmailTaken
		}
		return apperrors.NewDatabaseError(err)
	}
	user.ID = row.ID
	user.CreatedAt = row.CreatedAt
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row database.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return userToDomain(&row), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var row database.User
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return userToDomain(&row), nil
}

func userToDomain(row *database.User) *domain.User {
	return &domain.User{
		ID:           row.ID,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Age:          row.Age,
		Gender:       row.Gender,
	}
}
