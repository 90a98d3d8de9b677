package repository

import (
	"context"
	"encoding/json"

	apperrors "github.com/healthmate/healthmate/internal/errors"

	"github.com/healthmate/healthmate/internal/database"
	"github.com/healthmate/healthmate/internal/domain"
	"gorm.io/gorm"
)

// HabitRepository is the gorm-backed implementation of domain.HabitRepository.
type HabitRepository struct {
	db *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{db: db}
}

func (r *HabitRepository) Create(ctx context.Context, log *domain.HabitLog) error {
	row := database.HabitLog{
		UserID:     log.UserID,
		Date:       log.Date,
		Nutrition:  marshalSection(log.Nutrition),
		Sleep:      marshalSection(log.Sleep),
		Exercise:   marshalSection(log.Exercise),
		Medication: marshalSection(log.Medication),
		Mood:       marshalSection(log.Mood),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	log.ID = row.ID
	log.CreatedAt = row.CreatedAt
	return nil
}

func (r *HabitRepository) ListByUser(ctx context.Context, userID uint, startDate, endDate string) ([]domain.HabitLog, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if startDate != "" {
		query = query.Where("date >= ?", startDate)
	}
	if endDate != "" {
		query = query.Where("date <= ?", endDate)
	}

	var rows []database.HabitLog
	if err := query.Order("date DESC").Find(&rows).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	logs := make([]domain.HabitLog, 0, len(rows))
	for _, row := range rows {
		log := domain.HabitLog{
			ID:        row.ID,
			UserID:    row.UserID,
			Date:      row.Date,
			CreatedAt: row.CreatedAt,
		}
		unmarshalSection(row.Nutrition, &log.Nutrition)
		unmarshalSection(row.Sleep, &log.Sleep)
		unmarshalSection(row.Exercise, &log.Exercise)
		unmarshalSection(row.Medication, &log.Medication)
		unmarshalSection(row.Mood, &log.Mood)
		logs = append(logs, log)
	}
	return logs, nil
}

func marshalSection[T any](section *T) []byte {
	if section == nil {
		return nil
	}
	data, err := json.Marshal(section)
	if err != nil {
		return nil
	}
	return data
}

// unmarshalSection decodes a JSON column into **T; corrupt or NULL columns
// leave the target nil rather than failing the whole read.
func unmarshalSection[T any](data []byte, target **T) {
	if len(data) == 0 {
		return
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return
	}
	*target = &value
}
