package repository

import (
	"context"
	"encoding/json"

	apperrors "github.com/healthmate/healthmate/internal/errors"

	"github.com/healthmate/healthmate/internal/database"
	"github.com/healthmate/healthmate/internal/domain"
	"gorm.io/gorm"
)

// AnalysisRepository is the gorm-backed implementation of domain.AnalysisRepository.
type AnalysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Save(ctx context.Context, analysis *domain.StoredAnalysis) error {
	result, err := json.Marshal(analysis.Result)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	row := database.Analysis{
		UserID:    analysis.UserID,
		SessionID: analysis.SessionID,
		Complaint: analysis.Complaint,
		Result:    result,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	analysis.ID = row.ID
	analysis.CreatedAt = row.CreatedAt
	return nil
}

func (r *AnalysisRepository) ListByUser(ctx context.Context, userID uint) ([]domain.StoredAnalysis, error) {
	var rows []database.Analysis
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	analyses := make([]domain.StoredAnalysis, 0, len(rows))
	for _, row := range rows {
		analysis := domain.StoredAnalysis{
			ID:        row.ID,
			UserID:    row.UserID,
			SessionID: row.SessionID,
			Complaint: row.Complaint,
			CreatedAt: row.CreatedAt,
		}
		// Rows written by this service always decode; skip anything that does not.
		if err := json.Unmarshal(row.Result, &analysis.Result); err != nil {
			continue
		}
		analyses = append(analyses, analysis)
	}
	return analyses, nil
}
