package repository

import (
	"aiact_backend/internal/model"

	"gorm.io/gorm"
)

type HistoryRepository struct {
	DB *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{DB: db}
}

func (r *HistoryRepository) Create(h *model.ScoreHistory) error {
	return r.DB.Create(h).Error
}

func (r *HistoryRepository) ListByUseCase(useCaseID string, limit int) ([]model.ScoreHistory, error) {
	var hs []model.ScoreHistory
	query := r.DB.Where("use_case_id = ?", useCaseID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&hs).Error
	return hs, err
}
