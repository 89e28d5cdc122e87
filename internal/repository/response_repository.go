package repository

import (
	"aiact_backend/internal/model"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

// Upsert stores the answer for (use case, question), replacing any prior
// answer for the same question. Last write wins.
func (r *ResponseRepository) Upsert(resp *model.UseCaseResponse) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "use_case_id"}, {Name: "question_code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"kind", "single_value", "multiple_values", "conditional_details",
			"text_value", "numeric_value", "date_value", "updated_at",
		}),
	}).Create(resp).Error
}

func (r *ResponseRepository) Get(useCaseID, questionCode string) (*model.UseCaseResponse, error) {
	var resp model.UseCaseResponse
	err := r.DB.Where("use_case_id = ? AND question_code = ?", useCaseID, questionCode).
		First(&resp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *ResponseRepository) ListAll(useCaseID string) ([]model.UseCaseResponse, error) {
	var resps []model.UseCaseResponse
	err := r.DB.Where("use_case_id = ?", useCaseID).Find(&resps).Error
	return resps, err
}

// DeleteAll wipes every stored answer of a use case, used by the
// questionnaire reset.
func (r *ResponseRepository) DeleteAll(useCaseID string) error {
	return r.DB.Unscoped().
		Where("use_case_id = ?", useCaseID).
		Delete(&model.UseCaseResponse{}).Error
}

func (r *ResponseRepository) CountByUseCase(useCaseID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UseCaseResponse{}).
		Where("use_case_id = ?", useCaseID).Count(&count).Error
	return count, err
}
