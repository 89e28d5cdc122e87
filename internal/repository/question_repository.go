package repository

import (
	"aiact_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.QuestionnaireQuestion) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByCode(code string) (*model.QuestionnaireQuestion, error) {
	var q model.QuestionnaireQuestion
	err := r.DB.Where("code = ?", code).First(&q).Error
	return &q, err
}

// ActiveQuestions returns every active question in section and display
// order, the set the flow graph is built from.
func (r *QuestionRepository) ActiveQuestions() ([]model.QuestionnaireQuestion, error) {
	var qs []model.QuestionnaireQuestion
	err := r.DB.Where("is_active = ?", true).
		Order("section_id, display_order").
		Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) ListAll() ([]model.QuestionnaireQuestion, error) {
	var qs []model.QuestionnaireQuestion
	err := r.DB.Order("section_id, display_order").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) Update(q *model.QuestionnaireQuestion) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Deactivate(code string) error {
	return r.DB.Model(&model.QuestionnaireQuestion{}).
		Where("code = ?", code).
		Update("is_active", false).Error
}

func (r *QuestionRepository) ListSections() ([]model.QuestionnaireSection, error) {
	var sections []model.QuestionnaireSection
	err := r.DB.Order("display_order").Find(&sections).Error
	return sections, err
}
