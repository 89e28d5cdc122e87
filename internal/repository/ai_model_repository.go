package repository

import (
	"aiact_backend/internal/model"

	"gorm.io/gorm"
)

type AIModelRepository struct {
	DB *gorm.DB
}

func NewAIModelRepository(db *gorm.DB) *AIModelRepository {
	return &AIModelRepository{DB: db}
}

func (r *AIModelRepository) Create(m *model.AIModel) error {
	return r.DB.Create(m).Error
}

func (r *AIModelRepository) FindByID(id uint) (*model.AIModel, error) {
	var m model.AIModel
	err := r.DB.First(&m, id).Error
	return &m, err
}

func (r *AIModelRepository) FindBySlug(slug string) (*model.AIModel, error) {
	var m model.AIModel
	err := r.DB.Where("slug = ?", slug).First(&m).Error
	return &m, err
}

func (r *AIModelRepository) List(page, limit int) ([]model.AIModel, int64, error) {
	var ms []model.AIModel
	var total int64
	if err := r.DB.Model(&model.AIModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.DB.Order("name").
		Offset((page - 1) * limit).Limit(limit).
		Find(&ms).Error
	return ms, total, err
}

func (r *AIModelRepository) ListAll() ([]model.AIModel, error) {
	var ms []model.AIModel
	err := r.DB.Order("name").Find(&ms).Error
	return ms, err
}

func (r *AIModelRepository) Update(m *model.AIModel) error {
	return r.DB.Save(m).Error
}
