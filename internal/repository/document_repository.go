package repository

import (
	"aiact_backend/internal/model"

	"gorm.io/gorm"
)

type DocumentRepository struct {
	DB *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) Create(d *model.ProofDocument) error {
	return r.DB.Create(d).Error
}

func (r *DocumentRepository) FindByID(id string) (*model.ProofDocument, error) {
	var d model.ProofDocument
	err := r.DB.Where("id = ?", id).First(&d).Error
	return &d, err
}

func (r *DocumentRepository) ListByUseCase(useCaseID string) ([]model.ProofDocument, error) {
	var ds []model.ProofDocument
	err := r.DB.Where("use_case_id = ?", useCaseID).Order("created_at DESC").Find(&ds).Error
	return ds, err
}

func (r *DocumentRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.ProofDocument{}).Error
}
