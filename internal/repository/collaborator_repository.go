package repository

import (
	"aiact_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type CollaboratorRepository struct {
	DB *gorm.DB
}

func NewCollaboratorRepository(db *gorm.DB) *CollaboratorRepository {
	return &CollaboratorRepository{DB: db}
}

func (r *CollaboratorRepository) Add(c *model.UseCaseCollaborator) error {
	return r.DB.Create(c).Error
}

func (r *CollaboratorRepository) Find(useCaseID string, userID uint) (*model.UseCaseCollaborator, error) {
	var c model.UseCaseCollaborator
	err := r.DB.Where("use_case_id = ? AND user_id = ?", useCaseID, userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CollaboratorRepository) ListByUseCase(useCaseID string) ([]model.UseCaseCollaborator, error) {
	var cs []model.UseCaseCollaborator
	err := r.DB.Where("use_case_id = ?", useCaseID).Find(&cs).Error
	return cs, err
}

func (r *CollaboratorRepository) Remove(useCaseID string, userID uint) error {
	return r.DB.Where("use_case_id = ? AND user_id = ?", useCaseID, userID).
		Delete(&model.UseCaseCollaborator{}).Error
}
