package repository

import (
	"aiact_backend/internal/model"
	"fmt"

	"gorm.io/gorm"
)

type UseCaseRepository struct {
	DB *gorm.DB
}

func NewUseCaseRepository(db *gorm.DB) *UseCaseRepository {
	return &UseCaseRepository{DB: db}
}

func (r *UseCaseRepository) Create(uc *model.UseCase) error {
	return r.DB.Create(uc).Error
}

func (r *UseCaseRepository) FindByID(id string) (*model.UseCase, error) {
	var uc model.UseCase
	err := r.DB.Where("id = ?", id).First(&uc).Error
	return &uc, err
}

func (r *UseCaseRepository) ListByCompany(companyID uint, page, limit int) ([]model.UseCase, int64, error) {
	var ucs []model.UseCase
	var total int64
	query := r.DB.Model(&model.UseCase{}).Where("company_id = ?", companyID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&ucs).Error
	return ucs, total, err
}

func (r *UseCaseRepository) Update(uc *model.UseCase) error {
	return r.DB.Save(uc).Error
}

// DeleteCascade removes a use case and everything hanging off it inside
// one transaction. Dependents go first so a failure partway never leaves
// an orphaned child row pointing at a deleted parent.
func (r *UseCaseRepository) DeleteCascade(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			name  string
			model interface{}
		}{
			{"responses", &model.UseCaseResponse{}},
			{"score history", &model.ScoreHistory{}},
			{"collaborators", &model.UseCaseCollaborator{}},
			{"documents", &model.ProofDocument{}},
		}
		for _, step := range steps {
			if err := tx.Where("use_case_id = ?", id).Delete(step.model).Error; err != nil {
				return fmt.Errorf("delete %s of use case %s: %w", step.name, id, err)
			}
		}
		if err := tx.Where("id = ?", id).Delete(&model.UseCase{}).Error; err != nil {
			return fmt.Errorf("delete use case %s: %w", id, err)
		}
		return nil
	})
}
