package repository

import (
	"aiact_backend/internal/model"

	"gorm.io/gorm"
)

type CompanyRepository struct {
	DB *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{DB: db}
}

func (r *CompanyRepository) Create(company *model.Company) error {
	return r.DB.Create(company).Error
}

func (r *CompanyRepository) FindByID(id uint) (*model.Company, error) {
	var company model.Company
	err := r.DB.First(&company, id).Error
	return &company, err
}

func (r *CompanyRepository) Update(company *model.Company) error {
	return r.DB.Save(company).Error
}
