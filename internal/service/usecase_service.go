package service

import (
	"aiact_backend/internal/model"
	"aiact_backend/internal/repository"
	"aiact_backend/internal/util"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type UseCaseRequest struct {
	Name                string     `json:"name" binding:"required"`
	Description         string     `json:"description"`
	ResponsibleService  string     `json:"responsibleService"`
	TechnologyPartner   string     `json:"technologyPartner"`
	DeploymentDate      *time.Time `json:"deploymentDate"`
	DeploymentCountries []string   `json:"deploymentCountries"`
}

type UseCaseService struct {
	UseCases      *repository.UseCaseRepository
	Users         *repository.UserRepository
	Collaborators *repository.CollaboratorRepository
	History       *repository.HistoryRepository
	Scoring       *ScoringService
}

func NewUseCaseService(
	useCases *repository.UseCaseRepository,
	users *repository.UserRepository,
	collaborators *repository.CollaboratorRepository,
	history *repository.HistoryRepository,
	scoring *ScoringService,
) *UseCaseService {
	return &UseCaseService{
		UseCases:      useCases,
		Users:         users,
		Collaborators: collaborators,
		History:       history,
		Scoring:       scoring,
	}
}

func (s *UseCaseService) Create(ownerID, companyID uint, req UseCaseRequest) (*model.UseCase, error) {
	countries, err := json.Marshal(req.DeploymentCountries)
	if err != nil {
		return nil, err
	}
	uc := &model.UseCase{
		CompanyID:           companyID,
		OwnerID:             ownerID,
		Name:                req.Name,
		Description:         req.Description,
		ResponsibleService:  req.ResponsibleService,
		TechnologyPartner:   req.TechnologyPartner,
		DeploymentDate:      req.DeploymentDate,
		DeploymentCountries: countries,
		CurrentQuestionCode: s.Scoring.Entry,
		Status:              model.UseCaseDraft,
	}
	if err := s.UseCases.Create(uc); err != nil {
		return nil, err
	}
	return uc, nil
}

func (s *UseCaseService) Get(id string, claims *util.Claims) (*model.UseCase, error) {
	uc, err := s.UseCases.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUseCaseNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.authorize(uc, claims, false); err != nil {
		return nil, err
	}
	return uc, nil
}

// CheckEdit verifies write access without returning the row.
func (s *UseCaseService) CheckEdit(id string, claims *util.Claims) error {
	uc, err := s.UseCases.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUseCaseNotFound
	}
	if err != nil {
		return err
	}
	return s.authorize(uc, claims, true)
}

func (s *UseCaseService) ListByCompany(companyID uint, page, limit int) ([]model.UseCase, int64, error) {
	return s.UseCases.ListByCompany(companyID, page, limit)
}

func (s *UseCaseService) Update(id string, claims *util.Claims, req UseCaseRequest) (*model.UseCase, error) {
	uc, err := s.UseCases.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUseCaseNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.authorize(uc, claims, true); err != nil {
		return nil, err
	}

	countries, err := json.Marshal(req.DeploymentCountries)
	if err != nil {
		return nil, err
	}
	uc.Name = req.Name
	uc.Description = req.Description
	uc.ResponsibleService = req.ResponsibleService
	uc.TechnologyPartner = req.TechnologyPartner
	uc.DeploymentDate = req.DeploymentDate
	uc.DeploymentCountries = countries
	if err := s.UseCases.Update(uc); err != nil {
		return nil, err
	}
	return uc, nil
}

// Delete removes the use case and all dependent rows in one transaction,
// dependents first. Only the owner or an admin may delete.
func (s *UseCaseService) Delete(id string, claims *util.Claims) error {
	uc, err := s.UseCases.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUseCaseNotFound
	}
	if err != nil {
		return err
	}
	if claims.Role != model.Admin && uc.OwnerID != claims.UserID {
		return util.ErrPermissionDenied
	}
	return s.UseCases.DeleteCascade(id)
}

// SetPrimaryModel attaches (or detaches, with nil) the third-party model
// and rescores a completed use case so the final percentage reflects the
// new capability score.
func (s *UseCaseService) SetPrimaryModel(id string, claims *util.Claims, modelID *uint) (*model.UseCase, error) {
	uc, err := s.UseCases.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUseCaseNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.authorize(uc, claims, true); err != nil {
		return nil, err
	}

	if modelID != nil {
		if _, err := s.Scoring.Models.CapabilityScore(*modelID); err != nil {
			return nil, err
		}
	}

	prev := uc.ScoreFinal
	uc.PrimaryModelID = modelID
	if err := s.UseCases.Update(uc); err != nil {
		return nil, err
	}
	s.recordModelChange(uc.ID, prev, claims.UserID)

	if uc.Status == model.UseCaseCompleted {
		if _, err := s.Scoring.Recalculate(id, claims.UserID); err != nil {
			return nil, err
		}
		return s.UseCases.FindByID(id)
	}
	return uc, nil
}

// RequiredDocumentType tells an eliminated use case which evidence it
// must upload: proof the practice was stopped when deployment already
// happened, a safeguard plan when deployment is still ahead.
func (s *UseCaseService) RequiredDocumentType(uc *model.UseCase) (model.DocumentType, bool) {
	if uc.Status != model.UseCaseEliminated {
		return "", false
	}
	if uc.DeploymentDate != nil && uc.DeploymentDate.Before(time.Now()) {
		return model.DocStoppingProof, true
	}
	return model.DocSafeguard, true
}

func (s *UseCaseService) AddCollaborator(id string, claims *util.Claims, userID uint, role model.CollaboratorRole) error {
	uc, err := s.UseCases.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUseCaseNotFound
	}
	if err != nil {
		return err
	}
	if claims.Role != model.Admin && uc.OwnerID != claims.UserID {
		return util.ErrPermissionDenied
	}
	if _, err := s.Users.FindByID(userID); err != nil {
		return util.ErrUserNotFound
	}
	existing, err := s.Collaborators.Find(id, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return util.ErrCollaboratorExists
	}
	return s.Collaborators.Add(&model.UseCaseCollaborator{
		UseCaseID: id,
		UserID:    userID,
		Role:      role,
	})
}

func (s *UseCaseService) RemoveCollaborator(id string, claims *util.Claims, userID uint) error {
	uc, err := s.UseCases.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUseCaseNotFound
	}
	if err != nil {
		return err
	}
	if claims.Role != model.Admin && uc.OwnerID != claims.UserID {
		return util.ErrPermissionDenied
	}
	return s.Collaborators.Remove(id, userID)
}

func (s *UseCaseService) ListCollaborators(id string, claims *util.Claims) ([]model.UseCaseCollaborator, error) {
	uc, err := s.UseCases.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUseCaseNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.authorize(uc, claims, false); err != nil {
		return nil, err
	}
	return s.Collaborators.ListByUseCase(id)
}

func (s *UseCaseService) GetHistory(id string, claims *util.Claims, limit int) ([]model.ScoreHistory, error) {
	uc, err := s.UseCases.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUseCaseNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.authorize(uc, claims, false); err != nil {
		return nil, err
	}
	return s.History.ListByUseCase(id, limit)
}

// authorize checks view or edit access: admins and owners always pass,
// collaborators pass per their role, other company members may view.
func (s *UseCaseService) authorize(uc *model.UseCase, claims *util.Claims, write bool) error {
	if claims == nil {
		return util.ErrPermissionDenied
	}
	if claims.Role == model.Admin || uc.OwnerID == claims.UserID {
		return nil
	}
	collab, err := s.Collaborators.Find(uc.ID, claims.UserID)
	if err != nil {
		return err
	}
	if collab != nil {
		if write && collab.Role != model.CollaboratorEditor {
			return util.ErrPermissionDenied
		}
		return nil
	}
	if !write {
		user, err := s.Users.FindByID(claims.UserID)
		if err == nil && user.CompanyID != nil && *user.CompanyID == uc.CompanyID {
			return nil
		}
	}
	return util.ErrPermissionDenied
}

func (s *UseCaseService) recordModelChange(useCaseID string, prev *float64, actorID uint) {
	if s.History == nil {
		return
	}
	_ = s.History.Create(&model.ScoreHistory{
		UseCaseID:     useCaseID,
		Event:         model.EventModelChanged,
		PreviousScore: prev,
		ActorID:       actorID,
	})
}
