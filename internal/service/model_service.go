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

type ModelRequest struct {
	Slug            string              `json:"slug" binding:"required"`
	Name            string              `json:"name" binding:"required"`
	Provider        string              `json:"provider"`
	PrincipleScores map[string]*float64 `json:"principleScores"`
}

// ModelView is a model with its derived capability score, when
// computable.
type ModelView struct {
	model.AIModel
	CapabilityScore *float64 `json:"capabilityScore"`
}

// ModelService manages the third-party model registry.
type ModelService struct {
	Repo   *repository.AIModelRepository
	Scores *ModelScoreService
}

func NewModelService(repo *repository.AIModelRepository, scores *ModelScoreService) *ModelService {
	return &ModelService{Repo: repo, Scores: scores}
}

func (s *ModelService) List(page, limit int) ([]ModelView, int64, error) {
	models, total, err := s.Repo.List(page, limit)
	if err != nil {
		return nil, 0, err
	}
	views := make([]ModelView, 0, len(models))
	for i := range models {
		views = append(views, s.view(&models[i]))
	}
	return views, total, nil
}

func (s *ModelService) Get(id uint) (*ModelView, error) {
	m, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModelNotFound
	}
	if err != nil {
		return nil, err
	}
	v := s.view(m)
	return &v, nil
}

func (s *ModelService) Create(req ModelRequest) (*model.AIModel, error) {
	raw, err := json.Marshal(req.PrincipleScores)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	m := &model.AIModel{
		Slug:            req.Slug,
		Name:            req.Name,
		Provider:        req.Provider,
		PrincipleScores: raw,
		EvaluatedAt:     &now,
	}
	if err := s.Repo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *ModelService) Update(id uint, req ModelRequest) (*model.AIModel, error) {
	m, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModelNotFound
	}
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(req.PrincipleScores)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	m.Slug = req.Slug
	m.Name = req.Name
	m.Provider = req.Provider
	m.PrincipleScores = raw
	m.EvaluatedAt = &now
	if err := s.Repo.Update(m); err != nil {
		return nil, err
	}
	s.Scores.InvalidateCache(id)
	return m, nil
}

// Recalculate drops the cached capability score of one model and
// recomputes it from the stored ratings.
func (s *ModelService) Recalculate(id uint) (*ModelView, error) {
	s.Scores.InvalidateCache(id)
	return s.Get(id)
}

// RecalculateAll refreshes the cached capability score of every model.
// Models without any evaluated principle are returned without a score
// rather than failing the batch.
func (s *ModelService) RecalculateAll() ([]ModelView, error) {
	models, err := s.Repo.ListAll()
	if err != nil {
		return nil, err
	}
	views := make([]ModelView, 0, len(models))
	for i := range models {
		s.Scores.InvalidateCache(models[i].ID)
		views = append(views, s.view(&models[i]))
	}
	return views, nil
}

func (s *ModelService) view(m *model.AIModel) ModelView {
	v := ModelView{AIModel: *m}
	if score, err := s.Scores.compute(m); err == nil {
		v.CapabilityScore = &score
	}
	return v
}
