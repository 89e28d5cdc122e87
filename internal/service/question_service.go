package service

import (
	"aiact_backend/internal/model"
	"aiact_backend/internal/repository"
	"aiact_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type QuestionRequest struct {
	Code         string                 `json:"code" binding:"required"`
	SectionID    uint                   `json:"sectionId" binding:"required"`
	Text         string                 `json:"text" binding:"required"`
	Type         model.QuestionType     `json:"type" binding:"required"`
	Options      []model.QuestionOption `json:"options"`
	DefaultNext  string                 `json:"defaultNext"`
	Required     *bool                  `json:"required"`
	DisplayOrder int                    `json:"displayOrder"`
}

// FlowEdge is one edge of the flow graph dump.
type FlowEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Option string `json:"option,omitempty"`
}

// QuestionService is the admin side of the question bank. Every write
// revalidates the whole graph before it lands, so dangling references,
// cycles and multi-select questions with more than one option successor
// never reach the stored config.
type QuestionService struct {
	Repo    *repository.QuestionRepository
	Scoring *ScoringService
}

func NewQuestionService(repo *repository.QuestionRepository, scoring *ScoringService) *QuestionService {
	return &QuestionService{Repo: repo, Scoring: scoring}
}

func (s *QuestionService) ListSections() ([]model.QuestionnaireSection, error) {
	return s.Repo.ListSections()
}

func (s *QuestionService) ListQuestions() ([]model.QuestionnaireQuestion, error) {
	return s.Repo.ListAll()
}

func (s *QuestionService) GetQuestion(code string) (*model.QuestionnaireQuestion, error) {
	q, err := s.Repo.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	return q, err
}

func (s *QuestionService) CreateQuestion(req QuestionRequest) (*model.QuestionnaireQuestion, error) {
	q := s.fromRequest(req)
	if err := s.validateWith(q, ""); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(q); err != nil {
		return nil, err
	}
	s.Scoring.InvalidateBank()
	return q, nil
}

func (s *QuestionService) UpdateQuestion(code string, req QuestionRequest) (*model.QuestionnaireQuestion, error) {
	existing, err := s.GetQuestion(code)
	if err != nil {
		return nil, err
	}

	updated := s.fromRequest(req)
	updated.ID = existing.ID
	updated.Code = existing.Code
	updated.IsActive = existing.IsActive
	if err := s.validateWith(updated, existing.Code); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(updated); err != nil {
		return nil, err
	}
	s.Scoring.InvalidateBank()
	return updated, nil
}

// DeactivateQuestion retires a question. The remaining active set must
// still form a valid graph, so a question that others point to cannot be
// retired first.
func (s *QuestionService) DeactivateQuestion(code string) error {
	if _, err := s.GetQuestion(code); err != nil {
		return err
	}

	questions, err := s.Repo.ActiveQuestions()
	if err != nil {
		return err
	}
	remaining := questions[:0]
	for _, q := range questions {
		if q.Code != code {
			remaining = append(remaining, q)
		}
	}
	if _, err := BuildQuestionBank(remaining, s.Scoring.Entry); err != nil {
		return err
	}

	if err := s.Repo.Deactivate(code); err != nil {
		return err
	}
	s.Scoring.InvalidateBank()
	return nil
}

// ValidateFlow rebuilds the active graph and reports the first
// configuration error without touching the cached bank.
func (s *QuestionService) ValidateFlow() error {
	questions, err := s.Repo.ActiveQuestions()
	if err != nil {
		return err
	}
	_, err = BuildQuestionBank(questions, s.Scoring.Entry)
	return err
}

// FlowDump returns the full adjacency of the active bank for admin
// inspection.
func (s *QuestionService) FlowDump() ([]FlowEdge, error) {
	bank, err := s.Scoring.Bank()
	if err != nil {
		return nil, err
	}
	var edges []FlowEdge
	for _, q := range bank.Questions() {
		if q.DefaultNext != "" {
			edges = append(edges, FlowEdge{From: q.Code, To: q.DefaultNext})
		}
		for _, o := range q.Opts {
			if o.NextQuestionCode != "" {
				edges = append(edges, FlowEdge{From: q.Code, To: o.NextQuestionCode, Option: o.Value})
			}
		}
	}
	return edges, nil
}

func (s *QuestionService) fromRequest(req QuestionRequest) *model.QuestionnaireQuestion {
	required := true
	if req.Required != nil {
		required = *req.Required
	}
	return &model.QuestionnaireQuestion{
		Code:         req.Code,
		SectionID:    req.SectionID,
		Text:         req.Text,
		Type:         req.Type,
		Options:      model.MustEncodeOptions(req.Options),
		DefaultNext:  req.DefaultNext,
		Required:     required,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}
}

// validateWith rebuilds the graph with the candidate question swapped in
// (replace is the code being updated, empty for a create).
func (s *QuestionService) validateWith(candidate *model.QuestionnaireQuestion, replace string) error {
	questions, err := s.Repo.ActiveQuestions()
	if err != nil {
		return err
	}
	next := make([]model.QuestionnaireQuestion, 0, len(questions)+1)
	for _, q := range questions {
		if replace != "" && q.Code == replace {
			continue
		}
		if replace == "" && q.Code == candidate.Code {
			return util.ErrFlowConfiguration
		}
		next = append(next, q)
	}
	next = append(next, *candidate)
	_, err = BuildQuestionBank(next, s.Scoring.Entry)
	return err
}
