package service

import (
	"aiact_backend/internal/model"
	"aiact_backend/internal/util"
	"encoding/json"
	"errors"
	"fmt"
)

// SubmitResult tells the caller what happened after one answer: either
// the next question to show, or the final scores when the flow reached a
// terminal node, or the elimination outcome.
type SubmitResult struct {
	NextQuestionCode string       `json:"nextQuestionCode,omitempty"`
	Completed        bool         `json:"completed"`
	Score            *ScoreResult `json:"score,omitempty"`
}

// Progress summarizes how far along the resolved path a use case is.
// Percent is relative to the answer-dependent path; AbsolutePercent is
// relative to the whole bank and can only grow as answers land.
type Progress struct {
	Answered            int     `json:"answered"`
	PathLength          int     `json:"pathLength"`
	TotalQuestions      int     `json:"totalQuestions"`
	Percent             float64 `json:"percent"`
	AbsolutePercent     float64 `json:"absolutePercent"`
	CurrentQuestionCode string  `json:"currentQuestionCode,omitempty"`
}

type QuestionnaireService struct {
	Scoring   *ScoringService
	Responses ResponseStore
	UseCases  UseCaseStore
}

func NewQuestionnaireService(scoring *ScoringService, responses ResponseStore, useCases UseCaseStore) *QuestionnaireService {
	return &QuestionnaireService{Scoring: scoring, Responses: responses, UseCases: useCases}
}

// SubmitAnswer validates and stores one answer, then advances the flow.
// Unknown question codes are rejected, never ignored. An eliminatory
// selection or a terminal node triggers a full scoring run.
func (s *QuestionnaireService) SubmitAnswer(useCaseID, questionCode string, a model.Answer, actorID uint) (*SubmitResult, error) {
	uc, err := s.UseCases.FindByID(useCaseID)
	if err != nil {
		return nil, util.ErrUseCaseNotFound
	}
	bank, err := s.Scoring.Bank()
	if err != nil {
		return nil, err
	}
	q, ok := bank.Question(questionCode)
	if !ok {
		return nil, fmt.Errorf("%w: %s", util.ErrUnknownQuestion, questionCode)
	}
	if err := a.ValidateFor(&q.QuestionnaireQuestion, q.Opts); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidAnswer, err)
	}

	prior, err := s.Responses.Get(useCaseID, questionCode)
	if err != nil {
		return nil, err
	}
	resp, err := model.NewResponse(useCaseID, questionCode, a)
	if err != nil {
		return nil, err
	}
	if err := s.Responses.Upsert(resp); err != nil {
		return nil, err
	}
	if prior != nil && (uc.Status == model.UseCaseCompleted || uc.Status == model.UseCaseEliminated) {
		details, _ := json.Marshal(map[string]string{"questionCode": questionCode})
		s.Scoring.record(useCaseID, model.EventAnswerChanged, uc.ScoreFinal, nil, actorID, details)
	}

	if selectsEliminatory(q, a) {
		score, err := s.Scoring.Recalculate(useCaseID, actorID)
		if err != nil {
			return nil, err
		}
		return &SubmitResult{Completed: true, Score: score}, nil
	}

	next, err := ResolveNext(bank, q, a)
	if err != nil {
		return nil, err
	}
	if next == "" {
		score, err := s.Scoring.Recalculate(useCaseID, actorID)
		if err != nil {
			return nil, err
		}
		return &SubmitResult{Completed: true, Score: score}, nil
	}

	uc.CurrentQuestionCode = next
	if uc.Status == model.UseCaseDraft {
		uc.Status = model.UseCaseInProgress
	}
	if err := s.UseCases.Update(uc); err != nil {
		return nil, err
	}
	return &SubmitResult{NextQuestionCode: next}, nil
}

// BulkSave stores a batch of answers in one call, used by resumable
// sessions. Every answer is validated against the bank before any write.
// The use case's position is recomputed afterwards and a full scoring
// run fires if the path is complete.
func (s *QuestionnaireService) BulkSave(useCaseID string, answers map[string]model.Answer, actorID uint) (*SubmitResult, error) {
	uc, err := s.UseCases.FindByID(useCaseID)
	if err != nil {
		return nil, util.ErrUseCaseNotFound
	}
	bank, err := s.Scoring.Bank()
	if err != nil {
		return nil, err
	}

	for code, a := range answers {
		q, ok := bank.Question(code)
		if !ok {
			return nil, fmt.Errorf("%w: %s", util.ErrUnknownQuestion, code)
		}
		if err := a.ValidateFor(&q.QuestionnaireQuestion, q.Opts); err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrInvalidAnswer, err)
		}
	}
	for code, a := range answers {
		resp, err := model.NewResponse(useCaseID, code, a)
		if err != nil {
			return nil, err
		}
		if err := s.Responses.Upsert(resp); err != nil {
			return nil, err
		}
	}

	score, err := s.Scoring.Recalculate(useCaseID, actorID)
	if err == nil {
		return &SubmitResult{Completed: true, Score: score}, nil
	}
	if !errors.Is(err, util.ErrIncomplete) {
		return nil, err
	}

	stored, err := s.Scoring.AnswersFor(useCaseID)
	if err != nil {
		return nil, err
	}
	next, err := FirstUnanswered(bank, stored)
	if err != nil {
		return nil, err
	}
	uc.CurrentQuestionCode = next
	if uc.Status == model.UseCaseDraft {
		uc.Status = model.UseCaseInProgress
	}
	if err := s.UseCases.Update(uc); err != nil {
		return nil, err
	}
	return &SubmitResult{NextQuestionCode: next}, nil
}

// CurrentQuestion returns the question to show when resuming: the first
// unanswered question on the resolved path, nil once the path is fully
// answered.
func (s *QuestionnaireService) CurrentQuestion(useCaseID string) (*BankQuestion, error) {
	if _, err := s.UseCases.FindByID(useCaseID); err != nil {
		return nil, util.ErrUseCaseNotFound
	}
	bank, err := s.Scoring.Bank()
	if err != nil {
		return nil, err
	}
	answers, err := s.Scoring.AnswersFor(useCaseID)
	if err != nil {
		return nil, err
	}
	code, err := FirstUnanswered(bank, answers)
	if err != nil {
		return nil, err
	}
	if code == "" {
		return nil, nil
	}
	q, _ := bank.Question(code)
	return q, nil
}

// GetProgress reports answered count against the current resolved path.
// Tolerates a partially answered set; the denominator grows as branching
// answers extend the path.
func (s *QuestionnaireService) GetProgress(useCaseID string) (*Progress, error) {
	if _, err := s.UseCases.FindByID(useCaseID); err != nil {
		return nil, util.ErrUseCaseNotFound
	}
	bank, err := s.Scoring.Bank()
	if err != nil {
		return nil, err
	}
	answers, err := s.Scoring.AnswersFor(useCaseID)
	if err != nil {
		return nil, err
	}
	path, err := ResolvedPath(bank, answers)
	if err != nil {
		return nil, err
	}

	answered := 0
	current := ""
	for _, code := range path {
		if _, ok := answers[code]; ok {
			answered++
		} else {
			current = code
		}
	}
	p := &Progress{
		Answered:            answered,
		PathLength:          len(path),
		TotalQuestions:      bank.Len(),
		CurrentQuestionCode: current,
	}
	if len(path) > 0 {
		p.Percent = float64(answered) / float64(len(path)) * 100
	}
	if bank.Len() > 0 {
		p.AbsolutePercent = float64(answered) / float64(bank.Len()) * 100
	}
	return p, nil
}

// Reset wipes every stored answer and puts the use case back at the
// entry question with null scores.
func (s *QuestionnaireService) Reset(useCaseID string, actorID uint) error {
	uc, err := s.UseCases.FindByID(useCaseID)
	if err != nil {
		return util.ErrUseCaseNotFound
	}
	if err := s.Responses.DeleteAll(useCaseID); err != nil {
		return err
	}

	prev := uc.ScoreFinal
	uc.ScoreBase = nil
	uc.ScoreModel = nil
	uc.ScoreFinal = nil
	uc.RiskLevel = ""
	uc.EliminationReason = ""
	uc.LastScoredAt = nil
	uc.Status = model.UseCaseDraft
	uc.CurrentQuestionCode = s.Scoring.Entry
	if err := s.UseCases.Update(uc); err != nil {
		return err
	}
	s.Scoring.record(useCaseID, model.EventAnswerChanged, prev, nil, actorID, nil)
	return nil
}

// ListAnswers returns the stored answers of a use case keyed by code.
func (s *QuestionnaireService) ListAnswers(useCaseID string) (map[string]model.Answer, error) {
	if _, err := s.UseCases.FindByID(useCaseID); err != nil {
		return nil, util.ErrUseCaseNotFound
	}
	return s.Scoring.AnswersFor(useCaseID)
}

func selectsEliminatory(q *BankQuestion, a model.Answer) bool {
	selected := make(map[string]bool)
	for _, c := range a.SelectedCodes() {
		selected[c] = true
	}
	for _, o := range q.Opts {
		if o.IsEliminatory && selected[o.Value] {
			return true
		}
	}
	return false
}
