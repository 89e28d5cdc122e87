package service

import (
	"aiact_backend/internal/config"
	"aiact_backend/internal/model"
	"aiact_backend/internal/util"
	"aiact_backend/pkg/logger"
	"aiact_backend/pkg/monitoring"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// QuestionSource supplies the active question set the flow graph is
// built from.
type QuestionSource interface {
	ActiveQuestions() ([]model.QuestionnaireQuestion, error)
}

// ResponseStore persists answers with last-write-wins per question code.
type ResponseStore interface {
	Upsert(resp *model.UseCaseResponse) error
	Get(useCaseID, questionCode string) (*model.UseCaseResponse, error)
	ListAll(useCaseID string) ([]model.UseCaseResponse, error)
	DeleteAll(useCaseID string) error
}

// UseCaseStore is the slice of use case persistence scoring needs.
type UseCaseStore interface {
	FindByID(id string) (*model.UseCase, error)
	Update(uc *model.UseCase) error
}

// HistoryStore records scoring events.
type HistoryStore interface {
	Create(h *model.ScoreHistory) error
}

// ModelScoreProvider supplies the capability score of a third-party
// model. Implementations must return util.ErrModelNotFound for unknown
// ids rather than substituting zero.
type ModelScoreProvider interface {
	CapabilityScore(modelID uint) (float64, error)
}

// ScoreResult is one full scoring run.
type ScoreResult struct {
	Base              float64 `json:"scoreBase"`
	Model             float64 `json:"scoreModel"`
	Final             float64 `json:"scoreFinal"`
	RiskLevel         string  `json:"riskLevel"`
	Eliminated        bool    `json:"eliminated"`
	EliminationReason string  `json:"eliminationReason,omitempty"`
}

type ScoringService struct {
	Questions QuestionSource
	Responses ResponseStore
	UseCases  UseCaseStore
	History   HistoryStore
	Models    ModelScoreProvider
	Classify  RiskClassifier
	Scoring   config.ScoringConfig
	Entry     string

	mu   sync.RWMutex
	bank *QuestionBank
}

func NewScoringService(
	questions QuestionSource,
	responses ResponseStore,
	useCases UseCaseStore,
	history HistoryStore,
	models ModelScoreProvider,
	scoring config.ScoringConfig,
	entry string,
) *ScoringService {
	return &ScoringService{
		Questions: questions,
		Responses: responses,
		UseCases:  useCases,
		History:   history,
		Models:    models,
		Classify:  HighestOptionRisk,
		Scoring:   scoring,
		Entry:     entry,
	}
}

// Bank returns the validated flow graph, building it on first use. Admin
// edits to the question bank call InvalidateBank.
func (s *ScoringService) Bank() (*QuestionBank, error) {
	s.mu.RLock()
	if s.bank != nil {
		b := s.bank
		s.mu.RUnlock()
		return b, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bank != nil {
		return s.bank, nil
	}
	questions, err := s.Questions.ActiveQuestions()
	if err != nil {
		return nil, err
	}
	bank, err := BuildQuestionBank(questions, s.Entry)
	if err != nil {
		return nil, err
	}
	s.bank = bank
	return bank, nil
}

func (s *ScoringService) InvalidateBank() {
	s.mu.Lock()
	s.bank = nil
	s.mu.Unlock()
}

// AnswersFor loads every stored answer of a use case keyed by question
// code.
func (s *ScoringService) AnswersFor(useCaseID string) (map[string]model.Answer, error) {
	responses, err := s.Responses.ListAll(useCaseID)
	if err != nil {
		return nil, err
	}
	answers := make(map[string]model.Answer, len(responses))
	for i := range responses {
		a, err := responses[i].ToAnswer()
		if err != nil {
			return nil, err
		}
		answers[responses[i].QuestionCode] = a
	}
	return answers, nil
}

// Recalculate recomputes the three scores of a use case from scratch.
// An eliminatory answer short-circuits: scores stay null, the use case is
// flagged eliminated and normal scoring never runs. An incomplete path
// returns util.ErrIncomplete so callers can tell "still in progress"
// apart from "done".
func (s *ScoringService) Recalculate(useCaseID string, actorID uint) (*ScoreResult, error) {
	uc, err := s.UseCases.FindByID(useCaseID)
	if err != nil {
		return nil, util.ErrUseCaseNotFound
	}
	bank, err := s.Bank()
	if err != nil {
		return nil, err
	}
	answers, err := s.AnswersFor(useCaseID)
	if err != nil {
		return nil, err
	}

	if elim := CheckElimination(bank, answers); elim != nil {
		return s.eliminate(uc, elim, actorID)
	}

	complete, err := IsComplete(bank, answers)
	if err != nil {
		return nil, err
	}
	if !complete {
		monitoring.ScoringRuns.WithLabelValues("incomplete").Inc()
		return nil, util.ErrIncomplete
	}

	base, err := CalculateBaseScore(bank, answers, s.Scoring)
	if err != nil {
		return nil, err
	}

	var modelScore float64
	if uc.PrimaryModelID != nil {
		modelScore, err = s.Models.CapabilityScore(*uc.PrimaryModelID)
		if err != nil {
			return nil, err
		}
	}

	final := NormalizeScore(base, modelScore, s.Scoring)
	risk := s.Classify(bank, answers)

	prev := uc.ScoreFinal
	now := time.Now()
	uc.ScoreBase = &base
	uc.ScoreModel = &modelScore
	uc.ScoreFinal = &final
	uc.RiskLevel = risk
	uc.Status = model.UseCaseCompleted
	uc.EliminationReason = ""
	uc.LastScoredAt = &now
	if err := s.UseCases.Update(uc); err != nil {
		return nil, err
	}

	s.record(uc.ID, model.EventScored, prev, &final, actorID, nil)
	monitoring.ScoringRuns.WithLabelValues("scored").Inc()

	return &ScoreResult{
		Base:      base,
		Model:     modelScore,
		Final:     final,
		RiskLevel: risk,
	}, nil
}

func (s *ScoringService) eliminate(uc *model.UseCase, elim *Elimination, actorID uint) (*ScoreResult, error) {
	prev := uc.ScoreFinal
	uc.ScoreBase = nil
	uc.ScoreModel = nil
	uc.ScoreFinal = nil
	uc.RiskLevel = model.RiskUnacceptable
	uc.Status = model.UseCaseEliminated
	uc.EliminationReason = elim.OptionLabel
	if err := s.UseCases.Update(uc); err != nil {
		return nil, err
	}

	details, _ := json.Marshal(elim)
	s.record(uc.ID, model.EventEliminated, prev, nil, actorID, details)
	monitoring.ScoringRuns.WithLabelValues("eliminated").Inc()

	logger.Log.Info("Use case eliminated",
		zap.String("useCaseId", uc.ID),
		zap.String("question", elim.QuestionCode),
		zap.String("option", elim.OptionValue),
	)

	return &ScoreResult{
		RiskLevel:         model.RiskUnacceptable,
		Eliminated:        true,
		EliminationReason: elim.OptionLabel,
	}, nil
}

func (s *ScoringService) record(useCaseID string, event model.HistoryEvent, prev, next *float64, actorID uint, details json.RawMessage) {
	if s.History == nil {
		return
	}
	h := &model.ScoreHistory{
		UseCaseID:     useCaseID,
		Event:         event,
		PreviousScore: prev,
		NewScore:      next,
		ActorID:       actorID,
		Details:       details,
	}
	if err := s.History.Create(h); err != nil {
		logger.Log.Error("Failed to record score history", zap.Error(err), zap.String("useCaseId", useCaseID))
	}
}
