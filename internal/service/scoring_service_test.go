package service

import (
	"aiact_backend/internal/model"
	"aiact_backend/internal/util"
	"aiact_backend/pkg/database"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScoringService(ucs *fakeUseCaseStore, responses *fakeResponseStore, models ModelScoreProvider) (*ScoringService, *fakeHistoryStore) {
	history := &fakeHistoryStore{}
	svc := NewScoringService(
		&fakeQuestionSource{questions: testQuestions()},
		responses,
		ucs,
		history,
		models,
		testScoringConfig(),
		database.EntryQuestionCode,
	)
	return svc, history
}

func TestRecalculateUnknownUseCase(t *testing.T) {
	svc, _ := newTestScoringService(newFakeUseCaseStore(), newFakeResponseStore(), &fakeModelScores{})

	_, err := svc.Recalculate("missing", 1)
	assert.ErrorIs(t, err, util.ErrUseCaseNotFound)
}

func TestRecalculateIncompletePath(t *testing.T) {
	uc := newTestUseCase("uc-1")
	responses := newFakeResponseStore()
	responses.saveAnswers(t, uc.ID, map[string]model.Answer{
		"E4.N7.Q1": model.SingleAnswer("fournisseur"),
	})
	svc, history := newTestScoringService(newFakeUseCaseStore(uc), responses, &fakeModelScores{})

	_, err := svc.Recalculate(uc.ID, 1)
	assert.ErrorIs(t, err, util.ErrIncomplete)
	assert.Nil(t, uc.ScoreFinal)
	assert.Empty(t, history.events)
}

func TestRecalculateCompleteWithoutModel(t *testing.T) {
	uc := newTestUseCase("uc-1")
	responses := newFakeResponseStore()
	responses.saveAnswers(t, uc.ID, fullyCompliantAnswers())
	svc, history := newTestScoringService(newFakeUseCaseStore(uc), responses, &fakeModelScores{})

	res, err := svc.Recalculate(uc.ID, 7)
	require.NoError(t, err)

	assert.Equal(t, 90.0, res.Base)
	assert.Equal(t, 0.0, res.Model)
	assert.Equal(t, 60.0, res.Final)
	assert.False(t, res.Eliminated)

	require.NotNil(t, uc.ScoreFinal)
	assert.Equal(t, 60.0, *uc.ScoreFinal)
	assert.Equal(t, model.UseCaseCompleted, uc.Status)
	assert.NotNil(t, uc.LastScoredAt)

	require.Len(t, history.events, 1)
	assert.Equal(t, model.EventScored, history.events[0].Event)
	assert.Equal(t, uint(7), history.events[0].ActorID)
}

func TestRecalculateCompleteWithModel(t *testing.T) {
	uc := newTestUseCase("uc-1")
	modelID := uint(3)
	uc.PrimaryModelID = &modelID
	responses := newFakeResponseStore()
	responses.saveAnswers(t, uc.ID, fullyCompliantAnswers())
	svc, _ := newTestScoringService(newFakeUseCaseStore(uc), responses, &fakeModelScores{scores: map[uint]float64{3: 12.07}})

	res, err := svc.Recalculate(uc.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, 90.0, res.Base)
	assert.Equal(t, 12.07, res.Model)
	assert.Equal(t, 80.12, res.Final)
	assert.Equal(t, model.RiskHigh, res.RiskLevel)
}

func TestRecalculateModelLookupFailurePropagates(t *testing.T) {
	uc := newTestUseCase("uc-1")
	modelID := uint(99)
	uc.PrimaryModelID = &modelID
	responses := newFakeResponseStore()
	responses.saveAnswers(t, uc.ID, fullyCompliantAnswers())
	svc, history := newTestScoringService(newFakeUseCaseStore(uc), responses, &fakeModelScores{scores: map[uint]float64{}})

	_, err := svc.Recalculate(uc.ID, 1)
	assert.ErrorIs(t, err, util.ErrModelNotFound)
	assert.Nil(t, uc.ScoreFinal)
	assert.Empty(t, history.events)
}

func TestRecalculateEliminationShortCircuits(t *testing.T) {
	uc := newTestUseCase("uc-1")
	modelID := uint(3)
	uc.PrimaryModelID = &modelID
	responses := newFakeResponseStore()

	// Only two answers stored: elimination wins over the incomplete path.
	responses.saveAnswers(t, uc.ID, map[string]model.Answer{
		"E4.N7.Q1": model.SingleAnswer("fournisseur"),
		"E4.N7.Q3": model.MultiAnswer("notation_sociale"),
	})
	svc, history := newTestScoringService(newFakeUseCaseStore(uc), responses, &fakeModelScores{scores: map[uint]float64{3: 12.07}})

	res, err := svc.Recalculate(uc.ID, 7)
	require.NoError(t, err)

	assert.True(t, res.Eliminated)
	assert.Equal(t, model.RiskUnacceptable, res.RiskLevel)
	assert.Equal(t, "Notation sociale généralisée", res.EliminationReason)

	assert.Nil(t, uc.ScoreBase)
	assert.Nil(t, uc.ScoreModel)
	assert.Nil(t, uc.ScoreFinal)
	assert.Equal(t, model.UseCaseEliminated, uc.Status)
	assert.Equal(t, "Notation sociale généralisée", uc.EliminationReason)

	require.Len(t, history.events, 1)
	assert.Equal(t, model.EventEliminated, history.events[0].Event)
	assert.NotEmpty(t, history.events[0].Details)
}

func TestRecalculateWorstPathFinalRange(t *testing.T) {
	uc := newTestUseCase("uc-1")
	modelID := uint(3)
	uc.PrimaryModelID = &modelID
	responses := newFakeResponseStore()
	responses.saveAnswers(t, uc.ID, worstCompliantAnswers())
	svc, _ := newTestScoringService(newFakeUseCaseStore(uc), responses, &fakeModelScores{scores: map[uint]float64{3: 12.07}})

	res, err := svc.Recalculate(uc.ID, 1)
	require.NoError(t, err)

	assert.InDelta(t, 42.2, res.Base, 1e-9)
	assert.Equal(t, 48.25, res.Final)
	assert.GreaterOrEqual(t, res.Final, 45.0)
	assert.LessOrEqual(t, res.Final, 52.0)
}

func TestBankIsCachedUntilInvalidated(t *testing.T) {
	source := &fakeQuestionSource{questions: testQuestions()}
	svc := NewScoringService(source, newFakeResponseStore(), newFakeUseCaseStore(), &fakeHistoryStore{}, &fakeModelScores{}, testScoringConfig(), database.EntryQuestionCode)

	_, err := svc.Bank()
	require.NoError(t, err)
	_, err = svc.Bank()
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)

	svc.InvalidateBank()
	_, err = svc.Bank()
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

func TestBankBuildFailureSurfacesConfigurationError(t *testing.T) {
	qs := testQuestions()
	qs[0].DefaultNext = "E0.MISSING"
	source := &fakeQuestionSource{questions: qs}
	svc := NewScoringService(source, newFakeResponseStore(), newFakeUseCaseStore(), &fakeHistoryStore{}, &fakeModelScores{}, testScoringConfig(), database.EntryQuestionCode)

	_, err := svc.Bank()
	assert.ErrorIs(t, err, util.ErrFlowConfiguration)
}
