package service

import (
	"aiact_backend/internal/model"
	"aiact_backend/internal/util"
	"aiact_backend/pkg/database"
	"aiact_backend/pkg/logger"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func testQuestions() []model.QuestionnaireQuestion {
	return database.DefaultQuestions(map[string]uint{"E4": 1, "E5": 2, "E6": 3})
}

func testBank(t *testing.T) *QuestionBank {
	t.Helper()
	bank, err := BuildQuestionBank(testQuestions(), database.EntryQuestionCode)
	require.NoError(t, err)
	return bank
}

// fullyCompliantAnswers walks the longest branch of the flow with only
// zero-impact selections: 19 answers, no penalty.
func fullyCompliantAnswers() map[string]model.Answer {
	a := map[string]model.Answer{
		"E4.N7.Q1":  model.SingleAnswer("fournisseur"),
		"E4.N7.Q2":  model.MultiAnswer("aucun"),
		"E4.N7.Q3":  model.MultiAnswer("identification_biometrique"),
		"E5.N9.Q5":  model.MultiAnswer("donnees_publiques"),
		"E4.N8.Q12": model.SingleAnswer("non"),
		"E4.N8.Q9":  model.SingleAnswer("oui"),
		"E4.N8.Q10": model.SingleAnswer("moins_100"),
	}
	for _, code := range []string{
		"E5.N8.Q1", "E5.N8.Q2", "E5.N9.Q3", "E5.N9.Q4",
		"E5.N9.Q6", "E5.N9.Q7", "E5.N9.Q8", "E5.N9.Q9",
		"E4.N8.Q11", "E6.N10.Q1", "E6.N10.Q2", "E6.N10.Q3",
	} {
		a[code] = model.SingleAnswer("oui")
	}
	return a
}

// worstCompliantAnswers answers every question on its path with the most
// penalized non-eliminatory option. The register branch takes the "non"
// shortcut, so the user-count question is skipped.
func worstCompliantAnswers() map[string]model.Answer {
	a := map[string]model.Answer{
		"E4.N7.Q1":  model.SingleAnswer("deployeur"),
		"E4.N7.Q2":  model.MultiAnswer("biometrie"),
		"E4.N7.Q3":  model.MultiAnswer("identification_biometrique"),
		"E5.N9.Q5":  model.MultiAnswer("donnees_personnelles", "donnees_strategiques", "donnees_sensibles"),
		"E4.N8.Q12": model.SingleAnswer("non"),
	}
	for _, code := range []string{
		"E5.N8.Q1", "E5.N8.Q2", "E5.N9.Q3", "E5.N9.Q4",
		"E5.N9.Q6", "E5.N9.Q7", "E5.N9.Q8", "E5.N9.Q9",
		"E4.N8.Q9", "E4.N8.Q11", "E6.N10.Q1", "E6.N10.Q2", "E6.N10.Q3",
	} {
		a[code] = model.SingleAnswer("non")
	}
	return a
}

type fakeQuestionSource struct {
	questions []model.QuestionnaireQuestion
	calls     int
}

func (f *fakeQuestionSource) ActiveQuestions() ([]model.QuestionnaireQuestion, error) {
	f.calls++
	return f.questions, nil
}

type fakeResponseStore struct {
	rows map[string]map[string]*model.UseCaseResponse
}

func newFakeResponseStore() *fakeResponseStore {
	return &fakeResponseStore{rows: map[string]map[string]*model.UseCaseResponse{}}
}

func (f *fakeResponseStore) Upsert(resp *model.UseCaseResponse) error {
	byQuestion, ok := f.rows[resp.UseCaseID]
	if !ok {
		byQuestion = map[string]*model.UseCaseResponse{}
		f.rows[resp.UseCaseID] = byQuestion
	}
	byQuestion[resp.QuestionCode] = resp
	return nil
}

func (f *fakeResponseStore) Get(useCaseID, questionCode string) (*model.UseCaseResponse, error) {
	return f.rows[useCaseID][questionCode], nil
}

func (f *fakeResponseStore) ListAll(useCaseID string) ([]model.UseCaseResponse, error) {
	var out []model.UseCaseResponse
	for _, r := range f.rows[useCaseID] {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeResponseStore) DeleteAll(useCaseID string) error {
	delete(f.rows, useCaseID)
	return nil
}

func (f *fakeResponseStore) saveAnswers(t *testing.T, useCaseID string, answers map[string]model.Answer) {
	t.Helper()
	for code, a := range answers {
		resp, err := model.NewResponse(useCaseID, code, a)
		require.NoError(t, err)
		require.NoError(t, f.Upsert(resp))
	}
}

type fakeUseCaseStore struct {
	byID map[string]*model.UseCase
}

func newFakeUseCaseStore(ucs ...*model.UseCase) *fakeUseCaseStore {
	s := &fakeUseCaseStore{byID: map[string]*model.UseCase{}}
	for _, uc := range ucs {
		s.byID[uc.ID] = uc
	}
	return s
}

func (f *fakeUseCaseStore) FindByID(id string) (*model.UseCase, error) {
	uc, ok := f.byID[id]
	if !ok {
		return nil, util.ErrUseCaseNotFound
	}
	return uc, nil
}

func (f *fakeUseCaseStore) Update(uc *model.UseCase) error {
	f.byID[uc.ID] = uc
	return nil
}

type fakeHistoryStore struct {
	events []model.ScoreHistory
}

func (f *fakeHistoryStore) Create(h *model.ScoreHistory) error {
	f.events = append(f.events, *h)
	return nil
}

type fakeModelScores struct {
	scores map[uint]float64
	err    error
}

func (f *fakeModelScores) CapabilityScore(modelID uint) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	score, ok := f.scores[modelID]
	if !ok {
		return 0, util.ErrModelNotFound
	}
	return score, nil
}

func newTestUseCase(id string) *model.UseCase {
	uc := &model.UseCase{
		CompanyID:           1,
		OwnerID:             1,
		Name:                "fraud screening",
		CurrentQuestionCode: database.EntryQuestionCode,
		Status:              model.UseCaseDraft,
	}
	uc.ID = id
	uc.CreatedAt = time.Now()
	return uc
}
