package service

import (
	"aiact_backend/internal/model"
	"aiact_backend/internal/util"
	"aiact_backend/pkg/database"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleQuestion(code, defaultNext string, opts ...model.QuestionOption) model.QuestionnaireQuestion {
	if len(opts) == 0 {
		opts = []model.QuestionOption{
			{Value: "oui", Label: "Oui"},
			{Value: "non", Label: "Non"},
		}
	}
	return model.QuestionnaireQuestion{
		Code:        code,
		Type:        model.SingleChoice,
		Options:     model.MustEncodeOptions(opts),
		DefaultNext: defaultNext,
		Required:    true,
		IsActive:    true,
	}
}

func TestBuildQuestionBankSeedGraph(t *testing.T) {
	bank := testBank(t)

	assert.Equal(t, database.EntryQuestionCode, bank.Entry)
	assert.Equal(t, 19, bank.Len())

	entry, ok := bank.Question(database.EntryQuestionCode)
	require.True(t, ok)
	assert.Equal(t, "E4.N7.Q2", entry.DefaultNext)
	assert.Len(t, entry.Opts, 7)
}

func TestBuildQuestionBankRejectsEmptySet(t *testing.T) {
	_, err := BuildQuestionBank(nil, "Q1")
	assert.ErrorIs(t, err, util.ErrFlowConfiguration)
}

func TestBuildQuestionBankRejectsUnknownEntry(t *testing.T) {
	qs := []model.QuestionnaireQuestion{simpleQuestion("Q1", "")}
	_, err := BuildQuestionBank(qs, "Q0")
	assert.ErrorIs(t, err, util.ErrFlowConfiguration)
}

func TestBuildQuestionBankRejectsDuplicateCode(t *testing.T) {
	qs := []model.QuestionnaireQuestion{
		simpleQuestion("Q1", ""),
		simpleQuestion("Q1", ""),
	}
	_, err := BuildQuestionBank(qs, "Q1")
	require.ErrorIs(t, err, util.ErrFlowConfiguration)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestBuildQuestionBankRejectsDanglingDefault(t *testing.T) {
	qs := []model.QuestionnaireQuestion{simpleQuestion("Q1", "Q404")}
	_, err := BuildQuestionBank(qs, "Q1")
	require.ErrorIs(t, err, util.ErrFlowConfiguration)
	assert.Contains(t, err.Error(), "Q404")
}

func TestBuildQuestionBankRejectsDanglingOverride(t *testing.T) {
	qs := []model.QuestionnaireQuestion{
		simpleQuestion("Q1", "Q2", model.QuestionOption{Value: "oui", NextQuestionCode: "Q404"}, model.QuestionOption{Value: "non"}),
		simpleQuestion("Q2", ""),
	}
	_, err := BuildQuestionBank(qs, "Q1")
	require.ErrorIs(t, err, util.ErrFlowConfiguration)
	assert.Contains(t, err.Error(), "Q404")
}

func TestBuildQuestionBankRejectsCycle(t *testing.T) {
	qs := []model.QuestionnaireQuestion{
		simpleQuestion("Q1", "Q2"),
		simpleQuestion("Q2", "Q3"),
		simpleQuestion("Q3", "Q1"),
	}
	_, err := BuildQuestionBank(qs, "Q1")
	require.ErrorIs(t, err, util.ErrFlowConfiguration)
	assert.Contains(t, err.Error(), "cycle")
}

func TestBuildQuestionBankAllowsCycleOutsideReachableGraph(t *testing.T) {
	// Only the graph reachable from the entry is walked; inactive islands
	// are caught by the dangling-reference check instead.
	qs := []model.QuestionnaireQuestion{
		simpleQuestion("Q1", "Q2"),
		simpleQuestion("Q2", ""),
		simpleQuestion("X1", "X2"),
		simpleQuestion("X2", "X1"),
	}
	_, err := BuildQuestionBank(qs, "Q1")
	assert.NoError(t, err)
}

func TestBuildQuestionBankRejectsMultiSelectWithTwoOverrides(t *testing.T) {
	q := model.QuestionnaireQuestion{
		Code: "Q1", Type: model.MultiChoice, Required: true, IsActive: true,
		Options: model.MustEncodeOptions([]model.QuestionOption{
			{Value: "a", NextQuestionCode: "Q2"},
			{Value: "b", NextQuestionCode: "Q3"},
		}),
	}
	qs := []model.QuestionnaireQuestion{q, simpleQuestion("Q2", ""), simpleQuestion("Q3", "")}
	_, err := BuildQuestionBank(qs, "Q1")
	require.ErrorIs(t, err, util.ErrFlowConfiguration)
	assert.Contains(t, err.Error(), "at most one")
}

func TestBuildQuestionBankOrdersBySectionThenDisplayOrder(t *testing.T) {
	bank := testBank(t)

	codes := make([]string, 0, bank.Len())
	for _, q := range bank.Questions() {
		codes = append(codes, q.Code)
	}
	assert.Equal(t, "E4.N7.Q1", codes[0])
	assert.Equal(t, "E6.N10.Q3", codes[len(codes)-1])
}
