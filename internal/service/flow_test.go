package service

import (
	"aiact_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustQuestion(t *testing.T, bank *QuestionBank, code string) *BankQuestion {
	t.Helper()
	q, ok := bank.Question(code)
	require.True(t, ok, "question %s missing from bank", code)
	return q
}

func TestResolveNextFollowsDefault(t *testing.T) {
	bank := testBank(t)
	q := mustQuestion(t, bank, "E4.N7.Q1")

	next, err := ResolveNext(bank, q, model.SingleAnswer("fournisseur"))
	require.NoError(t, err)
	assert.Equal(t, "E4.N7.Q2", next)
}

func TestResolveNextOverrideBeatsDefault(t *testing.T) {
	bank := testBank(t)
	q := mustQuestion(t, bank, "E4.N8.Q9")
	require.Equal(t, "E4.N8.Q11", q.DefaultNext)

	next, err := ResolveNext(bank, q, model.SingleAnswer("oui"))
	require.NoError(t, err)
	assert.Equal(t, "E4.N8.Q10", next)

	next, err = ResolveNext(bank, q, model.SingleAnswer("non"))
	require.NoError(t, err)
	assert.Equal(t, "E4.N8.Q11", next)
}

func TestResolveNextMultiSelectOverrideFires(t *testing.T) {
	bank := testBank(t)
	q := mustQuestion(t, bank, "E4.N7.Q3")

	// "aucune" carries the only override and jumps past the data
	// governance section.
	next, err := ResolveNext(bank, q, model.MultiAnswer("aucune"))
	require.NoError(t, err)
	assert.Equal(t, "E4.N8.Q12", next)

	// Without the override option selected the default applies even when
	// other options are picked.
	next, err = ResolveNext(bank, q, model.MultiAnswer("identification_biometrique"))
	require.NoError(t, err)
	assert.Equal(t, "E5.N8.Q1", next)
}

func TestResolveNextTerminalOptionEndsFlow(t *testing.T) {
	bank := testBank(t)
	q := mustQuestion(t, bank, "E4.N8.Q12")
	require.NotEmpty(t, q.DefaultNext)

	next, err := ResolveNext(bank, q, model.SingleAnswer("oui"))
	require.NoError(t, err)
	assert.Empty(t, next)
}

func TestResolveNextNoDefaultEndsFlow(t *testing.T) {
	bank := testBank(t)
	q := mustQuestion(t, bank, "E6.N10.Q3")

	next, err := ResolveNext(bank, q, model.SingleAnswer("oui"))
	require.NoError(t, err)
	assert.Empty(t, next)
}

func TestResolveNextFirstSelectedOverrideWinsInOptionOrder(t *testing.T) {
	q := model.QuestionnaireQuestion{
		Code: "Q1", Type: model.SingleChoice, Required: true, IsActive: true,
		Options: model.MustEncodeOptions([]model.QuestionOption{
			{Value: "a", NextQuestionCode: "Q2"},
			{Value: "b", NextQuestionCode: "Q3"},
		}),
	}
	qs := []model.QuestionnaireQuestion{q, simpleQuestion("Q2", ""), simpleQuestion("Q3", "")}
	bank, err := BuildQuestionBank(qs, "Q1")
	require.NoError(t, err)

	// Both overrides selected: the one listed first in the option list
	// decides, regardless of submission order.
	next, err := ResolveNext(bank, mustQuestion(t, bank, "Q1"), model.MultiAnswer("b", "a"))
	require.NoError(t, err)
	assert.Equal(t, "Q2", next)
}

func TestResolvedPathFullCompliantWalk(t *testing.T) {
	bank := testBank(t)
	answers := fullyCompliantAnswers()

	path, err := ResolvedPath(bank, answers)
	require.NoError(t, err)

	expected := []string{
		"E4.N7.Q1", "E4.N7.Q2", "E4.N7.Q3",
		"E5.N8.Q1", "E5.N8.Q2", "E5.N9.Q3", "E5.N9.Q4", "E5.N9.Q5",
		"E5.N9.Q6", "E5.N9.Q7", "E5.N9.Q8", "E5.N9.Q9",
		"E4.N8.Q12", "E4.N8.Q9", "E4.N8.Q10", "E4.N8.Q11",
		"E6.N10.Q1", "E6.N10.Q2", "E6.N10.Q3",
	}
	assert.Equal(t, expected, path)
}

func TestResolvedPathSkipsUserCountOnRegisterShortcut(t *testing.T) {
	bank := testBank(t)
	answers := worstCompliantAnswers()

	path, err := ResolvedPath(bank, answers)
	require.NoError(t, err)
	assert.NotContains(t, path, "E4.N8.Q10")
	assert.Contains(t, path, "E4.N8.Q11")
	assert.Len(t, path, 18)
}

func TestResolvedPathStopsAtFirstUnanswered(t *testing.T) {
	bank := testBank(t)
	answers := map[string]model.Answer{
		"E4.N7.Q1": model.SingleAnswer("fournisseur"),
	}

	path, err := ResolvedPath(bank, answers)
	require.NoError(t, err)
	assert.Equal(t, []string{"E4.N7.Q1", "E4.N7.Q2"}, path)

	next, err := FirstUnanswered(bank, answers)
	require.NoError(t, err)
	assert.Equal(t, "E4.N7.Q2", next)
}

func TestFirstUnansweredEmptyWhenComplete(t *testing.T) {
	bank := testBank(t)

	next, err := FirstUnanswered(bank, fullyCompliantAnswers())
	require.NoError(t, err)
	assert.Empty(t, next)

	complete, err := IsComplete(bank, fullyCompliantAnswers())
	require.NoError(t, err)
	assert.True(t, complete)
}

func TestIsCompleteTerminalAnswerEndsPathEarly(t *testing.T) {
	bank := testBank(t)
	answers := map[string]model.Answer{
		"E4.N7.Q1":  model.SingleAnswer("fournisseur"),
		"E4.N7.Q2":  model.MultiAnswer("aucun"),
		"E4.N7.Q3":  model.MultiAnswer("aucune"),
		"E4.N8.Q12": model.SingleAnswer("oui"),
	}

	complete, err := IsComplete(bank, answers)
	require.NoError(t, err)
	assert.True(t, complete)

	path, err := ResolvedPath(bank, answers)
	require.NoError(t, err)
	assert.Equal(t, []string{"E4.N7.Q1", "E4.N7.Q2", "E4.N7.Q3", "E4.N8.Q12"}, path)
}

func TestIsCompleteFalseMidway(t *testing.T) {
	bank := testBank(t)
	answers := fullyCompliantAnswers()
	delete(answers, "E6.N10.Q2")

	complete, err := IsComplete(bank, answers)
	require.NoError(t, err)
	assert.False(t, complete)

	next, err := FirstUnanswered(bank, answers)
	require.NoError(t, err)
	assert.Equal(t, "E6.N10.Q2", next)
}
