package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choiceQuestion(qt QuestionType, opts ...QuestionOption) (*QuestionnaireQuestion, []QuestionOption) {
	q := &QuestionnaireQuestion{Code: "Q1", Type: qt, Required: true}
	return q, opts
}

func TestValidateForSingleChoice(t *testing.T) {
	q, opts := choiceQuestion(SingleChoice,
		QuestionOption{Value: "oui"},
		QuestionOption{Value: "autre", RequiresDetail: true},
	)

	assert.NoError(t, SingleAnswer("oui").ValidateFor(q, opts))
	assert.Error(t, SingleAnswer("").ValidateFor(q, opts))
	assert.Error(t, SingleAnswer("inconnu").ValidateFor(q, opts))
	assert.Error(t, MultiAnswer("oui").ValidateFor(q, opts))
}

func TestValidateForConditionalDetail(t *testing.T) {
	q, opts := choiceQuestion(SingleChoice,
		QuestionOption{Value: "autre", RequiresDetail: true},
	)

	assert.Error(t, ConditionalAnswer("autre", nil).ValidateFor(q, opts))
	assert.NoError(t, ConditionalAnswer("autre", []string{"precision"}).ValidateFor(q, opts))
}

func TestValidateForMultiChoice(t *testing.T) {
	q, opts := choiceQuestion(MultiChoice,
		QuestionOption{Value: "a"},
		QuestionOption{Value: "b"},
	)

	assert.NoError(t, MultiAnswer("a", "b").ValidateFor(q, opts))
	assert.Error(t, MultiAnswer().ValidateFor(q, opts))
	assert.Error(t, MultiAnswer("a", "z").ValidateFor(q, opts))
	assert.Error(t, SingleAnswer("a").ValidateFor(q, opts))

	q.Required = false
	assert.NoError(t, MultiAnswer().ValidateFor(q, opts))
}

func TestValidateForFreeText(t *testing.T) {
	q := &QuestionnaireQuestion{Code: "Q1", Type: FreeText, Required: true}

	assert.NoError(t, TextAnswer("un commentaire").ValidateFor(q, nil))
	assert.Error(t, TextAnswer("   ").ValidateFor(q, nil))
	assert.Error(t, SingleAnswer("oui").ValidateFor(q, nil))
}

func TestSelectedCodes(t *testing.T) {
	assert.Equal(t, []string{"oui"}, SingleAnswer("oui").SelectedCodes())
	assert.Equal(t, []string{"a", "b"}, MultiAnswer("a", "b").SelectedCodes())
	assert.Equal(t, []string{"autre"}, ConditionalAnswer("autre", []string{"d"}).SelectedCodes())
	assert.Nil(t, TextAnswer("libre").SelectedCodes())
	assert.Nil(t, SingleAnswer("").SelectedCodes())
}

func TestResponseRoundTripPreservesConditionalDetails(t *testing.T) {
	resp, err := NewResponse("uc-1", "Q1", ConditionalAnswer("autre", []string{"auditeur externe"}))
	require.NoError(t, err)

	back, err := resp.ToAnswer()
	require.NoError(t, err)
	assert.Equal(t, AnswerConditional, back.Kind)
	assert.Equal(t, "autre", back.Value)
	assert.Equal(t, []string{"auditeur externe"}, back.ConditionalDetails)
}
