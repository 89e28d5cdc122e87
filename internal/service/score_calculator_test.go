package service

import (
	"aiact_backend/internal/config"
	"aiact_backend/internal/model"
	"aiact_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		BaseScoreMax:  90,
		ModelScoreMax: 24,
		ModelWeight:   2.5,
		Divisor:       150,
	}
}

func TestCalculateBaseScoreFullyCompliant(t *testing.T) {
	bank := testBank(t)

	base, err := CalculateBaseScore(bank, fullyCompliantAnswers(), testScoringConfig())
	require.NoError(t, err)
	assert.Equal(t, 90.0, base)
}

func TestCalculateBaseScoreWorstNonEliminatoryPath(t *testing.T) {
	bank := testBank(t)

	// Penalties: -28 on the boolean chain, -5 on data categories, -5 on
	// the register question, -5 on human oversight, -4.8 on monitoring.
	base, err := CalculateBaseScore(bank, worstCompliantAnswers(), testScoringConfig())
	require.NoError(t, err)
	assert.InDelta(t, 42.2, base, 1e-9)
}

func TestCalculateBaseScoreResearchBonus(t *testing.T) {
	bank := testBank(t)
	answers := map[string]model.Answer{
		"E4.N7.Q1":  model.SingleAnswer("fournisseur"),
		"E4.N7.Q2":  model.MultiAnswer("aucun"),
		"E4.N7.Q3":  model.MultiAnswer("aucune"),
		"E4.N8.Q12": model.SingleAnswer("oui"),
	}

	base, err := CalculateBaseScore(bank, answers, testScoringConfig())
	require.NoError(t, err)
	assert.Equal(t, 100.0, base)
}

func TestCalculateBaseScoreUnknownQuestion(t *testing.T) {
	bank := testBank(t)
	answers := map[string]model.Answer{
		"E9.N1.Q1": model.SingleAnswer("oui"),
	}

	_, err := CalculateBaseScore(bank, answers, testScoringConfig())
	assert.ErrorIs(t, err, util.ErrUnknownQuestion)
}

func TestQuestionImpactAppliesOncePerQuestion(t *testing.T) {
	bank := testBank(t)

	// Three -5 tags selected together still cost 5 points, not 15.
	answers := fullyCompliantAnswers()
	answers["E5.N9.Q5"] = model.MultiAnswer("donnees_personnelles", "donnees_strategiques", "donnees_sensibles")

	base, err := CalculateBaseScore(bank, answers, testScoringConfig())
	require.NoError(t, err)
	assert.InDelta(t, 85.0, base, 1e-9)
}

func TestQuestionImpactWorstNegativeWins(t *testing.T) {
	bank := testBank(t)

	// A penalized tag next to a free one: the penalty applies.
	answers := fullyCompliantAnswers()
	answers["E5.N9.Q5"] = model.MultiAnswer("donnees_publiques", "donnees_sensibles")

	base, err := CalculateBaseScore(bank, answers, testScoringConfig())
	require.NoError(t, err)
	assert.InDelta(t, 85.0, base, 1e-9)
}

func TestCalculateBaseScoreDeterministic(t *testing.T) {
	bank := testBank(t)
	cfg := testScoringConfig()
	answers := worstCompliantAnswers()

	first, err := CalculateBaseScore(bank, answers, cfg)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := CalculateBaseScore(bank, answers, cfg)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestNormalizeScore(t *testing.T) {
	cfg := testScoringConfig()

	tests := []struct {
		name  string
		base  float64
		model float64
		want  float64
	}{
		{"perfect base with strong model", 90, 12.07, 80.12},
		{"perfect base without model", 90, 0, 60},
		{"research bonus without model", 100, 0, 66.67},
		{"theoretical maximum", 90, 24, 100},
		{"research bonus clamps at hundred", 100, 24, 100},
		{"worst path with strong model", 42.2, 12.07, 48.25},
		{"negative base clamps at zero", -10, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, NormalizeScore(tc.base, tc.model, cfg), 1e-9)
		})
	}
}

func TestCheckElimination(t *testing.T) {
	bank := testBank(t)

	answers := fullyCompliantAnswers()
	assert.Nil(t, CheckElimination(bank, answers))

	answers["E4.N7.Q3"] = model.MultiAnswer("identification_biometrique", "notation_sociale")
	elim := CheckElimination(bank, answers)
	require.NotNil(t, elim)
	assert.Equal(t, "E4.N7.Q3", elim.QuestionCode)
	assert.Equal(t, "notation_sociale", elim.OptionValue)
	assert.Equal(t, "Notation sociale généralisée", elim.OptionLabel)
}

func TestHighestOptionRisk(t *testing.T) {
	bank := testBank(t)

	answers := map[string]model.Answer{
		"E4.N7.Q1": model.SingleAnswer("fournisseur"),
		"E4.N7.Q2": model.MultiAnswer("aucun"),
	}
	assert.Equal(t, model.RiskMinimal, HighestOptionRisk(bank, answers))

	answers["E4.N7.Q2"] = model.MultiAnswer("biometrie", "aucun")
	assert.Equal(t, model.RiskHigh, HighestOptionRisk(bank, answers))

	answers["E4.N7.Q3"] = model.MultiAnswer("notation_sociale")
	assert.Equal(t, model.RiskUnacceptable, HighestOptionRisk(bank, answers))
}
