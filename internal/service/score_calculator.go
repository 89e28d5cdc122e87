package service

import (
	"aiact_backend/internal/config"
	"aiact_backend/internal/model"
	"aiact_backend/internal/util"
	"fmt"
	"math"
)

// Elimination describes an unacceptable-use answer that short-circuits
// scoring for the whole assessment.
type Elimination struct {
	QuestionCode string
	OptionValue  string
	OptionLabel  string
}

// CheckElimination scans the stored answers for any selected eliminatory
// option. Scoring must not run once one is found.
func CheckElimination(bank *QuestionBank, answers map[string]model.Answer) *Elimination {
	for _, q := range bank.Questions() {
		a, ok := answers[q.Code]
		if !ok {
			continue
		}
		selected := make(map[string]bool)
		for _, code := range a.SelectedCodes() {
			selected[code] = true
		}
		for _, o := range q.Opts {
			if o.IsEliminatory && selected[o.Value] {
				return &Elimination{QuestionCode: q.Code, OptionValue: o.Value, OptionLabel: o.Label}
			}
		}
	}
	return nil
}

// CalculateBaseScore computes the penalty-adjusted questionnaire score.
// It starts from the configured maximum and adds each answered question's
// impact. Multi-select questions contribute once per question, not per
// selected tag: the single strongest (most negative, else most positive)
// impact among the selected options applies. The result is not clamped;
// normalization handles final scaling. Answers referencing questions
// absent from the bank are a caller error.
func CalculateBaseScore(bank *QuestionBank, answers map[string]model.Answer, cfg config.ScoringConfig) (float64, error) {
	score := cfg.BaseScoreMax

	for code, a := range answers {
		q, ok := bank.Question(code)
		if !ok {
			return 0, fmt.Errorf("%w: %s", util.ErrUnknownQuestion, code)
		}
		if len(q.Opts) == 0 {
			continue
		}
		selected := make(map[string]bool)
		for _, c := range a.SelectedCodes() {
			selected[c] = true
		}
		score += questionImpact(q, selected)
	}
	return score, nil
}

// questionImpact applies any-match semantics: among the selected options,
// the most negative impact wins; with no negative impact the most
// positive one applies.
func questionImpact(q *BankQuestion, selected map[string]bool) float64 {
	found := false
	var worst, best float64
	for _, o := range q.Opts {
		if !selected[o.Value] {
			continue
		}
		if !found {
			worst, best = o.ScoreImpact, o.ScoreImpact
			found = true
			continue
		}
		if o.ScoreImpact < worst {
			worst = o.ScoreImpact
		}
		if o.ScoreImpact > best {
			best = o.ScoreImpact
		}
	}
	if !found {
		return 0
	}
	if worst < 0 {
		return worst
	}
	return best
}

// NormalizeScore blends the base and model-capability scores into the
// final 0-100 percentage, rounded to two decimals.
func NormalizeScore(base, modelScore float64, cfg config.ScoringConfig) float64 {
	final := ((base + modelScore*cfg.ModelWeight) / cfg.Divisor) * 100
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}
	return math.Round(final*100) / 100
}

// RiskClassifier maps an answer set to a risk level.
type RiskClassifier func(bank *QuestionBank, answers map[string]model.Answer) string

// HighestOptionRisk is the default classifier: the most severe risk level
// attached to any selected option, or minimal when none carries one.
func HighestOptionRisk(bank *QuestionBank, answers map[string]model.Answer) string {
	level := model.RiskMinimal
	for code, a := range answers {
		q, ok := bank.Question(code)
		if !ok {
			continue
		}
		selected := make(map[string]bool)
		for _, c := range a.SelectedCodes() {
			selected[c] = true
		}
		for _, o := range q.Opts {
			if selected[o.Value] && model.RiskRank(o.RiskLevel) > model.RiskRank(level) {
				level = o.RiskLevel
			}
		}
	}
	return level
}
