package service

import (
	"aiact_backend/internal/model"
	"aiact_backend/internal/util"
	"fmt"
)

// ResolveNext computes the code of the question after q given the answer,
// or "" when the flow terminates there. Precedence: a terminal option ends
// the flow, an option-level successor override beats the default, and for
// multi-select answers the first selected option (in option list order)
// carrying an override wins. Pure function of (question, answer).
func ResolveNext(bank *QuestionBank, q *BankQuestion, a model.Answer) (string, error) {
	selected := make(map[string]bool)
	for _, code := range a.SelectedCodes() {
		selected[code] = true
	}

	for _, o := range q.Opts {
		if o.Terminal && selected[o.Value] {
			return "", nil
		}
	}
	for _, o := range q.Opts {
		if o.NextQuestionCode != "" && selected[o.Value] {
			if _, ok := bank.Question(o.NextQuestionCode); !ok {
				return "", fmt.Errorf("%w: question %s option %s: successor %s does not exist", util.ErrFlowConfiguration, q.Code, o.Value, o.NextQuestionCode)
			}
			return o.NextQuestionCode, nil
		}
	}
	if q.DefaultNext == "" {
		return "", nil
	}
	if _, ok := bank.Question(q.DefaultNext); !ok {
		return "", fmt.Errorf("%w: question %s: default successor %s does not exist", util.ErrFlowConfiguration, q.Code, q.DefaultNext)
	}
	return q.DefaultNext, nil
}

// ResolvedPath walks the flow from the entry question, following each
// stored answer, and returns the codes visited in order. The walk stops
// at the first unanswered question (which is included as the last element
// when includeNext is true) or at a terminal node.
func ResolvedPath(bank *QuestionBank, answers map[string]model.Answer) ([]string, error) {
	var path []string
	seen := make(map[string]bool, bank.Len())

	code := bank.Entry
	for code != "" {
		if seen[code] {
			return nil, fmt.Errorf("%w: cycle through question %s", util.ErrFlowConfiguration, code)
		}
		seen[code] = true
		path = append(path, code)

		q, ok := bank.Question(code)
		if !ok {
			return nil, fmt.Errorf("%w: question %s does not exist", util.ErrFlowConfiguration, code)
		}
		a, answered := answers[code]
		if !answered {
			break
		}
		next, err := ResolveNext(bank, q, a)
		if err != nil {
			return nil, err
		}
		code = next
	}
	return path, nil
}

// FirstUnanswered returns the code of the first question on the resolved
// path without a stored answer, or "" when the path is fully answered.
func FirstUnanswered(bank *QuestionBank, answers map[string]model.Answer) (string, error) {
	path, err := ResolvedPath(bank, answers)
	if err != nil {
		return "", err
	}
	if len(path) == 0 {
		return "", nil
	}
	last := path[len(path)-1]
	if _, answered := answers[last]; !answered {
		return last, nil
	}
	return "", nil
}

// IsComplete reports whether every question reachable on the resolved
// path has a stored answer.
func IsComplete(bank *QuestionBank, answers map[string]model.Answer) (bool, error) {
	next, err := FirstUnanswered(bank, answers)
	if err != nil {
		return false, err
	}
	return next == "", nil
}
