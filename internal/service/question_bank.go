package service

import (
	"aiact_backend/internal/model"
	"aiact_backend/internal/util"
	"fmt"
	"sort"
)

// BankQuestion is a question with its options decoded once at load time.
type BankQuestion struct {
	model.QuestionnaireQuestion
	Opts []model.QuestionOption
}

// QuestionBank is the flow graph: questions keyed by code with forward
// references resolved by lookup, never by embedded pointers.
type QuestionBank struct {
	Entry   string
	byCode  map[string]*BankQuestion
	ordered []*BankQuestion
}

// BuildQuestionBank indexes the active questions and validates the flow
// graph: every referenced code must exist, no cycle may be reachable from
// the entry question, and a multi-select question may carry at most one
// option-level successor override. A bank failing validation is a fatal
// configuration error, never a silent end-of-flow.
func BuildQuestionBank(questions []model.QuestionnaireQuestion, entry string) (*QuestionBank, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: empty question bank", util.ErrFlowConfiguration)
	}

	bank := &QuestionBank{
		Entry:  entry,
		byCode: make(map[string]*BankQuestion, len(questions)),
	}

	for i := range questions {
		q := questions[i]
		opts, err := q.DecodeOptions()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrFlowConfiguration, err)
		}
		if _, dup := bank.byCode[q.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate question code %s", util.ErrFlowConfiguration, q.Code)
		}
		bq := &BankQuestion{QuestionnaireQuestion: q, Opts: opts}
		bank.byCode[q.Code] = bq
		bank.ordered = append(bank.ordered, bq)
	}
	sort.SliceStable(bank.ordered, func(i, j int) bool {
		a, b := bank.ordered[i], bank.ordered[j]
		if a.SectionID != b.SectionID {
			return a.SectionID < b.SectionID
		}
		return a.DisplayOrder < b.DisplayOrder
	})

	if _, ok := bank.byCode[entry]; !ok {
		return nil, fmt.Errorf("%w: entry question %s not found", util.ErrFlowConfiguration, entry)
	}
	if err := bank.validate(); err != nil {
		return nil, err
	}
	return bank, nil
}

func (b *QuestionBank) validate() error {
	for _, q := range b.byCode {
		if q.DefaultNext != "" {
			if _, ok := b.byCode[q.DefaultNext]; !ok {
				return fmt.Errorf("%w: question %s: default successor %s does not exist", util.ErrFlowConfiguration, q.Code, q.DefaultNext)
			}
		}
		overrides := 0
		for _, o := range q.Opts {
			if o.NextQuestionCode == "" {
				continue
			}
			overrides++
			if _, ok := b.byCode[o.NextQuestionCode]; !ok {
				return fmt.Errorf("%w: question %s option %s: successor %s does not exist", util.ErrFlowConfiguration, q.Code, o.Value, o.NextQuestionCode)
			}
		}
		multi := q.Type == model.MultiChoice || q.Type == model.TagMultiselect
		if multi && overrides > 1 {
			return fmt.Errorf("%w: multi-select question %s defines %d option successors, at most one allowed", util.ErrFlowConfiguration, q.Code, overrides)
		}
	}
	return b.detectCycles()
}

// detectCycles runs a three-state DFS over every edge (default successors
// and option overrides) reachable from the entry question.
func (b *QuestionBank) detectCycles() error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	state := make(map[string]int, len(b.byCode))

	var visit func(code string) error
	visit = func(code string) error {
		switch state[code] {
		case gray:
			return fmt.Errorf("%w: cycle through question %s", util.ErrFlowConfiguration, code)
		case black:
			return nil
		}
		state[code] = gray
		q := b.byCode[code]
		if q.DefaultNext != "" {
			if err := visit(q.DefaultNext); err != nil {
				return err
			}
		}
		for _, o := range q.Opts {
			if o.NextQuestionCode != "" {
				if err := visit(o.NextQuestionCode); err != nil {
					return err
				}
			}
		}
		state[code] = black
		return nil
	}
	return visit(b.Entry)
}

// Question looks a question up by code.
func (b *QuestionBank) Question(code string) (*BankQuestion, bool) {
	q, ok := b.byCode[code]
	return q, ok
}

// Questions returns all questions in section/display order.
func (b *QuestionBank) Questions() []*BankQuestion {
	return b.ordered
}

// Len reports the number of questions in the bank.
func (b *QuestionBank) Len() int {
	return len(b.byCode)
}
