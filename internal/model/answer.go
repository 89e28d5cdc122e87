package model

import (
	"fmt"
	"strings"
	"time"
)

type AnswerKind string

const (
	AnswerSingle      AnswerKind = "single"
	AnswerMulti       AnswerKind = "multi"
	AnswerConditional AnswerKind = "conditional"
	AnswerText        AnswerKind = "text"
	AnswerNumeric     AnswerKind = "numeric"
	AnswerDate        AnswerKind = "date"
)

// Answer is the typed payload submitted for one question. Exactly the
// fields for its Kind are set; the rest stay zero.
type Answer struct {
	Kind               AnswerKind `json:"kind"`
	Value              string     `json:"value,omitempty"`
	Values             []string   `json:"values,omitempty"`
	ConditionalDetails []string   `json:"conditionalDetails,omitempty"`
	Text               string     `json:"text,omitempty"`
	Number             float64    `json:"number,omitempty"`
	Date               *time.Time `json:"date,omitempty"`
}

func SingleAnswer(code string) Answer {
	return Answer{Kind: AnswerSingle, Value: code}
}

func MultiAnswer(codes ...string) Answer {
	return Answer{Kind: AnswerMulti, Values: codes}
}

func ConditionalAnswer(code string, details []string) Answer {
	return Answer{Kind: AnswerConditional, Value: code, ConditionalDetails: details}
}

func TextAnswer(text string) Answer {
	return Answer{Kind: AnswerText, Text: text}
}

func NumericAnswer(n float64) Answer {
	return Answer{Kind: AnswerNumeric, Number: n}
}

func DateAnswer(t time.Time) Answer {
	return Answer{Kind: AnswerDate, Date: &t}
}

// SelectedCodes returns the option values this answer selects. Non-choice
// answers select nothing.
func (a Answer) SelectedCodes() []string {
	switch a.Kind {
	case AnswerSingle, AnswerConditional:
		if a.Value == "" {
			return nil
		}
		return []string{a.Value}
	case AnswerMulti:
		return a.Values
	default:
		return nil
	}
}

// ValidateFor checks that the answer matches the question's type and that
// every selected code exists in the question's option list.
func (a Answer) ValidateFor(q *QuestionnaireQuestion, opts []QuestionOption) error {
	switch q.Type {
	case SingleChoice, Boolean:
		if a.Kind != AnswerSingle && a.Kind != AnswerConditional {
			return fmt.Errorf("question %s expects a single selection, got %s", q.Code, a.Kind)
		}
		if a.Value == "" {
			return fmt.Errorf("question %s: empty selection", q.Code)
		}
	case MultiChoice, TagMultiselect:
		if a.Kind != AnswerMulti {
			return fmt.Errorf("question %s expects multiple selections, got %s", q.Code, a.Kind)
		}
		if len(a.Values) == 0 && q.Required {
			return fmt.Errorf("question %s: empty selection", q.Code)
		}
	case FreeText:
		if a.Kind != AnswerText {
			return fmt.Errorf("question %s expects free text, got %s", q.Code, a.Kind)
		}
		if q.Required && strings.TrimSpace(a.Text) == "" {
			return fmt.Errorf("question %s: empty text", q.Code)
		}
	case Numeric:
		if a.Kind != AnswerNumeric {
			return fmt.Errorf("question %s expects a number, got %s", q.Code, a.Kind)
		}
	case DateQuestion:
		if a.Kind != AnswerDate {
			return fmt.Errorf("question %s expects a date, got %s", q.Code, a.Kind)
		}
		if a.Date == nil {
			return fmt.Errorf("question %s: missing date", q.Code)
		}
	default:
		return fmt.Errorf("question %s: unsupported type %s", q.Code, q.Type)
	}

	if codes := a.SelectedCodes(); len(codes) > 0 && len(opts) > 0 {
		valid := make(map[string]QuestionOption, len(opts))
		for _, o := range opts {
			valid[o.Value] = o
		}
		for _, code := range codes {
			o, ok := valid[code]
			if !ok {
				return fmt.Errorf("question %s: unknown option %q", q.Code, code)
			}
			if o.RequiresDetail && a.Kind == AnswerConditional && len(a.ConditionalDetails) == 0 {
				return fmt.Errorf("question %s: option %q requires details", q.Code, code)
			}
		}
	}
	return nil
}
