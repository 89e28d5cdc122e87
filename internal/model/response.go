package model

import (
	"encoding/json"
	"time"
)

// UseCaseResponse stores one answer per (use case, question). Submitting
// a second answer for the same question replaces the first.
// swagger:model UseCaseResponse
type UseCaseResponse struct {
	UUIDBase
	UseCaseID          string          `gorm:"size:36;not null;uniqueIndex:idx_usecase_question" json:"useCaseId"`
	QuestionCode       string          `gorm:"size:50;not null;uniqueIndex:idx_usecase_question" json:"questionCode"`
	Kind               AnswerKind      `gorm:"size:20;not null" json:"kind"`
	SingleValue        string          `gorm:"size:100" json:"singleValue,omitempty"`
	MultipleValues     json.RawMessage `gorm:"type:json" json:"multipleValues,omitempty"`
	ConditionalDetails json.RawMessage `gorm:"type:json" json:"conditionalDetails,omitempty"`
	TextValue          string          `gorm:"type:text" json:"textValue,omitempty"`
	NumericValue       *float64        `json:"numericValue,omitempty"`
	DateValue          *time.Time      `json:"dateValue,omitempty"`
}

func (UseCaseResponse) TableName() string {
	return "use_case_responses"
}

// NewResponse packs an answer into its storage row.
func NewResponse(useCaseID, questionCode string, a Answer) (*UseCaseResponse, error) {
	r := &UseCaseResponse{
		UseCaseID:    useCaseID,
		QuestionCode: questionCode,
		Kind:         a.Kind,
	}
	switch a.Kind {
	case AnswerSingle:
		r.SingleValue = a.Value
	case AnswerConditional:
		r.SingleValue = a.Value
		if len(a.ConditionalDetails) > 0 {
			raw, err := json.Marshal(a.ConditionalDetails)
			if err != nil {
				return nil, err
			}
			r.ConditionalDetails = raw
		}
	case AnswerMulti:
		raw, err := json.Marshal(a.Values)
		if err != nil {
			return nil, err
		}
		r.MultipleValues = raw
	case AnswerText:
		r.TextValue = a.Text
	case AnswerNumeric:
		n := a.Number
		r.NumericValue = &n
	case AnswerDate:
		r.DateValue = a.Date
	}
	return r, nil
}

// ToAnswer reconstructs the submitted answer from the stored row.
func (r *UseCaseResponse) ToAnswer() (Answer, error) {
	a := Answer{Kind: r.Kind}
	switch r.Kind {
	case AnswerSingle:
		a.Value = r.SingleValue
	case AnswerConditional:
		a.Value = r.SingleValue
		if len(r.ConditionalDetails) > 0 {
			if err := json.Unmarshal(r.ConditionalDetails, &a.ConditionalDetails); err != nil {
				return a, err
			}
		}
	case AnswerMulti:
		if len(r.MultipleValues) > 0 {
			if err := json.Unmarshal(r.MultipleValues, &a.Values); err != nil {
				return a, err
			}
		}
	case AnswerText:
		a.Text = r.TextValue
	case AnswerNumeric:
		if r.NumericValue != nil {
			a.Number = *r.NumericValue
		}
	case AnswerDate:
		a.Date = r.DateValue
	}
	return a, nil
}
