package model

import (
	"encoding/json"
	"fmt"
)

type QuestionType string

const (
	SingleChoice   QuestionType = "single_choice"
	MultiChoice    QuestionType = "multi_choice"
	Boolean        QuestionType = "boolean"
	FreeText       QuestionType = "free_text"
	Numeric        QuestionType = "numeric"
	DateQuestion   QuestionType = "date"
	TagMultiselect QuestionType = "tag_multiselect"
)

// Risk levels in ascending order of severity.
const (
	RiskMinimal      = "minimal"
	RiskLimited      = "limited"
	RiskHigh         = "high"
	RiskUnacceptable = "unacceptable"
)

var riskRank = map[string]int{
	RiskMinimal:      0,
	RiskLimited:      1,
	RiskHigh:         2,
	RiskUnacceptable: 3,
}

// RiskRank maps a risk level to its severity rank; unknown levels rank
// below minimal so they never win a max comparison.
func RiskRank(level string) int {
	if r, ok := riskRank[level]; ok {
		return r
	}
	return -1
}

// QuestionOption is one selectable answer. NextQuestionCode, when set,
// overrides the question's default successor. A Terminal option ends the
// flow regardless of any successor. ScoreImpact is added to the base
// score (penalties are negative).
type QuestionOption struct {
	Value            string  `json:"value"`
	Label            string  `json:"label"`
	NextQuestionCode string  `json:"nextQuestionCode,omitempty"`
	ScoreImpact      float64 `json:"scoreImpact"`
	IsEliminatory    bool    `json:"isEliminatory,omitempty"`
	RiskLevel        string  `json:"riskLevel,omitempty"`
	Terminal         bool    `json:"terminal,omitempty"`
	RequiresDetail   bool    `json:"requiresDetail,omitempty"`
}

// swagger:model QuestionnaireSection
type QuestionnaireSection struct {
	BaseModel
	Code         string `gorm:"size:50;unique;not null" json:"code"`
	Title        string `gorm:"size:200;not null" json:"title"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`
}

func (QuestionnaireSection) TableName() string {
	return "questionnaire_sections"
}

// swagger:model QuestionnaireQuestion
type QuestionnaireQuestion struct {
	BaseModel
	Code         string          `gorm:"size:50;unique;not null" json:"code"`
	SectionID    uint            `gorm:"index;not null" json:"sectionId"`
	Text         string          `gorm:"type:text;not null" json:"text"`
	Type         QuestionType    `gorm:"size:30;not null" json:"type"`
	Options      json.RawMessage `gorm:"type:json" json:"options"`
	DefaultNext  string          `gorm:"size:50" json:"defaultNext"`
	Required     bool            `gorm:"default:true" json:"required"`
	DisplayOrder int             `gorm:"default:0" json:"displayOrder"`
	IsActive     bool            `gorm:"default:true" json:"isActive"`
}

func (QuestionnaireQuestion) TableName() string {
	return "questionnaire_questions"
}

// DecodeOptions unmarshals the stored option list. Questions without
// options (free text, numeric, date) return an empty slice.
func (q *QuestionnaireQuestion) DecodeOptions() ([]QuestionOption, error) {
	if len(q.Options) == 0 {
		return nil, nil
	}
	var opts []QuestionOption
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil, fmt.Errorf("question %s: decode options: %w", q.Code, err)
	}
	return opts, nil
}

// MustEncodeOptions serializes an option list for storage. Used by seed
// data and admin authoring where the input is known-good.
func MustEncodeOptions(opts []QuestionOption) json.RawMessage {
	raw, err := json.Marshal(opts)
	if err != nil {
		panic(err)
	}
	return raw
}
