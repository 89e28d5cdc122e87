package model

import (
	"encoding/json"
	"time"
)

// The four evaluation principles a model is rated on. Each carries a raw
// score in [0, 6]; a nil entry means the principle was not evaluated.
const (
	PrincipleTechnical    = "technical_robustness"
	PrinciplePrivacy      = "privacy_data_governance"
	PrincipleTransparency = "transparency"
	PrincipleFairness     = "social_environmental_wellbeing"
)

var Principles = []string{
	PrincipleTechnical,
	PrinciplePrivacy,
	PrincipleTransparency,
	PrincipleFairness,
}

// AIModel is a third-party model with externally sourced benchmark
// ratings. PrincipleScores maps principle name to raw score, null when
// the benchmark did not cover that principle.
// swagger:model AIModel
type AIModel struct {
	BaseModel
	Slug            string          `gorm:"size:100;unique;not null" json:"slug"`
	Name            string          `gorm:"size:150;not null" json:"name"`
	Provider        string          `gorm:"size:100" json:"provider"`
	PrincipleScores json.RawMessage `gorm:"type:json" json:"principleScores"`
	EvaluatedAt     *time.Time      `json:"evaluatedAt"`
}

func (AIModel) TableName() string {
	return "ai_models"
}

// DecodePrincipleScores unmarshals the stored per-principle ratings.
func (m *AIModel) DecodePrincipleScores() (map[string]*float64, error) {
	scores := make(map[string]*float64)
	if len(m.PrincipleScores) == 0 {
		return scores, nil
	}
	if err := json.Unmarshal(m.PrincipleScores, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}
