package model

import "encoding/json"

type HistoryEvent string

const (
	EventScored        HistoryEvent = "scored"
	EventEliminated    HistoryEvent = "eliminated"
	EventAnswerChanged HistoryEvent = "answer_changed"
	EventModelChanged  HistoryEvent = "model_changed"
)

// ScoreHistory records each scoring run with the previous and new final
// score so changes over time stay auditable.
// swagger:model ScoreHistory
type ScoreHistory struct {
	UUIDBase
	UseCaseID     string          `gorm:"size:36;index;not null" json:"useCaseId"`
	Event         HistoryEvent    `gorm:"size:30;not null" json:"event"`
	PreviousScore *float64        `json:"previousScore"`
	NewScore      *float64        `json:"newScore"`
	ActorID       uint            `json:"actorId"`
	Details       json.RawMessage `gorm:"type:json" json:"details,omitempty"`
}

func (ScoreHistory) TableName() string {
	return "score_history"
}
