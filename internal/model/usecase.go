package model

import (
	"encoding/json"
	"time"
)

type UseCaseStatus string

const (
	UseCaseDraft      UseCaseStatus = "draft"
	UseCaseInProgress UseCaseStatus = "in_progress"
	UseCaseCompleted  UseCaseStatus = "completed"
	UseCaseEliminated UseCaseStatus = "eliminated"
)

// UseCase is one AI deployment being assessed. Scores stay null until the
// questionnaire reaches a terminal node; they are recomputed in full on
// every scoring run.
// swagger:model UseCase
type UseCase struct {
	UUIDBase
	CompanyID           uint            `gorm:"index;not null" json:"companyId"`
	OwnerID             uint            `gorm:"index;not null" json:"ownerId"`
	Name                string          `gorm:"size:150;not null" json:"name"`
	Description         string          `gorm:"type:text" json:"description"`
	ResponsibleService  string          `gorm:"size:150" json:"responsibleService"`
	TechnologyPartner   string          `gorm:"size:150" json:"technologyPartner"`
	DeploymentDate      *time.Time      `json:"deploymentDate"`
	DeploymentCountries json.RawMessage `gorm:"type:json" json:"deploymentCountries"`
	PrimaryModelID      *uint           `gorm:"index" json:"primaryModelId"`
	CurrentQuestionCode string          `gorm:"size:50" json:"currentQuestionCode"`
	Status              UseCaseStatus   `gorm:"type:enum('draft','in_progress','completed','eliminated');default:'draft'" json:"status"`
	ScoreBase           *float64        `json:"scoreBase"`
	ScoreModel          *float64        `json:"scoreModel"`
	ScoreFinal          *float64        `json:"scoreFinal"`
	RiskLevel           string          `gorm:"size:20" json:"riskLevel"`
	EliminationReason   string          `gorm:"size:255" json:"eliminationReason,omitempty"`
	LastScoredAt        *time.Time      `json:"lastScoredAt"`
}

func (UseCase) TableName() string {
	return "use_cases"
}
