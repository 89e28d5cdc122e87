package model

type CollaboratorRole string

const (
	CollaboratorViewer CollaboratorRole = "viewer"
	CollaboratorEditor CollaboratorRole = "editor"
)

// swagger:model UseCaseCollaborator
type UseCaseCollaborator struct {
	BaseModel
	UseCaseID string           `gorm:"size:36;not null;uniqueIndex:idx_usecase_user" json:"useCaseId"`
	UserID    uint             `gorm:"not null;uniqueIndex:idx_usecase_user" json:"userId"`
	Role      CollaboratorRole `gorm:"size:20;default:'viewer'" json:"role"`
}

func (UseCaseCollaborator) TableName() string {
	return "use_case_collaborators"
}
