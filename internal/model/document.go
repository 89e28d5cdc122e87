package model

type DocumentType string

const (
	// DocStoppingProof evidences that an already-deployed prohibited
	// practice has been stopped.
	DocStoppingProof DocumentType = "stopping_proof"
	// DocSafeguard evidences safeguards planned before a future
	// deployment of a flagged practice.
	DocSafeguard DocumentType = "safeguard"
	DocOther     DocumentType = "other"
)

// swagger:model ProofDocument
type ProofDocument struct {
	UUIDBase
	UseCaseID  string       `gorm:"size:36;index;not null" json:"useCaseId"`
	Type       DocumentType `gorm:"size:30;not null" json:"type"`
	FileName   string       `gorm:"size:255;not null" json:"fileName"`
	StorageKey string       `gorm:"size:500;not null" json:"-"`
	URL        string       `gorm:"size:500" json:"url"`
	MimeType   string       `gorm:"size:100" json:"mimeType"`
	Size       int64        `json:"size"`
	UploadedBy uint         `json:"uploadedBy"`
}

func (ProofDocument) TableName() string {
	return "proof_documents"
}
