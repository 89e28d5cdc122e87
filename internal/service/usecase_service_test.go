package service

import (
	"aiact_backend/internal/model"
	"aiact_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequiredDocumentType(t *testing.T) {
	svc := &UseCaseService{}
	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	tests := []struct {
		name     string
		status   model.UseCaseStatus
		deployed *time.Time
		want     model.DocumentType
		required bool
	}{
		{"completed case needs nothing", model.UseCaseCompleted, &past, "", false},
		{"draft case needs nothing", model.UseCaseDraft, nil, "", false},
		{"eliminated and already deployed", model.UseCaseEliminated, &past, model.DocStoppingProof, true},
		{"eliminated with future deployment", model.UseCaseEliminated, &future, model.DocSafeguard, true},
		{"eliminated without deployment date", model.UseCaseEliminated, nil, model.DocSafeguard, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			uc := newTestUseCase("uc-1")
			uc.Status = tc.status
			uc.DeploymentDate = tc.deployed

			docType, required := svc.RequiredDocumentType(uc)
			assert.Equal(t, tc.required, required)
			assert.Equal(t, tc.want, docType)
		})
	}
}

func TestAuthorizeAdminAndOwnerBypassCollaborators(t *testing.T) {
	svc := &UseCaseService{}
	uc := newTestUseCase("uc-1")
	uc.OwnerID = 5

	assert.NoError(t, svc.authorize(uc, &util.Claims{UserID: 5, Role: model.Member}, true))
	assert.NoError(t, svc.authorize(uc, &util.Claims{UserID: 9, Role: model.Admin}, true))
	assert.ErrorIs(t, svc.authorize(uc, nil, false), util.ErrPermissionDenied)
}
