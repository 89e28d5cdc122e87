package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrUseCaseNotFound    = errors.New("use case not found")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrModelNotFound      = errors.New("model not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrUnknownQuestion    = errors.New("unknown question code")
	ErrInvalidAnswer      = errors.New("answer does not match question type")
	ErrFlowConfiguration  = errors.New("questionnaire flow configuration error")
	ErrIncomplete         = errors.New("questionnaire incomplete")
	ErrEliminated         = errors.New("use case eliminated")
	ErrModelScoreMissing  = errors.New("model capability score unavailable")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrCollaboratorExists = errors.New("collaborator already added")
)
