package service

import (
	"aiact_backend/internal/model"
	"aiact_backend/internal/repository"
	"aiact_backend/internal/util"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gorm.io/gorm"
)

type DocumentService struct {
	Documents *repository.DocumentRepository
	UseCases  *UseCaseService
	Storage   *StorageService
}

func NewDocumentService(documents *repository.DocumentRepository, useCases *UseCaseService, storage *StorageService) *DocumentService {
	return &DocumentService{Documents: documents, UseCases: useCases, Storage: storage}
}

// Upload stores an evidence file for a use case and records it. The
// stored key is namespaced by use case so cascade cleanup can find every
// object.
func (s *DocumentService) Upload(useCaseID string, claims *util.Claims, docType model.DocumentType, fileName string, reader io.Reader, size int64, contentType string) (*model.ProofDocument, error) {
	uc, err := s.UseCases.Get(useCaseID, claims)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	allowed := false
	for _, e := range util.AllowedDocumentExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("file type %s not allowed", ext)
	}

	key := fmt.Sprintf("usecases/%s/%s_%s", uc.ID, model.GenerateUUID(), filepath.Base(fileName))
	url, err := s.Storage.Upload(context.Background(), key, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	doc := &model.ProofDocument{
		UseCaseID:  uc.ID,
		Type:       docType,
		FileName:   fileName,
		StorageKey: key,
		URL:        url,
		MimeType:   contentType,
		Size:       size,
		UploadedBy: claims.UserID,
	}
	if err := s.Documents.Create(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) List(useCaseID string, claims *util.Claims) ([]model.ProofDocument, error) {
	if _, err := s.UseCases.Get(useCaseID, claims); err != nil {
		return nil, err
	}
	return s.Documents.ListByUseCase(useCaseID)
}

func (s *DocumentService) Delete(id string, claims *util.Claims) error {
	doc, err := s.Documents.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrDocumentNotFound
	}
	if err != nil {
		return err
	}
	if _, err := s.UseCases.Get(doc.UseCaseID, claims); err != nil {
		return err
	}
	if claims.Role != model.Admin && doc.UploadedBy != claims.UserID {
		return util.ErrPermissionDenied
	}

	if err := s.Storage.Delete(context.Background(), doc.StorageKey); err != nil {
		return err
	}
	return s.Documents.Delete(id)
}
