package service

import (
	"aiact_backend/internal/config"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider abstracts where uploaded evidence lands.
type StorageProvider interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	GetURL(key string) string
}

type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, key)
	dir := filepath.Dir(dst)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	_, err = io.Copy(out, reader)
	if err != nil {
		return "", err
	}

	return p.GetURL(key), nil
}

func (p *LocalStorageProvider) Delete(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(p.Config.LocalPath, key))
}

func (p *LocalStorageProvider) GetURL(key string) string {
	return p.Config.PublicURL + "/" + key
}

type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.Minio.Bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(key), nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, key string) error {
	return p.Client.RemoveObject(ctx, p.Config.Minio.Bucket, key, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) GetURL(key string) string {
	return "/" + p.Config.Minio.Bucket + "/" + key
}

type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	if cfg.Storage.Provider == "minio" {
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err == nil {
			provider = p
		}
	}

	if provider == nil {
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}

	return &StorageService{Provider: provider}
}

func (s *StorageService) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	return s.Provider.Upload(ctx, key, reader, size, contentType)
}

func (s *StorageService) Delete(ctx context.Context, key string) error {
	return s.Provider.Delete(ctx, key)
}

func (s *StorageService) GetURL(key string) string {
	return s.Provider.GetURL(key)
}
