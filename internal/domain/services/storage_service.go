package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
)

// InterfaceStorageService defines the object storage service interface.
type InterfaceStorageService interface {
	UploadComplaintPhoto(ctx context.Context, complaintID uint, contentType string, r io.Reader) (string, error)
	DeleteObject(ctx context.Context, objectPath string) error
}

// StorageService stores complaint photos in a hosted object-storage bucket.
type StorageService struct {
	client *storage.Client
	Bucket string
}

// NewStorageService creates the bucket client from the configured service
// account key. Returns an error when the key file is missing so the caller
// can run without photo storage.
func NewStorageService(ctx context.Context, cfg *config.Config) (InterfaceStorageService, error) {
	if _, err := os.Stat(cfg.GCSCredentialsFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("service account key not found at %s", cfg.GCSCredentialsFile)
	}

	client, err := storage.NewClient(ctx, option.WithCredentialsFile(cfg.GCSCredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &StorageService{
		client: client,
		Bucket: cfg.GCSBucket,
	}, nil
}

// UploadComplaintPhoto streams a photo into the bucket and returns its
// public URL. Object keys are complaints/<id>/<uuid> so one complaint can
// carry retried uploads without collisions.
func (s *StorageService) UploadComplaintPhoto(ctx context.Context, complaintID uint, contentType string, r io.Reader) (string, error) {
	objectPath := fmt.Sprintf("complaints/%d/%s", complaintID, uuid.New().String())

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	obj := s.client.Bucket(s.Bucket).Object(objectPath)
	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "no-cache, no-store, must-revalidate"

	if _, err := io.Copy(writer, r); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write photo to bucket: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize photo upload: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.Bucket, objectPath), nil
}

// DeleteObject removes an object from the bucket.
func (s *StorageService) DeleteObject(ctx context.Context, objectPath string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.client.Bucket(s.Bucket).Object(objectPath).Delete(ctx)
}
