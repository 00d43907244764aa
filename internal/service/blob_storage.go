package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// UploadResult describes a stored blob.
type UploadResult struct {
	URL      string
	PublicID string
	Bytes    int64
	Format   string
}

// BlobStorage stores uploaded files (receipts, sheet music, audio, images).
type BlobStorage interface {
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

// NoopBlobStorage is used when file uploads are disabled, e.g. in tests.
type NoopBlobStorage struct{}

func (s *NoopBlobStorage) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (*UploadResult, error) {
	publicID := folder + "/" + uuid.NewString()
	log.Printf("[BlobStorage] noop upload name=%s public_id=%s", header.Filename, publicID)
	return &UploadResult{
		URL:      "https://storage.invalid/" + publicID,
		PublicID: publicID,
		Bytes:    header.Size,
	}, nil
}

func (s *NoopBlobStorage) Delete(ctx context.Context, publicID string) error {
	log.Printf("[BlobStorage] noop delete public_id=%s", publicID)
	return nil
}

// CloudinaryBlobStorage stores blobs in Cloudinary under a configurable
// root folder.
type CloudinaryBlobStorage struct {
	client     *cloudinary.Cloudinary
	rootFolder string
}

func NewCloudinaryBlobStorage(cloudName, apiKey, apiSecret, rootFolder string) (*CloudinaryBlobStorage, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials are required")
	}
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary client: %w", err)
	}
	if rootFolder == "" {
		rootFolder = "choir"
	}
	return &CloudinaryBlobStorage{client: client, rootFolder: rootFolder}, nil
}

// Upload streams the file to Cloudinary. The public ID is random so member
// supplied filenames never reach the store.
func (s *CloudinaryBlobStorage) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (*UploadResult, error) {
	publicID := uuid.NewString()
	result, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   s.rootFolder + "/" + folder,
		PublicID: publicID,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	return &UploadResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Bytes:    int64(result.Bytes),
		Format:   result.Format,
	}, nil
}

// Delete removes a blob. Callers treat failures as non-fatal and log them.
func (s *CloudinaryBlobStorage) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy failed: %w", err)
	}
	return nil
}
