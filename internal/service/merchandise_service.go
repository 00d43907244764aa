package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// MerchandiseInput carries catalog item fields for create and update.
type MerchandiseInput struct {
	Name        string
	Description string
	Price       int64
	Sizes       []string
	Stock       int
	Category    string
	Status      string
}

// MerchandiseService manages the catalog of orderable items.
type MerchandiseService struct {
	merchRepo   repository.MerchandiseRepository
	blobStorage BlobStorage
}

// NewMerchandiseService creates a new merchandise service.
func NewMerchandiseService(merchRepo repository.MerchandiseRepository, blobStorage BlobStorage) (*MerchandiseService, error) {
	if merchRepo == nil {
		return nil, fmt.Errorf("merchandise repository is required")
	}
	if blobStorage == nil {
		return nil, fmt.Errorf("blob storage is required")
	}
	return &MerchandiseService{merchRepo: merchRepo, blobStorage: blobStorage}, nil
}

// Create adds a catalog item, optionally with a product image.
func (s *MerchandiseService) Create(ctx context.Context, creatorID uint, input MerchandiseInput,
	image multipart.File, imageHeader *multipart.FileHeader) (*entity.Merchandise, error) {

	if err := validateMerchandiseInput(input); err != nil {
		return nil, err
	}

	item := &entity.Merchandise{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Sizes:       strings.Join(input.Sizes, ","),
		Stock:       input.Stock,
		Category:    input.Category,
		Status:      entity.MerchandiseAvailable,
		CreatedByID: creatorID,
	}
	if input.Status != "" {
		item.Status = input.Status
	}

	if image != nil && imageHeader != nil {
		upload, err := s.blobStorage.Upload(ctx, image, imageHeader, "merchandise")
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		item.ImageURL = upload.URL
		item.ImageBlobID = upload.PublicID
	}

	if err := s.merchRepo.Create(item); err != nil {
		if item.ImageBlobID != "" {
			s.deleteBlob(ctx, item.ImageBlobID)
		}
		return nil, fmt.Errorf("failed to create merchandise: %w", err)
	}
	return item, nil
}

// Get returns a catalog item.
func (s *MerchandiseService) Get(id uint) (*entity.Merchandise, error) {
	return s.merchRepo.GetByID(id)
}

// List returns catalog items.
func (s *MerchandiseService) List(category, status string, limit, offset int) ([]entity.Merchandise, int64, error) {
	return s.merchRepo.List(category, status, limit, offset)
}

// Update overwrites the item's editable fields, replacing the image when a
// new one is uploaded.
func (s *MerchandiseService) Update(ctx context.Context, id uint, input MerchandiseInput,
	image multipart.File, imageHeader *multipart.FileHeader) (*entity.Merchandise, error) {

	if err := validateMerchandiseInput(input); err != nil {
		return nil, err
	}

	item, err := s.merchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Description = strings.TrimSpace(input.Description)
	item.Price = input.Price
	item.Sizes = strings.Join(input.Sizes, ",")
	item.Stock = input.Stock
	item.Category = input.Category
	if input.Status != "" {
		item.Status = input.Status
	}

	oldBlobID := ""
	if image != nil && imageHeader != nil {
		upload, err := s.blobStorage.Upload(ctx, image, imageHeader, "merchandise")
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		oldBlobID = item.ImageBlobID
		item.ImageURL = upload.URL
		item.ImageBlobID = upload.PublicID
	}

	if err := s.merchRepo.Update(item); err != nil {
		return nil, err
	}
	if oldBlobID != "" {
		s.deleteBlob(ctx, oldBlobID)
	}
	return item, nil
}

// Delete removes the item and its image.
func (s *MerchandiseService) Delete(ctx context.Context, id uint) error {
	item, err := s.merchRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.merchRepo.Delete(id); err != nil {
		return err
	}
	if item.ImageBlobID != "" {
		s.deleteBlob(ctx, item.ImageBlobID)
	}
	return nil
}

func (s *MerchandiseService) deleteBlob(ctx context.Context, publicID string) {
	if err := s.blobStorage.Delete(ctx, publicID); err != nil {
		log.Printf("[MerchandiseService] failed to delete blob %s: %v", publicID, err)
	}
}

func validateMerchandiseInput(input MerchandiseInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if input.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", apperrors.ErrValidation)
	}
	if input.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", apperrors.ErrValidation)
	}
	switch input.Category {
	case entity.CategoryTShirt, entity.CategoryBand, entity.CategoryHoodie:
	default:
		return fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, input.Category)
	}
	if input.Status != "" {
		switch input.Status {
		case entity.MerchandiseAvailable, entity.MerchandiseUnavailable, entity.MerchandiseDiscontinued:
		default:
			return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, input.Status)
		}
	}
	return nil
}
