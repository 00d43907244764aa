package service

import (
	"context"
	"fmt"
	"log"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// ResourceService reads and manages published resources. Resources are only
// created through request approval, so there is no create path here.
type ResourceService struct {
	resourceRepo repository.ResourceRepository
	blobStorage  BlobStorage
}

// NewResourceService creates a new resource service.
func NewResourceService(resourceRepo repository.ResourceRepository, blobStorage BlobStorage) (*ResourceService, error) {
	if resourceRepo == nil {
		return nil, fmt.Errorf("resource repository is required")
	}
	if blobStorage == nil {
		return nil, fmt.Errorf("blob storage is required")
	}
	return &ResourceService{resourceRepo: resourceRepo, blobStorage: blobStorage}, nil
}

// List returns active resources the role may see. Staff-only resources are
// filtered at the query level for plain members.
func (s *ResourceService) List(role string, filter repository.ResourceFilter, limit, offset int) ([]entity.Resource, int64, error) {
	if filter.Status == "" {
		filter.Status = entity.ResourceActive
	}
	if role != entity.RoleModerator && role != entity.RoleAdmin {
		filter.Visibility = entity.VisibilityAllMembers
	}
	return s.resourceRepo.List(filter, limit, offset)
}

// Get returns a resource if the role may see it.
func (s *ResourceService) Get(role string, resourceID uint) (*entity.Resource, error) {
	resource, err := s.resourceRepo.GetByID(resourceID)
	if err != nil {
		return nil, err
	}
	if !resource.VisibleTo(role) {
		return nil, apperrors.ErrForbidden
	}
	return resource, nil
}

// RecordDownload returns the resource and bumps its download counter.
func (s *ResourceService) RecordDownload(role string, resourceID uint) (*entity.Resource, error) {
	resource, err := s.Get(role, resourceID)
	if err != nil {
		return nil, err
	}
	if err := s.resourceRepo.IncrementDownloads(resourceID); err != nil {
		log.Printf("[ResourceService] failed to bump downloads for resource=%d: %v", resourceID, err)
	}
	return resource, nil
}

// UpdateVisibility changes who may see the resource.
func (s *ResourceService) UpdateVisibility(resourceID uint, visibility string) (*entity.Resource, error) {
	if visibility != entity.VisibilityAllMembers && visibility != entity.VisibilityStaffOnly {
		return nil, fmt.Errorf("%w: unknown visibility %q", apperrors.ErrValidation, visibility)
	}
	resource, err := s.resourceRepo.GetByID(resourceID)
	if err != nil {
		return nil, err
	}
	resource.Visibility = visibility
	if err := s.resourceRepo.Update(resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// Archive hides the resource from listings without deleting the blob.
func (s *ResourceService) Archive(resourceID uint) (*entity.Resource, error) {
	resource, err := s.resourceRepo.GetByID(resourceID)
	if err != nil {
		return nil, err
	}
	resource.Status = entity.ResourceArchived
	if err := s.resourceRepo.Update(resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// Delete removes the resource and its blob, if any. Blob deletion is best
// effort.
func (s *ResourceService) Delete(ctx context.Context, resourceID uint) error {
	resource, err := s.resourceRepo.GetByID(resourceID)
	if err != nil {
		return err
	}
	if err := s.resourceRepo.Delete(resourceID); err != nil {
		return err
	}
	if resource.BlobPublicID != nil {
		if err := s.blobStorage.Delete(ctx, *resource.BlobPublicID); err != nil {
			log.Printf("[ResourceService] failed to delete blob %s: %v", *resource.BlobPublicID, err)
		}
	}
	return nil
}
