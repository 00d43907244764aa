package service

import (
	"fmt"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// FavoriteService manages a member's resource bookmarks.
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	resourceRepo repository.ResourceRepository
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, resourceRepo repository.ResourceRepository) (*FavoriteService, error) {
	if favoriteRepo == nil || resourceRepo == nil {
		return nil, fmt.Errorf("favorite and resource repositories are required")
	}
	return &FavoriteService{favoriteRepo: favoriteRepo, resourceRepo: resourceRepo}, nil
}

// Add bookmarks a resource the member can see.
func (s *FavoriteService) Add(memberID uint, role string, resourceID uint) (*entity.Favorite, error) {
	resource, err := s.resourceRepo.GetByID(resourceID)
	if err != nil {
		return nil, err
	}
	if !resource.VisibleTo(role) {
		return nil, apperrors.ErrForbidden
	}

	favorite := &entity.Favorite{MemberID: memberID, ResourceID: resourceID}
	if err := s.favoriteRepo.Add(favorite); err != nil {
		return nil, err
	}
	return favorite, nil
}

// Remove deletes the bookmark.
func (s *FavoriteService) Remove(memberID, resourceID uint) error {
	return s.favoriteRepo.Remove(memberID, resourceID)
}

// List returns the member's bookmarks.
func (s *FavoriteService) List(memberID uint, limit, offset int) ([]entity.Favorite, int64, error) {
	return s.favoriteRepo.ListByMember(memberID, limit, offset)
}

// IsFavorite reports whether the member has bookmarked the resource.
func (s *FavoriteService) IsFavorite(memberID, resourceID uint) (bool, error) {
	return s.favoriteRepo.Exists(memberID, resourceID)
}
