package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/yourusername/choir-api/internal/domain/entity"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// FavoriteRepo implements repository.FavoriteRepository on top of gorm.
type FavoriteRepo struct {
	db *gorm.DB
}

// NewFavoriteRepo creates a new favorite repository.
func NewFavoriteRepo(db *gorm.DB) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

// Add creates the bookmark. The unique index turns a duplicate into
// ErrConflict.
func (r *FavoriteRepo) Add(favorite *entity.Favorite) error {
	err := r.db.Create(favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(err.Error(), "duplicate key") {
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}

// Remove deletes the bookmark.
func (r *FavoriteRepo) Remove(memberID, resourceID uint) error {
	result := r.db.Where("member_id = ? AND resource_id = ?", memberID, resourceID).
		Delete(&entity.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListByMember returns the member's bookmarks with resources preloaded.
func (r *FavoriteRepo) ListByMember(memberID uint, limit, offset int) ([]entity.Favorite, int64, error) {
	var favorites []entity.Favorite
	var total int64

	query := r.db.Model(&entity.Favorite{}).Where("member_id = ?", memberID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Resource").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&favorites).Error
	if err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}

// Exists reports whether the member has bookmarked the resource.
func (r *FavoriteRepo) Exists(memberID, resourceID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Favorite{}).
		Where("member_id = ? AND resource_id = ?", memberID, resourceID).
		Count(&count).Error
	return count > 0, err
}
