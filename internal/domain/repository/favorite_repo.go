package repository

import "github.com/yourusername/choir-api/internal/domain/entity"

// FavoriteRepository defines persistence operations for resource bookmarks.
type FavoriteRepository interface {
	// Add creates the bookmark. Returns ErrConflict when the pair exists.
	Add(favorite *entity.Favorite) error
	Remove(memberID, resourceID uint) error
	ListByMember(memberID uint, limit, offset int) ([]entity.Favorite, int64, error)
	Exists(memberID, resourceID uint) (bool, error)
}
