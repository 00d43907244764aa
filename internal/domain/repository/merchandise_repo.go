package repository

import "github.com/yourusername/choir-api/internal/domain/entity"

// MerchandiseRepository defines persistence operations for merchandise items.
type MerchandiseRepository interface {
	Create(item *entity.Merchandise) error
	GetByID(id uint) (*entity.Merchandise, error)
	List(category, status string, limit, offset int) ([]entity.Merchandise, int64, error)
	Update(item *entity.Merchandise) error
	// DecrementStock atomically reduces stock by quantity. Returns
	// ErrConflict when the remaining stock is insufficient.
	DecrementStock(id uint, quantity int) error
	IncrementStock(id uint, quantity int) error
	Delete(id uint) error
}
