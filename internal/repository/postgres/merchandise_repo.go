package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/choir-api/internal/domain/entity"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// MerchandiseRepo implements repository.MerchandiseRepository on top of gorm.
type MerchandiseRepo struct {
	db *gorm.DB
}

// NewMerchandiseRepo creates a new merchandise repository.
func NewMerchandiseRepo(db *gorm.DB) *MerchandiseRepo {
	return &MerchandiseRepo{db: db}
}

// Create inserts a new catalog item.
func (r *MerchandiseRepo) Create(item *entity.Merchandise) error {
	return r.db.Create(item).Error
}

// GetByID returns a catalog item by ID.
func (r *MerchandiseRepo) GetByID(id uint) (*entity.Merchandise, error) {
	var item entity.Merchandise
	err := r.db.First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// List returns catalog items with pagination and total count.
func (r *MerchandiseRepo) List(category, status string, limit, offset int) ([]entity.Merchandise, int64, error) {
	var items []entity.Merchandise
	var total int64

	query := r.db.Model(&entity.Merchandise{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id").Limit(limit).Offset(offset).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update saves the whole item row.
func (r *MerchandiseRepo) Update(item *entity.Merchandise) error {
	return r.db.Save(item).Error
}

// DecrementStock atomically reduces stock by quantity. The guard in the WHERE
// clause makes oversell impossible under concurrent orders.
func (r *MerchandiseRepo) DecrementStock(id uint, quantity int) error {
	result := r.db.Model(&entity.Merchandise{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// IncrementStock returns quantity to stock, e.g. when an order is declined.
func (r *MerchandiseRepo) IncrementStock(id uint, quantity int) error {
	return r.db.Model(&entity.Merchandise{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity)).
		Error
}

// Delete removes a catalog item.
func (r *MerchandiseRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Merchandise{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
