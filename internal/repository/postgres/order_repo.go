package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// OrderRepo implements repository.OrderRepository on top of gorm.
type OrderRepo struct {
	db *gorm.DB
}

// NewOrderRepo creates a new order repository.
func NewOrderRepo(db *gorm.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create inserts an order together with its line items.
func (r *OrderRepo) Create(order *entity.Order) error {
	return r.db.Create(order).Error
}

// GetByID returns an order with items, member and reviewer preloaded.
func (r *OrderRepo) GetByID(id uint) (*entity.Order, error) {
	var order entity.Order
	err := r.db.Preload("Items").
		Preload("Member").
		Preload("VerifiedBy").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// List returns orders matching the filter, newest first, with total count.
func (r *OrderRepo) List(filter repository.OrderFilter, limit, offset int) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.Model(&entity.Order{})
	if filter.MemberID != 0 {
		query = query.Where("member_id = ?", filter.MemberID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Items").
		Preload("Member").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// TransitionFromPending performs a single conditional update from the pending
// status. The returned bool is false when no pending row matched, which means
// another reviewer already settled the order.
func (r *OrderRepo) TransitionFromPending(id uint, toStatus string, updates map[string]interface{}) (bool, error) {
	updates["status"] = toStatus
	updates["updated_at"] = time.Now()

	result := r.db.Model(&entity.Order{}).
		Where("id = ? AND status = ?", id, entity.OrderStatusPending).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Stats aggregates counts per status and confirmed revenue.
func (r *OrderRepo) Stats() (*repository.OrderStats, error) {
	stats := &repository.OrderStats{}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	err := r.db.Model(&entity.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		stats.Total += c.Count
		switch c.Status {
		case entity.OrderStatusPending:
			stats.Pending = c.Count
		case entity.OrderStatusConfirmed:
			stats.Confirmed = c.Count
		case entity.OrderStatusDeclined:
			stats.Declined = c.Count
		}
	}

	err = r.db.Model(&entity.Order{}).
		Where("status = ?", entity.OrderStatusConfirmed).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
