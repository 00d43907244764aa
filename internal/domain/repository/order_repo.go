package repository

import (
	"time"

	"github.com/yourusername/choir-api/internal/domain/entity"
)

// OrderFilter narrows order listings.
type OrderFilter struct {
	MemberID uint
	Status   string
	From     *time.Time
	To       *time.Time
}

// OrderStats aggregates order counts and revenue for the admin dashboard.
type OrderStats struct {
	Total        int64 `json:"total"`
	Pending      int64 `json:"pending"`
	Confirmed    int64 `json:"confirmed"`
	Declined     int64 `json:"declined"`
	TotalRevenue int64 `json:"total_revenue"` // cents, confirmed orders only
}

// OrderRepository defines persistence operations for merchandise orders.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id uint) (*entity.Order, error)
	List(filter OrderFilter, limit, offset int) ([]entity.Order, int64, error)
	// TransitionFromPending moves a pending order to a terminal status with a
	// single conditional update. Zero rows affected means the order was not
	// pending anymore; the caller re-reads to build the conflict error.
	TransitionFromPending(id uint, toStatus string, updates map[string]interface{}) (bool, error)
	Stats() (*OrderStats, error)
}
