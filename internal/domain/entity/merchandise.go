package entity

import (
	"strings"
	"time"
)

// Merchandise statuses.
const (
	MerchandiseAvailable    = "available"
	MerchandiseUnavailable  = "unavailable"
	MerchandiseDiscontinued = "discontinued"
)

// Merchandise categories.
const (
	CategoryTShirt = "tshirt"
	CategoryBand   = "band"
	CategoryHoodie = "hoodie"
)

// Merchandise is a catalog item members can order.
type Merchandise struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:1000;not null" json:"description"`
	Price       int64  `gorm:"not null" json:"price"` // cents
	ImageURL    string `gorm:"size:512;not null;default:''" json:"image_url"`
	ImageBlobID string `gorm:"size:255;not null;default:''" json:"-"`
	// Sizes is a comma-separated list, e.g. "S,M,L,XL".
	Sizes       string  `gorm:"size:100;not null;default:''" json:"-"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	Category    string  `gorm:"size:20;not null" json:"category"` // tshirt, band, hoodie
	Status      string  `gorm:"size:20;not null;default:'available'" json:"status"`
	CreatedByID uint    `gorm:"not null" json:"created_by_id"`
	CreatedBy   *Member `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Merchandise) TableName() string {
	return "merchandise"
}

// SizeList returns the available sizes as a slice.
func (m *Merchandise) SizeList() []string {
	if m.Sizes == "" {
		return nil
	}
	return strings.Split(m.Sizes, ",")
}

// HasSize reports whether the given size can be ordered.
func (m *Merchandise) HasSize(size string) bool {
	for _, s := range m.SizeList() {
		if s == size {
			return true
		}
	}
	return false
}

// IsAvailable reports whether the item can currently be purchased.
func (m *Merchandise) IsAvailable() bool {
	return m.Status == MerchandiseAvailable
}
