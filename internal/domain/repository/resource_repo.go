package repository

import "github.com/yourusername/choir-api/internal/domain/entity"

// ResourceFilter narrows resource listings.
type ResourceFilter struct {
	Type       string
	Visibility string
	Status     string
	Search     string
}

// ResourceRepository defines persistence operations for choir resources.
type ResourceRepository interface {
	Create(resource *entity.Resource) error
	GetByID(id uint) (*entity.Resource, error)
	List(filter ResourceFilter, limit, offset int) ([]entity.Resource, int64, error)
	Update(resource *entity.Resource) error
	IncrementDownloads(id uint) error
	Delete(id uint) error
}
