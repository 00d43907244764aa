package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// ResourceRepo implements repository.ResourceRepository on top of gorm.
type ResourceRepo struct {
	db *gorm.DB
}

// NewResourceRepo creates a new resource repository.
func NewResourceRepo(db *gorm.DB) *ResourceRepo {
	return &ResourceRepo{db: db}
}

// Create inserts a new resource.
func (r *ResourceRepo) Create(resource *entity.Resource) error {
	return r.db.Create(resource).Error
}

// GetByID returns a resource with the uploader preloaded.
func (r *ResourceRepo) GetByID(id uint) (*entity.Resource, error) {
	var resource entity.Resource
	err := r.db.Preload("UploadedBy").First(&resource, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &resource, nil
}

// List returns resources matching the filter, newest first, with total count.
func (r *ResourceRepo) List(filter repository.ResourceFilter, limit, offset int) ([]entity.Resource, int64, error) {
	var resources []entity.Resource
	var total int64

	query := r.db.Model(&entity.Resource{})
	if filter.Type != "" {
		query = query.Where("resource_type = ?", filter.Type)
	}
	if filter.Visibility != "" {
		query = query.Where("visibility = ?", filter.Visibility)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("song_title ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("UploadedBy").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&resources).Error
	if err != nil {
		return nil, 0, err
	}
	return resources, total, nil
}

// Update saves the whole resource row.
func (r *ResourceRepo) Update(resource *entity.Resource) error {
	return r.db.Save(resource).Error
}

// IncrementDownloads bumps the download counter.
func (r *ResourceRepo) IncrementDownloads(id uint) error {
	return r.db.Model(&entity.Resource{}).
		Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + ?", 1)).
		Error
}

// Delete removes a resource row.
func (r *ResourceRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Resource{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
