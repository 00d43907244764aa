package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/choir-api/internal/domain/entity"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// ResourceRequestRepo implements repository.ResourceRequestRepository on top
// of gorm.
type ResourceRequestRepo struct {
	db *gorm.DB
}

// NewResourceRequestRepo creates a new resource request repository.
func NewResourceRequestRepo(db *gorm.DB) *ResourceRequestRepo {
	return &ResourceRequestRepo{db: db}
}

// Create inserts a new request.
func (r *ResourceRequestRepo) Create(request *entity.ResourceRequest) error {
	return r.db.Create(request).Error
}

// GetByID returns a request with requester and reviewer preloaded.
func (r *ResourceRequestRepo) GetByID(id uint) (*entity.ResourceRequest, error) {
	var request entity.ResourceRequest
	err := r.db.Preload("RequestedBy").
		Preload("ReviewedBy").
		First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// ListByMember returns the member's own requests, newest first.
func (r *ResourceRequestRepo) ListByMember(memberID uint, limit, offset int) ([]entity.ResourceRequest, int64, error) {
	return r.list(r.db.Where("requested_by_id = ?", memberID), limit, offset)
}

// ListByStatus returns requests in the given status, oldest first so the
// review queue is worked in submission order.
func (r *ResourceRequestRepo) ListByStatus(status string, limit, offset int) ([]entity.ResourceRequest, int64, error) {
	var requests []entity.ResourceRequest
	var total int64

	query := r.db.Model(&entity.ResourceRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("RequestedBy").
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *ResourceRequestRepo) list(query *gorm.DB, limit, offset int) ([]entity.ResourceRequest, int64, error) {
	var requests []entity.ResourceRequest
	var total int64

	if err := query.Model(&entity.ResourceRequest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// TransitionFromPending performs a single conditional update from the pending
// status. The returned bool is false when no pending row matched.
func (r *ResourceRequestRepo) TransitionFromPending(id uint, toStatus string, updates map[string]interface{}) (bool, error) {
	updates["status"] = toStatus
	updates["updated_at"] = time.Now()

	result := r.db.Model(&entity.ResourceRequest{}).
		Where("id = ? AND status = ?", id, entity.RequestStatusPending).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes a request row.
func (r *ResourceRequestRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.ResourceRequest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
