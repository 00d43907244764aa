package repository

import "github.com/yourusername/choir-api/internal/domain/entity"

// ResourceRequestRepository defines persistence operations for member-submitted
// resource requests awaiting moderation.
type ResourceRequestRepository interface {
	Create(request *entity.ResourceRequest) error
	GetByID(id uint) (*entity.ResourceRequest, error)
	ListByMember(memberID uint, limit, offset int) ([]entity.ResourceRequest, int64, error)
	ListByStatus(status string, limit, offset int) ([]entity.ResourceRequest, int64, error)
	// TransitionFromPending moves a pending request to a terminal status with
	// a single conditional update. Zero rows affected means another reviewer
	// got there first.
	TransitionFromPending(id uint, toStatus string, updates map[string]interface{}) (bool, error)
	Delete(id uint) error
}
