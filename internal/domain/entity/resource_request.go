package entity

import "time"

// ResourceRequest statuses.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// ResourceRequest is a member's submission of a resource for review.
// Approval materializes a Resource; rejection stores a reason and triggers
// best-effort cleanup of any uploaded blob.
type ResourceRequest struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	SongTitle   string `gorm:"size:200;not null" json:"song_title"`
	Description string `gorm:"size:1000;not null" json:"description"`
	ResourceType string `gorm:"size:30;not null" json:"resource_type"`

	FileURL    string  `gorm:"size:512;not null" json:"file_url"`
	FileType   *string `gorm:"size:20" json:"file_type,omitempty"`
	FileSize   *int64  `json:"file_size,omitempty"`
	BlobPublicID *string `gorm:"size:255" json:"-"`

	Visibility    string  `gorm:"size:30;not null;default:'all_members'" json:"visibility"`
	RequestedByID uint    `gorm:"not null;index" json:"requested_by_id"`
	RequestedBy   *Member `gorm:"foreignKey:RequestedByID" json:"requested_by,omitempty"`

	Status          string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ReviewedByID    *uint      `json:"reviewed_by_id,omitempty"`
	ReviewedBy      *Member    `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `gorm:"type:timestamp" json:"reviewed_at,omitempty"`
	RejectionReason *string    `gorm:"size:500" json:"rejection_reason,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ResourceRequest) TableName() string {
	return "resource_requests"
}

// IsPending reports whether the request can still be reviewed or deleted by
// its owner.
func (r *ResourceRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}
