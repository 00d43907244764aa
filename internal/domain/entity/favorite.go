package entity

import "time"

// Favorite bookmarks a resource for a member. One row per member/resource
// pair, enforced by a unique index.
type Favorite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MemberID   uint      `gorm:"not null;uniqueIndex:idx_member_resource" json:"member_id"`
	ResourceID uint      `gorm:"not null;uniqueIndex:idx_member_resource" json:"resource_id"`
	Resource   *Resource `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
