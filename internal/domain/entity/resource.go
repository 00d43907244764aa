package entity

import (
	"strings"
	"time"
)

// Resource types. The audio_* and sheet_music types carry an uploaded file;
// the *_link types reference an external URL.
const (
	ResourceSheetMusic      = "sheet_music"
	ResourceAudioSoprano    = "audio_soprano"
	ResourceAudioAlto       = "audio_alto"
	ResourceAudioTenor      = "audio_tenor"
	ResourceAudioBass       = "audio_bass"
	ResourceGoogleDriveLink = "google_drive_link"
	ResourceYouTubeLink     = "youtube_link"
)

// Resource visibility.
const (
	VisibilityAllMembers   = "all_members"
	VisibilityStaffOnly    = "admin_moderator_only"
)

// Resource statuses.
const (
	ResourceActive   = "active"
	ResourceArchived = "archived"
)

// IsLinkResourceType reports whether the type references an external URL
// rather than an uploaded blob.
func IsLinkResourceType(resourceType string) bool {
	return resourceType == ResourceGoogleDriveLink || resourceType == ResourceYouTubeLink
}

// IsFileResourceType reports whether the type carries an uploaded file.
func IsFileResourceType(resourceType string) bool {
	switch resourceType {
	case ResourceSheetMusic, ResourceAudioSoprano, ResourceAudioAlto,
		ResourceAudioTenor, ResourceAudioBass:
		return true
	}
	return false
}

// BlobFolderFor returns the blob-store folder for an uploaded resource type.
func BlobFolderFor(resourceType string) string {
	if strings.HasPrefix(resourceType, "audio_") {
		return "audio"
	}
	return "sheet_music"
}

// Resource is a published sheet-music or audio resource. It is only created
// by approving a ResourceRequest and is owned by the original requester.
type Resource struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	SongTitle   string `gorm:"size:200;not null;index" json:"song_title"`
	Description string `gorm:"size:1000;not null" json:"description"`
	ResourceType string `gorm:"size:30;not null;index" json:"resource_type"`

	FileURL    string  `gorm:"size:512;not null" json:"file_url"`
	FileType   *string `gorm:"size:20" json:"file_type,omitempty"`
	FileSize   *int64  `json:"file_size,omitempty"`
	BlobPublicID *string `gorm:"size:255" json:"-"`

	Visibility    string  `gorm:"size:30;not null;default:'all_members';index" json:"visibility"`
	UploadedByID  uint    `gorm:"not null;index" json:"uploaded_by_id"`
	UploadedBy    *Member `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
	Status        string  `gorm:"size:20;not null;default:'active';index" json:"status"`
	DownloadCount int64   `gorm:"not null;default:0" json:"download_count"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Resource) TableName() string {
	return "resources"
}

// VisibleTo reports whether the resource may be listed for the given role.
func (r *Resource) VisibleTo(role string) bool {
	if r.Visibility == VisibilityAllMembers {
		return true
	}
	return role == RoleModerator || role == RoleAdmin
}
