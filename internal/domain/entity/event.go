package entity

import "time"

// Event types.
const (
	EventPerformance = "performance"
	EventPractice    = "practice"
	EventCharity     = "charity"
	EventCompetition = "competition"
	EventOther       = "other"
)

// Event and schedule statuses.
const (
	EventUpcoming  = "upcoming"
	EventOngoing   = "ongoing"
	EventCompleted = "completed"
	EventCancelled = "cancelled"
)

// Event is a choir event members can register for.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:2000;not null" json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Time        string    `gorm:"size:20;not null" json:"time"`
	Location    string    `gorm:"size:200;not null" json:"location"`
	EventType   string    `gorm:"size:20;not null;default:'performance'" json:"event_type"`
	ImageURL    string    `gorm:"size:512;not null;default:''" json:"image_url"`
	ImageBlobID string    `gorm:"size:255;not null;default:''" json:"-"`
	// Capacity is nil for unlimited events.
	Capacity    *int    `json:"capacity,omitempty"`
	Status      string  `gorm:"size:20;not null;default:'upcoming';index" json:"status"`
	CreatedByID uint    `gorm:"not null" json:"created_by_id"`
	CreatedBy   *Member `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`

	Registrations []EventRegistration `gorm:"foreignKey:EventID" json:"registrations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// Registration statuses.
const (
	RegistrationRegistered = "registered"
	RegistrationAttended   = "attended"
	RegistrationCancelled  = "cancelled"
)

// EventRegistration links a member to an event. One row per member per event.
type EventRegistration struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EventID      uint      `gorm:"not null;uniqueIndex:idx_event_member" json:"event_id"`
	MemberID     uint      `gorm:"not null;uniqueIndex:idx_event_member" json:"member_id"`
	Member       *Member   `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Status       string    `gorm:"size:20;not null;default:'registered'" json:"status"`
	RegisteredAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"registered_at"`
}

func (EventRegistration) TableName() string {
	return "event_registrations"
}
