package repository

import (
	"time"

	"github.com/yourusername/choir-api/internal/domain/entity"
)

// EventFilter narrows event listings.
type EventFilter struct {
	Type   string
	Status string
	From   *time.Time
	To     *time.Time
}

// EventRepository defines persistence operations for choir events and
// member registrations.
type EventRepository interface {
	Create(event *entity.Event) error
	GetByID(id uint) (*entity.Event, error)
	List(filter EventFilter, limit, offset int) ([]entity.Event, int64, error)
	Update(event *entity.Event) error
	Delete(id uint) error

	Register(reg *entity.EventRegistration) error
	GetRegistration(eventID, memberID uint) (*entity.EventRegistration, error)
	UpdateRegistration(reg *entity.EventRegistration) error
	ListRegistrations(eventID uint) ([]entity.EventRegistration, error)
	CountActiveRegistrations(eventID uint) (int64, error)
}
