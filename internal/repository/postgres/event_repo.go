package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// EventRepo implements repository.EventRepository on top of gorm.
type EventRepo struct {
	db *gorm.DB
}

// NewEventRepo creates a new event repository.
func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{db: db}
}

// Create inserts a new event.
func (r *EventRepo) Create(event *entity.Event) error {
	return r.db.Create(event).Error
}

// GetByID returns an event with registrations preloaded.
func (r *EventRepo) GetByID(id uint) (*entity.Event, error) {
	var event entity.Event
	err := r.db.Preload("Registrations").
		Preload("Registrations.Member").
		First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// List returns events matching the filter, soonest first, with total count.
func (r *EventRepo) List(filter repository.EventFilter, limit, offset int) ([]entity.Event, int64, error) {
	var events []entity.Event
	var total int64

	query := r.db.Model(&entity.Event{})
	if filter.Type != "" {
		query = query.Where("event_type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date < ?", *filter.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("date ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// Update saves the whole event row.
func (r *EventRepo) Update(event *entity.Event) error {
	return r.db.Save(event).Error
}

// Delete removes an event and its registrations.
func (r *EventRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&entity.EventRegistration{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.Event{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// Register inserts a registration row.
func (r *EventRepo) Register(reg *entity.EventRegistration) error {
	return r.db.Create(reg).Error
}

// GetRegistration returns the registration for the member, if any.
func (r *EventRepo) GetRegistration(eventID, memberID uint) (*entity.EventRegistration, error) {
	var reg entity.EventRegistration
	err := r.db.Where("event_id = ? AND member_id = ?", eventID, memberID).First(&reg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &reg, nil
}

// UpdateRegistration saves the whole registration row.
func (r *EventRepo) UpdateRegistration(reg *entity.EventRegistration) error {
	return r.db.Save(reg).Error
}

// ListRegistrations returns all registrations for an event.
func (r *EventRepo) ListRegistrations(eventID uint) ([]entity.EventRegistration, error) {
	var regs []entity.EventRegistration
	err := r.db.Preload("Member").
		Where("event_id = ?", eventID).
		Order("registered_at ASC").
		Find(&regs).Error
	return regs, err
}

// CountActiveRegistrations counts non-cancelled registrations, used to
// enforce event capacity.
func (r *EventRepo) CountActiveRegistrations(eventID uint) (int64, error) {
	var total int64
	err := r.db.Model(&entity.EventRegistration{}).
		Where("event_id = ? AND status <> ?", eventID, entity.RegistrationCancelled).
		Count(&total).Error
	return total, err
}
