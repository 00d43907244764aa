package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// EventInput carries event fields for create and update.
type EventInput struct {
	Title       string
	Description string
	Date        time.Time
	Time        string
	Location    string
	EventType   string
	Capacity    *int
	Status      string
}

// EventService manages events and member registrations.
type EventService struct {
	eventRepo   repository.EventRepository
	blobStorage BlobStorage
}

// NewEventService creates a new event service.
func NewEventService(eventRepo repository.EventRepository, blobStorage BlobStorage) (*EventService, error) {
	if eventRepo == nil {
		return nil, fmt.Errorf("event repository is required")
	}
	if blobStorage == nil {
		return nil, fmt.Errorf("blob storage is required")
	}
	return &EventService{eventRepo: eventRepo, blobStorage: blobStorage}, nil
}

// Create adds a new event, optionally with a banner image.
func (s *EventService) Create(ctx context.Context, creatorID uint, input EventInput,
	image multipart.File, imageHeader *multipart.FileHeader) (*entity.Event, error) {

	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	event := &entity.Event{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Date:        input.Date,
		Time:        input.Time,
		Location:    strings.TrimSpace(input.Location),
		EventType:   input.EventType,
		Capacity:    input.Capacity,
		Status:      entity.EventUpcoming,
		CreatedByID: creatorID,
	}
	if input.Status != "" {
		event.Status = input.Status
	}

	if image != nil && imageHeader != nil {
		upload, err := s.blobStorage.Upload(ctx, image, imageHeader, "events")
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		event.ImageURL = upload.URL
		event.ImageBlobID = upload.PublicID
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// Get returns an event with its registrations.
func (s *EventService) Get(id uint) (*entity.Event, error) {
	return s.eventRepo.GetByID(id)
}

// List returns events matching the filter.
func (s *EventService) List(filter repository.EventFilter, limit, offset int) ([]entity.Event, int64, error) {
	return s.eventRepo.List(filter, limit, offset)
}

// Update overwrites the event's editable fields.
func (s *EventService) Update(ctx context.Context, id uint, input EventInput,
	image multipart.File, imageHeader *multipart.FileHeader) (*entity.Event, error) {

	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	event.Title = strings.TrimSpace(input.Title)
	event.Description = strings.TrimSpace(input.Description)
	event.Date = input.Date
	event.Time = input.Time
	event.Location = strings.TrimSpace(input.Location)
	event.EventType = input.EventType
	event.Capacity = input.Capacity
	if input.Status != "" {
		event.Status = input.Status
	}

	oldBlobID := ""
	if image != nil && imageHeader != nil {
		upload, err := s.blobStorage.Upload(ctx, image, imageHeader, "events")
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		oldBlobID = event.ImageBlobID
		event.ImageURL = upload.URL
		event.ImageBlobID = upload.PublicID
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}
	if oldBlobID != "" {
		if err := s.blobStorage.Delete(ctx, oldBlobID); err != nil {
			log.Printf("[EventService] failed to delete blob %s: %v", oldBlobID, err)
		}
	}
	return event, nil
}

// Delete removes an event with its registrations and image.
func (s *EventService) Delete(ctx context.Context, id uint) error {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.eventRepo.Delete(id); err != nil {
		return err
	}
	if event.ImageBlobID != "" {
		if err := s.blobStorage.Delete(ctx, event.ImageBlobID); err != nil {
			log.Printf("[EventService] failed to delete blob %s: %v", event.ImageBlobID, err)
		}
	}
	return nil
}

// Register signs the member up for an event. A cancelled registration is
// revived instead of creating a second row.
func (s *EventService) Register(memberID, eventID uint) (*entity.EventRegistration, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != entity.EventUpcoming {
		return nil, fmt.Errorf("%w: registration is closed for %s events", apperrors.ErrConflict, event.Status)
	}

	existing, err := s.eventRepo.GetRegistration(eventID, memberID)
	if err == nil {
		if existing.Status != entity.RegistrationCancelled {
			return nil, fmt.Errorf("%w: already registered", apperrors.ErrConflict)
		}
		if err := s.checkCapacity(event); err != nil {
			return nil, err
		}
		existing.Status = entity.RegistrationRegistered
		existing.RegisteredAt = time.Now()
		if err := s.eventRepo.UpdateRegistration(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if err := s.checkCapacity(event); err != nil {
		return nil, err
	}

	reg := &entity.EventRegistration{
		EventID:      eventID,
		MemberID:     memberID,
		Status:       entity.RegistrationRegistered,
		RegisteredAt: time.Now(),
	}
	if err := s.eventRepo.Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// CancelRegistration withdraws the member from an event.
func (s *EventService) CancelRegistration(memberID, eventID uint) error {
	reg, err := s.eventRepo.GetRegistration(eventID, memberID)
	if err != nil {
		return err
	}
	if reg.Status == entity.RegistrationCancelled {
		return fmt.Errorf("%w: registration already cancelled", apperrors.ErrConflict)
	}
	reg.Status = entity.RegistrationCancelled
	return s.eventRepo.UpdateRegistration(reg)
}

// ListRegistrations returns the attendee list for staff.
func (s *EventService) ListRegistrations(eventID uint) ([]entity.EventRegistration, error) {
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		return nil, err
	}
	return s.eventRepo.ListRegistrations(eventID)
}

func (s *EventService) checkCapacity(event *entity.Event) error {
	if event.Capacity == nil {
		return nil
	}
	active, err := s.eventRepo.CountActiveRegistrations(event.ID)
	if err != nil {
		return err
	}
	if active >= int64(*event.Capacity) {
		return fmt.Errorf("%w: event is full", apperrors.ErrConflict)
	}
	return nil
}

func validateEventInput(input EventInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if input.Date.IsZero() {
		return fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	switch input.EventType {
	case entity.EventPerformance, entity.EventPractice, entity.EventCharity,
		entity.EventCompetition, entity.EventOther:
	default:
		return fmt.Errorf("%w: unknown event type %q", apperrors.ErrValidation, input.EventType)
	}
	if input.Capacity != nil && *input.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", apperrors.ErrValidation)
	}
	if input.Status != "" {
		switch input.Status {
		case entity.EventUpcoming, entity.EventOngoing, entity.EventCompleted, entity.EventCancelled:
		default:
			return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, input.Status)
		}
	}
	return nil
}
