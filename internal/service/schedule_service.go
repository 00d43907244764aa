package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

var (
	timeOfDayPattern   = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	lectureHallPattern = regexp.MustCompile(`^[A-Z]\d{3,4}$`)
)

// ScheduleInput carries practice session fields for create and update.
type ScheduleInput struct {
	Title       string
	Description *string
	Date        time.Time
	StartTime   string
	EndTime     string
	LectureHall string
	Status      string
	Notes       *string
}

// ScheduleService manages practice sessions.
type ScheduleService struct {
	scheduleRepo repository.ScheduleRepository
}

// NewScheduleService creates a new schedule service.
func NewScheduleService(scheduleRepo repository.ScheduleRepository) (*ScheduleService, error) {
	if scheduleRepo == nil {
		return nil, fmt.Errorf("schedule repository is required")
	}
	return &ScheduleService{scheduleRepo: scheduleRepo}, nil
}

// Create adds a practice session.
func (s *ScheduleService) Create(creatorID uint, input ScheduleInput) (*entity.PracticeSchedule, error) {
	if err := validateScheduleInput(&input); err != nil {
		return nil, err
	}

	schedule := &entity.PracticeSchedule{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		LectureHall: input.LectureHall,
		Status:      entity.EventUpcoming,
		Notes:       input.Notes,
		CreatedByID: creatorID,
	}
	if input.Status != "" {
		schedule.Status = input.Status
	}

	if err := s.scheduleRepo.Create(schedule); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	return schedule, nil
}

// Get returns a practice session.
func (s *ScheduleService) Get(id uint) (*entity.PracticeSchedule, error) {
	return s.scheduleRepo.GetByID(id)
}

// List returns sessions in the date window.
func (s *ScheduleService) List(status string, from, to *time.Time, limit, offset int) ([]entity.PracticeSchedule, int64, error) {
	return s.scheduleRepo.List(status, from, to, limit, offset)
}

// Update overwrites a session's editable fields.
func (s *ScheduleService) Update(id uint, input ScheduleInput) (*entity.PracticeSchedule, error) {
	if err := validateScheduleInput(&input); err != nil {
		return nil, err
	}

	schedule, err := s.scheduleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	schedule.Title = strings.TrimSpace(input.Title)
	schedule.Description = input.Description
	schedule.Date = input.Date
	schedule.StartTime = input.StartTime
	schedule.EndTime = input.EndTime
	schedule.LectureHall = input.LectureHall
	schedule.Notes = input.Notes
	if input.Status != "" {
		schedule.Status = input.Status
	}

	if err := s.scheduleRepo.Update(schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// Delete removes a session.
func (s *ScheduleService) Delete(id uint) error {
	return s.scheduleRepo.Delete(id)
}

func validateScheduleInput(input *ScheduleInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if input.Date.IsZero() {
		return fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if !timeOfDayPattern.MatchString(input.StartTime) || !timeOfDayPattern.MatchString(input.EndTime) {
		return fmt.Errorf("%w: start and end time must be HH:MM", apperrors.ErrValidation)
	}
	if input.StartTime >= input.EndTime {
		return fmt.Errorf("%w: start time must be before end time", apperrors.ErrValidation)
	}

	input.LectureHall = strings.ToUpper(strings.TrimSpace(input.LectureHall))
	if !lectureHallPattern.MatchString(input.LectureHall) {
		return fmt.Errorf("%w: lecture hall must be a letter followed by 3-4 digits, e.g. B501", apperrors.ErrValidation)
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
