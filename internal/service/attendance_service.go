package service

import (
	"fmt"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// AttendanceMarkInput is one member's mark for an event or session.
type AttendanceMarkInput struct {
	MemberID uint    `json:"member_id"`
	Status   string  `json:"status"`
	Comments *string `json:"comments,omitempty"`
}

// AttendanceService records who showed up to events and practice sessions.
type AttendanceService struct {
	attendanceRepo repository.AttendanceRepository
	eventRepo      repository.EventRepository
	scheduleRepo   repository.ScheduleRepository
	memberRepo     repository.MemberRepository
}

// NewAttendanceService creates a new attendance service.
func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	eventRepo repository.EventRepository,
	scheduleRepo repository.ScheduleRepository,
	memberRepo repository.MemberRepository,
) (*AttendanceService, error) {
	if attendanceRepo == nil || eventRepo == nil || scheduleRepo == nil || memberRepo == nil {
		return nil, fmt.Errorf("attendance, event, schedule and member repositories are required")
	}
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		eventRepo:      eventRepo,
		scheduleRepo:   scheduleRepo,
		memberRepo:     memberRepo,
	}, nil
}

// MarkForEvent records marks for an event. Existing marks for the same
// members are overwritten.
func (s *AttendanceService) MarkForEvent(markerID, eventID uint, marks []AttendanceMarkInput) ([]entity.Attendance, error) {
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		return nil, err
	}
	return s.mark(markerID, &eventID, nil, marks)
}

// MarkForSchedule records marks for a practice session.
func (s *AttendanceService) MarkForSchedule(markerID, scheduleID uint, marks []AttendanceMarkInput) ([]entity.Attendance, error) {
	if _, err := s.scheduleRepo.GetByID(scheduleID); err != nil {
		return nil, err
	}
	return s.mark(markerID, nil, &scheduleID, marks)
}

func (s *AttendanceService) mark(markerID uint, eventID, scheduleID *uint, marks []AttendanceMarkInput) ([]entity.Attendance, error) {
	if len(marks) == 0 {
		return nil, fmt.Errorf("%w: at least one mark is required", apperrors.ErrValidation)
	}

	records := make([]entity.Attendance, 0, len(marks))
	for _, mark := range marks {
		if !entity.ValidAttendanceStatus(mark.Status) {
			return nil, fmt.Errorf("%w: unknown attendance status %q", apperrors.ErrValidation, mark.Status)
		}
		if _, err := s.memberRepo.GetByID(mark.MemberID); err != nil {
			return nil, fmt.Errorf("member %d: %w", mark.MemberID, err)
		}

		record := entity.Attendance{
			EventID:    eventID,
			ScheduleID: scheduleID,
			MemberID:   mark.MemberID,
			Status:     mark.Status,
			MarkedByID: markerID,
			Comments:   mark.Comments,
		}
		if err := s.attendanceRepo.Upsert(&record); err != nil {
			return nil, fmt.Errorf("failed to mark member %d: %w", mark.MemberID, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// ListForEvent returns the marks for an event.
func (s *AttendanceService) ListForEvent(eventID uint) ([]entity.Attendance, error) {
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListByEvent(eventID)
}

// ListForSchedule returns the marks for a practice session.
func (s *AttendanceService) ListForSchedule(scheduleID uint) ([]entity.Attendance, error) {
	if _, err := s.scheduleRepo.GetByID(scheduleID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListBySchedule(scheduleID)
}

// History returns a member's marks, newest first.
func (s *AttendanceService) History(memberID uint, limit, offset int) ([]entity.Attendance, int64, error) {
	return s.attendanceRepo.ListByMember(memberID, limit, offset)
}

// Summary aggregates a member's marks per status.
func (s *AttendanceService) Summary(memberID uint) (*repository.AttendanceSummary, error) {
	if _, err := s.memberRepo.GetByID(memberID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.SummaryForMember(memberID)
}
