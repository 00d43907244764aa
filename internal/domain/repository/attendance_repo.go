package repository

import "github.com/yourusername/choir-api/internal/domain/entity"

// AttendanceSummary aggregates a member's attendance marks.
type AttendanceSummary struct {
	MemberID uint  `json:"member_id"`
	Present  int64 `json:"present"`
	Absent   int64 `json:"absent"`
	Excused  int64 `json:"excused"`
	Late     int64 `json:"late"`
}

// AttendanceRepository defines persistence operations for attendance records.
type AttendanceRepository interface {
	// Upsert creates the record or overwrites an existing mark for the same
	// member and event/session.
	Upsert(record *entity.Attendance) error
	GetByID(id uint) (*entity.Attendance, error)
	ListByEvent(eventID uint) ([]entity.Attendance, error)
	ListBySchedule(scheduleID uint) ([]entity.Attendance, error)
	ListByMember(memberID uint, limit, offset int) ([]entity.Attendance, int64, error)
	SummaryForMember(memberID uint) (*AttendanceSummary, error)
	Delete(id uint) error
}
