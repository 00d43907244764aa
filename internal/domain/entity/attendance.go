package entity

import "time"

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceExcused = "excused"
	AttendanceLate    = "late"
)

// ValidAttendanceStatus reports whether s is a known attendance status.
func ValidAttendanceStatus(s string) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceExcused, AttendanceLate:
		return true
	}
	return false
}

// Attendance is a single attendance mark for a member at an event or a
// practice session. Exactly one of EventID/ScheduleID is set.
type Attendance struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	EventID    *uint   `gorm:"index:idx_attendance_event" json:"event_id,omitempty"`
	ScheduleID *uint   `gorm:"index:idx_attendance_schedule" json:"schedule_id,omitempty"`
	MemberID   uint    `gorm:"not null;index" json:"member_id"`
	Member     *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`

	Status     string    `gorm:"size:20;not null;default:'absent'" json:"status"`
	MarkedByID uint      `gorm:"not null" json:"marked_by_id"`
	MarkedBy   *Member   `gorm:"foreignKey:MarkedByID" json:"marked_by,omitempty"`
	MarkedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"marked_at"`
	Comments   *string   `gorm:"size:500" json:"comments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Attendance) TableName() string {
	return "attendance_records"
}
