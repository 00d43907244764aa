package entity

import "time"

// PracticeSchedule is a planned practice session in a lecture hall.
// Attendance for a session is tracked in the attendance table.
type PracticeSchedule struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description *string   `gorm:"size:1000" json:"description,omitempty"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	StartTime   string    `gorm:"size:10;not null" json:"start_time"` // "18:00"
	EndTime     string    `gorm:"size:10;not null" json:"end_time"`
	LectureHall string    `gorm:"size:20;not null" json:"lecture_hall"` // uppercased, e.g. "B501"
	Status      string    `gorm:"size:20;not null;default:'upcoming';index" json:"status"`
	Notes       *string   `gorm:"size:1000" json:"notes,omitempty"`
	CreatedByID uint      `gorm:"not null" json:"created_by_id"`
	CreatedBy   *Member   `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PracticeSchedule) TableName() string {
	return "practice_schedules"
}
