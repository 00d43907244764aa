package repository

import (
	"time"

	"github.com/yourusername/choir-api/internal/domain/entity"
)

// ScheduleRepository defines persistence operations for practice schedules.
type ScheduleRepository interface {
	Create(schedule *entity.PracticeSchedule) error
	GetByID(id uint) (*entity.PracticeSchedule, error)
	List(status string, from, to *time.Time, limit, offset int) ([]entity.PracticeSchedule, int64, error)
	Update(schedule *entity.PracticeSchedule) error
	Delete(id uint) error
}
