package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/choir-api/internal/domain/entity"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// ScheduleRepo implements repository.ScheduleRepository on top of gorm.
type ScheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo creates a new practice schedule repository.
func NewScheduleRepo(db *gorm.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

// Create inserts a new practice session.
func (r *ScheduleRepo) Create(schedule *entity.PracticeSchedule) error {
	return r.db.Create(schedule).Error
}

// GetByID returns a practice session by ID.
func (r *ScheduleRepo) GetByID(id uint) (*entity.PracticeSchedule, error) {
	var schedule entity.PracticeSchedule
	err := r.db.First(&schedule, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &schedule, nil
}

// List returns sessions in the date window, soonest first, with total count.
func (r *ScheduleRepo) List(status string, from, to *time.Time, limit, offset int) ([]entity.PracticeSchedule, int64, error) {
	var schedules []entity.PracticeSchedule
	var total int64

	query := r.db.Model(&entity.PracticeSchedule{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date < ?", *to)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("date ASC, start_time ASC").
		Limit(limit).
		Offset(offset).
		Find(&schedules).Error
	if err != nil {
		return nil, 0, err
	}
	return schedules, total, nil
}

// Update saves the whole session row.
func (r *ScheduleRepo) Update(schedule *entity.PracticeSchedule) error {
	return r.db.Save(schedule).Error
}

// Delete removes a session row.
func (r *ScheduleRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.PracticeSchedule{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
