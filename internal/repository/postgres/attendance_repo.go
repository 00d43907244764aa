package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// AttendanceRepo implements repository.AttendanceRepository on top of gorm.
type AttendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo creates a new attendance repository.
func NewAttendanceRepo(db *gorm.DB) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

// Upsert creates the mark or overwrites an existing one for the same member
// and event/session. Re-marking is how mistakes get corrected.
func (r *AttendanceRepo) Upsert(record *entity.Attendance) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&entity.Attendance{}).Where("member_id = ?", record.MemberID)
		if record.EventID != nil {
			query = query.Where("event_id = ?", *record.EventID)
		} else {
			query = query.Where("schedule_id = ?", *record.ScheduleID)
		}

		var existing entity.Attendance
		err := query.First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(record).Error
			}
			return err
		}

		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		return tx.Save(record).Error
	})
}

// GetByID returns a mark with member preloaded.
func (r *AttendanceRepo) GetByID(id uint) (*entity.Attendance, error) {
	var record entity.Attendance
	err := r.db.Preload("Member").First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// ListByEvent returns all marks for an event.
func (r *AttendanceRepo) ListByEvent(eventID uint) ([]entity.Attendance, error) {
	var records []entity.Attendance
	err := r.db.Preload("Member").
		Where("event_id = ?", eventID).
		Order("member_id").
		Find(&records).Error
	return records, err
}

// ListBySchedule returns all marks for a practice session.
func (r *AttendanceRepo) ListBySchedule(scheduleID uint) ([]entity.Attendance, error) {
	var records []entity.Attendance
	err := r.db.Preload("Member").
		Where("schedule_id = ?", scheduleID).
		Order("member_id").
		Find(&records).Error
	return records, err
}

// ListByMember returns a member's marks, newest first, with total count.
func (r *AttendanceRepo) ListByMember(memberID uint, limit, offset int) ([]entity.Attendance, int64, error) {
	var records []entity.Attendance
	var total int64

	query := r.db.Model(&entity.Attendance{}).Where("member_id = ?", memberID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("marked_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// SummaryForMember aggregates the member's marks per status.
func (r *AttendanceRepo) SummaryForMember(memberID uint) (*repository.AttendanceSummary, error) {
	summary := &repository.AttendanceSummary{MemberID: memberID}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	err := r.db.Model(&entity.Attendance{}).
		Select("status, COUNT(*) AS count").
		Where("member_id = ?", memberID).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		switch c.Status {
		case entity.AttendancePresent:
			summary.Present = c.Count
		case entity.AttendanceAbsent:
			summary.Absent = c.Count
		case entity.AttendanceExcused:
			summary.Excused = c.Count
		case entity.AttendanceLate:
			summary.Late = c.Count
		}
	}
	return summary, nil
}

// Delete removes a mark.
func (r *AttendanceRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Attendance{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
