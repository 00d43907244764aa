package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// DonationRepo implements repository.DonationRepository on top of gorm.
type DonationRepo struct {
	db *gorm.DB
}

// NewDonationRepo creates a new donation repository.
func NewDonationRepo(db *gorm.DB) *DonationRepo {
	return &DonationRepo{db: db}
}

// Create inserts a new donation.
func (r *DonationRepo) Create(donation *entity.Donation) error {
	return r.db.Create(donation).Error
}

// GetByID returns a donation by ID.
func (r *DonationRepo) GetByID(id uint) (*entity.Donation, error) {
	var donation entity.Donation
	err := r.db.First(&donation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &donation, nil
}

// GetByTransactionID returns a donation by its transaction reference.
func (r *DonationRepo) GetByTransactionID(transactionID string) (*entity.Donation, error) {
	var donation entity.Donation
	err := r.db.Where("transaction_id = ?", transactionID).First(&donation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &donation, nil
}

// List returns donations, newest first, with total count.
func (r *DonationRepo) List(status string, limit, offset int) ([]entity.Donation, int64, error) {
	query := r.db.Model(&entity.Donation{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	return r.page(query, limit, offset)
}

// ListByMember returns donations linked to a member account.
func (r *DonationRepo) ListByMember(memberID uint, limit, offset int) ([]entity.Donation, int64, error) {
	query := r.db.Model(&entity.Donation{}).Where("member_id = ?", memberID)
	return r.page(query, limit, offset)
}

func (r *DonationRepo) page(query *gorm.DB, limit, offset int) ([]entity.Donation, int64, error) {
	var donations []entity.Donation
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&donations).Error
	if err != nil {
		return nil, 0, err
	}
	return donations, total, nil
}

// UpdateStatus moves a donation to a new payment status.
func (r *DonationRepo) UpdateStatus(id uint, status string) error {
	result := r.db.Model(&entity.Donation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Stats aggregates completed donation totals.
func (r *DonationRepo) Stats() (*repository.DonationStats, error) {
	stats := &repository.DonationStats{}

	completed := r.db.Model(&entity.Donation{}).Where("status = ?", entity.DonationCompleted)
	err := completed.Session(&gorm.Session{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalAmount).Error
	if err != nil {
		return nil, err
	}
	err = completed.Session(&gorm.Session{}).Count(&stats.TotalCount).Error
	if err != nil {
		return nil, err
	}
	err = completed.Session(&gorm.Session{}).
		Distinct("donor_email").
		Count(&stats.DonorCount).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RecentPublic returns the latest completed, non-anonymous donations.
func (r *DonationRepo) RecentPublic(limit int) ([]entity.Donation, error) {
	var donations []entity.Donation
	err := r.db.Where("status = ? AND is_anonymous = false", entity.DonationCompleted).
		Order("created_at DESC").
		Limit(limit).
		Find(&donations).Error
	return donations, err
}
