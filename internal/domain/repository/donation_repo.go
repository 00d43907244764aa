package repository

import "github.com/yourusername/choir-api/internal/domain/entity"

// DonationStats aggregates donation totals for the public page.
type DonationStats struct {
	TotalAmount int64 `json:"total_amount"` // cents, completed donations only
	TotalCount  int64 `json:"total_count"`
	DonorCount  int64 `json:"donor_count"` // distinct donor emails
}

// DonationRepository defines persistence operations for donations.
type DonationRepository interface {
	Create(donation *entity.Donation) error
	GetByID(id uint) (*entity.Donation, error)
	GetByTransactionID(transactionID string) (*entity.Donation, error)
	List(status string, limit, offset int) ([]entity.Donation, int64, error)
	ListByMember(memberID uint, limit, offset int) ([]entity.Donation, int64, error)
	UpdateStatus(id uint, status string) error
	Stats() (*DonationStats, error)
	// RecentPublic returns completed, non-anonymous donations for the
	// public donor wall.
	RecentPublic(limit int) ([]entity.Donation, error)
}
