package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

const donationStatsCacheKey = "donations:stats"

// DonationInput carries a donation submission. MemberID is zero for
// anonymous visitors.
type DonationInput struct {
	DonorName     string
	DonorEmail    string
	Amount        int64
	Currency      string
	PaymentMethod string
	Message       string
	IsAnonymous   bool
	MemberID      uint
}

// DonationService records contributions and exposes public donation stats.
type DonationService struct {
	donationRepo repository.DonationRepository
	cacheRepo    repository.CacheRepository
}

// NewDonationService creates a new donation service.
func NewDonationService(donationRepo repository.DonationRepository, cacheRepo repository.CacheRepository) (*DonationService, error) {
	if donationRepo == nil {
		return nil, fmt.Errorf("donation repository is required")
	}
	return &DonationService{donationRepo: donationRepo, cacheRepo: cacheRepo}, nil
}

// Create records a pending donation with a generated transaction reference.
func (s *DonationService) Create(input DonationInput) (*entity.Donation, error) {
	if strings.TrimSpace(input.DonorName) == "" {
		return nil, fmt.Errorf("%w: donor name is required", apperrors.ErrValidation)
	}
	if !strings.Contains(input.DonorEmail, "@") {
		return nil, fmt.Errorf("%w: a valid donor email is required", apperrors.ErrValidation)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "USD"
	}
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: currency must be a 3-letter code", apperrors.ErrValidation)
	}

	donation := &entity.Donation{
		DonorName:     strings.TrimSpace(input.DonorName),
		DonorEmail:    strings.ToLower(strings.TrimSpace(input.DonorEmail)),
		Amount:        input.Amount,
		Currency:      currency,
		Tier:          entity.TierForAmount(input.Amount),
		PaymentMethod: input.PaymentMethod,
		TransactionID: uuid.NewString(),
		Status:        entity.DonationPending,
		Message:       strings.TrimSpace(input.Message),
		IsAnonymous:   input.IsAnonymous,
	}
	if donation.PaymentMethod == "" {
		donation.PaymentMethod = "credit_card"
	}
	if input.MemberID != 0 {
		memberID := input.MemberID
		donation.MemberID = &memberID
	}

	if err := s.donationRepo.Create(donation); err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}
	return donation, nil
}

// Settle moves a donation to a terminal payment status, keyed by the
// transaction reference the payment provider echoes back.
func (s *DonationService) Settle(transactionID, status string) (*entity.Donation, error) {
	switch status {
	case entity.DonationCompleted, entity.DonationFailed, entity.DonationRefunded:
	default:
		return nil, fmt.Errorf("%w: unknown donation status %q", apperrors.ErrValidation, status)
	}

	donation, err := s.donationRepo.GetByTransactionID(transactionID)
	if err != nil {
		return nil, err
	}
	if donation.Status == status {
		return donation, nil
	}

	if err := s.donationRepo.UpdateStatus(donation.ID, status); err != nil {
		return nil, err
	}
	donation.Status = status
	s.invalidateStats()
	return donation, nil
}

// Get returns a donation by ID.
func (s *DonationService) Get(id uint) (*entity.Donation, error) {
	return s.donationRepo.GetByID(id)
}

// List returns donations for staff.
func (s *DonationService) List(status string, limit, offset int) ([]entity.Donation, int64, error) {
	return s.donationRepo.List(status, limit, offset)
}

// ListMine returns donations linked to the member's account.
func (s *DonationService) ListMine(memberID uint, limit, offset int) ([]entity.Donation, int64, error) {
	return s.donationRepo.ListByMember(memberID, limit, offset)
}

// Stats returns completed donation totals, cached for five minutes.
func (s *DonationService) Stats() (*repository.DonationStats, error) {
	if s.cacheRepo != nil {
		var cached repository.DonationStats
		if err := s.cacheRepo.GetJSON(donationStatsCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	stats, err := s.donationRepo.Stats()
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(donationStatsCacheKey, stats, 5*time.Minute); err != nil {
			log.Printf("[DonationService] failed to cache stats: %v", err)
		}
	}
	return stats, nil
}

// DonorWall returns recent completed, non-anonymous donations.
func (s *DonationService) DonorWall(limit int) ([]entity.Donation, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.donationRepo.RecentPublic(limit)
}

func (s *DonationService) invalidateStats() {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(donationStatsCacheKey); err != nil {
		log.Printf("[DonationService] failed to invalidate stats cache: %v", err)
	}
}
