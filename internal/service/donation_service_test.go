package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/choir-api/internal/domain/entity"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

func TestDonationService_Create_DerivesTierAndTransactionID(t *testing.T) {
	donationRepo := new(MockDonationRepository)
	svc, err := NewDonationService(donationRepo, nil)
	require.NoError(t, err)

	donationRepo.On("Create", mock.AnythingOfType("*entity.Donation")).Return(nil)

	donation, err := svc.Create(DonationInput{
		DonorName:  "  Jane Perera ",
		DonorEmail: "Jane@Example.com",
		Amount:     15000,
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Perera", donation.DonorName)
	assert.Equal(t, "jane@example.com", donation.DonorEmail)
	assert.Equal(t, entity.TierPatron, donation.Tier)
	assert.Equal(t, "USD", donation.Currency)
	assert.Equal(t, entity.DonationPending, donation.Status)
	assert.NotEmpty(t, donation.TransactionID)
	assert.Nil(t, donation.MemberID)
}

func TestDonationService_Create_RejectsBadInput(t *testing.T) {
	svc, err := NewDonationService(new(MockDonationRepository), nil)
	require.NoError(t, err)

	_, err = svc.Create(DonationInput{DonorEmail: "a@b.c", Amount: 100})
	assert.ErrorIs(t, err, apperrors.ErrValidation, "missing name")

	_, err = svc.Create(DonationInput{DonorName: "Jane", DonorEmail: "nope", Amount: 100})
	assert.ErrorIs(t, err, apperrors.ErrValidation, "bad email")

	_, err = svc.Create(DonationInput{DonorName: "Jane", DonorEmail: "a@b.c", Amount: 0})
	assert.ErrorIs(t, err, apperrors.ErrValidation, "non-positive amount")

	_, err = svc.Create(DonationInput{DonorName: "Jane", DonorEmail: "a@b.c", Amount: 100, Currency: "EURO"})
	assert.ErrorIs(t, err, apperrors.ErrValidation, "bad currency")
}

func TestDonationService_Settle_IsIdempotent(t *testing.T) {
	donationRepo := new(MockDonationRepository)
	svc, err := NewDonationService(donationRepo, nil)
	require.NoError(t, err)

	donationRepo.On("GetByTransactionID", "txn-1").Return(&entity.Donation{
		ID:            4,
		TransactionID: "txn-1",
		Status:        entity.DonationCompleted,
	}, nil)

	donation, err := svc.Settle("txn-1", entity.DonationCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.DonationCompleted, donation.Status)
	donationRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestDonationService_Settle_UpdatesStatus(t *testing.T) {
	donationRepo := new(MockDonationRepository)
	svc, err := NewDonationService(donationRepo, nil)
	require.NoError(t, err)

	donationRepo.On("GetByTransactionID", "txn-2").Return(&entity.Donation{
		ID:            5,
		TransactionID: "txn-2",
		Status:        entity.DonationPending,
	}, nil)
	donationRepo.On("UpdateStatus", uint(5), entity.DonationCompleted).Return(nil)

	donation, err := svc.Settle("txn-2", entity.DonationCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.DonationCompleted, donation.Status)
	donationRepo.AssertExpectations(t)
}

func TestDonationService_Settle_RejectsUnknownStatus(t *testing.T) {
	svc, err := NewDonationService(new(MockDonationRepository), nil)
	require.NoError(t, err)

	_, err = svc.Settle("txn-3", "paid")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTierForAmount(t *testing.T) {
	assert.Equal(t, entity.TierSupporter, entity.TierForAmount(9999))
	assert.Equal(t, entity.TierPatron, entity.TierForAmount(10000))
	assert.Equal(t, entity.TierPatron, entity.TierForAmount(49999))
	assert.Equal(t, entity.TierBenefactor, entity.TierForAmount(50000))
}
