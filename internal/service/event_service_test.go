package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/choir-api/internal/domain/entity"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

func newEventService(t *testing.T, eventRepo *MockEventRepository) *EventService {
	svc, err := NewEventService(eventRepo, &NoopBlobStorage{})
	require.NoError(t, err)
	return svc
}

func TestEventService_Register_Succeeds(t *testing.T) {
	eventRepo := new(MockEventRepository)
	svc := newEventService(t, eventRepo)

	eventRepo.On("GetByID", uint(3)).Return(&entity.Event{
		ID:     3,
		Status: entity.EventUpcoming,
	}, nil)
	eventRepo.On("GetRegistration", uint(3), uint(7)).Return(nil, apperrors.ErrNotFound)
	eventRepo.On("Register", mock.AnythingOfType("*entity.EventRegistration")).Return(nil)

	reg, err := svc.Register(7, 3)
	require.NoError(t, err)
	assert.Equal(t, entity.RegistrationRegistered, reg.Status)
	assert.Equal(t, uint(3), reg.EventID)
	assert.Equal(t, uint(7), reg.MemberID)
}

func TestEventService_Register_ClosedForNonUpcoming(t *testing.T) {
	eventRepo := new(MockEventRepository)
	svc := newEventService(t, eventRepo)

	eventRepo.On("GetByID", uint(3)).Return(&entity.Event{
		ID:     3,
		Status: entity.EventCompleted,
	}, nil)

	_, err := svc.Register(7, 3)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestEventService_Register_RejectsDuplicate(t *testing.T) {
	eventRepo := new(MockEventRepository)
	svc := newEventService(t, eventRepo)

	eventRepo.On("GetByID", uint(3)).Return(&entity.Event{
		ID:     3,
		Status: entity.EventUpcoming,
	}, nil)
	eventRepo.On("GetRegistration", uint(3), uint(7)).Return(&entity.EventRegistration{
		EventID:  3,
		MemberID: 7,
		Status:   entity.RegistrationRegistered,
	}, nil)

	_, err := svc.Register(7, 3)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "already registered")
}

func TestEventService_Register_FullEvent(t *testing.T) {
	eventRepo := new(MockEventRepository)
	svc := newEventService(t, eventRepo)

	capacity := 40
	eventRepo.On("GetByID", uint(3)).Return(&entity.Event{
		ID:       3,
		Status:   entity.EventUpcoming,
		Capacity: &capacity,
	}, nil)
	eventRepo.On("GetRegistration", uint(3), uint(7)).Return(nil, apperrors.ErrNotFound)
	eventRepo.On("CountActiveRegistrations", uint(3)).Return(int64(40), nil)

	_, err := svc.Register(7, 3)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "event is full")
	eventRepo.AssertNotCalled(t, "Register", mock.Anything)
}

func TestEventService_Register_RevivesCancelledRegistration(t *testing.T) {
	eventRepo := new(MockEventRepository)
	svc := newEventService(t, eventRepo)

	eventRepo.On("GetByID", uint(3)).Return(&entity.Event{
		ID:     3,
		Status: entity.EventUpcoming,
	}, nil)
	eventRepo.On("GetRegistration", uint(3), uint(7)).Return(&entity.EventRegistration{
		ID:       11,
		EventID:  3,
		MemberID: 7,
		Status:   entity.RegistrationCancelled,
	}, nil)
	eventRepo.On("UpdateRegistration", mock.MatchedBy(func(reg *entity.EventRegistration) bool {
		return reg.ID == 11 && reg.Status == entity.RegistrationRegistered
	})).Return(nil)

	reg, err := svc.Register(7, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(11), reg.ID)
	eventRepo.AssertNotCalled(t, "Register", mock.Anything)
}

func TestEventService_CancelRegistration_AlreadyCancelled(t *testing.T) {
	eventRepo := new(MockEventRepository)
	svc := newEventService(t, eventRepo)

	eventRepo.On("GetRegistration", uint(3), uint(7)).Return(&entity.EventRegistration{
		EventID:  3,
		MemberID: 7,
		Status:   entity.RegistrationCancelled,
	}, nil)

	err := svc.CancelRegistration(7, 3)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}
