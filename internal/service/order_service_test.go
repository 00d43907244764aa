package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/choir-api/internal/domain/entity"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

func newOrderService(t *testing.T, orderRepo *MockOrderRepository, merchRepo *MockMerchandiseRepository,
	memberRepo *MockMemberRepository, blobStorage *MockBlobStorage, emailSvc *MockEmailService) *OrderService {

	svc, err := NewOrderService(orderRepo, merchRepo, memberRepo, blobStorage, emailSvc, nil)
	require.NoError(t, err)
	return svc
}

func TestOrderService_PlaceOrder_RequiresItemsAndReceipt(t *testing.T) {
	svc := newOrderService(t, new(MockOrderRepository), new(MockMerchandiseRepository),
		new(MockMemberRepository), new(MockBlobStorage), new(MockEmailService))

	_, err := svc.PlaceOrder(context.Background(), 1, nil, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.PlaceOrder(context.Background(), 1, []OrderItemInput{{MerchandiseID: 1, Quantity: 1}}, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestOrderService_ConfirmOrder_SetsReviewerAndNotifies(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	memberRepo := new(MockMemberRepository)
	emailSvc := new(MockEmailService)
	svc := newOrderService(t, orderRepo, new(MockMerchandiseRepository), memberRepo,
		new(MockBlobStorage), emailSvc)

	orderRepo.On("TransitionFromPending", uint(5), entity.OrderStatusConfirmed, mock.MatchedBy(func(updates map[string]interface{}) bool {
		return updates["verified_by_id"] == uint(9)
	})).Return(true, nil)
	orderRepo.On("GetByID", uint(5)).Return(&entity.Order{
		ID:       5,
		MemberID: 7,
		Status:   entity.OrderStatusConfirmed,
	}, nil)
	memberRepo.On("GetByID", uint(7)).Return(&entity.Member{ID: 7, Email: "cs12345678@my.sliit.lk"}, nil)
	emailSvc.On("SendOrderStatusUpdate", mock.Anything, "cs12345678@my.sliit.lk",
		entity.OrderStatusConfirmed, "").Return(nil)

	order, err := svc.ConfirmOrder(context.Background(), 9, 5)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, order.Status)
	orderRepo.AssertExpectations(t)
	emailSvc.AssertExpectations(t)
}

func TestOrderService_ConfirmOrder_AlreadySettled(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	svc := newOrderService(t, orderRepo, new(MockMerchandiseRepository), new(MockMemberRepository),
		new(MockBlobStorage), new(MockEmailService))

	orderRepo.On("TransitionFromPending", uint(5), entity.OrderStatusConfirmed, mock.Anything).Return(false, nil)
	orderRepo.On("GetByID", uint(5)).Return(&entity.Order{ID: 5, Status: entity.OrderStatusDeclined}, nil)

	_, err := svc.ConfirmOrder(context.Background(), 9, 5)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "already declined")
}

func TestOrderService_DeclineOrder_RequiresReason(t *testing.T) {
	svc := newOrderService(t, new(MockOrderRepository), new(MockMerchandiseRepository),
		new(MockMemberRepository), new(MockBlobStorage), new(MockEmailService))

	_, err := svc.DeclineOrder(context.Background(), 9, 5, "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestOrderService_DeclineOrder_RestocksItems(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	merchRepo := new(MockMerchandiseRepository)
	memberRepo := new(MockMemberRepository)
	emailSvc := new(MockEmailService)
	svc := newOrderService(t, orderRepo, merchRepo, memberRepo, new(MockBlobStorage), emailSvc)

	orderRepo.On("TransitionFromPending", uint(5), entity.OrderStatusDeclined, mock.MatchedBy(func(updates map[string]interface{}) bool {
		return updates["decline_reason"] == "receipt does not match total"
	})).Return(true, nil)
	orderRepo.On("GetByID", uint(5)).Return(&entity.Order{
		ID:       5,
		MemberID: 7,
		Status:   entity.OrderStatusDeclined,
		Items: []entity.OrderItem{
			{MerchandiseID: 2, Quantity: 3},
			{MerchandiseID: 4, Quantity: 1},
		},
	}, nil)
	merchRepo.On("IncrementStock", uint(2), 3).Return(nil)
	merchRepo.On("IncrementStock", uint(4), 1).Return(nil)
	memberRepo.On("GetByID", uint(7)).Return(&entity.Member{ID: 7, Email: "cs12345678@my.sliit.lk"}, nil)
	emailSvc.On("SendOrderStatusUpdate", mock.Anything, "cs12345678@my.sliit.lk",
		entity.OrderStatusDeclined, "receipt does not match total").Return(nil)

	_, err := svc.DeclineOrder(context.Background(), 9, 5, "receipt does not match total")
	require.NoError(t, err)
	merchRepo.AssertExpectations(t)
}

func TestOrderService_GetOrder_OwnerAndStaffOnly(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	svc := newOrderService(t, orderRepo, new(MockMerchandiseRepository), new(MockMemberRepository),
		new(MockBlobStorage), new(MockEmailService))

	orderRepo.On("GetByID", uint(5)).Return(&entity.Order{ID: 5, MemberID: 7}, nil)

	_, err := svc.GetOrder(7, entity.RoleMember, 5)
	assert.NoError(t, err)

	_, err = svc.GetOrder(8, entity.RoleMember, 5)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.GetOrder(8, entity.RoleModerator, 5)
	assert.NoError(t, err)
}
