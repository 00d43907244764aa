package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

const orderStatsCacheKey = "orders:stats"

// OrderItemInput is one requested line item.
type OrderItemInput struct {
	MerchandiseID uint   `json:"merchandise_id"`
	Size          string `json:"size"`
	Quantity      int    `json:"quantity"`
}

// OrderService implements the merchandise order flow: a member places an
// order with a payment receipt, a moderator confirms or declines it.
type OrderService struct {
	orderRepo   repository.OrderRepository
	merchRepo   repository.MerchandiseRepository
	memberRepo  repository.MemberRepository
	blobStorage BlobStorage
	emailSvc    EmailService
	cacheRepo   repository.CacheRepository
	workflow    *ReviewWorkflow
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	merchRepo repository.MerchandiseRepository,
	memberRepo repository.MemberRepository,
	blobStorage BlobStorage,
	emailSvc EmailService,
	cacheRepo repository.CacheRepository,
) (*OrderService, error) {
	if orderRepo == nil || merchRepo == nil || memberRepo == nil {
		return nil, fmt.Errorf("order, merchandise and member repositories are required")
	}
	if blobStorage == nil {
		return nil, fmt.Errorf("blob storage is required")
	}
	if emailSvc == nil {
		return nil, fmt.Errorf("email service is required")
	}

	workflow, err := NewReviewWorkflow(
		orderRepo.TransitionFromPending,
		func(id uint) (string, error) {
			order, err := orderRepo.GetByID(id)
			if err != nil {
				return "", err
			}
			return order.Status, nil
		},
	)
	if err != nil {
		return nil, err
	}

	return &OrderService{
		orderRepo:   orderRepo,
		merchRepo:   merchRepo,
		memberRepo:  memberRepo,
		blobStorage: blobStorage,
		emailSvc:    emailSvc,
		cacheRepo:   cacheRepo,
		workflow:    workflow,
	}, nil
}

// PlaceOrder reserves stock, stores the receipt and creates the pending
// order. Stock is taken up front so a declined payment cannot oversell.
func (s *OrderService) PlaceOrder(ctx context.Context, memberID uint, items []OrderItemInput,
	receipt multipart.File, receiptHeader *multipart.FileHeader) (*entity.Order, error) {

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", apperrors.ErrValidation)
	}
	if receipt == nil || receiptHeader == nil {
		return nil, fmt.Errorf("%w: payment receipt is required", apperrors.ErrValidation)
	}

	var lines []entity.OrderItem
	var total int64
	var reserved []OrderItemInput
	for _, item := range items {
		if item.Quantity <= 0 {
			s.restock(reserved)
			return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
		}

		merch, err := s.merchRepo.GetByID(item.MerchandiseID)
		if err != nil {
			s.restock(reserved)
			return nil, err
		}
		if !merch.IsAvailable() {
			s.restock(reserved)
			return nil, fmt.Errorf("%w: %s is not available", apperrors.ErrValidation, merch.Name)
		}
		if len(merch.SizeList()) > 0 && !merch.HasSize(item.Size) {
			s.restock(reserved)
			return nil, fmt.Errorf("%w: size %q is not offered for %s", apperrors.ErrValidation, item.Size, merch.Name)
		}

		if err := s.merchRepo.DecrementStock(merch.ID, item.Quantity); err != nil {
			s.restock(reserved)
			if errors.Is(err, apperrors.ErrConflict) {
				return nil, fmt.Errorf("%w: insufficient stock for %s", apperrors.ErrConflict, merch.Name)
			}
			return nil, err
		}
		reserved = append(reserved, item)

		lines = append(lines, entity.OrderItem{
			MerchandiseID: merch.ID,
			Name:          merch.Name,
			Size:          item.Size,
			Quantity:      item.Quantity,
			UnitPrice:     merch.Price,
		})
		total += merch.Price * int64(item.Quantity)
	}

	upload, err := s.blobStorage.Upload(ctx, receipt, receiptHeader, "receipts")
	if err != nil {
		s.restock(reserved)
		return nil, fmt.Errorf("failed to store receipt: %w", err)
	}

	order := &entity.Order{
		MemberID:      memberID,
		Items:         lines,
		TotalAmount:   total,
		ReceiptURL:    upload.URL,
		ReceiptBlobID: upload.PublicID,
		Status:        entity.OrderStatusPending,
	}
	if err := s.orderRepo.Create(order); err != nil {
		s.restock(reserved)
		s.deleteBlob(ctx, upload.PublicID)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.invalidateStats()
	return order, nil
}

// GetOrder returns an order visible to the caller: owners see their own,
// staff see all.
func (s *OrderService) GetOrder(memberID uint, role string, orderID uint) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.MemberID != memberID && role != entity.RoleModerator && role != entity.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}
	return order, nil
}

// ListMyOrders returns the member's own orders.
func (s *OrderService) ListMyOrders(memberID uint, limit, offset int) ([]entity.Order, int64, error) {
	return s.orderRepo.List(repository.OrderFilter{MemberID: memberID}, limit, offset)
}

// ListOrders returns orders matching the filter, for staff review.
func (s *OrderService) ListOrders(filter repository.OrderFilter, limit, offset int) ([]entity.Order, int64, error) {
	return s.orderRepo.List(filter, limit, offset)
}

// ConfirmOrder settles a pending order as paid.
func (s *OrderService) ConfirmOrder(ctx context.Context, reviewerID, orderID uint) (*entity.Order, error) {
	now := time.Now()
	err := s.workflow.Apply(orderID, entity.OrderStatusConfirmed, map[string]interface{}{
		"verified_by_id": reviewerID,
		"verified_at":    now,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats()
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	s.notifyStatus(ctx, order, "")
	return order, nil
}

// DeclineOrder settles a pending order as rejected and returns its stock.
func (s *OrderService) DeclineOrder(ctx context.Context, reviewerID, orderID uint, reason string) (*entity.Order, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: a decline reason is required", apperrors.ErrValidation)
	}

	now := time.Now()
	err := s.workflow.Apply(orderID, entity.OrderStatusDeclined, map[string]interface{}{
		"verified_by_id": reviewerID,
		"verified_at":    now,
		"decline_reason": reason,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats()
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		if err := s.merchRepo.IncrementStock(item.MerchandiseID, item.Quantity); err != nil {
			log.Printf("[OrderService] failed to restock merchandise=%d qty=%d: %v",
				item.MerchandiseID, item.Quantity, err)
		}
	}

	s.notifyStatus(ctx, order, reason)
	return order, nil
}

// Stats returns order counts and confirmed revenue, cached for a minute.
func (s *OrderService) Stats() (*repository.OrderStats, error) {
	if s.cacheRepo != nil {
		var cached repository.OrderStats
		if err := s.cacheRepo.GetJSON(orderStatsCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	stats, err := s.orderRepo.Stats()
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(orderStatsCacheKey, stats, time.Minute); err != nil {
			log.Printf("[OrderService] failed to cache stats: %v", err)
		}
	}
	return stats, nil
}

func (s *OrderService) restock(items []OrderItemInput) {
	for _, item := range items {
		if err := s.merchRepo.IncrementStock(item.MerchandiseID, item.Quantity); err != nil {
			log.Printf("[OrderService] failed to restock merchandise=%d qty=%d: %v",
				item.MerchandiseID, item.Quantity, err)
		}
	}
}

func (s *OrderService) deleteBlob(ctx context.Context, publicID string) {
	if err := s.blobStorage.Delete(ctx, publicID); err != nil {
		log.Printf("[OrderService] failed to delete blob %s: %v", publicID, err)
	}
}

func (s *OrderService) notifyStatus(ctx context.Context, order *entity.Order, reason string) {
	member, err := s.memberRepo.GetByID(order.MemberID)
	if err != nil {
		log.Printf("[OrderService] failed to load member=%d for notification: %v", order.MemberID, err)
		return
	}
	if err := s.emailSvc.SendOrderStatusUpdate(ctx, member.Email, order.Status, reason); err != nil {
		log.Printf("[OrderService] failed to notify member=%d about order=%d: %v",
			member.ID, order.ID, err)
	}
}

func (s *OrderService) invalidateStats() {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(orderStatsCacheKey); err != nil {
		log.Printf("[OrderService] failed to invalidate stats cache: %v", err)
	}
}
