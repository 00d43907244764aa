package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
)

// ============================================================================
// Shared mocks for service tests
// ============================================================================

// MockMemberRepository implements repository.MemberRepository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(member *entity.Member) error {
	args := m.Called(member)
	return args.Error(0)
}

func (m *MockMemberRepository) GetByID(id uint) (*entity.Member, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Member), args.Error(1)
}

func (m *MockMemberRepository) GetByStudentID(studentID string) (*entity.Member, error) {
	args := m.Called(studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Member), args.Error(1)
}

func (m *MockMemberRepository) GetByEmail(email string) (*entity.Member, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Member), args.Error(1)
}

func (m *MockMemberRepository) Update(member *entity.Member) error {
	args := m.Called(member)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdateProfile(memberID uint, updates map[string]interface{}) error {
	args := m.Called(memberID, updates)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdatePassword(memberID uint, newPassword string) error {
	args := m.Called(memberID, newPassword)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdateLastLogin(memberID uint) error {
	args := m.Called(memberID)
	return args.Error(0)
}

func (m *MockMemberRepository) SetVerificationChallenge(memberID uint, codeHash, salt string, expiresAt time.Time) error {
	args := m.Called(memberID, codeHash, salt, expiresAt)
	return args.Error(0)
}

func (m *MockMemberRepository) ClearVerificationChallenge(memberID uint) error {
	args := m.Called(memberID)
	return args.Error(0)
}

func (m *MockMemberRepository) DiscardVerificationChallenge(memberID uint) error {
	args := m.Called(memberID)
	return args.Error(0)
}

func (m *MockMemberRepository) List(filter repository.MemberFilter, limit, offset int) ([]entity.Member, int64, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Member), args.Get(1).(int64), args.Error(2)
}

func (m *MockMemberRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockMemberRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderRepository implements repository.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(order *entity.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(id uint) (*entity.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) List(filter repository.OrderFilter, limit, offset int) ([]entity.Order, int64, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) TransitionFromPending(id uint, toStatus string, updates map[string]interface{}) (bool, error) {
	args := m.Called(id, toStatus, updates)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Stats() (*repository.OrderStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.OrderStats), args.Error(1)
}

// MockMerchandiseRepository implements repository.MerchandiseRepository
type MockMerchandiseRepository struct {
	mock.Mock
}

func (m *MockMerchandiseRepository) Create(item *entity.Merchandise) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockMerchandiseRepository) GetByID(id uint) (*entity.Merchandise, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Merchandise), args.Error(1)
}

func (m *MockMerchandiseRepository) List(category, status string, limit, offset int) ([]entity.Merchandise, int64, error) {
	args := m.Called(category, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Merchandise), args.Get(1).(int64), args.Error(2)
}

func (m *MockMerchandiseRepository) Update(item *entity.Merchandise) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockMerchandiseRepository) DecrementStock(id uint, quantity int) error {
	args := m.Called(id, quantity)
	return args.Error(0)
}

func (m *MockMerchandiseRepository) IncrementStock(id uint, quantity int) error {
	args := m.Called(id, quantity)
	return args.Error(0)
}

func (m *MockMerchandiseRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockResourceRepository implements repository.ResourceRepository
type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) Create(resource *entity.Resource) error {
	args := m.Called(resource)
	return args.Error(0)
}

func (m *MockResourceRepository) GetByID(id uint) (*entity.Resource, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Resource), args.Error(1)
}

func (m *MockResourceRepository) List(filter repository.ResourceFilter, limit, offset int) ([]entity.Resource, int64, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Resource), args.Get(1).(int64), args.Error(2)
}

func (m *MockResourceRepository) Update(resource *entity.Resource) error {
	args := m.Called(resource)
	return args.Error(0)
}

func (m *MockResourceRepository) IncrementDownloads(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockResourceRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockResourceRequestRepository implements repository.ResourceRequestRepository
type MockResourceRequestRepository struct {
	mock.Mock
}

func (m *MockResourceRequestRepository) Create(request *entity.ResourceRequest) error {
	args := m.Called(request)
	return args.Error(0)
}

func (m *MockResourceRequestRepository) GetByID(id uint) (*entity.ResourceRequest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ResourceRequest), args.Error(1)
}

func (m *MockResourceRequestRepository) ListByMember(memberID uint, limit, offset int) ([]entity.ResourceRequest, int64, error) {
	args := m.Called(memberID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.ResourceRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockResourceRequestRepository) ListByStatus(status string, limit, offset int) ([]entity.ResourceRequest, int64, error) {
	args := m.Called(status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.ResourceRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockResourceRequestRepository) TransitionFromPending(id uint, toStatus string, updates map[string]interface{}) (bool, error) {
	args := m.Called(id, toStatus, updates)
	return args.Bool(0), args.Error(1)
}

func (m *MockResourceRequestRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockCacheRepository implements repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) Increment(key string) (int64, error) {
	args := m.Called(key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) ExpireAt(key string, expiration time.Time) error {
	args := m.Called(key, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) SetNX(key string, value interface{}, expiration time.Duration) (bool, error) {
	args := m.Called(key, value, expiration)
	return args.Bool(0), args.Error(1)
}

// MockEmailService implements EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendVerificationCode(ctx context.Context, toEmail, code, idempotencyKey string) error {
	args := m.Called(ctx, toEmail, code, idempotencyKey)
	return args.Error(0)
}

func (m *MockEmailService) SendPasswordReset(ctx context.Context, toEmail, code, idempotencyKey string) error {
	args := m.Called(ctx, toEmail, code, idempotencyKey)
	return args.Error(0)
}

func (m *MockEmailService) SendOrderStatusUpdate(ctx context.Context, toEmail, status, reason string) error {
	args := m.Called(ctx, toEmail, status, reason)
	return args.Error(0)
}

// MockBlobStorage implements BlobStorage
type MockBlobStorage struct {
	mock.Mock
}

func (m *MockBlobStorage) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (*UploadResult, error) {
	args := m.Called(ctx, file, header, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UploadResult), args.Error(1)
}

func (m *MockBlobStorage) Delete(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}

// MockScheduleRepository implements repository.ScheduleRepository
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) Create(schedule *entity.PracticeSchedule) error {
	args := m.Called(schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) GetByID(id uint) (*entity.PracticeSchedule, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PracticeSchedule), args.Error(1)
}

func (m *MockScheduleRepository) List(status string, from, to *time.Time, limit, offset int) ([]entity.PracticeSchedule, int64, error) {
	args := m.Called(status, from, to, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.PracticeSchedule), args.Get(1).(int64), args.Error(2)
}

func (m *MockScheduleRepository) Update(schedule *entity.PracticeSchedule) error {
	args := m.Called(schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockDonationRepository implements repository.DonationRepository
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) Create(donation *entity.Donation) error {
	args := m.Called(donation)
	return args.Error(0)
}

func (m *MockDonationRepository) GetByID(id uint) (*entity.Donation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Donation), args.Error(1)
}

func (m *MockDonationRepository) GetByTransactionID(transactionID string) (*entity.Donation, error) {
	args := m.Called(transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Donation), args.Error(1)
}

func (m *MockDonationRepository) List(status string, limit, offset int) ([]entity.Donation, int64, error) {
	args := m.Called(status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Donation), args.Get(1).(int64), args.Error(2)
}

func (m *MockDonationRepository) ListByMember(memberID uint, limit, offset int) ([]entity.Donation, int64, error) {
	args := m.Called(memberID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Donation), args.Get(1).(int64), args.Error(2)
}

func (m *MockDonationRepository) UpdateStatus(id uint, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockDonationRepository) Stats() (*repository.DonationStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DonationStats), args.Error(1)
}

func (m *MockDonationRepository) RecentPublic(limit int) ([]entity.Donation, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Donation), args.Error(1)
}

// MockEventRepository implements repository.EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(event *entity.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(id uint) (*entity.Event, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Event), args.Error(1)
}

func (m *MockEventRepository) List(filter repository.EventFilter, limit, offset int) ([]entity.Event, int64, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Event), args.Get(1).(int64), args.Error(2)
}

func (m *MockEventRepository) Update(event *entity.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockEventRepository) Register(reg *entity.EventRegistration) error {
	args := m.Called(reg)
	return args.Error(0)
}

func (m *MockEventRepository) GetRegistration(eventID, memberID uint) (*entity.EventRegistration, error) {
	args := m.Called(eventID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.EventRegistration), args.Error(1)
}

func (m *MockEventRepository) UpdateRegistration(reg *entity.EventRegistration) error {
	args := m.Called(reg)
	return args.Error(0)
}

func (m *MockEventRepository) ListRegistrations(eventID uint) ([]entity.EventRegistration, error) {
	args := m.Called(eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.EventRegistration), args.Error(1)
}

func (m *MockEventRepository) CountActiveRegistrations(eventID uint) (int64, error) {
	args := m.Called(eventID)
	return args.Get(0).(int64), args.Error(1)
}
