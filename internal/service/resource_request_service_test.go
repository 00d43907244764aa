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

func newRequestService(t *testing.T, requestRepo *MockResourceRequestRepository,
	resourceRepo *MockResourceRepository, blobStorage *MockBlobStorage) *ResourceRequestService {

	svc, err := NewResourceRequestService(requestRepo, resourceRepo, blobStorage)
	require.NoError(t, err)
	return svc
}

func TestResourceRequestService_Submit_LinkType(t *testing.T) {
	requestRepo := new(MockResourceRequestRepository)
	svc := newRequestService(t, requestRepo, new(MockResourceRepository), new(MockBlobStorage))

	requestRepo.On("Create", mock.AnythingOfType("*entity.ResourceRequest")).Return(nil)

	request, err := svc.Submit(context.Background(), 7, ResourceRequestInput{
		SongTitle:    "Bohemian Rhapsody",
		ResourceType: entity.ResourceYouTubeLink,
		LinkURL:      "https://youtube.com/watch?v=abc",
	}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, entity.RequestStatusPending, request.Status)
	assert.Equal(t, uint(7), request.RequestedByID)
	assert.Equal(t, "https://youtube.com/watch?v=abc", request.FileURL)
	assert.Nil(t, request.BlobPublicID)
}

func TestResourceRequestService_Submit_RejectsBadInput(t *testing.T) {
	svc := newRequestService(t, new(MockResourceRequestRepository),
		new(MockResourceRepository), new(MockBlobStorage))

	_, err := svc.Submit(context.Background(), 7, ResourceRequestInput{
		ResourceType: entity.ResourceYouTubeLink,
		LinkURL:      "https://youtube.com/watch?v=abc",
	}, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "missing title")

	_, err = svc.Submit(context.Background(), 7, ResourceRequestInput{
		SongTitle:    "Song",
		ResourceType: "powerpoint",
	}, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "unknown type")

	_, err = svc.Submit(context.Background(), 7, ResourceRequestInput{
		SongTitle:    "Song",
		ResourceType: entity.ResourceGoogleDriveLink,
		LinkURL:      "http://insecure.example.com",
	}, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "non-https link")

	_, err = svc.Submit(context.Background(), 7, ResourceRequestInput{
		SongTitle:    "Song",
		ResourceType: entity.ResourceSheetMusic,
	}, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "file type without file")
}

func TestResourceRequestService_Approve_PublishesResource(t *testing.T) {
	requestRepo := new(MockResourceRequestRepository)
	resourceRepo := new(MockResourceRepository)
	svc := newRequestService(t, requestRepo, resourceRepo, new(MockBlobStorage))

	blobID := "sheet_music/abc123"
	fileType := "pdf"
	requestRepo.On("TransitionFromPending", uint(5), entity.RequestStatusApproved, mock.MatchedBy(func(updates map[string]interface{}) bool {
		return updates["reviewed_by_id"] == uint(9)
	})).Return(true, nil)
	requestRepo.On("GetByID", uint(5)).Return(&entity.ResourceRequest{
		ID:            5,
		SongTitle:     "Hallelujah",
		ResourceType:  entity.ResourceSheetMusic,
		FileURL:       "https://cdn.example.com/f.pdf",
		FileType:      &fileType,
		BlobPublicID:  &blobID,
		Visibility:    entity.VisibilityAllMembers,
		RequestedByID: 7,
		Status:        entity.RequestStatusApproved,
	}, nil)

	var created *entity.Resource
	resourceRepo.On("Create", mock.AnythingOfType("*entity.Resource")).
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*entity.Resource)
		}).
		Return(nil)

	resource, err := svc.Approve(context.Background(), 9, 5)
	require.NoError(t, err)

	// The requester owns the published resource and the blob carries over.
	assert.Equal(t, "Hallelujah", resource.SongTitle)
	assert.Equal(t, uint(7), created.UploadedByID)
	assert.Equal(t, entity.ResourceActive, created.Status)
	assert.Equal(t, &blobID, created.BlobPublicID)
}

func TestResourceRequestService_Approve_LostRace(t *testing.T) {
	requestRepo := new(MockResourceRequestRepository)
	resourceRepo := new(MockResourceRepository)
	svc := newRequestService(t, requestRepo, resourceRepo, new(MockBlobStorage))

	requestRepo.On("TransitionFromPending", uint(5), entity.RequestStatusApproved, mock.Anything).Return(false, nil)
	requestRepo.On("GetByID", uint(5)).Return(&entity.ResourceRequest{
		ID:     5,
		Status: entity.RequestStatusRejected,
	}, nil)

	_, err := svc.Approve(context.Background(), 9, 5)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "already rejected")
	resourceRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestResourceRequestService_Reject_DeletesBlobBestEffort(t *testing.T) {
	requestRepo := new(MockResourceRequestRepository)
	blobStorage := new(MockBlobStorage)
	svc := newRequestService(t, requestRepo, new(MockResourceRepository), blobStorage)

	blobID := "audio/xyz789"
	requestRepo.On("TransitionFromPending", uint(5), entity.RequestStatusRejected, mock.MatchedBy(func(updates map[string]interface{}) bool {
		return updates["rejection_reason"] == "duplicate of an existing resource"
	})).Return(true, nil)
	requestRepo.On("GetByID", uint(5)).Return(&entity.ResourceRequest{
		ID:           5,
		Status:       entity.RequestStatusRejected,
		BlobPublicID: &blobID,
	}, nil)
	// The blob store failing must not fail the rejection.
	blobStorage.On("Delete", mock.Anything, blobID).Return(assert.AnError)

	request, err := svc.Reject(context.Background(), 9, 5, "duplicate of an existing resource")
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusRejected, request.Status)
	blobStorage.AssertExpectations(t)
}

func TestResourceRequestService_Reject_RequiresReason(t *testing.T) {
	svc := newRequestService(t, new(MockResourceRequestRepository),
		new(MockResourceRepository), new(MockBlobStorage))

	_, err := svc.Reject(context.Background(), 9, 5, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestResourceRequestService_Cancel_OwnerOnlyWhilePending(t *testing.T) {
	requestRepo := new(MockResourceRequestRepository)
	svc := newRequestService(t, requestRepo, new(MockResourceRepository), new(MockBlobStorage))

	requestRepo.On("GetByID", uint(5)).Return(&entity.ResourceRequest{
		ID:            5,
		RequestedByID: 7,
		Status:        entity.RequestStatusPending,
	}, nil).Once()
	requestRepo.On("Delete", uint(5)).Return(nil)

	err := svc.Cancel(context.Background(), 7, 5)
	assert.NoError(t, err)

	requestRepo.On("GetByID", uint(5)).Return(&entity.ResourceRequest{
		ID:            5,
		RequestedByID: 7,
		Status:        entity.RequestStatusApproved,
	}, nil).Once()

	err = svc.Cancel(context.Background(), 7, 5)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	requestRepo.On("GetByID", uint(5)).Return(&entity.ResourceRequest{
		ID:            5,
		RequestedByID: 7,
		Status:        entity.RequestStatusPending,
	}, nil).Once()

	err = svc.Cancel(context.Background(), 8, 5)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
