package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// ResourceRequestInput carries a member's submission.
type ResourceRequestInput struct {
	SongTitle    string
	Description  string
	ResourceType string
	Visibility   string
	// LinkURL is set for google_drive_link and youtube_link submissions.
	LinkURL string
}

// ResourceRequestService implements the moderation flow for member-submitted
// resources: submit, approve (which publishes a Resource) or reject.
type ResourceRequestService struct {
	requestRepo  repository.ResourceRequestRepository
	resourceRepo repository.ResourceRepository
	blobStorage  BlobStorage
	workflow     *ReviewWorkflow
}

// NewResourceRequestService creates a new resource request service.
func NewResourceRequestService(
	requestRepo repository.ResourceRequestRepository,
	resourceRepo repository.ResourceRepository,
	blobStorage BlobStorage,
) (*ResourceRequestService, error) {
	if requestRepo == nil || resourceRepo == nil {
		return nil, fmt.Errorf("request and resource repositories are required")
	}
	if blobStorage == nil {
		return nil, fmt.Errorf("blob storage is required")
	}

	workflow, err := NewReviewWorkflow(
		requestRepo.TransitionFromPending,
		func(id uint) (string, error) {
			request, err := requestRepo.GetByID(id)
			if err != nil {
				return "", err
			}
			return request.Status, nil
		},
	)
	if err != nil {
		return nil, err
	}

	return &ResourceRequestService{
		requestRepo:  requestRepo,
		resourceRepo: resourceRepo,
		blobStorage:  blobStorage,
		workflow:     workflow,
	}, nil
}

// Submit validates and stores a new pending request. File-backed types need
// an uploaded file, link types a well-formed URL.
func (s *ResourceRequestService) Submit(ctx context.Context, memberID uint, input ResourceRequestInput,
	file multipart.File, fileHeader *multipart.FileHeader) (*entity.ResourceRequest, error) {

	if strings.TrimSpace(input.SongTitle) == "" {
		return nil, fmt.Errorf("%w: song title is required", apperrors.ErrValidation)
	}
	if !entity.IsFileResourceType(input.ResourceType) && !entity.IsLinkResourceType(input.ResourceType) {
		return nil, fmt.Errorf("%w: unknown resource type %q", apperrors.ErrValidation, input.ResourceType)
	}
	visibility := input.Visibility
	if visibility == "" {
		visibility = entity.VisibilityAllMembers
	}
	if visibility != entity.VisibilityAllMembers && visibility != entity.VisibilityStaffOnly {
		return nil, fmt.Errorf("%w: unknown visibility %q", apperrors.ErrValidation, visibility)
	}

	request := &entity.ResourceRequest{
		SongTitle:     strings.TrimSpace(input.SongTitle),
		Description:   strings.TrimSpace(input.Description),
		ResourceType:  input.ResourceType,
		Visibility:    visibility,
		RequestedByID: memberID,
		Status:        entity.RequestStatusPending,
	}

	if entity.IsLinkResourceType(input.ResourceType) {
		link := strings.TrimSpace(input.LinkURL)
		if !strings.HasPrefix(link, "https://") {
			return nil, fmt.Errorf("%w: link must be an https URL", apperrors.ErrValidation)
		}
		request.FileURL = link
	} else {
		if file == nil || fileHeader == nil {
			return nil, fmt.Errorf("%w: a file is required for %s", apperrors.ErrValidation, input.ResourceType)
		}
		upload, err := s.blobStorage.Upload(ctx, file, fileHeader, entity.BlobFolderFor(input.ResourceType))
		if err != nil {
			return nil, fmt.Errorf("failed to store file: %w", err)
		}
		request.FileURL = upload.URL
		request.BlobPublicID = &upload.PublicID
		if upload.Format != "" {
			format := upload.Format
			request.FileType = &format
		}
		size := upload.Bytes
		request.FileSize = &size
	}

	if err := s.requestRepo.Create(request); err != nil {
		if request.BlobPublicID != nil {
			s.deleteBlob(ctx, *request.BlobPublicID)
		}
		return nil, fmt.Errorf("failed to create resource request: %w", err)
	}
	return request, nil
}

// Get returns a request visible to the caller: owners see their own, staff
// see all.
func (s *ResourceRequestService) Get(memberID uint, role string, requestID uint) (*entity.ResourceRequest, error) {
	request, err := s.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if request.RequestedByID != memberID && role != entity.RoleModerator && role != entity.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}
	return request, nil
}

// ListMine returns the member's own requests.
func (s *ResourceRequestService) ListMine(memberID uint, limit, offset int) ([]entity.ResourceRequest, int64, error) {
	return s.requestRepo.ListByMember(memberID, limit, offset)
}

// ListByStatus returns the review queue for staff.
func (s *ResourceRequestService) ListByStatus(status string, limit, offset int) ([]entity.ResourceRequest, int64, error) {
	return s.requestRepo.ListByStatus(status, limit, offset)
}

// Approve settles a pending request and publishes the resource it carried.
// The requester becomes the resource owner.
func (s *ResourceRequestService) Approve(ctx context.Context, reviewerID, requestID uint) (*entity.Resource, error) {
	now := time.Now()
	err := s.workflow.Apply(requestID, entity.RequestStatusApproved, map[string]interface{}{
		"reviewed_by_id": reviewerID,
		"reviewed_at":    now,
	})
	if err != nil {
		return nil, err
	}

	request, err := s.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}

	resource := &entity.Resource{
		SongTitle:    request.SongTitle,
		Description:  request.Description,
		ResourceType: request.ResourceType,
		FileURL:      request.FileURL,
		FileType:     request.FileType,
		FileSize:     request.FileSize,
		BlobPublicID: request.BlobPublicID,
		Visibility:   request.Visibility,
		UploadedByID: request.RequestedByID,
		Status:       entity.ResourceActive,
	}
	if err := s.resourceRepo.Create(resource); err != nil {
		return nil, fmt.Errorf("request %d approved but resource creation failed: %w", requestID, err)
	}
	return resource, nil
}

// Reject settles a pending request with a reason. Any uploaded blob is
// removed best effort; the blob store failing must not undo the review.
func (s *ResourceRequestService) Reject(ctx context.Context, reviewerID, requestID uint, reason string) (*entity.ResourceRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", apperrors.ErrValidation)
	}

	now := time.Now()
	err := s.workflow.Apply(requestID, entity.RequestStatusRejected, map[string]interface{}{
		"reviewed_by_id":   reviewerID,
		"reviewed_at":      now,
		"rejection_reason": reason,
	})
	if err != nil {
		return nil, err
	}

	request, err := s.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if request.BlobPublicID != nil {
		s.deleteBlob(ctx, *request.BlobPublicID)
	}
	return request, nil
}

// Cancel lets a member withdraw their own request while it is still pending.
func (s *ResourceRequestService) Cancel(ctx context.Context, memberID, requestID uint) error {
	request, err := s.requestRepo.GetByID(requestID)
	if err != nil {
		return err
	}
	if request.RequestedByID != memberID {
		return apperrors.ErrForbidden
	}
	if !request.IsPending() {
		return fmt.Errorf("%w: already %s", apperrors.ErrConflict, request.Status)
	}

	if err := s.requestRepo.Delete(requestID); err != nil {
		return err
	}
	if request.BlobPublicID != nil {
		s.deleteBlob(ctx, *request.BlobPublicID)
	}
	return nil
}

func (s *ResourceRequestService) deleteBlob(ctx context.Context, publicID string) {
	if err := s.blobStorage.Delete(ctx, publicID); err != nil {
		log.Printf("[ResourceRequestService] failed to delete blob %s: %v", publicID, err)
	}
}
