package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/handler/dto"
	"github.com/yourusername/choir-api/internal/handler/helper"
	"github.com/yourusername/choir-api/internal/middleware"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
	"github.com/yourusername/choir-api/internal/service"
)

// ResourceRequestHandler serves the resource moderation flow.
type ResourceRequestHandler struct {
	requestService *service.ResourceRequestService
}

// NewResourceRequestHandler creates a new resource request handler.
func NewResourceRequestHandler(requestService *service.ResourceRequestService) *ResourceRequestHandler {
	return &ResourceRequestHandler{requestService: requestService}
}

// Submit proposes a new resource. Multipart form: the submission fields plus
// an optional "file" part for file-backed resource types.
// POST /api/resource-requests
func (h *ResourceRequestHandler) Submit(c *gin.Context) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	var req dto.ResourceRequestSubmission
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	file, fileHeader := optionalFormFile(c, "file")
	if file != nil {
		defer file.Close()
	}

	request, err := h.requestService.Submit(c.Request.Context(), memberID, service.ResourceRequestInput{
		SongTitle:    req.SongTitle,
		Description:  req.Description,
		ResourceType: req.ResourceType,
		Visibility:   req.Visibility,
		LinkURL:      req.LinkURL,
	}, file, fileHeader)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// Get returns one request. Members see only their own submissions.
// GET /api/resource-requests/:id
func (h *ResourceRequestHandler) Get(c *gin.Context) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	request, err := h.requestService.Get(memberID, middleware.RoleFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// ListMine returns the logged-in member's submissions.
// GET /api/resource-requests/my
func (h *ResourceRequestHandler) ListMine(c *gin.Context) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	limit, offset := helper.Pagination(c)
	requests, total, err := h.requestService.ListMine(memberID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(requests, total, limit, offset))
}

// ListByStatus returns the review queue, oldest first.
// GET /api/resource-requests?status=pending
func (h *ResourceRequestHandler) ListByStatus(c *gin.Context) {
	limit, offset := helper.Pagination(c)
	status := c.DefaultQuery("status", entity.RequestStatusPending)

	requests, total, err := h.requestService.ListByStatus(status, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(requests, total, limit, offset))
}

// Approve publishes a pending request as a library resource.
// PUT /api/resource-requests/:id/approve
func (h *ResourceRequestHandler) Approve(c *gin.Context) {
	reviewerID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	resource, err := h.requestService.Approve(c.Request.Context(), reviewerID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request approved", "resource": resource})
}

// Reject declines a pending request with a reason.
// PUT /api/resource-requests/:id/reject
func (h *ResourceRequestHandler) Reject(c *gin.Context) {
	reviewerID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	var req dto.RejectRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	request, err := h.requestService.Reject(c.Request.Context(), reviewerID, id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// Cancel withdraws the caller's own pending request.
// DELETE /api/resource-requests/:id
func (h *ResourceRequestHandler) Cancel(c *gin.Context) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	if err := h.requestService.Cancel(c.Request.Context(), memberID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request cancelled"})
}
