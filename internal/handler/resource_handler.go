package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/choir-api/internal/domain/repository"
	"github.com/yourusername/choir-api/internal/handler/dto"
	"github.com/yourusername/choir-api/internal/handler/helper"
	"github.com/yourusername/choir-api/internal/middleware"
	"github.com/yourusername/choir-api/internal/service"
)

// ResourceHandler serves the published resource library.
type ResourceHandler struct {
	resourceService *service.ResourceService
}

// NewResourceHandler creates a new resource handler.
func NewResourceHandler(resourceService *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// List returns published resources visible to the caller's role.
// GET /api/resources?type=&visibility=&status=&search=
func (h *ResourceHandler) List(c *gin.Context) {
	limit, offset := helper.Pagination(c)
	filter := repository.ResourceFilter{
		Type:       c.Query("type"),
		Visibility: c.Query("visibility"),
		Status:     c.Query("status"),
		Search:     c.Query("search"),
	}

	resources, total, err := h.resourceService.List(middleware.RoleFromContext(c), filter, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(resources, total, limit, offset))
}

// Get returns one resource if the caller's role may see it.
// GET /api/resources/:id
func (h *ResourceHandler) Get(c *gin.Context) {
	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	resource, err := h.resourceService.Get(middleware.RoleFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resource)
}

// Download bumps the download counter and returns the file URL.
// POST /api/resources/:id/download
func (h *ResourceHandler) Download(c *gin.Context) {
	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	resource, err := h.resourceService.RecordDownload(middleware.RoleFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": resource.FileURL, "download_count": resource.DownloadCount})
}

// UpdateVisibility changes who can see a resource.
// PUT /api/resources/:id/visibility
func (h *ResourceHandler) UpdateVisibility(c *gin.Context) {
	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	var req dto.UpdateVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resource, err := h.resourceService.UpdateVisibility(id, req.Visibility)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resource)
}

// Archive hides a resource from the library without deleting its file.
// PUT /api/resources/:id/archive
func (h *ResourceHandler) Archive(c *gin.Context) {
	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	resource, err := h.resourceService.Archive(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resource)
}

// Delete removes a resource and its stored file.
// DELETE /api/resources/:id
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	if err := h.resourceService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resource deleted"})
}
