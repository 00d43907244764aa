package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/choir-api/internal/handler/dto"
	"github.com/yourusername/choir-api/internal/handler/helper"
	"github.com/yourusername/choir-api/internal/middleware"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
	"github.com/yourusername/choir-api/internal/service"
)

// MerchandiseHandler serves the merchandise catalog.
type MerchandiseHandler struct {
	merchService *service.MerchandiseService
}

// NewMerchandiseHandler creates a new merchandise handler.
func NewMerchandiseHandler(merchService *service.MerchandiseService) *MerchandiseHandler {
	return &MerchandiseHandler{merchService: merchService}
}

// List returns catalog items with optional category/status filters.
// GET /api/merchandise
func (h *MerchandiseHandler) List(c *gin.Context) {
	limit, offset := helper.Pagination(c)

	items, total, err := h.merchService.List(c.Query("category"), c.Query("status"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(items, total, limit, offset))
}

// Get returns one catalog item.
// GET /api/merchandise/:id
func (h *MerchandiseHandler) Get(c *gin.Context) {
	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	item, err := h.merchService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Create adds a catalog item, optionally with a product image.
// POST /api/merchandise (multipart)
func (h *MerchandiseHandler) Create(c *gin.Context) {
	creatorID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	var req dto.MerchandiseRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	image, imageHeader := optionalFormFile(c, "image")
	if image != nil {
		defer image.Close()
	}

	item, err := h.merchService.Create(c.Request.Context(), creatorID, merchandiseInput(req), image, imageHeader)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Update edits a catalog item, optionally replacing its image.
// PUT /api/merchandise/:id (multipart)
func (h *MerchandiseHandler) Update(c *gin.Context) {
	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	var req dto.MerchandiseRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	image, imageHeader := optionalFormFile(c, "image")
	if image != nil {
		defer image.Close()
	}

	item, err := h.merchService.Update(c.Request.Context(), id, merchandiseInput(req), image, imageHeader)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Delete removes a catalog item.
// DELETE /api/merchandise/:id
func (h *MerchandiseHandler) Delete(c *gin.Context) {
	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	if err := h.merchService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Merchandise deleted"})
}

func merchandiseInput(req dto.MerchandiseRequest) service.MerchandiseInput {
	return service.MerchandiseInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Sizes:       req.Sizes,
		Stock:       req.Stock,
		Category:    req.Category,
		Status:      req.Status,
	}
}

// optionalFormFile returns the named upload or nils when the part is absent.
func optionalFormFile(c *gin.Context, field string) (multipart.File, *multipart.FileHeader) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return file, header
}
