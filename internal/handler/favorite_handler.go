package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/choir-api/internal/handler/dto"
	"github.com/yourusername/choir-api/internal/handler/helper"
	"github.com/yourusername/choir-api/internal/middleware"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
	"github.com/yourusername/choir-api/internal/service"
)

// FavoriteHandler serves the member's saved-resources list.
type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Add saves a resource to the member's favorites.
// POST /api/resources/:id/favorite
func (h *FavoriteHandler) Add(c *gin.Context) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	resourceID, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	favorite, err := h.favoriteService.Add(memberID, middleware.RoleFromContext(c), resourceID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, favorite)
}

// Remove drops a resource from the member's favorites.
// DELETE /api/resources/:id/favorite
func (h *FavoriteHandler) Remove(c *gin.Context) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	resourceID, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	if err := h.favoriteService.Remove(memberID, resourceID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
}

// List returns the member's favorites.
// GET /api/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	limit, offset := helper.Pagination(c)
	favorites, total, err := h.favoriteService.List(memberID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(favorites, total, limit, offset))
}

// Check reports whether a resource is in the member's favorites.
// GET /api/resources/:id/favorite
func (h *FavoriteHandler) Check(c *gin.Context) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	resourceID, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	isFavorite, err := h.favoriteService.IsFavorite(memberID, resourceID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_favorite": isFavorite})
}
