package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/choir-api/internal/domain/repository"
	"github.com/yourusername/choir-api/internal/handler/dto"
	"github.com/yourusername/choir-api/internal/handler/helper"
	"github.com/yourusername/choir-api/internal/middleware"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
	"github.com/yourusername/choir-api/internal/service"
)

// MemberHandler serves profile and roster endpoints.
type MemberHandler struct {
	memberService *service.MemberService
}

// NewMemberHandler creates a new member handler.
func NewMemberHandler(memberService *service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// UpdateProfile edits the logged-in member's profile.
// PUT /api/members/me
func (h *MemberHandler) UpdateProfile(c *gin.Context) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	member, err := h.memberService.UpdateProfile(memberID, service.ProfileUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Bio:       req.Bio,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// UpdateAvatar replaces the logged-in member's profile picture.
// PUT /api/members/me/avatar
func (h *MemberHandler) UpdateAvatar(c *gin.Context) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required", "error_type": "invalid_request"})
		return
	}
	defer file.Close()

	member, err := h.memberService.UpdateAvatar(c.Request.Context(), memberID, file, header)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// ChangePassword changes the logged-in member's password.
// PUT /api/members/me/password
func (h *MemberHandler) ChangePassword(c *gin.Context) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.memberService.ChangePassword(memberID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

// ListMembers returns the member roster with optional filters.
// GET /api/members?status=&role=&search=
func (h *MemberHandler) ListMembers(c *gin.Context) {
	limit, offset := helper.Pagination(c)
	filter := repository.MemberFilter{
		Status: c.Query("status"),
		Role:   c.Query("role"),
		Search: c.Query("search"),
	}

	members, total, err := h.memberService.List(filter, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(members, total, limit, offset))
}

// GetMember returns one member by ID.
// GET /api/members/:id
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	member, err := h.memberService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// SetRole changes a member's role. Admins cannot change their own role.
// PUT /api/members/:id/role
func (h *MemberHandler) SetRole(c *gin.Context) {
	actorID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	var req dto.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	member, err := h.memberService.SetRole(actorID, id, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// SetStatus changes a member's account status (activate/suspend).
// PUT /api/members/:id/status
func (h *MemberHandler) SetStatus(c *gin.Context) {
	actorID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	member, err := h.memberService.SetStatus(actorID, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// DeleteMember removes a member account. Self-deletion is rejected.
// DELETE /api/members/:id
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	actorID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	if err := h.memberService.Delete(actorID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
}
