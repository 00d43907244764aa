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

// DonationHandler serves donation recording and the public donor wall.
type DonationHandler struct {
	donationService *service.DonationService
}

// NewDonationHandler creates a new donation handler.
func NewDonationHandler(donationService *service.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// Create records a contribution. Works for guests; an authenticated donor
// gets the donation linked to their account.
// POST /api/donations
func (h *DonationHandler) Create(c *gin.Context) {
	var req dto.DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	input := service.DonationInput{
		DonorName:     req.DonorName,
		DonorEmail:    req.DonorEmail,
		Amount:        req.Amount,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		Message:       req.Message,
		IsAnonymous:   req.IsAnonymous,
	}
	if memberID, ok := middleware.MemberIDFromContext(c); ok {
		input.MemberID = memberID
	}

	donation, err := h.donationService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, donation)
}

// Settle finalizes a donation's payment status by transaction ID.
// PUT /api/donations/settle
func (h *DonationHandler) Settle(c *gin.Context) {
	var req dto.SettleDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	donation, err := h.donationService.Settle(req.TransactionID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, donation)
}

// Get returns one donation.
// GET /api/donations/:id
func (h *DonationHandler) Get(c *gin.Context) {
	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	donation, err := h.donationService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, donation)
}

// List returns all donations, filterable by status.
// GET /api/donations?status=
func (h *DonationHandler) List(c *gin.Context) {
	limit, offset := helper.Pagination(c)

	donations, total, err := h.donationService.List(c.Query("status"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(donations, total, limit, offset))
}

// ListMine returns the logged-in member's donations.
// GET /api/donations/my
func (h *DonationHandler) ListMine(c *gin.Context) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	limit, offset := helper.Pagination(c)
	donations, total, err := h.donationService.ListMine(memberID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(donations, total, limit, offset))
}

// Stats returns aggregate donation figures for the public fundraising page.
// GET /api/donations/stats
func (h *DonationHandler) Stats(c *gin.Context) {
	stats, err := h.donationService.Stats()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// DonorWall returns recent public donations.
// GET /api/donations/wall?limit=
func (h *DonationHandler) DonorWall(c *gin.Context) {
	limit, _ := helper.Pagination(c)

	donations, err := h.donationService.DonorWall(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, donations)
}
