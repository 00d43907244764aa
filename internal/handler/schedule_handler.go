package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/choir-api/internal/handler/dto"
	"github.com/yourusername/choir-api/internal/handler/helper"
	"github.com/yourusername/choir-api/internal/middleware"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
	"github.com/yourusername/choir-api/internal/service"
)

// ScheduleHandler serves practice schedule endpoints.
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// List returns practice sessions with optional status/date filters.
// GET /api/schedules?status=&from=&to=
func (h *ScheduleHandler) List(c *gin.Context) {
	limit, offset := helper.Pagination(c)

	var from, to *time.Time
	if parsed, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		from = &parsed
	}
	if parsed, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		to = &parsed
	}

	schedules, total, err := h.scheduleService.List(c.Query("status"), from, to, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(schedules, total, limit, offset))
}

// Get returns one practice session.
// GET /api/schedules/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	schedule, err := h.scheduleService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// Create adds a practice session.
// POST /api/schedules
func (h *ScheduleHandler) Create(c *gin.Context) {
	creatorID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	input, err := scheduleInput(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	schedule, err := h.scheduleService.Create(creatorID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

// Update edits a practice session.
// PUT /api/schedules/:id
func (h *ScheduleHandler) Update(c *gin.Context) {
	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	input, err := scheduleInput(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	schedule, err := h.scheduleService.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// Delete removes a practice session.
// DELETE /api/schedules/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	if err := h.scheduleService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
}

func scheduleInput(req dto.ScheduleRequest) (service.ScheduleInput, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return service.ScheduleInput{}, err
	}

	return service.ScheduleInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		LectureHall: req.LectureHall,
		Status:      req.Status,
		Notes:       req.Notes,
	}, nil
}
