package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/choir-api/internal/domain/repository"
	"github.com/yourusername/choir-api/internal/handler/dto"
	"github.com/yourusername/choir-api/internal/handler/helper"
	"github.com/yourusername/choir-api/internal/middleware"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
	"github.com/yourusername/choir-api/internal/service"
)

// EventHandler serves event and registration endpoints.
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List returns events with optional type/status/date filters.
// GET /api/events?type=&status=&from=&to=
func (h *EventHandler) List(c *gin.Context) {
	limit, offset := helper.Pagination(c)
	filter := repository.EventFilter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
	}
	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		filter.To = &to
	}

	events, total, err := h.eventService.List(filter, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(events, total, limit, offset))
}

// Get returns one event.
// GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	event, err := h.eventService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Create adds an event, optionally with a banner image.
// POST /api/events (multipart)
func (h *EventHandler) Create(c *gin.Context) {
	creatorID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	var req dto.EventRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	input, err := eventInput(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	image, imageHeader := optionalFormFile(c, "image")
	if image != nil {
		defer image.Close()
	}

	event, err := h.eventService.Create(c.Request.Context(), creatorID, input, image, imageHeader)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// Update edits an event, optionally replacing its banner image.
// PUT /api/events/:id (multipart)
func (h *EventHandler) Update(c *gin.Context) {
	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	var req dto.EventRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	input, err := eventInput(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	image, imageHeader := optionalFormFile(c, "image")
	if image != nil {
		defer image.Close()
	}

	event, err := h.eventService.Update(c.Request.Context(), id, input, image, imageHeader)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Delete removes an event and its registrations.
// DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// Register signs the logged-in member up for an event.
// POST /api/events/:id/register
func (h *EventHandler) Register(c *gin.Context) {
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

	registration, err := h.eventService.Register(memberID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, registration)
}

// CancelRegistration withdraws the member's event registration.
// DELETE /api/events/:id/register
func (h *EventHandler) CancelRegistration(c *gin.Context) {
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

	if err := h.eventService.CancelRegistration(memberID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration cancelled"})
}

// ListRegistrations returns everyone registered for an event.
// GET /api/events/:id/registrations
func (h *EventHandler) ListRegistrations(c *gin.Context) {
	id, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	registrations, err := h.eventService.ListRegistrations(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, registrations)
}

func eventInput(req dto.EventRequest) (service.EventInput, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return service.EventInput{}, err
	}

	return service.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Time:        req.Time,
		Location:    req.Location,
		EventType:   req.EventType,
		Capacity:    req.Capacity,
		Status:      req.Status,
	}, nil
}
