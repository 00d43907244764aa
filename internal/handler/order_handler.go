package handler

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	"github.com/yourusername/choir-api/internal/handler/dto"
	"github.com/yourusername/choir-api/internal/handler/helper"
	"github.com/yourusername/choir-api/internal/middleware"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
	"github.com/yourusername/choir-api/internal/service"
)

// exportBatchLimit caps how many orders a single export pulls.
const exportBatchLimit = 10000

// OrderHandler serves merchandise order endpoints.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// PlaceOrder creates a pending order. Multipart request: an "items" field
// holding a JSON array of line items and a "receipt" file.
// POST /api/orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	itemsJSON := c.PostForm("items")
	if itemsJSON == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items field is required", "error_type": "invalid_request"})
		return
	}

	var itemReqs []dto.OrderItemRequest
	if err := json.Unmarshal([]byte(itemsJSON), &itemReqs); err != nil {
		respondBindError(c, err)
		return
	}

	items := make([]service.OrderItemInput, len(itemReqs))
	for i, item := range itemReqs {
		items[i] = service.OrderItemInput{
			MerchandiseID: item.MerchandiseID,
			Size:          item.Size,
			Quantity:      item.Quantity,
		}
	}

	receipt, receiptHeader, err := c.Request.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receipt file is required", "error_type": "invalid_request"})
		return
	}
	defer receipt.Close()

	order, err := h.orderService.PlaceOrder(c.Request.Context(), memberID, items, receipt, receiptHeader)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrder returns one order. Members see only their own orders.
// GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
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

	order, err := h.orderService.GetOrder(memberID, middleware.RoleFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListMyOrders returns the logged-in member's order history.
// GET /api/orders/my
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	limit, offset := helper.Pagination(c)
	orders, total, err := h.orderService.ListMyOrders(memberID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(orders, total, limit, offset))
}

// ListOrders returns all orders for review, filterable by status and
// creation window.
// GET /api/orders?status=&member_id=&from=&to=
func (h *OrderHandler) ListOrders(c *gin.Context) {
	limit, offset := helper.Pagination(c)
	filter := orderFilterFromQuery(c)

	orders, total, err := h.orderService.ListOrders(filter, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(orders, total, limit, offset))
}

// ConfirmOrder settles a pending order as confirmed.
// PUT /api/orders/:id/confirm
func (h *OrderHandler) ConfirmOrder(c *gin.Context) {
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

	order, err := h.orderService.ConfirmOrder(c.Request.Context(), reviewerID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeclineOrder settles a pending order as declined with a reason.
// PUT /api/orders/:id/decline
func (h *OrderHandler) DeclineOrder(c *gin.Context) {
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

	var req dto.DeclineOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.orderService.DeclineOrder(c.Request.Context(), reviewerID, id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// Stats returns order counts and confirmed revenue.
// GET /api/orders/stats
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.orderService.Stats()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportOrders downloads the order ledger as CSV or Excel.
// GET /api/orders/export?format=csv|xlsx&status=&from=&to=
func (h *OrderHandler) ExportOrders(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	filter := orderFilterFromQuery(c)

	orders, _, err := h.orderService.ListOrders(filter, exportBatchLimit, 0)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("orders_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, orders, filename)
	default:
		h.exportCSV(c, orders, filename)
	}
}

func (h *OrderHandler) exportCSV(c *gin.Context, orders []entity.Order, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM so Excel opens the UTF-8 file correctly.
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Order ID", "Member", "Items", "Total", "Status", "Decline Reason", "Verified At", "Created At"})

	for _, o := range orders {
		writer.Write([]string{
			strconv.FormatUint(uint64(o.ID), 10),
			sanitizeForExcel(orderMemberName(&o)),
			sanitizeForExcel(summarizeItems(o.Items)),
			formatCents(o.TotalAmount),
			o.Status,
			sanitizeForExcel(stringOrEmpty(o.DeclineReason)),
			formatTimePtr(o.VerifiedAt),
			o.CreatedAt.Format(time.RFC3339),
		})
	}
}

func (h *OrderHandler) exportXLSX(c *gin.Context, orders []entity.Order, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Orders"
	f.SetSheetName("Sheet1", sheetName)

	// StreamWriter keeps memory flat on large exports.
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[OrderHandler] Failed to create stream writer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file", "error_type": "internal_server_error"})
		return
	}

	headers := []interface{}{"Order ID", "Member", "Items", "Total", "Status", "Decline Reason", "Verified At", "Created At"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[OrderHandler] Failed to write header row: %v", err)
	}

	for i, o := range orders {
		rowNum := i + 2
		cell := fmt.Sprintf("A%d", rowNum)

		row := []interface{}{
			o.ID,
			sanitizeForExcel(orderMemberName(&o)),
			sanitizeForExcel(summarizeItems(o.Items)),
			formatCents(o.TotalAmount),
			o.Status,
			sanitizeForExcel(stringOrEmpty(o.DeclineReason)),
			formatTimePtr(o.VerifiedAt),
			o.CreatedAt.Format(time.RFC3339),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[OrderHandler] Failed to write row %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[OrderHandler] Failed to flush stream writer: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[OrderHandler] Failed to write Excel response: %v", err)
	}
}

func orderFilterFromQuery(c *gin.Context) repository.OrderFilter {
	filter := repository.OrderFilter{Status: c.Query("status")}

	if memberID, err := strconv.ParseUint(c.Query("member_id"), 10, 32); err == nil {
		filter.MemberID = uint(memberID)
	}
	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		// Inclusive upper bound: the whole "to" day.
		end := to.Add(24 * time.Hour)
		filter.To = &end
	}
	return filter
}

func orderMemberName(o *entity.Order) string {
	if o.Member == nil {
		return strconv.FormatUint(uint64(o.MemberID), 10)
	}
	return o.Member.FirstName + " " + o.Member.LastName + " (" + o.Member.StudentID + ")"
}

func summarizeItems(items []entity.OrderItem) string {
	summary := ""
	for i, item := range items {
		if i > 0 {
			summary += "; "
		}
		summary += fmt.Sprintf("%s x%d", item.Name, item.Quantity)
		if item.Size != "" {
			summary += " (" + item.Size + ")"
		}
	}
	return summary
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// sanitizeForExcel guards exported cells against formula injection.
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
