package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/handler/dto"
	"github.com/yourusername/choir-api/internal/handler/helper"
	"github.com/yourusername/choir-api/internal/middleware"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
	"github.com/yourusername/choir-api/internal/service"
)

// AttendanceHandler serves attendance recording and reporting.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// MarkForEvent records the attendance sheet for an event. Existing marks
// for the listed members are overwritten.
// POST /api/events/:id/attendance
func (h *AttendanceHandler) MarkForEvent(c *gin.Context) {
	markerID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	eventID, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	marks, err := bindAttendanceSheet(c)
	if err != nil {
		return
	}

	records, err := h.attendanceService.MarkForEvent(markerID, eventID, marks)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// MarkForSchedule records the attendance sheet for a practice session.
// POST /api/schedules/:id/attendance
func (h *AttendanceHandler) MarkForSchedule(c *gin.Context) {
	markerID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	scheduleID, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	marks, err := bindAttendanceSheet(c)
	if err != nil {
		return
	}

	records, err := h.attendanceService.MarkForSchedule(markerID, scheduleID, marks)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// ListForEvent returns all marks for an event.
// GET /api/events/:id/attendance
func (h *AttendanceHandler) ListForEvent(c *gin.Context) {
	eventID, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	records, err := h.attendanceService.ListForEvent(eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// ListForSchedule returns all marks for a practice session.
// GET /api/schedules/:id/attendance
func (h *AttendanceHandler) ListForSchedule(c *gin.Context) {
	scheduleID, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	records, err := h.attendanceService.ListForSchedule(scheduleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// MyHistory returns the logged-in member's attendance history.
// GET /api/attendance/my
func (h *AttendanceHandler) MyHistory(c *gin.Context) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	limit, offset := helper.Pagination(c)
	records, total, err := h.attendanceService.History(memberID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(records, total, limit, offset))
}

// MySummary returns the logged-in member's attendance totals.
// GET /api/attendance/my/summary
func (h *AttendanceHandler) MySummary(c *gin.Context) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	summary, err := h.attendanceService.Summary(memberID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// MemberSummary returns another member's attendance totals.
// GET /api/attendance/members/:id/summary
func (h *AttendanceHandler) MemberSummary(c *gin.Context) {
	memberID, err := helper.UintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_request"})
		return
	}

	summary, err := h.attendanceService.Summary(memberID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Export downloads the attendance sheet of one event or practice session
// as CSV or Excel.
// GET /api/attendance/export?event_id=|schedule_id=&format=csv|xlsx
func (h *AttendanceHandler) Export(c *gin.Context) {
	var records []entity.Attendance
	var err error
	var filename string

	switch {
	case c.Query("event_id") != "":
		eventID, parseErr := strconv.ParseUint(c.Query("event_id"), 10, 32)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event_id", "error_type": "invalid_request"})
			return
		}
		records, err = h.attendanceService.ListForEvent(uint(eventID))
		filename = fmt.Sprintf("attendance_event_%d_%s", eventID, time.Now().Format("2006-01-02"))
	case c.Query("schedule_id") != "":
		scheduleID, parseErr := strconv.ParseUint(c.Query("schedule_id"), 10, 32)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule_id", "error_type": "invalid_request"})
			return
		}
		records, err = h.attendanceService.ListForSchedule(uint(scheduleID))
		filename = fmt.Sprintf("attendance_schedule_%d_%s", scheduleID, time.Now().Format("2006-01-02"))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_id or schedule_id is required", "error_type": "invalid_request"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		h.exportXLSX(c, records, filename)
	default:
		h.exportCSV(c, records, filename)
	}
}

var attendanceExportHeaders = []string{"Member", "Student ID", "Status", "Comments", "Marked At"}

func (h *AttendanceHandler) exportCSV(c *gin.Context, records []entity.Attendance, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM so Excel opens the UTF-8 file correctly.
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(attendanceExportHeaders)
	for i := range records {
		writer.Write(attendanceExportRow(&records[i]))
	}
}

func (h *AttendanceHandler) exportXLSX(c *gin.Context, records []entity.Attendance, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Attendance"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[AttendanceHandler] Failed to create stream writer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file", "error_type": "internal_server_error"})
		return
	}

	headers := make([]interface{}, len(attendanceExportHeaders))
	for i, header := range attendanceExportHeaders {
		headers[i] = header
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[AttendanceHandler] Failed to write header row: %v", err)
	}

	for i := range records {
		rowNum := i + 2
		cell := fmt.Sprintf("A%d", rowNum)

		cols := attendanceExportRow(&records[i])
		row := make([]interface{}, len(cols))
		for j, col := range cols {
			row[j] = col
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[AttendanceHandler] Failed to write row %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[AttendanceHandler] Failed to flush stream writer: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[AttendanceHandler] Failed to write Excel response: %v", err)
	}
}

func attendanceExportRow(record *entity.Attendance) []string {
	return []string{
		sanitizeForExcel(attendanceMemberName(record)),
		attendanceStudentID(record),
		record.Status,
		sanitizeForExcel(stringOrEmpty(record.Comments)),
		record.MarkedAt.Format(time.RFC3339),
	}
}

func attendanceMemberName(record *entity.Attendance) string {
	if record.Member == nil {
		return strconv.FormatUint(uint64(record.MemberID), 10)
	}
	return record.Member.FirstName + " " + record.Member.LastName
}

func attendanceStudentID(record *entity.Attendance) string {
	if record.Member == nil {
		return ""
	}
	return record.Member.StudentID
}

// bindAttendanceSheet parses the bulk mark payload, writing the error
// response itself on failure.
func bindAttendanceSheet(c *gin.Context) ([]service.AttendanceMarkInput, error) {
	var req dto.AttendanceSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return nil, err
	}

	marks := make([]service.AttendanceMarkInput, len(req.Marks))
	for i, m := range req.Marks {
		marks[i] = service.AttendanceMarkInput{
			MemberID: m.MemberID,
			Status:   m.Status,
			Comments: m.Comments,
		}
	}
	return marks, nil
}
