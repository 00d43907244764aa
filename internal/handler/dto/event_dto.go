package dto

// EventRequest creates or updates an event. Multipart form fields so a
// banner image can be attached.
type EventRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	Date        string `form:"date" binding:"required"` // YYYY-MM-DD
	Time        string `form:"time" binding:"required"` // HH:MM
	Location    string `form:"location" binding:"required"`
	EventType   string `form:"event_type" binding:"required"`
	Capacity    *int   `form:"capacity"`
	Status      string `form:"status"`
}

// ScheduleRequest creates or updates a practice session.
type ScheduleRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Date        string  `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime   string  `json:"start_time" binding:"required"`
	EndTime     string  `json:"end_time" binding:"required"`
	LectureHall string  `json:"lecture_hall" binding:"required"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes"`
}

// AttendanceMarkRequest is one member's mark within a bulk submission.
type AttendanceMarkRequest struct {
	MemberID uint    `json:"member_id" binding:"required"`
	Status   string  `json:"status" binding:"required"`
	Comments *string `json:"comments"`
}

// AttendanceSheetRequest records attendance for a whole session at once.
type AttendanceSheetRequest struct {
	Marks []AttendanceMarkRequest `json:"marks" binding:"required"`
}
