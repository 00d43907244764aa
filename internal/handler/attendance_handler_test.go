package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/choir-api/internal/domain/entity"
)

func TestAttendanceExportRow(t *testing.T) {
	comments := "came late from lecture"
	record := entity.Attendance{
		ID:       3,
		MemberID: 7,
		Member: &entity.Member{
			ID:        7,
			FirstName: "Amara",
			LastName:  "Perera",
			StudentID: "CS12345678",
		},
		Status:   entity.AttendanceLate,
		MarkedAt: time.Date(2026, 8, 30, 18, 5, 0, 0, time.UTC),
		Comments: &comments,
	}

	row := attendanceExportRow(&record)
	assert.Equal(t, []string{
		"Amara Perera",
		"CS12345678",
		"late",
		"came late from lecture",
		"2026-08-30T18:05:00Z",
	}, row)
	assert.Len(t, row, len(attendanceExportHeaders))
}

func TestAttendanceExportRow_WithoutPreloadedMember(t *testing.T) {
	record := entity.Attendance{
		MemberID: 42,
		Status:   entity.AttendancePresent,
		MarkedAt: time.Date(2026, 8, 30, 18, 5, 0, 0, time.UTC),
	}

	row := attendanceExportRow(&record)
	assert.Equal(t, "42", row[0])
	assert.Equal(t, "", row[1])
	assert.Equal(t, "", row[3])
}

func TestAttendanceExportRow_SanitizesFormulaInjection(t *testing.T) {
	comments := "=HYPERLINK(\"http://evil\")"
	record := entity.Attendance{
		MemberID: 7,
		Member: &entity.Member{
			FirstName: "+Amara",
			LastName:  "Perera",
			StudentID: "CS12345678",
		},
		Status:   entity.AttendanceAbsent,
		MarkedAt: time.Now(),
		Comments: &comments,
	}

	row := attendanceExportRow(&record)
	assert.Equal(t, "'+Amara Perera", row[0])
	assert.Equal(t, "'=HYPERLINK(\"http://evil\")", row[3])
}
