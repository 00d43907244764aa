package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/choir-api/internal/domain/entity"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

func validScheduleInput() ScheduleInput {
	return ScheduleInput{
		Title:       "Tuesday Practice",
		Date:        time.Date(2026, 10, 6, 0, 0, 0, 0, time.UTC),
		StartTime:   "18:00",
		EndTime:     "20:30",
		LectureHall: "b501",
	}
}

func TestScheduleService_Create_UppercasesLectureHall(t *testing.T) {
	scheduleRepo := new(MockScheduleRepository)
	svc, err := NewScheduleService(scheduleRepo)
	require.NoError(t, err)

	scheduleRepo.On("Create", mock.AnythingOfType("*entity.PracticeSchedule")).Return(nil)

	schedule, err := svc.Create(9, validScheduleInput())
	require.NoError(t, err)

	assert.Equal(t, "B501", schedule.LectureHall)
	assert.Equal(t, entity.EventUpcoming, schedule.Status)
	assert.Equal(t, uint(9), schedule.CreatedByID)
}

func TestScheduleService_Create_RejectsBadInput(t *testing.T) {
	svc, err := NewScheduleService(new(MockScheduleRepository))
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*ScheduleInput)
	}{
		{"missing title", func(in *ScheduleInput) { in.Title = "  " }},
		{"zero date", func(in *ScheduleInput) { in.Date = time.Time{} }},
		{"bad start time", func(in *ScheduleInput) { in.StartTime = "25:00" }},
		{"bad end time", func(in *ScheduleInput) { in.EndTime = "8pm" }},
		{"end before start", func(in *ScheduleInput) { in.StartTime = "20:00"; in.EndTime = "18:00" }},
		{"bad lecture hall", func(in *ScheduleInput) { in.LectureHall = "Main Hall" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validScheduleInput()
			tt.mutate(&input)

			_, err := svc.Create(9, input)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestScheduleService_Update_KeepsStatusWhenOmitted(t *testing.T) {
	scheduleRepo := new(MockScheduleRepository)
	svc, err := NewScheduleService(scheduleRepo)
	require.NoError(t, err)

	scheduleRepo.On("GetByID", uint(3)).Return(&entity.PracticeSchedule{
		ID:     3,
		Status: entity.EventCompleted,
	}, nil)
	scheduleRepo.On("Update", mock.AnythingOfType("*entity.PracticeSchedule")).Return(nil)

	schedule, err := svc.Update(3, validScheduleInput())
	require.NoError(t, err)
	assert.Equal(t, entity.EventCompleted, schedule.Status)
}
