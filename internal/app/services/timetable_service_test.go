package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniplan/internal/app/models"
	"github.com/yigit/uniplan/internal/pkg/apperrors"
)

// memSessionReader serves canned session lists for timetable tests.
type memSessionReader struct {
	byClassroom  map[int64][]*models.CourseSession
	byInstructor map[int64][]*models.CourseSession
}

func (r *memSessionReader) GetByClassroom(_ context.Context, classroomID int64) ([]*models.CourseSession, error) {
	return r.byClassroom[classroomID], nil
}

func (r *memSessionReader) GetByInstructor(_ context.Context, instructorID int64) ([]*models.CourseSession, error) {
	return r.byInstructor[instructorID], nil
}

func timetableFixture(t *testing.T) []*models.CourseSession {
	t.Helper()
	mustSlot := func(start, end string) models.TimeSlot {
		slot, err := models.ParseTimeSlot(start, end)
		require.NoError(t, err)
		return slot
	}

	// Deliberately out of display order
	return []*models.CourseSession{
		{ID: "s1", ScheduleID: 1, CourseID: 101, ClassroomID: 1, DayOfWeek: models.Wednesday, TimeSlot: mustSlot("09:00", "10:00")},
		{ID: "s2", ScheduleID: 1, CourseID: 102, ClassroomID: 1, DayOfWeek: models.Monday, TimeSlot: mustSlot("14:00", "15:00")},
		{ID: "s3", ScheduleID: 2, CourseID: 103, ClassroomID: 1, DayOfWeek: models.Monday, TimeSlot: mustSlot("09:00", "10:00")},
	}
}

func TestGetClassroomTimetable(t *testing.T) {
	reader := &memSessionReader{
		byClassroom: map[int64][]*models.CourseSession{1: timetableFixture(t)},
	}
	svc := NewTimetableService(reader)

	sessions, err := svc.GetClassroomTimetable(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	// Ordered by day, then start time, across schedules
	assert.Equal(t, "s3", sessions[0].ID)
	assert.Equal(t, "s2", sessions[1].ID)
	assert.Equal(t, "s1", sessions[2].ID)
}

func TestGetClassroomTimetableEmpty(t *testing.T) {
	svc := NewTimetableService(&memSessionReader{})

	sessions, err := svc.GetClassroomTimetable(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestGetInstructorTimetable(t *testing.T) {
	fixture := timetableFixture(t)
	reader := &memSessionReader{
		byInstructor: map[int64][]*models.CourseSession{5: fixture[:2]},
	}
	svc := NewTimetableService(reader)

	sessions, err := svc.GetInstructorTimetable(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "s2", sessions[0].ID)
	assert.Equal(t, "s1", sessions[1].ID)
}

func TestTimetableRejectsBadIDs(t *testing.T) {
	svc := NewTimetableService(&memSessionReader{})

	_, err := svc.GetClassroomTimetable(context.Background(), 0)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	_, err = svc.GetInstructorTimetable(context.Background(), -3)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}
