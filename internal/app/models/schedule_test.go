package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniplan/internal/pkg/apperrors"
)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func newTestSchedule(t *testing.T) *Schedule {
	t.Helper()
	start := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 23, 0, 0, 0, 0, time.UTC)
	schedule, err := NewSchedule("2025-2026", 1, "Fall Term", nil, start, end, nil)
	require.NoError(t, err)
	return schedule
}

func TestNewScheduleValidation(t *testing.T) {
	start := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 23, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		academicYear string
		semester     int
		schedName    string
		startDate    time.Time
		endDate      time.Time
		wantErr      bool
	}{
		{name: "valid", academicYear: "2025-2026", semester: 1, schedName: "Fall Term", startDate: start, endDate: end},
		{name: "bad year format", academicYear: "2025/2026", semester: 1, schedName: "Fall Term", startDate: start, endDate: end, wantErr: true},
		{name: "non consecutive years", academicYear: "2025-2027", semester: 1, schedName: "Fall Term", startDate: start, endDate: end, wantErr: true},
		{name: "invalid semester", academicYear: "2025-2026", semester: 3, schedName: "Fall Term", startDate: start, endDate: end, wantErr: true},
		{name: "blank name", academicYear: "2025-2026", semester: 1, schedName: "   ", startDate: start, endDate: end, wantErr: true},
		{name: "start after end", academicYear: "2025-2026", semester: 1, schedName: "Fall Term", startDate: end, endDate: start, wantErr: true},
		{name: "start equals end", academicYear: "2025-2026", semester: 1, schedName: "Fall Term", startDate: start, endDate: start, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := NewSchedule(tt.academicYear, tt.semester, tt.schedName, nil, tt.startDate, tt.endDate, nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ScheduleStatusDraft, schedule.Status)
			assert.Empty(t, schedule.Sessions)
		})
	}
}

func TestAddCourseSessionInstructorConflict(t *testing.T) {
	schedule := newTestSchedule(t)

	_, err := schedule.AddCourseSession(101, int64Ptr(1), 1, "monday", "09:00", "10:50", "lecture", nil, "")
	require.NoError(t, err)

	// Same instructor, different room, overlapping slot
	_, err = schedule.AddCourseSession(102, int64Ptr(1), 2, "monday", "10:00", "11:00", "lecture", nil, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrSessionConflict))

	var conflictErr *ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, ConflictTypeInstructor, conflictErr.Conflict.Type)

	// Rejected placement must not change the session list
	assert.Len(t, schedule.Sessions, 1)
}

func TestAddCourseSessionClassroomConflict(t *testing.T) {
	schedule := newTestSchedule(t)

	_, err := schedule.AddCourseSession(101, int64Ptr(1), 1, "monday", "09:00", "10:50", "lecture", nil, "")
	require.NoError(t, err)

	// Different instructor, same room, overlapping slot
	_, err = schedule.AddCourseSession(102, int64Ptr(2), 1, "monday", "10:00", "11:00", "lab", nil, "")
	require.Error(t, err)

	var conflictErr *ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, ConflictTypeClassroom, conflictErr.Conflict.Type)
}

func TestAddCourseSessionNoConflict(t *testing.T) {
	schedule := newTestSchedule(t)

	_, err := schedule.AddCourseSession(101, int64Ptr(1), 1, "monday", "09:00", "10:50", "lecture", nil, "")
	require.NoError(t, err)

	// Same resources, back-to-back slot
	_, err = schedule.AddCourseSession(102, int64Ptr(1), 1, "monday", "11:00", "12:50", "lecture", nil, "")
	require.NoError(t, err)

	// Same resources and slot, different day
	_, err = schedule.AddCourseSession(103, int64Ptr(1), 1, "tuesday", "09:00", "10:50", "lecture", nil, "")
	require.NoError(t, err)

	// Overlapping slot but different instructor and room
	_, err = schedule.AddCourseSession(104, int64Ptr(2), 2, "monday", "09:30", "10:30", "seminar", nil, "")
	require.NoError(t, err)

	assert.Len(t, schedule.Sessions, 4)
	for _, session := range schedule.Sessions {
		assert.NotEmpty(t, session.ID)
		assert.Equal(t, schedule.ID, session.ScheduleID)
	}
}

func TestAddCourseSessionWeekNumbers(t *testing.T) {
	schedule := newTestSchedule(t)

	_, err := schedule.AddCourseSession(101, int64Ptr(1), 1, "monday", "09:00", "10:50", "lab", intPtr(1), "")
	require.NoError(t, err)

	// Different week number, same slot and resources: bi-weekly alternation is allowed
	_, err = schedule.AddCourseSession(102, int64Ptr(1), 1, "monday", "09:00", "10:50", "lab", intPtr(2), "")
	require.NoError(t, err)

	// Same week number clashes
	_, err = schedule.AddCourseSession(103, int64Ptr(1), 1, "monday", "09:00", "10:50", "lab", intPtr(1), "")
	assert.True(t, errors.Is(err, apperrors.ErrSessionConflict))

	// An unrestricted session clashes with any week number
	_, err = schedule.AddCourseSession(104, int64Ptr(1), 1, "monday", "09:00", "10:50", "lab", nil, "")
	assert.True(t, errors.Is(err, apperrors.ErrSessionConflict))
}

func TestAddCourseSessionValidation(t *testing.T) {
	schedule := newTestSchedule(t)

	tests := []struct {
		name        string
		courseID    int64
		classroomID int64
		day         string
		start       string
		end         string
		sessionType string
		weekNumber  *int
	}{
		{name: "bad course id", courseID: 0, classroomID: 1, day: "monday", start: "09:00", end: "10:00", sessionType: "lecture"},
		{name: "bad classroom id", courseID: 1, classroomID: -1, day: "monday", start: "09:00", end: "10:00", sessionType: "lecture"},
		{name: "bad day", courseID: 1, classroomID: 1, day: "someday", start: "09:00", end: "10:00", sessionType: "lecture"},
		{name: "bad session type", courseID: 1, classroomID: 1, day: "monday", start: "09:00", end: "10:00", sessionType: "workshop"},
		{name: "bad time slot", courseID: 1, classroomID: 1, day: "monday", start: "10:00", end: "09:00", sessionType: "lecture"},
		{name: "bad week number", courseID: 1, classroomID: 1, day: "monday", start: "09:00", end: "10:00", sessionType: "lecture", weekNumber: intPtr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schedule.AddCourseSession(tt.courseID, nil, tt.classroomID, tt.day, tt.start, tt.end, tt.sessionType, tt.weekNumber, "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
		})
	}

	assert.Empty(t, schedule.Sessions)
}

func TestRemoveCourseSession(t *testing.T) {
	schedule := newTestSchedule(t)

	session, err := schedule.AddCourseSession(101, int64Ptr(1), 1, "monday", "09:00", "10:50", "lecture", nil, "")
	require.NoError(t, err)

	err = schedule.RemoveCourseSession("no-such-id")
	assert.True(t, errors.Is(err, apperrors.ErrSessionNotFound))

	require.NoError(t, schedule.RemoveCourseSession(session.ID))
	assert.Empty(t, schedule.Sessions)

	// Removing frees the slot for a new placement
	_, err = schedule.AddCourseSession(102, int64Ptr(1), 1, "monday", "09:00", "10:50", "lecture", nil, "")
	require.NoError(t, err)
}

func TestScheduleStateMachine(t *testing.T) {
	schedule := newTestSchedule(t)

	// Publishing a draft is not allowed
	err := schedule.Publish(7)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidStateTransition))
	assert.Equal(t, ScheduleStatusDraft, schedule.Status)

	require.NoError(t, schedule.Activate())
	assert.Equal(t, ScheduleStatusActive, schedule.Status)

	// Activating twice fails
	err = schedule.Activate()
	assert.True(t, errors.Is(err, apperrors.ErrInvalidStateTransition))

	require.NoError(t, schedule.Publish(7))
	assert.Equal(t, ScheduleStatusPublished, schedule.Status)
	require.NotNil(t, schedule.PublishedBy)
	assert.Equal(t, int64(7), *schedule.PublishedBy)
	assert.NotNil(t, schedule.PublishedAt)

	// A published schedule is terminal
	assert.True(t, errors.Is(schedule.Publish(7), apperrors.ErrInvalidStateTransition))
	assert.True(t, errors.Is(schedule.Cancel(), apperrors.ErrInvalidStateTransition))
	assert.True(t, errors.Is(schedule.Activate(), apperrors.ErrInvalidStateTransition))
}

func TestScheduleCancel(t *testing.T) {
	draft := newTestSchedule(t)
	require.NoError(t, draft.Cancel())
	assert.Equal(t, ScheduleStatusCancelled, draft.Status)

	// Cancelled is terminal
	assert.True(t, errors.Is(draft.Activate(), apperrors.ErrInvalidStateTransition))
	assert.True(t, errors.Is(draft.Cancel(), apperrors.ErrInvalidStateTransition))

	active := newTestSchedule(t)
	require.NoError(t, active.Activate())
	require.NoError(t, active.Cancel())
	assert.Equal(t, ScheduleStatusCancelled, active.Status)
}

func TestSessionMutationBlockedAfterPublish(t *testing.T) {
	schedule := newTestSchedule(t)
	session, err := schedule.AddCourseSession(101, int64Ptr(1), 1, "monday", "09:00", "10:50", "lecture", nil, "")
	require.NoError(t, err)

	require.NoError(t, schedule.Activate())

	// Active schedules are still editable
	_, err = schedule.AddCourseSession(102, int64Ptr(1), 1, "tuesday", "09:00", "10:50", "lecture", nil, "")
	require.NoError(t, err)

	require.NoError(t, schedule.Publish(7))

	_, err = schedule.AddCourseSession(103, int64Ptr(2), 2, "friday", "09:00", "10:50", "lecture", nil, "")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidStateTransition))

	err = schedule.RemoveCourseSession(session.ID)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidStateTransition))
	assert.Len(t, schedule.Sessions, 2)
}

func TestUpdateMetadata(t *testing.T) {
	schedule := newTestSchedule(t)
	require.NoError(t, schedule.Activate())
	require.NoError(t, schedule.Publish(7))

	newStart := time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC)
	newEnd := time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)
	desc := "extended term"

	// Metadata stays editable regardless of status
	require.NoError(t, schedule.UpdateMetadata("Fall Term (revised)", &desc, newStart, newEnd))
	assert.Equal(t, "Fall Term (revised)", schedule.Name)
	assert.Equal(t, &desc, schedule.Description)
	assert.Equal(t, ScheduleStatusPublished, schedule.Status)

	err := schedule.UpdateMetadata("", nil, newStart, newEnd)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	err = schedule.UpdateMetadata("Fall Term", nil, newEnd, newStart)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestFindConflictsAudit(t *testing.T) {
	// Build the session list directly so FindConflicts can report pairs the
	// incremental check would have blocked.
	mustSlot := func(start, end string) TimeSlot {
		slot, err := ParseTimeSlot(start, end)
		require.NoError(t, err)
		return slot
	}

	sessions := []*CourseSession{
		{ID: "s1", CourseID: 101, InstructorID: int64Ptr(1), ClassroomID: 1, DayOfWeek: Monday, TimeSlot: mustSlot("09:00", "10:50")},
		{ID: "s2", CourseID: 102, InstructorID: int64Ptr(1), ClassroomID: 2, DayOfWeek: Monday, TimeSlot: mustSlot("10:00", "11:00")},
		{ID: "s3", CourseID: 103, InstructorID: int64Ptr(2), ClassroomID: 1, DayOfWeek: Monday, TimeSlot: mustSlot("10:30", "11:30")},
		{ID: "s4", CourseID: 104, InstructorID: int64Ptr(3), ClassroomID: 3, DayOfWeek: Tuesday, TimeSlot: mustSlot("09:00", "10:50")},
		{ID: "s5", CourseID: 105, InstructorID: nil, ClassroomID: 4, DayOfWeek: Monday, TimeSlot: mustSlot("09:00", "10:00")},
	}

	conflicts := FindSessionConflicts(sessions)
	require.Len(t, conflicts, 2)

	// s1 vs s2: same instructor, overlapping Monday slots
	assert.Equal(t, "s1", conflicts[0].SessionID)
	assert.Equal(t, "s2", conflicts[0].OtherSessionID)
	assert.Equal(t, ConflictTypeInstructor, conflicts[0].Type)

	// s1 vs s3: same classroom, overlapping Monday slots
	assert.Equal(t, "s1", conflicts[1].SessionID)
	assert.Equal(t, "s3", conflicts[1].OtherSessionID)
	assert.Equal(t, ConflictTypeClassroom, conflicts[1].Type)

	// Audit is read-only
	assert.Len(t, sessions, 5)
}

func TestScheduleSoftDelete(t *testing.T) {
	schedule := newTestSchedule(t)

	schedule.Delete()
	assert.True(t, schedule.IsDeleted)
	require.NotNil(t, schedule.DeletedAt)
	firstDeletedAt := *schedule.DeletedAt

	// Deleting again keeps the original timestamp
	schedule.Delete()
	assert.Equal(t, firstDeletedAt, *schedule.DeletedAt)

	schedule.Restore()
	assert.False(t, schedule.IsDeleted)
	assert.Nil(t, schedule.DeletedAt)
}

func TestSortSessions(t *testing.T) {
	mustSlot := func(start, end string) TimeSlot {
		slot, err := ParseTimeSlot(start, end)
		require.NoError(t, err)
		return slot
	}

	sessions := []*CourseSession{
		{ID: "s1", DayOfWeek: Friday, TimeSlot: mustSlot("09:00", "10:00")},
		{ID: "s2", DayOfWeek: Monday, TimeSlot: mustSlot("13:00", "14:00")},
		{ID: "s3", DayOfWeek: Monday, TimeSlot: mustSlot("09:00", "10:00")},
		{ID: "s4", DayOfWeek: Wednesday, TimeSlot: mustSlot("09:00", "10:00")},
	}

	SortSessions(sessions)

	got := make([]string, 0, len(sessions))
	for _, s := range sessions {
		got = append(got, s.ID)
	}
	assert.Equal(t, []string{"s3", "s2", "s4", "s1"}, got)
}
