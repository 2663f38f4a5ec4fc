package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniplan/internal/app/models"
	"github.com/yigit/uniplan/internal/pkg/apperrors"
)

// memScheduleRepo is an in-memory ScheduleRepository for service tests.
type memScheduleRepo struct {
	nextID    int64
	schedules map[int64]*models.Schedule
}

func newMemScheduleRepo() *memScheduleRepo {
	return &memScheduleRepo{nextID: 1, schedules: make(map[int64]*models.Schedule)}
}

func (r *memScheduleRepo) Create(_ context.Context, schedule *models.Schedule) error {
	schedule.ID = r.nextID
	r.nextID++
	schedule.CreatedAt = time.Now()
	schedule.UpdatedAt = schedule.CreatedAt
	r.schedules[schedule.ID] = schedule
	return nil
}

func (r *memScheduleRepo) GetByID(_ context.Context, id int64) (*models.Schedule, error) {
	schedule, ok := r.schedules[id]
	if !ok {
		return nil, apperrors.ErrScheduleNotFound
	}
	copied := *schedule
	copied.Sessions = append([]*models.CourseSession(nil), schedule.Sessions...)
	return &copied, nil
}

func (r *memScheduleRepo) GetAll(_ context.Context) ([]*models.Schedule, error) {
	var result []*models.Schedule
	for _, schedule := range r.schedules {
		if !schedule.IsDeleted {
			result = append(result, schedule)
		}
	}
	return result, nil
}

func (r *memScheduleRepo) ExistsForTerm(_ context.Context, academicYear string, semester int, departmentID *int64) (bool, error) {
	for _, schedule := range r.schedules {
		if schedule.IsDeleted {
			continue
		}
		if schedule.AcademicYear != academicYear || schedule.Semester != semester {
			continue
		}
		switch {
		case schedule.DepartmentID == nil && departmentID == nil:
			return true, nil
		case schedule.DepartmentID != nil && departmentID != nil && *schedule.DepartmentID == *departmentID:
			return true, nil
		}
	}
	return false, nil
}

func (r *memScheduleRepo) Update(_ context.Context, schedule *models.Schedule) error {
	stored, ok := r.schedules[schedule.ID]
	if !ok {
		return apperrors.ErrScheduleNotFound
	}
	sessions := stored.Sessions
	copied := *schedule
	copied.Sessions = sessions
	copied.UpdatedAt = time.Now()
	r.schedules[schedule.ID] = &copied
	return nil
}

func (r *memScheduleRepo) InsertSession(_ context.Context, session *models.CourseSession) error {
	schedule, ok := r.schedules[session.ScheduleID]
	if !ok {
		return apperrors.ErrScheduleNotFound
	}
	schedule.Sessions = append(schedule.Sessions, session)
	return nil
}

func (r *memScheduleRepo) DeleteSession(_ context.Context, scheduleID int64, sessionID string) error {
	schedule, ok := r.schedules[scheduleID]
	if !ok {
		return apperrors.ErrScheduleNotFound
	}
	for i, session := range schedule.Sessions {
		if session.ID == sessionID {
			schedule.Sessions = append(schedule.Sessions[:i], schedule.Sessions[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrSessionNotFound
}

func newTestService(t *testing.T) (ScheduleService, *memScheduleRepo) {
	t.Helper()
	repo := newMemScheduleRepo()
	return NewScheduleService(repo, zerolog.Nop()), repo
}

func createTestSchedule(t *testing.T, svc ScheduleService) *models.Schedule {
	t.Helper()
	start := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 23, 0, 0, 0, 0, time.UTC)
	schedule, err := svc.CreateSchedule(context.Background(), "2025-2026", 1, "Fall Term", nil, start, end, nil)
	require.NoError(t, err)
	return schedule
}

func int64Ptr(v int64) *int64 { return &v }

func TestCreateScheduleDuplicateTerm(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	schedule := createTestSchedule(t, svc)
	assert.Equal(t, models.ScheduleStatusDraft, schedule.Status)
	assert.NotZero(t, schedule.ID)

	// Same term again
	_, err := svc.CreateSchedule(ctx, "2025-2026", 1, "Fall Term Copy", nil, schedule.StartDate, schedule.EndDate, nil)
	assert.True(t, errors.Is(err, apperrors.ErrDuplicateSchedule))

	// Same term for a specific department is a different key
	deptSchedule, err := svc.CreateSchedule(ctx, "2025-2026", 1, "CS Fall Term", nil, schedule.StartDate, schedule.EndDate, int64Ptr(3))
	require.NoError(t, err)
	assert.NotEqual(t, schedule.ID, deptSchedule.ID)

	// Other semester is fine too
	_, err = svc.CreateSchedule(ctx, "2025-2026", 2, "Spring Term", nil, schedule.StartDate, schedule.EndDate, nil)
	require.NoError(t, err)
}

func TestAddSessionPersistsAndDetectsConflicts(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	schedule := createTestSchedule(t, svc)

	session, err := svc.AddSession(ctx, schedule.ID, AddSessionInput{
		CourseID:     101,
		InstructorID: int64Ptr(1),
		ClassroomID:  1,
		DayOfWeek:    "monday",
		StartTime:    "09:00",
		EndTime:      "10:50",
		SessionType:  "lecture",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Len(t, repo.schedules[schedule.ID].Sessions, 1)

	// Conflicting placement is rejected and not persisted
	_, err = svc.AddSession(ctx, schedule.ID, AddSessionInput{
		CourseID:     102,
		InstructorID: int64Ptr(1),
		ClassroomID:  2,
		DayOfWeek:    "monday",
		StartTime:    "10:00",
		EndTime:      "11:00",
		SessionType:  "lecture",
	})
	assert.True(t, errors.Is(err, apperrors.ErrSessionConflict))
	assert.Len(t, repo.schedules[schedule.ID].Sessions, 1)

	// A free slot succeeds
	_, err = svc.AddSession(ctx, schedule.ID, AddSessionInput{
		CourseID:     103,
		InstructorID: int64Ptr(2),
		ClassroomID:  1,
		DayOfWeek:    "monday",
		StartTime:    "11:00",
		EndTime:      "12:00",
		SessionType:  "seminar",
	})
	require.NoError(t, err)
	assert.Len(t, repo.schedules[schedule.ID].Sessions, 2)
}

func TestAddSessionScheduleNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddSession(context.Background(), 42, AddSessionInput{
		CourseID:    101,
		ClassroomID: 1,
		DayOfWeek:   "monday",
		StartTime:   "09:00",
		EndTime:     "10:00",
		SessionType: "lecture",
	})
	assert.True(t, errors.Is(err, apperrors.ErrScheduleNotFound))
}

func TestRemoveSession(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	schedule := createTestSchedule(t, svc)

	session, err := svc.AddSession(ctx, schedule.ID, AddSessionInput{
		CourseID:    101,
		ClassroomID: 1,
		DayOfWeek:   "monday",
		StartTime:   "09:00",
		EndTime:     "10:00",
		SessionType: "lecture",
	})
	require.NoError(t, err)

	err = svc.RemoveSession(ctx, schedule.ID, "no-such-session")
	assert.True(t, errors.Is(err, apperrors.ErrSessionNotFound))

	require.NoError(t, svc.RemoveSession(ctx, schedule.ID, session.ID))
	assert.Empty(t, repo.schedules[schedule.ID].Sessions)
}

func TestPublishRecordsUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	schedule := createTestSchedule(t, svc)

	// Draft cannot be published directly
	_, err := svc.Publish(ctx, schedule.ID, 7)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidStateTransition))

	activated, err := svc.Activate(ctx, schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusActive, activated.Status)

	published, err := svc.Publish(ctx, schedule.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusPublished, published.Status)
	require.NotNil(t, published.PublishedBy)
	assert.Equal(t, int64(7), *published.PublishedBy)
	assert.NotNil(t, published.PublishedAt)

	// Change survives a reload
	reloaded, err := svc.GetSchedule(ctx, schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusPublished, reloaded.Status)
}

func TestDeletedScheduleHidden(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	schedule := createTestSchedule(t, svc)

	require.NoError(t, svc.DeleteSchedule(ctx, schedule.ID))

	_, err := svc.GetSchedule(ctx, schedule.ID)
	assert.True(t, errors.Is(err, apperrors.ErrScheduleNotFound))

	_, err = svc.AddSession(ctx, schedule.ID, AddSessionInput{
		CourseID:    101,
		ClassroomID: 1,
		DayOfWeek:   "monday",
		StartTime:   "09:00",
		EndTime:     "10:00",
		SessionType: "lecture",
	})
	assert.True(t, errors.Is(err, apperrors.ErrScheduleNotFound))

	all, err := svc.GetAllSchedules(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// Deleting an already deleted schedule reports not found
	err = svc.DeleteSchedule(ctx, schedule.ID)
	assert.True(t, errors.Is(err, apperrors.ErrScheduleNotFound))
}

func TestRestoreSchedule(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	schedule := createTestSchedule(t, svc)

	require.NoError(t, svc.DeleteSchedule(ctx, schedule.ID))
	require.NoError(t, svc.RestoreSchedule(ctx, schedule.ID))

	restored, err := svc.GetSchedule(ctx, schedule.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)

	// Restore refuses to revive a second schedule for the same term
	require.NoError(t, svc.DeleteSchedule(ctx, schedule.ID))
	_, err = svc.CreateSchedule(ctx, "2025-2026", 1, "Replacement", nil, schedule.StartDate, schedule.EndDate, nil)
	require.NoError(t, err)

	err = svc.RestoreSchedule(ctx, schedule.ID)
	assert.True(t, errors.Is(err, apperrors.ErrDuplicateSchedule))
}

func TestCheckAllConflicts(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	schedule := createTestSchedule(t, svc)

	conflicts, err := svc.CheckAllConflicts(ctx, schedule.ID)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	// Plant a pre-existing double booking directly in storage, as imported
	// data might contain one.
	slot, err := models.ParseTimeSlot("09:00", "10:50")
	require.NoError(t, err)
	overlapping, err := models.ParseTimeSlot("10:00", "11:00")
	require.NoError(t, err)

	repo.schedules[schedule.ID].Sessions = []*models.CourseSession{
		{ID: "s1", ScheduleID: schedule.ID, CourseID: 101, InstructorID: int64Ptr(1), ClassroomID: 1, DayOfWeek: models.Monday, TimeSlot: slot},
		{ID: "s2", ScheduleID: schedule.ID, CourseID: 102, InstructorID: int64Ptr(1), ClassroomID: 2, DayOfWeek: models.Monday, TimeSlot: overlapping},
	}

	conflicts, err = svc.CheckAllConflicts(ctx, schedule.ID)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictTypeInstructor, conflicts[0].Type)
	assert.Equal(t, "s1", conflicts[0].SessionID)
	assert.Equal(t, "s2", conflicts[0].OtherSessionID)
}

func TestUpdateMetadataService(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	schedule := createTestSchedule(t, svc)

	desc := "revised plan"
	updated, err := svc.UpdateMetadata(ctx, schedule.ID, "Fall Term v2", &desc, schedule.StartDate, schedule.EndDate)
	require.NoError(t, err)
	assert.Equal(t, "Fall Term v2", updated.Name)
	assert.Equal(t, models.ScheduleStatusDraft, updated.Status)

	_, err = svc.UpdateMetadata(ctx, schedule.ID, "", nil, schedule.StartDate, schedule.EndDate)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}
