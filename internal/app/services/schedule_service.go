package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/uniplan/internal/app/models"
	"github.com/yigit/uniplan/internal/pkg/apperrors"
)

// ScheduleRepository is the storage collaborator for schedule aggregates.
// Implemented by repositories.ScheduleRepository.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *models.Schedule) error
	GetByID(ctx context.Context, id int64) (*models.Schedule, error)
	GetAll(ctx context.Context) ([]*models.Schedule, error)
	ExistsForTerm(ctx context.Context, academicYear string, semester int, departmentID *int64) (bool, error)
	Update(ctx context.Context, schedule *models.Schedule) error
	InsertSession(ctx context.Context, session *models.CourseSession) error
	DeleteSession(ctx context.Context, scheduleID int64, sessionID string) error
}

// AddSessionInput carries a proposed session placement. Times cross the
// boundary as "HH:MM" 24-hour strings.
type AddSessionInput struct {
	CourseID     int64
	InstructorID *int64
	ClassroomID  int64
	DayOfWeek    string
	StartTime    string
	EndTime      string
	SessionType  string
	WeekNumber   *int
	Notes        string
}

// ScheduleService handles schedule lifecycle and session placement operations
type ScheduleService interface {
	CreateSchedule(ctx context.Context, academicYear string, semester int, name string, description *string, startDate, endDate time.Time, departmentID *int64) (*models.Schedule, error)
	GetSchedule(ctx context.Context, id int64) (*models.Schedule, error)
	GetAllSchedules(ctx context.Context) ([]*models.Schedule, error)
	AddSession(ctx context.Context, scheduleID int64, input AddSessionInput) (*models.CourseSession, error)
	RemoveSession(ctx context.Context, scheduleID int64, sessionID string) error
	CheckAllConflicts(ctx context.Context, scheduleID int64) ([]models.SessionConflict, error)
	Activate(ctx context.Context, scheduleID int64) (*models.Schedule, error)
	Publish(ctx context.Context, scheduleID int64, publishedBy int64) (*models.Schedule, error)
	Cancel(ctx context.Context, scheduleID int64) (*models.Schedule, error)
	UpdateMetadata(ctx context.Context, scheduleID int64, name string, description *string, startDate, endDate time.Time) (*models.Schedule, error)
	DeleteSchedule(ctx context.Context, scheduleID int64) error
	RestoreSchedule(ctx context.Context, scheduleID int64) error
}

type scheduleService struct {
	scheduleRepo ScheduleRepository
	logger       zerolog.Logger

	// locks serializes mutating access per schedule id. AddSession performs a
	// read-then-decide-then-write sequence; without the lock two concurrent
	// adds could both pass the conflict check against a stale session list.
	locks sync.Map // map[int64]*sync.Mutex
}

// NewScheduleService creates a new schedule service instance
func NewScheduleService(scheduleRepo ScheduleRepository, logger zerolog.Logger) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// lockSchedule acquires the per-schedule mutex and returns its unlock func.
func (s *scheduleService) lockSchedule(scheduleID int64) func() {
	value, _ := s.locks.LoadOrStore(scheduleID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// loadVisible loads a schedule and rejects soft-deleted ones.
func (s *scheduleService) loadVisible(ctx context.Context, scheduleID int64) (*models.Schedule, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.IsDeleted {
		return nil, apperrors.ErrScheduleNotFound
	}
	return schedule, nil
}

// CreateSchedule creates a new draft schedule. At most one non-deleted
// schedule may exist per (academicYear, semester, department); the check here
// is backed by a partial unique index so a race ends in a duplicate error,
// not a second schedule.
func (s *scheduleService) CreateSchedule(ctx context.Context, academicYear string, semester int, name string, description *string, startDate, endDate time.Time, departmentID *int64) (*models.Schedule, error) {
	schedule, err := models.NewSchedule(academicYear, semester, name, description, startDate, endDate, departmentID)
	if err != nil {
		return nil, err
	}

	exists, err := s.scheduleRepo.ExistsForTerm(ctx, academicYear, semester, departmentID)
	if err != nil {
		return nil, fmt.Errorf("error checking schedule uniqueness: %w", err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateSchedule
	}

	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("scheduleId", schedule.ID).Str("academicYear", academicYear).Int("semester", semester).Msg("Schedule created")
	return schedule, nil
}

// GetSchedule retrieves a schedule with its sessions
func (s *scheduleService) GetSchedule(ctx context.Context, id int64) (*models.Schedule, error) {
	return s.loadVisible(ctx, id)
}

// GetAllSchedules retrieves all non-deleted schedules
func (s *scheduleService) GetAllSchedules(ctx context.Context) ([]*models.Schedule, error) {
	schedules, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving schedules: %w", err)
	}
	return schedules, nil
}

// AddSession places a new session into a schedule. The aggregate runs the
// conflict check against its current session list; only a conflict-free
// placement is persisted.
func (s *scheduleService) AddSession(ctx context.Context, scheduleID int64, input AddSessionInput) (*models.CourseSession, error) {
	unlock := s.lockSchedule(scheduleID)
	defer unlock()

	schedule, err := s.loadVisible(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	session, err := schedule.AddCourseSession(
		input.CourseID,
		input.InstructorID,
		input.ClassroomID,
		input.DayOfWeek,
		input.StartTime,
		input.EndTime,
		input.SessionType,
		input.WeekNumber,
		input.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.InsertSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("scheduleId", scheduleID).Str("sessionId", session.ID).Str("day", string(session.DayOfWeek)).Str("slot", session.TimeSlot.String()).Msg("Course session added")
	return session, nil
}

// RemoveSession removes a session from a schedule
func (s *scheduleService) RemoveSession(ctx context.Context, scheduleID int64, sessionID string) error {
	unlock := s.lockSchedule(scheduleID)
	defer unlock()

	schedule, err := s.loadVisible(ctx, scheduleID)
	if err != nil {
		return err
	}

	if err := schedule.RemoveCourseSession(sessionID); err != nil {
		return err
	}

	return s.scheduleRepo.DeleteSession(ctx, scheduleID, sessionID)
}

// CheckAllConflicts runs the full pairwise conflict audit over a schedule.
// The audit is read-only and reports every conflict; nothing is resolved.
func (s *scheduleService) CheckAllConflicts(ctx context.Context, scheduleID int64) ([]models.SessionConflict, error) {
	schedule, err := s.loadVisible(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	return schedule.FindConflicts(), nil
}

// Activate moves a draft schedule into the active state
func (s *scheduleService) Activate(ctx context.Context, scheduleID int64) (*models.Schedule, error) {
	return s.transition(ctx, scheduleID, func(schedule *models.Schedule) error {
		return schedule.Activate()
	})
}

// Publish moves an active schedule into the published state, recording who
// published it and when.
func (s *scheduleService) Publish(ctx context.Context, scheduleID int64, publishedBy int64) (*models.Schedule, error) {
	return s.transition(ctx, scheduleID, func(schedule *models.Schedule) error {
		return schedule.Publish(publishedBy)
	})
}

// Cancel cancels a draft or active schedule
func (s *scheduleService) Cancel(ctx context.Context, scheduleID int64) (*models.Schedule, error) {
	return s.transition(ctx, scheduleID, func(schedule *models.Schedule) error {
		return schedule.Cancel()
	})
}

// transition applies a guarded status change under the schedule lock.
func (s *scheduleService) transition(ctx context.Context, scheduleID int64, apply func(*models.Schedule) error) (*models.Schedule, error) {
	unlock := s.lockSchedule(scheduleID)
	defer unlock()

	schedule, err := s.loadVisible(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if err := apply(schedule); err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("scheduleId", scheduleID).Str("status", string(schedule.Status)).Msg("Schedule status changed")
	return schedule, nil
}

// UpdateMetadata changes the descriptive fields of a schedule. The status is
// never altered here.
func (s *scheduleService) UpdateMetadata(ctx context.Context, scheduleID int64, name string, description *string, startDate, endDate time.Time) (*models.Schedule, error) {
	unlock := s.lockSchedule(scheduleID)
	defer unlock()

	schedule, err := s.loadVisible(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if err := schedule.UpdateMetadata(name, description, startDate, endDate); err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}

	return schedule, nil
}

// DeleteSchedule soft-deletes a schedule. Owned sessions are kept; they are
// hidden from views while the schedule stays deleted.
func (s *scheduleService) DeleteSchedule(ctx context.Context, scheduleID int64) error {
	unlock := s.lockSchedule(scheduleID)
	defer unlock()

	schedule, err := s.loadVisible(ctx, scheduleID)
	if err != nil {
		return err
	}

	schedule.Delete()
	return s.scheduleRepo.Update(ctx, schedule)
}

// RestoreSchedule clears the soft-delete markers of a schedule
func (s *scheduleService) RestoreSchedule(ctx context.Context, scheduleID int64) error {
	unlock := s.lockSchedule(scheduleID)
	defer unlock()

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	if !schedule.IsDeleted {
		return nil
	}

	// Restoring must not revive a second schedule for the same term
	exists, err := s.scheduleRepo.ExistsForTerm(ctx, schedule.AcademicYear, schedule.Semester, schedule.DepartmentID)
	if err != nil {
		return fmt.Errorf("error checking schedule uniqueness: %w", err)
	}
	if exists {
		return apperrors.ErrDuplicateSchedule
	}

	schedule.Restore()
	return s.scheduleRepo.Update(ctx, schedule)
}
