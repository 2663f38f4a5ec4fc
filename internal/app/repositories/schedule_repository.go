package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/uniplan/internal/app/models"
	"github.com/yigit/uniplan/internal/pkg/apperrors"
	"github.com/yigit/uniplan/internal/pkg/dberrors"
)

// ScheduleTermConstraint is the partial unique index backing the
// one-schedule-per-term invariant. A create race between two callers is
// converted into a duplicate error by this constraint.
const ScheduleTermConstraint = "uq_schedules_term"

const scheduleColumns = `
	id, academic_year, semester, name, description, start_date, end_date,
	department_id, status, published_by, published_at, is_deleted, deleted_at,
	created_at, updated_at
`

const sessionColumns = `
	id, schedule_id, course_id, instructor_id, classroom_id, day_of_week,
	start_minutes, end_minutes, session_type, week_number, notes, created_at
`

// ScheduleRepository handles database operations for schedules and their
// course sessions.
type ScheduleRepository struct {
	db *pgxpool.Pool
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{
		db: db,
	}
}

// Create inserts a new schedule
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	query := `
		INSERT INTO schedules (academic_year, semester, name, description, start_date, end_date, department_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		schedule.AcademicYear,
		schedule.Semester,
		schedule.Name,
		schedule.Description,
		schedule.StartDate,
		schedule.EndDate,
		schedule.DepartmentID,
		schedule.Status,
	).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, ScheduleTermConstraint) {
			return apperrors.ErrDuplicateSchedule
		}
		return fmt.Errorf("error creating schedule: %w", err)
	}

	return nil
}

// GetByID retrieves a schedule with its sessions. Soft-deleted schedules are
// returned as well; the caller decides whether they are visible.
func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*models.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`

	schedule, err := scanSchedule(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("error retrieving schedule: %w", err)
	}

	sessions, err := r.getSessionsByScheduleID(ctx, id)
	if err != nil {
		return nil, err
	}
	schedule.Sessions = sessions

	return schedule, nil
}

// GetAll retrieves all non-deleted schedules without their sessions.
func (r *ScheduleRepository) GetAll(ctx context.Context) ([]*models.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE is_deleted = FALSE ORDER BY academic_year, semester, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*models.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// ExistsForTerm checks whether a non-deleted schedule already exists for the
// (academicYear, semester, departmentId) triple.
func (r *ScheduleRepository) ExistsForTerm(ctx context.Context, academicYear string, semester int, departmentID *int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM schedules
			WHERE academic_year = $1 AND semester = $2
			  AND department_id IS NOT DISTINCT FROM $3
			  AND is_deleted = FALSE
		)`,
		academicYear, semester, departmentID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking schedule existence: %w", err)
	}

	return exists, nil
}

// Update persists the mutable schedule fields, including status, publish
// attribution and soft-delete markers.
func (r *ScheduleRepository) Update(ctx context.Context, schedule *models.Schedule) error {
	query := `
		UPDATE schedules
		SET name = $1, description = $2, start_date = $3, end_date = $4,
		    status = $5, published_by = $6, published_at = $7,
		    is_deleted = $8, deleted_at = $9, updated_at = NOW()
		WHERE id = $10
	`

	cmdTag, err := r.db.Exec(ctx, query,
		schedule.Name,
		schedule.Description,
		schedule.StartDate,
		schedule.EndDate,
		schedule.Status,
		schedule.PublishedBy,
		schedule.PublishedAt,
		schedule.IsDeleted,
		schedule.DeletedAt,
		schedule.ID,
	)

	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScheduleNotFound
	}

	return nil
}

// InsertSession inserts a session that was already placed on the aggregate.
func (r *ScheduleRepository) InsertSession(ctx context.Context, session *models.CourseSession) error {
	query := `
		INSERT INTO course_sessions (id, schedule_id, course_id, instructor_id, classroom_id,
			day_of_week, start_minutes, end_minutes, session_type, week_number, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		session.ID,
		session.ScheduleID,
		session.CourseID,
		session.InstructorID,
		session.ClassroomID,
		session.DayOfWeek,
		session.TimeSlot.StartMinutes,
		session.TimeSlot.EndMinutes,
		session.SessionType,
		session.WeekNumber,
		session.Notes,
	).Scan(&session.CreatedAt)

	if err != nil {
		return fmt.Errorf("error inserting course session: %w", err)
	}

	return nil
}

// DeleteSession removes a session row from a schedule.
func (r *ScheduleRepository) DeleteSession(ctx context.Context, scheduleID int64, sessionID string) error {
	query := `DELETE FROM course_sessions WHERE id = $1 AND schedule_id = $2`

	cmdTag, err := r.db.Exec(ctx, query, sessionID, scheduleID)
	if err != nil {
		return fmt.Errorf("error deleting course session: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}

	return nil
}

// getSessionsByScheduleID loads all sessions owned by a schedule.
func (r *ScheduleRepository) getSessionsByScheduleID(ctx context.Context, scheduleID int64) ([]*models.CourseSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM course_sessions WHERE schedule_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.CourseSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// scanSchedule reads one schedule row.
func scanSchedule(row pgx.Row) (*models.Schedule, error) {
	var schedule models.Schedule
	err := row.Scan(
		&schedule.ID,
		&schedule.AcademicYear,
		&schedule.Semester,
		&schedule.Name,
		&schedule.Description,
		&schedule.StartDate,
		&schedule.EndDate,
		&schedule.DepartmentID,
		&schedule.Status,
		&schedule.PublishedBy,
		&schedule.PublishedAt,
		&schedule.IsDeleted,
		&schedule.DeletedAt,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// scanSession reads one course session row.
func scanSession(row pgx.Row) (*models.CourseSession, error) {
	var session models.CourseSession
	err := row.Scan(
		&session.ID,
		&session.ScheduleID,
		&session.CourseID,
		&session.InstructorID,
		&session.ClassroomID,
		&session.DayOfWeek,
		&session.TimeSlot.StartMinutes,
		&session.TimeSlot.EndMinutes,
		&session.SessionType,
		&session.WeekNumber,
		&session.Notes,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error scanning course session: %w", err)
	}
	return &session, nil
}
