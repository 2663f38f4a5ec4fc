package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/uniplan/internal/app/models"
)

// SessionRepository provides read-side queries over course sessions across
// schedules. It never mutates; writes go through the owning schedule.
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
	}
}

const sessionViewQuery = `
	SELECT cs.id, cs.schedule_id, cs.course_id, cs.instructor_id, cs.classroom_id,
	       cs.day_of_week, cs.start_minutes, cs.end_minutes, cs.session_type,
	       cs.week_number, cs.notes, cs.created_at
	FROM course_sessions cs
	JOIN schedules s ON s.id = cs.schedule_id
	WHERE s.is_deleted = FALSE AND %s = $1
`

// GetByClassroom retrieves all sessions placed in a classroom, across all
// non-deleted schedules.
func (r *SessionRepository) GetByClassroom(ctx context.Context, classroomID int64) ([]*models.CourseSession, error) {
	return r.querySessions(ctx, fmt.Sprintf(sessionViewQuery, "cs.classroom_id"), classroomID)
}

// GetByInstructor retrieves all sessions taught by an instructor, across all
// non-deleted schedules.
func (r *SessionRepository) GetByInstructor(ctx context.Context, instructorID int64) ([]*models.CourseSession, error) {
	return r.querySessions(ctx, fmt.Sprintf(sessionViewQuery, "cs.instructor_id"), instructorID)
}

func (r *SessionRepository) querySessions(ctx context.Context, query string, arg int64) ([]*models.CourseSession, error) {
	rows, err := r.db.Query(ctx, query, arg)
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
