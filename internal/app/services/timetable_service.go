package services

import (
	"context"
	"fmt"

	"github.com/yigit/uniplan/internal/app/models"
	"github.com/yigit/uniplan/internal/pkg/apperrors"
)

// SessionReader is the read-side storage collaborator for timetable views.
// Implemented by repositories.SessionRepository.
type SessionReader interface {
	GetByClassroom(ctx context.Context, classroomID int64) ([]*models.CourseSession, error)
	GetByInstructor(ctx context.Context, instructorID int64) ([]*models.CourseSession, error)
}

// TimetableService builds read-side projections over course sessions. It
// never mutates schedules.
type TimetableService interface {
	GetClassroomTimetable(ctx context.Context, classroomID int64) ([]*models.CourseSession, error)
	GetInstructorTimetable(ctx context.Context, instructorID int64) ([]*models.CourseSession, error)
}

type timetableService struct {
	sessionRepo SessionReader
}

// NewTimetableService creates a new timetable service instance
func NewTimetableService(sessionRepo SessionReader) TimetableService {
	return &timetableService{
		sessionRepo: sessionRepo,
	}
}

// GetClassroomTimetable retrieves all sessions for a classroom, ordered by
// day of week and start time.
func (s *timetableService) GetClassroomTimetable(ctx context.Context, classroomID int64) ([]*models.CourseSession, error) {
	if classroomID <= 0 {
		return nil, fmt.Errorf("%w: classroom ID must be positive", apperrors.ErrValidationFailed)
	}

	sessions, err := s.sessionRepo.GetByClassroom(ctx, classroomID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving classroom timetable: %w", err)
	}

	models.SortSessions(sessions)
	return sessions, nil
}

// GetInstructorTimetable retrieves all sessions for an instructor, ordered by
// day of week and start time.
func (s *timetableService) GetInstructorTimetable(ctx context.Context, instructorID int64) ([]*models.CourseSession, error) {
	if instructorID <= 0 {
		return nil, fmt.Errorf("%w: instructor ID must be positive", apperrors.ErrValidationFailed)
	}

	sessions, err := s.sessionRepo.GetByInstructor(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving instructor timetable: %w", err)
	}

	models.SortSessions(sessions)
	return sessions, nil
}
