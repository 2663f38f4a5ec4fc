package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/uniplan/internal/pkg/apperrors"
)

// ScheduleStatus represents the lifecycle state of a schedule.
type ScheduleStatus string

// Schedule lifecycle states
const (
	ScheduleStatusDraft     ScheduleStatus = "draft"
	ScheduleStatusActive    ScheduleStatus = "active"
	ScheduleStatusPublished ScheduleStatus = "published"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
)

var academicYearPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// Schedule is the aggregate root for a term's course session placements.
// It owns its sessions exclusively: sessions are created only through
// AddCourseSession and removed only through RemoveCourseSession, and every
// placement is conflict-checked before the session list is mutated.
type Schedule struct {
	ID           int64            `json:"id" db:"id"`
	AcademicYear string           `json:"academicYear" db:"academic_year"`
	Semester     int              `json:"semester" db:"semester"`
	Name         string           `json:"name" db:"name"`
	Description  *string          `json:"description,omitempty" db:"description"` // Nullable
	StartDate    time.Time        `json:"startDate" db:"start_date"`
	EndDate      time.Time        `json:"endDate" db:"end_date"`
	DepartmentID *int64           `json:"departmentId,omitempty" db:"department_id"` // Nullable
	Status       ScheduleStatus   `json:"status" db:"status"`
	Sessions     []*CourseSession `json:"sessions,omitempty"`
	PublishedBy  *int64           `json:"publishedBy,omitempty" db:"published_by"`
	PublishedAt  *time.Time       `json:"publishedAt,omitempty" db:"published_at"`
	IsDeleted    bool             `json:"isDeleted" db:"is_deleted"`
	DeletedAt    *time.Time       `json:"deletedAt,omitempty" db:"deleted_at"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time        `json:"updatedAt" db:"updated_at"`
}

// NewSchedule creates a draft schedule for a term. The uniqueness of
// (academicYear, semester, departmentId) among non-deleted schedules requires
// a cross-aggregate lookup and is checked by the service against storage.
func NewSchedule(academicYear string, semester int, name string, description *string, startDate, endDate time.Time, departmentID *int64) (*Schedule, error) {
	if err := validateAcademicYear(academicYear); err != nil {
		return nil, err
	}
	if semester != 1 && semester != 2 {
		return nil, fmt.Errorf("%w: semester must be 1 or 2", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !startDate.Before(endDate) {
		return nil, fmt.Errorf("%w: start date must be before end date", apperrors.ErrValidationFailed)
	}

	return &Schedule{
		AcademicYear: academicYear,
		Semester:     semester,
		Name:         strings.TrimSpace(name),
		Description:  description,
		StartDate:    startDate,
		EndDate:      endDate,
		DepartmentID: departmentID,
		Status:       ScheduleStatusDraft,
	}, nil
}

// validateAcademicYear checks the "YYYY-YYYY" format with consecutive years.
func validateAcademicYear(academicYear string) error {
	if !academicYearPattern.MatchString(academicYear) {
		return fmt.Errorf("%w: academic year must be in YYYY-YYYY format", apperrors.ErrValidationFailed)
	}

	first, _ := strconv.Atoi(academicYear[:4])
	second, _ := strconv.Atoi(academicYear[5:])
	if second != first+1 {
		return fmt.Errorf("%w: academic year must span two consecutive years", apperrors.ErrValidationFailed)
	}

	return nil
}

// editable reports whether the session list may still be mutated.
func (s *Schedule) editable() bool {
	return s.Status == ScheduleStatusDraft || s.Status == ScheduleStatusActive
}

// AddCourseSession validates and places a new weekly session. The placement
// is conflict-checked against every current session before anything is
// appended; on any error the schedule is left unchanged.
func (s *Schedule) AddCourseSession(courseID int64, instructorID *int64, classroomID int64, dayOfWeek, startTime, endTime, sessionType string, weekNumber *int, notes string) (*CourseSession, error) {
	if !s.editable() {
		return nil, fmt.Errorf("%w: cannot add sessions to a %s schedule", apperrors.ErrInvalidStateTransition, s.Status)
	}
	if courseID <= 0 {
		return nil, fmt.Errorf("%w: course ID must be positive", apperrors.ErrValidationFailed)
	}
	if classroomID <= 0 {
		return nil, fmt.Errorf("%w: classroom ID must be positive", apperrors.ErrValidationFailed)
	}
	if weekNumber != nil && *weekNumber <= 0 {
		return nil, fmt.Errorf("%w: week number must be positive", apperrors.ErrValidationFailed)
	}

	day, err := ParseDayOfWeek(dayOfWeek)
	if err != nil {
		return nil, err
	}

	kind, err := ParseSessionType(sessionType)
	if err != nil {
		return nil, err
	}

	slot, err := ParseTimeSlot(startTime, endTime)
	if err != nil {
		return nil, err
	}

	session := &CourseSession{
		ID:           uuid.New().String(),
		ScheduleID:   s.ID,
		CourseID:     courseID,
		InstructorID: instructorID,
		ClassroomID:  classroomID,
		DayOfWeek:    day,
		TimeSlot:     slot,
		SessionType:  kind,
		WeekNumber:   weekNumber,
		Notes:        notes,
		CreatedAt:    time.Now(),
	}

	if conflict := findCandidateConflict(s.Sessions, session); conflict != nil {
		return nil, &ConflictError{Conflict: *conflict}
	}

	s.Sessions = append(s.Sessions, session)
	return session, nil
}

// RemoveCourseSession removes a session by id.
func (s *Schedule) RemoveCourseSession(sessionID string) error {
	if !s.editable() {
		return fmt.Errorf("%w: cannot remove sessions from a %s schedule", apperrors.ErrInvalidStateTransition, s.Status)
	}

	for i, session := range s.Sessions {
		if session.ID == sessionID {
			s.Sessions = append(s.Sessions[:i], s.Sessions[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("%w: session %s", apperrors.ErrSessionNotFound, sessionID)
}

// FindConflicts runs the full pairwise conflict audit over all sessions.
// It is read-only.
func (s *Schedule) FindConflicts() []SessionConflict {
	return FindSessionConflicts(s.Sessions)
}

// Activate moves a draft schedule into the active state.
func (s *Schedule) Activate() error {
	if s.Status != ScheduleStatusDraft {
		return fmt.Errorf("%w: only a draft schedule can be activated, current status is %s", apperrors.ErrInvalidStateTransition, s.Status)
	}
	s.Status = ScheduleStatusActive
	return nil
}

// Publish moves an active schedule into the published state and records the
// publishing user and timestamp. The acting user id is passed explicitly,
// never resolved from ambient context.
func (s *Schedule) Publish(publishedBy int64) error {
	if s.Status != ScheduleStatusActive {
		return fmt.Errorf("%w: only an active schedule can be published, current status is %s", apperrors.ErrInvalidStateTransition, s.Status)
	}

	now := time.Now()
	s.Status = ScheduleStatusPublished
	s.PublishedBy = &publishedBy
	s.PublishedAt = &now
	return nil
}

// Cancel cancels a draft or active schedule. A published schedule cannot be
// cancelled.
func (s *Schedule) Cancel() error {
	if s.Status != ScheduleStatusDraft && s.Status != ScheduleStatusActive {
		return fmt.Errorf("%w: cannot cancel a %s schedule", apperrors.ErrInvalidStateTransition, s.Status)
	}
	s.Status = ScheduleStatusCancelled
	return nil
}

// UpdateMetadata changes the descriptive fields only. The status is never
// touched here; all transitions go through Activate, Publish and Cancel.
func (s *Schedule) UpdateMetadata(name string, description *string, startDate, endDate time.Time) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !startDate.Before(endDate) {
		return fmt.Errorf("%w: start date must be before end date", apperrors.ErrValidationFailed)
	}

	s.Name = strings.TrimSpace(name)
	s.Description = description
	s.StartDate = startDate
	s.EndDate = endDate
	return nil
}

// Delete marks the schedule as soft-deleted. Owned sessions are kept but
// become inaccessible through the deleted schedule.
func (s *Schedule) Delete() {
	if s.IsDeleted {
		return
	}
	now := time.Now()
	s.IsDeleted = true
	s.DeletedAt = &now
}

// Restore clears the soft-delete markers.
func (s *Schedule) Restore() {
	s.IsDeleted = false
	s.DeletedAt = nil
}
