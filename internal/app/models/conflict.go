package models

import (
	"fmt"

	"github.com/yigit/uniplan/internal/pkg/apperrors"
)

// ConflictType identifies which shared resource two sessions collide on.
type ConflictType string

// Conflict types
const (
	ConflictTypeInstructor ConflictType = "instructor"
	ConflictTypeClassroom  ConflictType = "classroom"
)

// SessionConflict describes a double-booking between two sessions of the
// same schedule.
type SessionConflict struct {
	SessionID      string       `json:"sessionId"`
	OtherSessionID string       `json:"otherSessionId"`
	Type           ConflictType `json:"type"`
	Message        string       `json:"message"`
}

// ConflictError is returned when a session placement collides with an
// existing session. It unwraps to apperrors.ErrSessionConflict.
type ConflictError struct {
	Conflict SessionConflict
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return e.Conflict.Message
}

// Unwrap lets errors.Is match against apperrors.ErrSessionConflict.
func (e *ConflictError) Unwrap() error {
	return apperrors.ErrSessionConflict
}

// sessionsClash reports whether two sessions compete for time at all:
// same day, compatible week number and overlapping time slots.
// A week number only restricts the match when both sides specify one.
func sessionsClash(a, b *CourseSession) bool {
	if a.DayOfWeek != b.DayOfWeek {
		return false
	}
	if a.WeekNumber != nil && b.WeekNumber != nil && *a.WeekNumber != *b.WeekNumber {
		return false
	}
	return a.TimeSlot.ConflictsWith(b.TimeSlot)
}

// classifyConflict returns the conflict between two clashing sessions, or nil
// when they share neither instructor nor classroom. The instructor check wins
// when both apply.
func classifyConflict(existing, candidate *CourseSession) *SessionConflict {
	if !sessionsClash(existing, candidate) {
		return nil
	}

	if existing.InstructorID != nil && candidate.InstructorID != nil && *existing.InstructorID == *candidate.InstructorID {
		return &SessionConflict{
			SessionID:      existing.ID,
			OtherSessionID: candidate.ID,
			Type:           ConflictTypeInstructor,
			Message: fmt.Sprintf("instructor %d is already booked on %s %s",
				*existing.InstructorID, existing.DayOfWeek, existing.TimeSlot),
		}
	}

	if existing.ClassroomID == candidate.ClassroomID {
		return &SessionConflict{
			SessionID:      existing.ID,
			OtherSessionID: candidate.ID,
			Type:           ConflictTypeClassroom,
			Message: fmt.Sprintf("classroom %d is already booked on %s %s",
				existing.ClassroomID, existing.DayOfWeek, existing.TimeSlot),
		}
	}

	return nil
}

// findCandidateConflict scans existing sessions once and returns the first
// conflict with the candidate placement, or nil when the placement is free.
func findCandidateConflict(sessions []*CourseSession, candidate *CourseSession) *SessionConflict {
	for _, existing := range sessions {
		if conflict := classifyConflict(existing, candidate); conflict != nil {
			return conflict
		}
	}
	return nil
}

// FindSessionConflicts compares every unordered pair of sessions and returns
// the complete conflict list in discovery order. It never mutates the input
// and never drops or auto-resolves a conflict.
func FindSessionConflicts(sessions []*CourseSession) []SessionConflict {
	var conflicts []SessionConflict
	for i := 0; i < len(sessions); i++ {
		for j := i + 1; j < len(sessions); j++ {
			if conflict := classifyConflict(sessions[i], sessions[j]); conflict != nil {
				conflicts = append(conflicts, *conflict)
			}
		}
	}
	return conflicts
}
