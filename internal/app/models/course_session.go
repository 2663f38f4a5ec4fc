package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yigit/uniplan/internal/pkg/apperrors"
)

// DayOfWeek represents the weekday a session recurs on.
type DayOfWeek string

// Weekdays
const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

var dayOrder = map[DayOfWeek]int{
	Monday:    0,
	Tuesday:   1,
	Wednesday: 2,
	Thursday:  3,
	Friday:    4,
	Saturday:  5,
	Sunday:    6,
}

// ParseDayOfWeek parses a weekday name, case-insensitively.
func ParseDayOfWeek(value string) (DayOfWeek, error) {
	day := DayOfWeek(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := dayOrder[day]; !ok {
		return "", fmt.Errorf("%w: invalid day of week %q", apperrors.ErrValidationFailed, value)
	}
	return day, nil
}

// Order returns the fixed display order of the day, Monday=0 through Sunday=6.
// Conflict detection compares days by equality; the order is only used for
// stable sorting of timetable views.
func (d DayOfWeek) Order() int {
	order, ok := dayOrder[d]
	if !ok {
		return len(dayOrder)
	}
	return order
}

// SessionType classifies a course session.
type SessionType string

// Session types
const (
	SessionTypeLecture SessionType = "lecture"
	SessionTypeLab     SessionType = "lab"
	SessionTypeSeminar SessionType = "seminar"
)

// ParseSessionType parses a session type name, case-insensitively.
func ParseSessionType(value string) (SessionType, error) {
	switch SessionType(strings.ToLower(strings.TrimSpace(value))) {
	case SessionTypeLecture:
		return SessionTypeLecture, nil
	case SessionTypeLab:
		return SessionTypeLab, nil
	case SessionTypeSeminar:
		return SessionTypeSeminar, nil
	default:
		return "", fmt.Errorf("%w: invalid session type %q", apperrors.ErrValidationFailed, value)
	}
}

// CourseSession represents one weekly recurring class meeting inside a
// schedule. Sessions are owned by exactly one Schedule and are created only
// through Schedule.AddCourseSession; their identity never moves to another
// schedule.
type CourseSession struct {
	ID           string      `json:"id" db:"id"`
	ScheduleID   int64       `json:"scheduleId" db:"schedule_id"`
	CourseID     int64       `json:"courseId" db:"course_id"`
	InstructorID *int64      `json:"instructorId,omitempty" db:"instructor_id"` // Nullable
	ClassroomID  int64       `json:"classroomId" db:"classroom_id"`
	DayOfWeek    DayOfWeek   `json:"dayOfWeek" db:"day_of_week"`
	TimeSlot     TimeSlot    `json:"timeSlot"`
	SessionType  SessionType `json:"sessionType" db:"session_type"`
	WeekNumber   *int        `json:"weekNumber,omitempty" db:"week_number"` // Nullable, supports bi-weekly patterns
	Notes        string      `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
}

// SortSessions orders sessions by day of week (Monday first) and then by
// start time. Used by timetable views.
func SortSessions(sessions []*CourseSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].DayOfWeek.Order() != sessions[j].DayOfWeek.Order() {
			return sessions[i].DayOfWeek.Order() < sessions[j].DayOfWeek.Order()
		}
		return sessions[i].TimeSlot.StartMinutes < sessions[j].TimeSlot.StartMinutes
	})
}
