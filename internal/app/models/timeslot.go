package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yigit/uniplan/internal/pkg/apperrors"
)

// Session duration limits in minutes
const (
	MinSessionDuration = 40
	MaxSessionDuration = 240
)

// TimeSlot represents a start/end time-of-day interval for a course session.
// Times are stored as minutes since midnight. The value is immutable and
// compared by value.
type TimeSlot struct {
	StartMinutes int `json:"startMinutes" db:"start_minutes"`
	EndMinutes   int `json:"endMinutes" db:"end_minutes"`
}

// NewTimeSlot creates a time slot from minutes since midnight.
// The end must come after the start and the duration must stay
// within [MinSessionDuration, MaxSessionDuration].
func NewTimeSlot(startMinutes, endMinutes int) (TimeSlot, error) {
	if startMinutes < 0 || startMinutes >= 24*60 {
		return TimeSlot{}, fmt.Errorf("%w: start time out of range", apperrors.ErrValidationFailed)
	}
	if endMinutes <= 0 || endMinutes > 24*60 {
		return TimeSlot{}, fmt.Errorf("%w: end time out of range", apperrors.ErrValidationFailed)
	}
	if endMinutes <= startMinutes {
		return TimeSlot{}, fmt.Errorf("%w: end time must be after start time", apperrors.ErrValidationFailed)
	}

	duration := endMinutes - startMinutes
	if duration < MinSessionDuration {
		return TimeSlot{}, fmt.Errorf("%w: session must last at least %d minutes", apperrors.ErrValidationFailed, MinSessionDuration)
	}
	if duration > MaxSessionDuration {
		return TimeSlot{}, fmt.Errorf("%w: session must not last more than %d minutes", apperrors.ErrValidationFailed, MaxSessionDuration)
	}

	return TimeSlot{StartMinutes: startMinutes, EndMinutes: endMinutes}, nil
}

// ParseTimeSlot creates a time slot from "HH:MM" 24-hour clock strings.
func ParseTimeSlot(startTime, endTime string) (TimeSlot, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return TimeSlot{}, err
	}

	end, err := ParseClock(endTime)
	if err != nil {
		return TimeSlot{}, err
	}

	return NewTimeSlot(start, end)
}

// ParseClock parses an "HH:MM" 24-hour clock string into minutes since midnight.
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: time must be in HH:MM format, got %q", apperrors.ErrValidationFailed, value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: invalid hour in %q", apperrors.ErrValidationFailed, value)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: invalid minute in %q", apperrors.ErrValidationFailed, value)
	}

	return hours*60 + minutes, nil
}

// FormatClock renders minutes since midnight as an "HH:MM" string.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ConflictsWith reports whether two time slots overlap. The comparison is
// half-open: slots that only touch at an endpoint do not conflict.
func (t TimeSlot) ConflictsWith(other TimeSlot) bool {
	return t.StartMinutes < other.EndMinutes && t.EndMinutes > other.StartMinutes
}

// DurationMinutes returns the slot length in minutes.
func (t TimeSlot) DurationMinutes() int {
	return t.EndMinutes - t.StartMinutes
}

// StartClock returns the start time as an "HH:MM" string.
func (t TimeSlot) StartClock() string {
	return FormatClock(t.StartMinutes)
}

// EndClock returns the end time as an "HH:MM" string.
func (t TimeSlot) EndClock() string {
	return FormatClock(t.EndMinutes)
}

// String renders the slot as "HH:MM-HH:MM".
func (t TimeSlot) String() string {
	return t.StartClock() + "-" + t.EndClock()
}
