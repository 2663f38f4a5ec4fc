package helpers

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yigit/uniplan/internal/pkg/apperrors"
)

// DateLayout is the wire format for schedule start/end dates.
const DateLayout = "2006-01-02"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDate parses a "YYYY-MM-DD" date string into a UTC time.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format, got %q", apperrors.ErrValidationFailed, value)
	}
	return date, nil
}
