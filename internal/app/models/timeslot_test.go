package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniplan/internal/pkg/apperrors"
)

func TestNewTimeSlot(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		end     int
		wantErr bool
	}{
		{name: "valid one hour slot", start: 9 * 60, end: 10 * 60},
		{name: "minimum duration accepted", start: 9 * 60, end: 9*60 + MinSessionDuration},
		{name: "maximum duration accepted", start: 9 * 60, end: 9*60 + MaxSessionDuration},
		{name: "below minimum duration rejected", start: 9 * 60, end: 9*60 + MinSessionDuration - 1, wantErr: true},
		{name: "above maximum duration rejected", start: 9 * 60, end: 9*60 + MaxSessionDuration + 1, wantErr: true},
		{name: "end before start rejected", start: 10 * 60, end: 9 * 60, wantErr: true},
		{name: "end equal to start rejected", start: 10 * 60, end: 10 * 60, wantErr: true},
		{name: "negative start rejected", start: -10, end: 60, wantErr: true},
		{name: "end past midnight rejected", start: 23 * 60, end: 24*60 + 30, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := NewTimeSlot(tt.start, tt.end)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, slot.StartMinutes)
			assert.Equal(t, tt.end, slot.EndMinutes)
			assert.Equal(t, tt.end-tt.start, slot.DurationMinutes())
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "00:00", want: 0},
		{input: "09:30", want: 570},
		{input: "23:59", want: 1439},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "9.30", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimeSlot(t *testing.T) {
	slot, err := ParseTimeSlot("09:00", "10:50")
	require.NoError(t, err)
	assert.Equal(t, "09:00", slot.StartClock())
	assert.Equal(t, "10:50", slot.EndClock())
	assert.Equal(t, "09:00-10:50", slot.String())
	assert.Equal(t, 110, slot.DurationMinutes())

	_, err = ParseTimeSlot("09:00", "09:20")
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	_, err = ParseTimeSlot("not-a-time", "10:00")
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestTimeSlotConflictsWith(t *testing.T) {
	mustSlot := func(start, end string) TimeSlot {
		slot, err := ParseTimeSlot(start, end)
		require.NoError(t, err)
		return slot
	}

	tests := []struct {
		name string
		a    TimeSlot
		b    TimeSlot
		want bool
	}{
		{name: "partial overlap", a: mustSlot("09:00", "10:50"), b: mustSlot("10:00", "11:00"), want: true},
		{name: "containment", a: mustSlot("09:00", "12:00"), b: mustSlot("10:00", "11:00"), want: true},
		{name: "identical slots", a: mustSlot("09:00", "10:00"), b: mustSlot("09:00", "10:00"), want: true},
		{name: "back to back does not conflict", a: mustSlot("09:00", "10:50"), b: mustSlot("10:50", "12:00"), want: false},
		{name: "disjoint slots", a: mustSlot("09:00", "10:00"), b: mustSlot("11:00", "12:00"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.ConflictsWith(tt.b))
			// Overlap is symmetric
			assert.Equal(t, tt.want, tt.b.ConflictsWith(tt.a))
		})
	}
}
