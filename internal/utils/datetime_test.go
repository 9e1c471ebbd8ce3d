package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"long month form", "November 7, 2025", "2025-11-07"},
		{"short month form", "Nov 7, 2025", "2025-11-07"},
		{"already canonical", "2025-11-07", "2025-11-07"},
		{"rfc3339", "2025-11-07T09:30:00Z", "2025-11-07"},
		{"slash form", "11/07/2025", "2025-11-07"},
		{"date with time", "2025-11-07 18:00", "2025-11-07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDate_Invalid(t *testing.T) {
	for _, input := range []string{"not a date", "", "   ", "2025-13-45"} {
		_, err := NormalizeDate(input)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", input)
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"canonical passes through", "14:30", "14:30"},
		{"midnight passes through", "00:00", "00:00"},
		{"pm conversion", "2:30 PM", "14:30"},
		{"pm without space", "02:30PM", "14:30"},
		{"lowercase meridiem", "2:30pm", "14:30"},
		{"am keeps morning hour", "9:15 AM", "09:15"},
		{"noon stays noon", "12:00 PM", "12:00"},
		{"midnight from 12 am", "12:00 AM", "00:00"},
		{"trims whitespace", "  14:30  ", "14:30"},
		{"unrecognized returned as-is", "half past two", "half past two"},
		{"partial pattern returned as-is", "14:30:45", "14:30:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTime(tt.input))
		})
	}
}

func TestNormalizeTime_Idempotent(t *testing.T) {
	for _, input := range []string{"14:30", "2:30 PM", "12:00 AM"} {
		once := NormalizeTime(input)
		assert.Equal(t, once, NormalizeTime(once), "input %q", input)
	}
}
