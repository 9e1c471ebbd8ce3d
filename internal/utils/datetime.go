package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date string cannot be parsed into a
// valid calendar date.
var ErrInvalidDate = errors.New("invalid date format")

// Accepted input layouts, tried in order
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"2 January 2006",
	"01/02/2006",
	"2006/01/02",
}

// NormalizeDate converts a free-form date string into the canonical ISO
// form YYYY-MM-DD. The UTC calendar fields of the parsed value are used
// so the day never drifts with the server timezone.
func NormalizeDate(input string) (string, error) {
	cleaned := strings.TrimSpace(input)
	if cleaned == "" {
		return "", ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.UTC().Format("2006-01-02"), nil
		}
	}
	return "", ErrInvalidDate
}

var (
	time24Pattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	time12Pattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(?i:(AM|PM))$`)
)

// NormalizeTime converts a time string into 24-hour HH:MM form. Already
// canonical input passes through unchanged, and a 12-hour form with an
// AM/PM marker is converted (12 PM stays 12:00, 12 AM becomes 00:00).
// Anything else is returned trimmed but otherwise as-is; this is a
// best-effort normalization, not a validation gate.
func NormalizeTime(input string) string {
	cleaned := strings.TrimSpace(input)

	if time24Pattern.MatchString(cleaned) {
		return cleaned
	}

	match := time12Pattern.FindStringSubmatch(cleaned)
	if match == nil {
		return cleaned
	}

	hours, err := strconv.Atoi(match[1])
	if err != nil {
		return cleaned
	}
	minutes := match[2]
	meridiem := strings.ToUpper(match[3])

	if meridiem == "PM" && hours != 12 {
		hours += 12
	} else if meridiem == "AM" && hours == 12 {
		hours = 0
	}

	return fmt.Sprintf("%02d:%s", hours, minutes)
}
