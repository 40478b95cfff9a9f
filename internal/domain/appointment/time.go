package appointment

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	// SlotMinutes is the fixed booking grid.
	SlotMinutes = 30
)

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func ValidTime(hm string) bool {
	return timePattern.MatchString(hm)
}

// ParseDate parses a calendar date and strips any time-of-day.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(d), nil
}

// NormalizeDate truncates to midnight UTC so stored dates and queried
// dates always compare equal.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// HourOf returns only the hour component of an "HH:MM" string. Slot
// generation bounds the grid by whole hours; a schedule ending 17:30
// generates the same grid as one ending 17:00.
func HourOf(hm string) int {
	h, _ := strconv.Atoi(strings.SplitN(hm, ":", 2)[0])
	return h
}

func MinuteOf(hm string) int {
	parts := strings.SplitN(hm, ":", 2)
	if len(parts) < 2 {
		return 0
	}
	m, _ := strconv.Atoi(parts[1])
	return m
}
