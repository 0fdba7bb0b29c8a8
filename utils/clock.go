package utils

import (
	"fmt"
	"time"
)

const (
	clockLayout      = "15:04:05"
	clockLayoutShort = "15:04"
)

// ParseClock parses a time-of-day in "HH:MM:SS" or "HH:MM" form.
func ParseClock(s string) (time.Time, error) {
	if t, err := time.Parse(clockLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(clockLayoutShort, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return t, nil
}

// FormatClock renders a timestamp's time-of-day as "HH:MM:SS".
func FormatClock(t time.Time) string {
	return t.Format(clockLayout)
}

// CombineDateClock builds a full timestamp from a calendar date and an
// "HH:MM[:SS]" clock string, in the date's location.
func CombineDateClock(date time.Time, clock string) (time.Time, error) {
	c, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		c.Hour(), c.Minute(), c.Second(), 0, date.Location()), nil
}

// DateOf truncates a timestamp to midnight of its calendar day.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
