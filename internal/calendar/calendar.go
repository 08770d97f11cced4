// Package calendar defines the canonical day representation used across the
// application. A day is a "YYYY-MM-DD" string; because the format is zero
// padded, lexical order equals chronological order and days compare as plain
// strings.
package calendar

import (
	"fmt"
	"time"
)

// DayLayout is the time layout of a canonical day.
const DayLayout = "2006-01-02"

// Format renders t as a canonical day in t's own location.
func Format(t time.Time) string {
	return t.Format(DayLayout)
}

// Today returns the current day in loc.
func Today(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return Format(time.Now().In(loc))
}

// Parse accepts only canonical days. "2024-5-01" and "2024-05-1" are rejected.
func Parse(day string) (time.Time, error) {
	t, err := time.Parse(DayLayout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", day, err)
	}
	if Format(t) != day {
		return time.Time{}, fmt.Errorf("parse day %q: not in %s form", day, DayLayout)
	}
	return t, nil
}

// Valid reports whether day is a canonical day.
func Valid(day string) bool {
	_, err := Parse(day)
	return err == nil
}

// AddDays shifts a canonical day by n calendar days.
func AddDays(day string, n int) (string, error) {
	t, err := Parse(day)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// Window returns the 2*radius+1 consecutive days centred on center.
func Window(center string, radius int) ([]string, error) {
	t, err := Parse(center)
	if err != nil {
		return nil, err
	}
	if radius < 0 {
		radius = 0
	}
	days := make([]string, 0, 2*radius+1)
	for i := -radius; i <= radius; i++ {
		days = append(days, Format(t.AddDate(0, 0, i)))
	}
	return days, nil
}

// Human renders a canonical day as "02 January 2006". Invalid input is
// returned unchanged.
func Human(day string) string {
	t, err := Parse(day)
	if err != nil {
		return day
	}
	return t.Format("02 January 2006")
}
