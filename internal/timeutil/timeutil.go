package timeutil

import (
	"errors"
	"time"
)

// Layouts accepted for time-of-day values coming from clients. Classes and
// reservations carry times of day, not instants.
const (
	TimeOfDayLayout      = "15:04:05"
	TimeOfDayShortLayout = "15:04"
	DateLayout           = "2006-01-02"
)

var ErrInvalidTimeOfDay = errors.New("invalid time of day")

func ParseTimeOfDay(s string) (time.Time, error) {
	if t, err := time.Parse(TimeOfDayLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(TimeOfDayShortLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidTimeOfDay
}

func FormatTimeOfDay(t time.Time) string {
	return t.Format(TimeOfDayLayout)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DateOnly truncates an instant to its calendar date in the instant's location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Combine attaches a time of day to a calendar date.
func Combine(date time.Time, timeOfDay string) (time.Time, error) {
	tod, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0,
		date.Location(),
	), nil
}
