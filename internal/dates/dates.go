package dates

import (
	"fmt"
	"math"
	"time"

	"habitboard/internal/constants"
)

// DayID projects a point in time to its calendar-day identifier (YYYY-MM-DD)
// in the time zone of t. Repeated calls within the same day are stable.
func DayID(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Today returns the current day id in the local time zone.
func Today() string {
	return DayID(time.Now())
}

// IsToday reports whether day equals today's day id.
func IsToday(day string) bool {
	return day == Today()
}

// Parse returns the day anchored at local midnight. A day id that does not
// parse as a calendar day is an error, never a zero value: silently coercing
// it would be indistinguishable from legitimate absence of activity.
func Parse(day string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day id %q: %w", day, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}

// Distance returns the whole-day difference b-a, positive when b is later.
// Both days are anchored at midnight before differencing and the result is
// rounded, so a DST-shortened or -lengthened day cannot perturb it.
func Distance(a, b string) (int, error) {
	ta, err := Parse(a)
	if err != nil {
		return 0, err
	}
	tb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return int(math.Round(tb.Sub(ta).Hours() / 24)), nil
}

// AddDays returns the day id n calendar days after day (n may be negative).
func AddDays(day string, n int) (string, error) {
	t, err := Parse(day)
	if err != nil {
		return "", err
	}
	return DayID(t.AddDate(0, 0, n)), nil
}

// WeekWindow returns the Sunday-to-Saturday window containing t, oldest first.
func WeekWindow(t time.Time) []string {
	start := t.AddDate(0, 0, -int(t.Weekday()))
	window := make([]string, 7)
	for i := range window {
		window[i] = DayID(start.AddDate(0, 0, i))
	}
	return window
}
