// Package period computes the closed date windows used by budgets and
// reports. A window runs from 00:00 on its first day to 23:59:59.999999999 on
// its last day, in the location of the reference time.
package period

import (
	"time"

	"fintrack/internal/domain"
)

// Window is a closed range [Start, End].
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days returns the inclusive number of calendar days the window spans, never less than 1.
func (w Window) Days() int {
	return DaysInclusive(w.Start, w.End)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of t's day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// MonthStart returns midnight on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// Month returns the calendar month monthsAgo months before now's month.
// Month(now, 0) is the current month.
func Month(now time.Time, monthsAgo int) Window {
	y, m, _ := now.Date()
	start := time.Date(y, m-time.Month(monthsAgo), 1, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}

// Week returns the ISO calendar week (Monday to Sunday) containing now.
func Week(now time.Time) Window {
	offset := (int(now.Weekday()) + 6) % 7
	start := StartOfDay(now).AddDate(0, 0, -offset)
	return Window{Start: start, End: start.AddDate(0, 0, 7).Add(-time.Nanosecond)}
}

// Year returns January 1 to December 31 of now's year.
func Year(now time.Time) Window {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: start.AddDate(1, 0, 0).Add(-time.Nanosecond)}
}

// Current returns the window of p that contains now. Unknown periods are
// treated as monthly.
func Current(p domain.Period, now time.Time) Window {
	switch p {
	case domain.PeriodWeekly:
		return Week(now)
	case domain.PeriodYearly:
		return Year(now)
	default:
		return Month(now, 0)
	}
}

// Between widens [from, to] to whole days.
func Between(from, to time.Time) Window {
	return Window{Start: StartOfDay(from), End: EndOfDay(to)}
}

// DaysInclusive counts calendar days from start's date to end's date,
// both included. The result is at least 1.
func DaysInclusive(start, end time.Time) int {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	s := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	days := int(e.Sub(s).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// MonthsIn returns the first instant of every calendar month from
// MonthStart(w.Start) to MonthStart(w.End), ascending.
func MonthsIn(w Window) []time.Time {
	first := MonthStart(w.Start)
	last := MonthStart(w.End.In(w.Start.Location()))

	var months []time.Time
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}
