package models

import "time"

// EffectiveStatus is the display-time classification of a task. It is
// derived from TaskStatus and the date range and is never stored.
type EffectiveStatus string

const (
	EffectiveAssigned   EffectiveStatus = "assigned"
	EffectiveInProgress EffectiveStatus = "in_progress"
	EffectiveCompleted  EffectiveStatus = "completed"
	EffectiveBacklog    EffectiveStatus = "backlog"
)

// EffectiveStatus classifies the task as of today, compared at calendar-day
// granularity. A persisted completion always wins; otherwise a task past its
// end date is backlog, a task inside its inclusive window is in progress,
// and a task that has not started yet is assigned.
func (t Task) EffectiveStatus(today time.Time) EffectiveStatus {
	if t.Status == TaskStatusCompleted {
		return EffectiveCompleted
	}

	// Stored dates are civil dates held as UTC midnight; drivers may hand
	// them back in another zone.
	day := dayNumber(today)
	start := dayNumber(t.StartDate.UTC())
	end := dayNumber(t.EndDate.UTC())

	switch {
	case day > end:
		return EffectiveBacklog
	case day >= start:
		return EffectiveInProgress
	default:
		return EffectiveAssigned
	}
}

// dayNumber maps the civil date of t in its own location to an integer that
// orders the same way as the dates.
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// SameDay reports whether a and b fall on the same civil date, each in its
// own location.
func SameDay(a, b time.Time) bool {
	return dayNumber(a) == dayNumber(b)
}

// NormalizeDate drops the time of day, keeping the civil date of t as UTC
// midnight.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
