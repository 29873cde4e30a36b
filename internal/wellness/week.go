// Package wellness computes the weekly wellness score from mood, cognitive,
// checklist and weekly quiz activity.
package wellness

import "time"

// Week is a Monday-start calendar week. End is exclusive (the next Monday 00:00).
type Week struct {
	Start time.Time
	End   time.Time
}

// WeekOf returns the Monday-start week containing t in loc.
func WeekOf(t time.Time, loc *time.Location) Week {
	local := t.In(loc)
	offset := (int(local.Weekday()) + 6) % 7 // Monday = 0
	y, m, d := local.Date()
	start := time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	return Week{Start: start, End: start.AddDate(0, 0, 7)}
}

// Contains reports whether t falls inside the week.
func (w Week) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Days returns the start of each day of the week, Monday first.
func (w Week) Days() []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i)
	}
	return days
}

// LastDay returns the start of the Sunday of the week.
func (w Week) LastDay() time.Time {
	return w.Start.AddDate(0, 0, 6)
}
