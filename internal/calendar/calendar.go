// Package calendar provides the date arithmetic the scheduling engine
// relies on. Weeks start Monday 00:00:00 in the instant's location.
package calendar

import (
	"sort"
	"time"
)

// WeekStart returns Monday 00:00:00 of the week containing t.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0 ... Sunday = 6
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

// WeekEnd returns the exclusive end of the week containing t
// (the following Monday 00:00:00).
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 7)
}

// InWeek reports whether t falls within [weekStart, weekStart+7d).
func InWeek(t, weekStart time.Time) bool {
	start := WeekStart(weekStart)
	return !t.Before(start) && t.Before(start.AddDate(0, 0, 7))
}

// IsPastWeek reports whether t belongs to a week whose Monday precedes
// the Monday of the week containing now.
func IsPastWeek(t, now time.Time) bool {
	return WeekStart(t).Before(WeekStart(now))
}

// Midnight truncates t to its calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b share a calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// DayBefore compares calendar dates only: it reports whether a's date
// is strictly earlier than b's. Earlier hours on the same day do not
// count as past.
func DayBefore(a, b time.Time) bool {
	return Midnight(a).Before(Midnight(b))
}

// DistinctDays returns the distinct calendar dates of the given
// instants, sorted ascending.
func DistinctDays(instants []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(instants))
	var days []time.Time
	for _, t := range instants {
		d := Midnight(t)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
