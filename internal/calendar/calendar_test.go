package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", date(2025, time.March, 10, 0), date(2025, time.March, 10, 0)},
		{"midweek", date(2025, time.March, 12, 15), date(2025, time.March, 10, 0)},
		{"sunday belongs to preceding monday", date(2025, time.March, 16, 23), date(2025, time.March, 10, 0)},
		{"across month boundary", date(2025, time.April, 2, 9), date(2025, time.March, 31, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsPastWeek(t *testing.T) {
	now := date(2025, time.March, 12, 10) // Wednesday

	if IsPastWeek(date(2025, time.March, 10, 8), now) {
		t.Error("monday of the current week must not be past")
	}
	if !IsPastWeek(date(2025, time.March, 9, 23), now) {
		t.Error("sunday of the previous week must be past")
	}
	if IsPastWeek(date(2025, time.March, 17, 0), now) {
		t.Error("next week must not be past")
	}
}

func TestDayBefore(t *testing.T) {
	now := date(2025, time.March, 12, 14)

	if !DayBefore(date(2025, time.March, 11, 23), now) {
		t.Error("yesterday is before today")
	}
	// Earlier hour on the same day is not "past" at day granularity.
	if DayBefore(date(2025, time.March, 12, 8), now) {
		t.Error("earlier hour today must not count as a past day")
	}
	if DayBefore(date(2025, time.March, 13, 0), now) {
		t.Error("tomorrow is not before today")
	}
}

func TestInWeek(t *testing.T) {
	weekStart := date(2025, time.March, 10, 0)

	if !InWeek(date(2025, time.March, 10, 0), weekStart) {
		t.Error("week start is inclusive")
	}
	if !InWeek(date(2025, time.March, 16, 23), weekStart) {
		t.Error("sunday night is inside the week")
	}
	if InWeek(date(2025, time.March, 17, 0), weekStart) {
		t.Error("next monday is exclusive")
	}
}

func TestDistinctDays(t *testing.T) {
	instants := []time.Time{
		date(2025, time.March, 12, 10),
		date(2025, time.March, 12, 11),
		date(2025, time.March, 10, 9),
		date(2025, time.March, 14, 16),
	}

	days := DistinctDays(instants)
	if len(days) != 3 {
		t.Fatalf("expected 3 distinct days, got %d", len(days))
	}
	want := []time.Time{
		date(2025, time.March, 10, 0),
		date(2025, time.March, 12, 0),
		date(2025, time.March, 14, 0),
	}
	for i, d := range days {
		if !d.Equal(want[i]) {
			t.Errorf("days[%d] = %v, want %v", i, d, want[i])
		}
	}
}
