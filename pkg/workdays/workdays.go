// Package workdays holds the calendar-date conventions shared by every service:
// dates are UTC midnight time.Time values parsed from YYYY-MM-DD, and a working
// day is a weekday that is not a registered holiday.
package workdays

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// DateLayout is the only wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// Normalize truncates t to UTC midnight.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Days returns every calendar day in [start, end] inclusive, normalized.
func Days(start, end time.Time) []time.Time {
	start, end = Normalize(start), Normalize(end)
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Weekdays returns the Mon-Fri days in [start, end] inclusive.
func Weekdays(start, end time.Time) []time.Time {
	var days []time.Time
	for _, d := range Days(start, end) {
		if !IsWeekend(d) {
			days = append(days, d)
		}
	}
	return days
}

// HolidaySet is a day-granularity membership set over normalized dates.
type HolidaySet map[time.Time]struct{}

// NewHolidaySet builds a set from concrete holiday dates.
func NewHolidaySet(dates []time.Time) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[Normalize(d)] = struct{}{}
	}
	return set
}

// Contains reports whether the set holds t's calendar day.
func (s HolidaySet) Contains(t time.Time) bool {
	_, ok := s[Normalize(t)]
	return ok
}

// Add inserts t's calendar day into the set.
func (s HolidaySet) Add(t time.Time) {
	s[Normalize(t)] = struct{}{}
}

// ExpandYearly returns the yearly occurrences of a recurring date that fall
// inside [start, end]. The stored first occurrence anchors the recurrence.
func ExpandYearly(first, start, end time.Time) ([]time.Time, error) {
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.YEARLY,
		Dtstart: Normalize(first),
		Until:   Normalize(end),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule: %w", err)
	}
	occurrences := r.Between(Normalize(start).Add(-time.Second), Normalize(end), true)
	dates := make([]time.Time, 0, len(occurrences))
	for _, o := range occurrences {
		dates = append(dates, Normalize(o))
	}
	return dates, nil
}

// CountWorkingDays counts the days in [start, end] that are neither weekend
// days nor members of holidays.
func CountWorkingDays(start, end time.Time, holidays HolidaySet) int {
	count := 0
	for _, d := range Days(start, end) {
		if IsWeekend(d) || holidays.Contains(d) {
			continue
		}
		count++
	}
	return count
}
