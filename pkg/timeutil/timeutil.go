// Package timeutil provides UTC calendar-day helpers used by the trend
// calculators. All bucketing is done on UTC dates to keep multi-timezone
// tenants consistent.
package timeutil

import "time"

// DayKeyLayout is the canonical date-string key for daily buckets.
const DayKeyLayout = "2006-01-02"

// TruncateDay returns midnight UTC of the day containing t.
func TruncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey returns the UTC date-string key for t.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyLayout)
}

// DaysBetween returns the number of whole calendar days from a to b,
// both truncated to UTC midnight. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(TruncateDay(b).Sub(TruncateDay(a)).Hours() / 24)
}

// EachDay returns every UTC calendar day from `from` through `to` inclusive,
// each at midnight UTC. Returns nil when `to` precedes `from`.
func EachDay(from, to time.Time) []time.Time {
	start := TruncateDay(from)
	end := TruncateDay(to)
	if end.Before(start) {
		return nil
	}
	days := make([]time.Time, 0, DaysBetween(start, end)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// MonthKey returns the "YYYY-MM" key for the UTC month containing t.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
