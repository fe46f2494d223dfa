// Package timeutil provides date and time helpers for exam scheduling:
// ISO-8601 formats, parsing, and day arithmetic. All computation is done in
// UTC; exam dates are civil dates without timezone semantics.
package timeutil

import (
	"fmt"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// FORMATS
// ══════════════════════════════════════════════════════════════════════════════

const (
	// DateFormat is the ISO-8601 date layout used in CSV records.
	DateFormat = "2006-01-02"

	// TimeFormat is the wall clock layout used in CSV records.
	TimeFormat = "15:04"

	// DateTimeFormat combines both.
	DateTimeFormat = "2006-01-02 15:04"
)

// FormatDate renders a time as an ISO-8601 date.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// FormatTime renders a time as a wall clock string.
func FormatTime(t time.Time) string {
	return t.Format(TimeFormat)
}

// FormatDateTime renders a time as date plus wall clock.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeFormat)
}

// ParseDate parses an ISO-8601 date.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, value, time.UTC)
}

// ParseTime parses a wall clock string.
func ParseTime(value string) (time.Time, error) {
	return time.ParseInLocation(TimeFormat, value, time.UTC)
}

// ══════════════════════════════════════════════════════════════════════════════
// DAY ARITHMETIC
// ══════════════════════════════════════════════════════════════════════════════

// UTCDate returns midnight UTC of the given civil date.
func UTCDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StartOfDay returns midnight of the given day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the given day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// IsSameDay checks if two times are on the same calendar day.
func IsSameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsConsecutiveDay checks if t2 is the day right after t1.
func IsConsecutiveDay(t1, t2 time.Time) bool {
	return IsSameDay(t1.AddDate(0, 0, 1), t2)
}

// DaysBetween returns the number of calendar days between two times.
// The result is negative when t2 is before t1.
func DaysBetween(t1, t2 time.Time) int {
	d1 := StartOfDay(t1.UTC())
	d2 := StartOfDay(t2.UTC())
	return int(d2.Sub(d1).Hours() / 24)
}

// ══════════════════════════════════════════════════════════════════════════════
// MINUTES
// ══════════════════════════════════════════════════════════════════════════════

// MinutesOfDay returns the minute offset from midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// FormatMinutes renders a minute offset from midnight as a wall clock string.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
