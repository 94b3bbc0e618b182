// Package clock holds the pure time rules every other feature depends on.
// 日付キーの正規化はすべてここを通すこと（ローカル深夜0時、UTCではない）。
package clock

import (
	"math"
	"time"
)

// Record statuses. Assigned once at check-in, never recomputed.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusHalfDay = "half-day"
)

const (
	DateLayout = "2006-01-02"

	// Check-ins at or after this local hour are late. 10:00:00 itself is late.
	lateHour = 10

	msPerHour = 3_600_000
)

// ValidStatus reports whether s is one of the four known record statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay:
		return true
	}
	return false
}

// NormalizeToDay truncates t to midnight in t's own location.
// The result is the (user_id, date) uniqueness key, so inline
// truncation arithmetic elsewhere is forbidden.
func NormalizeToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day, for inclusive range queries.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999*int(time.Millisecond), t.Location())
}

// MonthRange returns [first day 00:00:00.000, last day 23:59:59.999] of the month.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// ClassifyCheckIn derives the record status from the check-in moment.
func ClassifyCheckIn(t time.Time) string {
	if t.Hour() >= lateHour {
		return StatusLate
	}
	return StatusPresent
}

// ComputeHours converts the check-in/check-out span to hours, 2 decimal places.
func ComputeHours(checkIn, checkOut time.Time) float64 {
	ms := float64(checkOut.Sub(checkIn).Milliseconds())
	return Round2(ms / msPerHour)
}

// Round2 rounds to 2 decimal places (round half away from zero).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
