package tool

import (
	"math"
	"time"
)

const dayMillis = int64(24 * time.Hour / time.Millisecond)

// DayWindow returns [start, end) of the calendar day containing t in loc.
// end is the next local midnight, so DST days are 23 or 25 hours long.
func DayWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// CeilDays is ceil((to - from) / 1 day) computed on the millisecond difference.
// Negative fractions round toward zero, so an instant already past reads as 0 or less.
func CeilDays(from, to time.Time) int {
	ms := to.Sub(from).Milliseconds()
	d := math.Ceil(float64(ms) / float64(dayMillis))
	if d == 0 {
		return 0
	}
	return int(d)
}

// AddDays moves t by n calendar days keeping the wall clock time.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}
