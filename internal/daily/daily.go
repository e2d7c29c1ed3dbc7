package daily

import (
	"time"
)

// Epoch is the calendar day the schedule starts counting from.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// DateKey returns YYYY-MM-DD of t in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// civil returns midnight UTC of t's calendar date in loc.
func civil(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayIndex returns the number of whole calendar days (in loc) between
// epoch's date and now's date. Days before epoch are negative.
func DayIndex(now, epoch time.Time, loc *time.Location) int {
	e := time.Date(epoch.Year(), epoch.Month(), epoch.Day(), 0, 0, 0, 0, time.UTC)
	return int(civil(now, loc).Sub(e).Hours()) / 24
}

// mod is the non-negative remainder of a / n.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// Index returns the catalog position for a single-round day.
func Index(day, n int) int {
	if n <= 0 {
		return 0
	}
	return mod(day, n)
}

// RoundIndexes spreads one day over rounds distinct catalog positions:
// round r plays (day*rounds + r) mod n.
func RoundIndexes(day, rounds, n int) []int {
	out := make([]int, rounds)
	for r := range out {
		out[r] = Index(day*rounds+r, n)
	}
	return out
}

// Select returns the single-round entry for day.
func Select[T any](entries []T, day int) T {
	return entries[Index(day, len(entries))]
}

// SelectRounds returns the entries for every round of day.
func SelectRounds[T any](entries []T, day, rounds int) []T {
	out := make([]T, rounds)
	for r, i := range RoundIndexes(day, rounds, len(entries)) {
		out[r] = entries[i]
	}
	return out
}
