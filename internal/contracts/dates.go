package contracts

import (
	"math"
	"sort"
	"time"
)

// DateLayout is the calendar date format used across the CLI and API
const DateLayout = "2006-01-02"

// DateOnly drops the time of day, keeping the calendar date in UTC
// 시각 무시, 달력 날짜만 비교
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar date
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// DaysBetween returns whole calendar days from a to b (negative if b is before a)
func DaysBetween(a, b time.Time) int {
	hours := DateOnly(b).Sub(DateOnly(a)).Hours()
	return int(math.Round(hours / 24))
}

// HorizonEnd returns the last date of the validation window (scoreDate + 90d)
func HorizonEnd(scoreDate time.Time) time.Time {
	return DateOnly(scoreDate).AddDate(0, 0, HorizonDays)
}

// ParseDate parses YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DefaultRecentWindowDays limits routine evaluation to recent score files
const DefaultRecentWindowDays = 100

// RecentDates keeps dates within windowDays of now (inclusive), newest first.
// windowDays <= 0 keeps everything.
func RecentDates(dates []time.Time, now time.Time, windowDays int) []time.Time {
	cutoff := DateOnly(now).AddDate(0, 0, -windowDays)

	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if windowDays > 0 && DateOnly(d).Before(cutoff) {
			continue
		}
		out = append(out, DateOnly(d))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out
}
