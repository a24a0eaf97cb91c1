package model

import (
	"math"
	"time"
)

type DueStatus string

const (
	DueOverdue DueStatus = "OVERDUE"
	DueSoon    DueStatus = "DUE_SOON"
	DueOnTime  DueStatus = "ON_TIME"
)

// DueSoonDays is the largest number of remaining days reported as due soon.
const DueSoonDays = 3

// DaysRemaining is ceil((due - now) / 24h).
func DaysRemaining(due, now time.Time) int {
	d := math.Ceil(float64(due.Sub(now)) / float64(24*time.Hour))
	return int(d)
}

// DueStatusAt derives the presentation status of a loan due at due, as seen
// at now. It has no other inputs.
func DueStatusAt(due, now time.Time) DueStatus {
	days := DaysRemaining(due, now)
	switch {
	case days < 0:
		return DueOverdue
	case days <= DueSoonDays:
		return DueSoon
	default:
		return DueOnTime
	}
}

// IsOverdue is the predicate used by overdue listings and statistics.
func IsOverdue(due, now time.Time) bool { return due.Before(now) }

// DayBounds returns [local midnight, next local midnight) around now, in
// now's location.
func DayBounds(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}
