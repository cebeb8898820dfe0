package domain

import (
	"fmt"
	"time"
)

// ComputeFreshness derives a unit's freshness from its expiry date:
// EXPIRED if the expiry date is before today, EXPIRING if it falls within
// warnWindow days from today (inclusive), OK otherwise. Comparison is by
// calendar date in the location of `today`.
func ComputeFreshness(expiryDate, today time.Time, warnWindow int) Freshness {
	days := daysUntil(expiryDate, today)
	switch {
	case days < 0:
		return FreshnessExpired
	case days <= warnWindow:
		return FreshnessExpiring
	default:
		return FreshnessOK
	}
}

// DDayLabel renders the remaining shelf life as a D-day string:
// "D-3" (expires in 3 days), "D-DAY" (expires today), "D+2" (expired 2 days ago).
func DDayLabel(expiryDate, today time.Time) string {
	days := daysUntil(expiryDate, today)
	switch {
	case days > 0:
		return fmt.Sprintf("D-%d", days)
	case days == 0:
		return "D-DAY"
	default:
		return fmt.Sprintf("D+%d", -days)
	}
}

// daysUntil returns whole calendar days from today to the expiry date.
func daysUntil(expiryDate, today time.Time) int {
	y1, m1, d1 := expiryDate.Date()
	y2, m2, d2 := today.Date()
	expiry := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	now := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(expiry.Sub(now).Hours() / 24)
}
