package domain

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeFreshness(t *testing.T) {
	t.Parallel()

	today := date(2025, time.March, 10)

	tests := []struct {
		name       string
		expiry     time.Time
		warnWindow int
		want       Freshness
	}{
		{"expired yesterday", date(2025, time.March, 9), 3, FreshnessExpired},
		{"expired long ago", date(2025, time.January, 1), 3, FreshnessExpired},
		{"expires today", date(2025, time.March, 10), 3, FreshnessExpiring},
		{"within window", date(2025, time.March, 13), 3, FreshnessExpiring},
		{"just outside window", date(2025, time.March, 14), 3, FreshnessOK},
		{"far future", date(2025, time.June, 1), 3, FreshnessOK},
		{"zero window, expires today", date(2025, time.March, 10), 0, FreshnessExpiring},
		{"zero window, expires tomorrow", date(2025, time.March, 11), 0, FreshnessOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ComputeFreshness(tt.expiry, today, tt.warnWindow); got != tt.want {
				t.Errorf("ComputeFreshness(%v) = %v, want %v", tt.expiry, got, tt.want)
			}
		})
	}
}

func TestComputeFreshness_IgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	// 23:59 on the expiry date is still the expiry date, not expired.
	today := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)
	expiry := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	if got := ComputeFreshness(expiry, today, 3); got != FreshnessExpiring {
		t.Errorf("got %v, want EXPIRING", got)
	}
}

func TestDDayLabel(t *testing.T) {
	t.Parallel()

	today := date(2025, time.March, 10)

	tests := []struct {
		expiry time.Time
		want   string
	}{
		{date(2025, time.March, 13), "D-3"},
		{date(2025, time.March, 11), "D-1"},
		{date(2025, time.March, 10), "D-DAY"},
		{date(2025, time.March, 9), "D+1"},
		{date(2025, time.March, 3), "D+7"},
	}

	for _, tt := range tests {
		if got := DDayLabel(tt.expiry, today); got != tt.want {
			t.Errorf("DDayLabel(%v) = %q, want %q", tt.expiry, got, tt.want)
		}
	}
}
