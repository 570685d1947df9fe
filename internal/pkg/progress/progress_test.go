package progress

import (
	"math"
	"testing"
	"time"
)

func TestDaysUntil(t *testing.T) {
	now := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{"same day", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 0},
		{"tomorrow early", time.Date(2024, 3, 2, 0, 5, 0, 0, time.UTC), 1},
		{"ten days", now.AddDate(0, 0, 10), 10},
		{"past", time.Date(2024, 2, 25, 12, 0, 0, 0, time.UTC), -5},
		{"leap day", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(tt.due, now); got != tt.want {
				t.Errorf("DaysUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysUntilLocalNow(t *testing.T) {
	edt := time.FixedZone("EDT", -4*60*60)
	now := time.Date(2025, 9, 5, 10, 0, 0, 0, edt)
	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{"utc date ahead", time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), 10},
		{"utc date today", time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC), 0},
		{"utc date yesterday", time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC), -1},
		{"utc date tomorrow", time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(tt.due, now); got != tt.want {
				t.Errorf("DaysUntil() = %d, want %d", got, tt.want)
			}
		})
	}

	days := DaysUntil(time.Date(2025, 9, 13, 0, 0, 0, 0, time.UTC), now)
	if days != 8 {
		t.Fatalf("DaysUntil() = %d, want 8", days)
	}
	if IsUrgent(days, DashboardUrgentDays) {
		t.Errorf("8 days should not be urgent with a %d-day threshold", DashboardUrgentDays)
	}
}

func TestUrgencyThresholds(t *testing.T) {
	now := time.Now()
	days := DaysUntil(now.AddDate(0, 0, 10), now)
	if !IsUrgent(days, VisaUrgentDays) {
		t.Errorf("10 days should be urgent with a %d-day threshold", VisaUrgentDays)
	}
	if IsUrgent(days, DashboardUrgentDays) {
		t.Errorf("10 days should not be urgent with a %d-day threshold", DashboardUrgentDays)
	}
	if !IsUrgent(-3, DashboardUrgentDays) {
		t.Error("overdue deadlines are urgent")
	}
}

func TestVisaValidityWidth(t *testing.T) {
	tests := []struct {
		days int
		want float64
	}{
		{0, 5},
		{-30, 5},
		{365, 5},
		{730, 5},
		{1, 100 - 100.0/365},
		{73, 80},
	}
	for _, tt := range tests {
		if got := VisaValidityWidth(tt.days); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("VisaValidityWidth(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestCompletionPercent(t *testing.T) {
	if got := CompletionPercent(250, 1000); got != 25 {
		t.Errorf("CompletionPercent(250, 1000) = %v, want 25", got)
	}
	if got := CompletionPercent(0, 0); got != 0 {
		t.Errorf("CompletionPercent(0, 0) = %v, want 0", got)
	}
	if got := CompletionPercent(1000, 1000); got != 100 {
		t.Errorf("CompletionPercent(1000, 1000) = %v, want 100", got)
	}
}

func TestWarnings(t *testing.T) {
	if !NeedsRenewal(90) || NeedsRenewal(91) {
		t.Error("renewal warning should start at 90 days")
	}
	if ResidencyDeadlineNear(0) || !ResidencyDeadlineNear(30) || ResidencyDeadlineNear(31) {
		t.Error("residency warning covers 1..30 days")
	}
}
