// Package progress holds the date and percentage math behind the portal's
// badges, progress bars and deadline urgency.
package progress

import (
	"math"
	"time"
)

// Urgency thresholds in days
const (
	DashboardUrgentDays = 7
	VisaUrgentDays      = 14

	// VisaRenewalWarningDays marks a visa as due for renewal
	VisaRenewalWarningDays = 90
	// ResidencyWarningDays marks an approaching registration deadline
	ResidencyWarningDays = 30

	visaValidityFloor = 5.0
)

// DaysUntil returns the calendar-day difference between due and now.
// Each side is read as a calendar date in its own location, so a date-only
// due value stored as UTC midnight keeps its day. Past dates give negative values.
func DaysUntil(due, now time.Time) int {
	d := dateOf(due)
	n := dateOf(now)
	return int(math.Round(d.Sub(n).Hours() / 24))
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsUrgent reports whether a deadline days away crosses the threshold
func IsUrgent(days, threshold int) bool {
	return days <= threshold
}

// VisaValidityWidth returns the width in percent of the visa validity bar.
// An expired or expiring visa sits at the floor.
func VisaValidityWidth(days int) float64 {
	if days <= 0 {
		return visaValidityFloor
	}
	width := 100 - float64(days)/365*100
	if width < visaValidityFloor {
		return visaValidityFloor
	}
	if width > 100 {
		return 100
	}
	return width
}

// CompletionPercent returns paid as a percentage of total, 0 when nothing is due
func CompletionPercent(paid, total float64) float64 {
	if total == 0 {
		return 0
	}
	return paid / total * 100
}

// NeedsRenewal reports whether a visa expiring in days should show the renewal warning
func NeedsRenewal(days int) bool {
	return days <= VisaRenewalWarningDays
}

// ResidencyDeadlineNear reports whether the registration deadline is close but not passed
func ResidencyDeadlineNear(days int) bool {
	return days > 0 && days <= ResidencyWarningDays
}
