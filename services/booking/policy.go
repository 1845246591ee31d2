package booking

import (
	"fmt"
	"time"

	"clearheadspace/models"
)

// Policy windows for lifecycle transitions.
const (
	// RefundNoticeHours is the minimum notice for a refund-eligible cancellation.
	RefundNoticeHours = 24
	// RescheduleNoticeHours is the minimum notice for a reschedule.
	RescheduleNoticeHours = 4
	// JoinEarlyWindow is how long before the scheduled instant a session opens.
	JoinEarlyWindow = 15 * time.Minute
	// JoinLateWindow is how long after the scheduled instant a session stays joinable.
	JoinLateWindow = 60 * time.Minute
)

// ScheduledAt resolves a booking's date and time into a wall-clock instant in
// the booking's recorded timezone. An empty or unknown timezone falls back to
// UTC.
func ScheduledAt(date, clock, tz string) (time.Time, error) {
	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid scheduled time %q %q: %w", date, clock, err)
	}
	return t, nil
}

// HoursUntil returns the fractional number of hours from now until the
// scheduled instant. Negative once the instant has passed.
func HoursUntil(scheduled, now time.Time) float64 {
	return scheduled.Sub(now).Hours()
}

// CanJoinAt reports whether a session is joinable at the given instant. Only
// confirmed bookings are joinable, from 15 minutes before the scheduled time
// until 60 minutes after it.
func CanJoinAt(b *models.Booking, now time.Time) bool {
	if b.Status != models.BookingStatusConfirmed {
		return false
	}
	scheduled, err := ScheduledAt(b.Date, b.Time, b.Timezone)
	if err != nil {
		return false
	}
	return !now.Before(scheduled.Add(-JoinEarlyWindow)) && !now.After(scheduled.Add(JoinLateWindow))
}
