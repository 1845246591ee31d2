package booking

import (
	"testing"
	"time"

	"clearheadspace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduledAt(t *testing.T) {
	got, err := ScheduledAt("2024-06-10", "09:00", "UTC")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), got)

	ny, err := ScheduledAt("2024-06-10", "09:00", "America/New_York")
	require.NoError(t, err)
	loc, _ := time.LoadLocation("America/New_York")
	assert.Equal(t, time.Date(2024, 6, 10, 9, 0, 0, 0, loc), ny)

	// Unknown timezone falls back to UTC instead of failing.
	fallback, err := ScheduledAt("2024-06-10", "09:00", "Not/AZone")
	require.NoError(t, err)
	assert.Equal(t, got, fallback)

	_, err = ScheduledAt("not-a-date", "09:00", "UTC")
	assert.Error(t, err)
}

func TestHoursUntil(t *testing.T) {
	now := time.Date(2024, 6, 9, 8, 0, 0, 0, time.UTC)
	scheduled := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	assert.InDelta(t, 25.0, HoursUntil(scheduled, now), 1e-9)
	assert.InDelta(t, -25.0, HoursUntil(now, scheduled), 1e-9)
}

func TestCanJoinAt(t *testing.T) {
	b := &models.Booking{
		Status:   models.BookingStatusConfirmed,
		Date:     "2024-06-10",
		Time:     "09:00",
		Timezone: "UTC",
	}
	scheduled := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"sixteen minutes early", scheduled.Add(-16 * time.Minute), false},
		{"fifteen minutes early", scheduled.Add(-15 * time.Minute), true},
		{"on time", scheduled, true},
		{"one hour late", scheduled.Add(60 * time.Minute), true},
		{"over an hour late", scheduled.Add(61 * time.Minute), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanJoinAt(b, tc.at))
		})
	}

	cancelled := *b
	cancelled.Status = models.BookingStatusCancelled
	assert.False(t, CanJoinAt(&cancelled, scheduled))
}
