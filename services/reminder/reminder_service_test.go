package reminder

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	bookingRepo "clearheadspace/database/repository/booking"
	"clearheadspace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newMemBookingRepo(bookings ...*models.Booking) *memBookingRepo {
	r := &memBookingRepo{bookings: make(map[string]*models.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *memBookingRepo) Create(b *models.Booking) error { r.bookings[b.ID] = b; return nil }

func (r *memBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return b, nil
}

func (r *memBookingRepo) GetByUser(string) ([]models.Booking, error) { return nil, nil }
func (r *memBookingRepo) GetAll() ([]models.Booking, error)          { return nil, nil }

func (r *memBookingRepo) UpdateWithDocument(id string, doc bson.M) error { return nil }

func (r *memBookingRepo) DueForReminder(date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Date == date && b.Status == models.BookingStatusConfirmed && !b.ReminderSent {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) MarkReminderSent(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.ReminderSent = true
	return nil
}

func (r *memBookingRepo) CreatedSince(time.Time) ([]models.Booking, error) { return nil, nil }
func (r *memBookingRepo) ConfirmedByUser(string) ([]models.Booking, error) { return nil, nil }

// flakyNotifier fails for a fixed set of recipients.
type flakyNotifier struct {
	mu      sync.Mutex
	failFor map[string]bool
	sent    []string
}

func (n *flakyNotifier) Send(ctx context.Context, payload models.EmailPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor[payload.To] {
		return fmt.Errorf("smtp rejected %s", payload.To)
	}
	n.sent = append(n.sent, payload.To)
	return nil
}

func tomorrowBooking(id, email string) *models.Booking {
	return &models.Booking{
		ID:        id,
		UserEmail: email,
		Date:      time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		Status:    models.BookingStatusConfirmed,
	}
}

func TestRunFlipsFlagOnlyOnSuccess(t *testing.T) {
	repo := newMemBookingRepo(
		tomorrowBooking("b1", "one@example.com"),
		tomorrowBooking("b2", "two@example.com"),
		tomorrowBooking("b3", "three@example.com"),
	)
	notifier := &flakyNotifier{failFor: map[string]bool{"two@example.com": true}}
	svc := NewService(repo, notifier)

	sent, failed, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, 1, failed)

	assert.True(t, repo.bookings["b1"].ReminderSent)
	assert.False(t, repo.bookings["b2"].ReminderSent)
	assert.True(t, repo.bookings["b3"].ReminderSent)
}

func TestRunRetriesOnlyFailed(t *testing.T) {
	repo := newMemBookingRepo(
		tomorrowBooking("b1", "one@example.com"),
		tomorrowBooking("b2", "two@example.com"),
	)
	notifier := &flakyNotifier{failFor: map[string]bool{"two@example.com": true}}
	svc := NewService(repo, notifier)

	_, _, err := svc.Run(context.Background())
	require.NoError(t, err)

	// Second sweep with the failure fixed: only the unflagged booking is
	// picked up, so nobody gets a duplicate.
	notifier.failFor = map[string]bool{}
	sent, failed, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 0, failed)
	assert.Equal(t, []string{"one@example.com", "two@example.com"}, notifier.sent)
}

func TestRunIgnoresOtherDatesAndStatuses(t *testing.T) {
	today := tomorrowBooking("b1", "today@example.com")
	today.Date = time.Now().Format("2006-01-02")
	cancelled := tomorrowBooking("b2", "cancelled@example.com")
	cancelled.Status = models.BookingStatusCancelled
	flagged := tomorrowBooking("b3", "done@example.com")
	flagged.ReminderSent = true

	repo := newMemBookingRepo(today, cancelled, flagged)
	notifier := &flakyNotifier{}
	svc := NewService(repo, notifier)

	sent, failed, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Zero(t, failed)
	assert.Empty(t, notifier.sent)
}
