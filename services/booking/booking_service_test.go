package booking

import (
	"fmt"
	"strings"
	"testing"
	"time"

	bookingRepo "clearheadspace/database/repository/booking"
	providerRepo "clearheadspace/database/repository/provider"
	"clearheadspace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	copied := *b
	f.bookings[b.ID] = &copied
	return nil
}

func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, bookingRepo.ErrNotFound)
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByUser(userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetAll() ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	b, ok := f.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s: %w", id, bookingRepo.ErrNotFound)
	}
	set, _ := updateDoc["$set"].(bson.M)
	if v, ok := set["status"].(string); ok {
		b.Status = v
	}
	if v, ok := set["date"].(string); ok {
		b.Date = v
	}
	if v, ok := set["time"].(string); ok {
		b.Time = v
	}
	if v, ok := set["originalDate"].(string); ok {
		b.OriginalDate = v
	}
	if v, ok := set["originalTime"].(string); ok {
		b.OriginalTime = v
	}
	if v, ok := set["refundEligible"].(bool); ok {
		b.RefundEligible = v
	}
	if v, ok := set["reminderSent"].(bool); ok {
		b.ReminderSent = v
	}
	if v, ok := set["actualDuration"].(int); ok {
		b.ActualDuration = v
	}
	return nil
}

func (f *fakeBookingRepo) DueForReminder(date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Date == date && b.Status == models.BookingStatusConfirmed && !b.ReminderSent {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) MarkReminderSent(id string) error {
	return f.UpdateWithDocument(id, bson.M{"$set": bson.M{"reminderSent": true}})
}

func (f *fakeBookingRepo) CreatedSince(since time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if !b.CreatedAt.Before(since) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ConfirmedByUser(userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID && b.Status == models.BookingStatusConfirmed {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeProviderRepo struct {
	providers      map[string]*models.Provider
	bookingBumps   int
	completedCalls []float64
}

func newFakeProviderRepo(providers ...*models.Provider) *fakeProviderRepo {
	f := &fakeProviderRepo{providers: make(map[string]*models.Provider)}
	for _, p := range providers {
		f.providers[p.ID] = p
	}
	return f
}

func (f *fakeProviderRepo) GetByID(id string) (*models.Provider, error) {
	p, ok := f.providers[id]
	if !ok {
		return nil, fmt.Errorf("provider %s: %w", id, providerRepo.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProviderRepo) GetAllActive() ([]models.Provider, error) {
	var out []models.Provider
	for _, p := range f.providers {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProviderRepo) Search(providerRepo.ProviderSearchCriteria) ([]models.Provider, error) {
	return f.GetAllActive()
}

func (f *fakeProviderRepo) Create(p *models.Provider) error {
	f.providers[p.ID] = p
	return nil
}

func (f *fakeProviderRepo) Update(p *models.Provider) error {
	f.providers[p.ID] = p
	return nil
}

func (f *fakeProviderRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	return nil
}

func (f *fakeProviderRepo) IncrementTotalBookings(id string) error {
	f.bookingBumps++
	return nil
}

func (f *fakeProviderRepo) RecordCompletedSession(id string, amount float64) error {
	f.completedCalls = append(f.completedCalls, amount)
	return nil
}

type fakeDispatcher struct {
	payloads []models.EmailPayload
	fail     bool
}

func (f *fakeDispatcher) Dispatch(p models.EmailPayload) error {
	if f.fail {
		return fmt.Errorf("queue down")
	}
	f.payloads = append(f.payloads, p)
	return nil
}

func testProvider() *models.Provider {
	return &models.Provider{
		ID:       "prov-1",
		Name:     "Dr. Amara Osei",
		Email:    "amara@example.com",
		Type:     models.ProviderTypeTherapist,
		IsActive: true,
	}
}

func newTestService() (*DefaultBookingService, *fakeBookingRepo, *fakeProviderRepo, *fakeDispatcher) {
	br := newFakeBookingRepo()
	pr := newFakeProviderRepo(testProvider())
	d := &fakeDispatcher{}
	return NewDefaultBookingService(br, pr, d), br, pr, d
}

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		ProviderID:    "prov-1",
		Date:          time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		Time:          "10:00",
		Duration:      60,
		SessionFormat: models.SessionFormatVideo,
		Amount:        80,
		Timezone:      "UTC",
	}
}

func TestCreateBooking(t *testing.T) {
	svc, br, pr, d := newTestService()

	created, err := svc.Create(Requester{UID: "user-1", Email: "user@example.com", Name: "Sam"}, validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.BookingStatusConfirmed, created.Status)
	assert.Equal(t, "Dr. Amara Osei", created.ProviderName)
	assert.Equal(t, "amara@example.com", created.ProviderEmail)
	assert.Equal(t, "pending", created.PaymentStatus)
	assert.False(t, created.ReminderSent)

	assert.Contains(t, created.MeetingLink, "/call/"+created.ID)
	assert.Len(t, created.MeetingPassword, 8)
	assert.Equal(t, strings.ToUpper(created.MeetingPassword), created.MeetingPassword)

	stored, err := br.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", stored.UserID)

	assert.Equal(t, 1, pr.bookingBumps)

	// Confirmation goes to both the user and the provider.
	require.Len(t, d.payloads, 2)
	assert.Equal(t, "user@example.com", d.payloads[0].To)
	assert.Equal(t, "amara@example.com", d.payloads[1].To)
	for _, p := range d.payloads {
		assert.Equal(t, models.EmailKindBookingConfirmation, p.Kind)
	}
}

func TestCreateBookingUnknownProvider(t *testing.T) {
	svc, _, _, _ := newTestService()

	req := validRequest()
	req.ProviderID = "ghost"
	_, err := svc.Create(Requester{UID: "user-1"}, req)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "provider", notFound.Resource)
}

func TestCreateBookingSurvivesDispatchFailure(t *testing.T) {
	svc, br, _, d := newTestService()
	d.fail = true

	created, err := svc.Create(Requester{UID: "user-1", Email: "user@example.com"}, validRequest())
	require.NoError(t, err)

	_, err = br.GetByID(created.ID)
	assert.NoError(t, err)
}

func bookingScheduledIn(d time.Duration) *models.Booking {
	at := time.Now().UTC().Add(d)
	return &models.Booking{
		ID:         "bk-1",
		UserID:     "user-1",
		ProviderID: "prov-1",
		Date:       at.Format("2006-01-02"),
		Time:       at.Format("15:04"),
		Status:     models.BookingStatusConfirmed,
		Amount:     80,
		Timezone:   "UTC",
	}
}

func TestCancelRefundEligibility(t *testing.T) {
	cases := []struct {
		name   string
		notice time.Duration
		want   bool
	}{
		{"25 hours notice", 25 * time.Hour, true},
		{"23 hours notice", 23 * time.Hour, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, br, _, _ := newTestService()
			require.NoError(t, br.Create(bookingScheduledIn(tc.notice)))

			cancelled, err := svc.Cancel("bk-1", "Schedule conflict", "user")
			require.NoError(t, err)

			// The transition itself is unconditional; the window only
			// gates the refund.
			assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
			assert.Equal(t, tc.want, cancelled.RefundEligible)
			assert.Equal(t, "Schedule conflict", cancelled.CancellationReason)
			assert.Equal(t, "user", cancelled.CancelledBy)
			assert.NotNil(t, cancelled.CancelledAt)
		})
	}
}

func TestCancelTwice(t *testing.T) {
	svc, br, _, _ := newTestService()
	require.NoError(t, br.Create(bookingScheduledIn(48*time.Hour)))

	_, err := svc.Cancel("bk-1", "first", "user")
	require.NoError(t, err)

	_, err = svc.Cancel("bk-1", "second", "user")
	var already *AlreadyCancelledError
	require.ErrorAs(t, err, &already)
}

func TestCancelUnknownBooking(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Cancel("ghost", "", "user")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRescheduleTooLate(t *testing.T) {
	svc, br, _, _ := newTestService()
	original := bookingScheduledIn(3 * time.Hour)
	require.NoError(t, br.Create(original))

	_, err := svc.Reschedule("bk-1", "2030-01-01", "10:00")
	var policy *PolicyViolationError
	require.ErrorAs(t, err, &policy)

	// Nothing changed.
	stored, err := br.GetByID("bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, stored.Status)
	assert.Equal(t, original.Date, stored.Date)
	assert.Equal(t, original.Time, stored.Time)
}

func TestRescheduleWithNotice(t *testing.T) {
	svc, br, _, _ := newTestService()
	original := bookingScheduledIn(48 * time.Hour)
	require.NoError(t, br.Create(original))

	moved, err := svc.Reschedule("bk-1", "2030-01-01", "11:00")
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusRescheduled, moved.Status)
	assert.Equal(t, "2030-01-01", moved.Date)
	assert.Equal(t, "11:00", moved.Time)
	assert.Equal(t, original.Date, moved.OriginalDate)
	assert.Equal(t, original.Time, moved.OriginalTime)
	assert.NotNil(t, moved.RescheduledAt)

	stored, err := br.GetByID("bk-1")
	require.NoError(t, err)
	assert.Equal(t, original.Date, stored.OriginalDate)
}

func TestCompleteCreditsProvider(t *testing.T) {
	svc, br, pr, _ := newTestService()
	require.NoError(t, br.Create(bookingScheduledIn(-time.Hour)))

	completed, err := svc.Complete("bk-1", 55)
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusCompleted, completed.Status)
	assert.Equal(t, 55, completed.ActualDuration)

	require.Len(t, pr.completedCalls, 1)
	assert.Equal(t, 80.0, pr.completedCalls[0])
}

func TestListForUserScopes(t *testing.T) {
	svc, br, _, _ := newTestService()

	upcoming := bookingScheduledIn(48 * time.Hour)
	upcoming.ID = "bk-up"
	past := bookingScheduledIn(-48 * time.Hour)
	past.ID = "bk-past"
	require.NoError(t, br.Create(upcoming))
	require.NoError(t, br.Create(past))

	got, err := svc.ListForUser("user-1", "upcoming")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bk-up", got[0].ID)

	got, err = svc.ListForUser("user-1", "past")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bk-past", got[0].ID)

	got, err = svc.ListForUser("user-1", "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
