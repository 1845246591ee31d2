package notification

import (
	"context"

	"clearheadspace/models"
)

// Notifier delivers a single templated email to one recipient.
type Notifier interface {
	Send(ctx context.Context, payload models.EmailPayload) error
}

// Dispatcher hands an email off for asynchronous delivery. Enqueue failures
// are the caller's concern; delivery failures are the worker's.
type Dispatcher interface {
	Dispatch(payload models.EmailPayload) error
}

// ConfirmationPayloads builds the two confirmation emails sent when a booking
// is created, one to the user and one to the provider.
func ConfirmationPayloads(b *models.Booking) []models.EmailPayload {
	return []models.EmailPayload{
		{
			To:      b.UserEmail,
			ToName:  b.UserName,
			Kind:    models.EmailKindBookingConfirmation,
			Booking: b,
		},
		{
			To:      b.ProviderEmail,
			ToName:  b.ProviderName,
			Kind:    models.EmailKindBookingConfirmation,
			Booking: b,
		},
	}
}

// ReminderPayload builds the day-before reminder email for a booking.
func ReminderPayload(b *models.Booking) models.EmailPayload {
	return models.EmailPayload{
		To:      b.UserEmail,
		ToName:  b.UserName,
		Kind:    models.EmailKindBookingReminder,
		Booking: b,
	}
}

// WelcomePayload builds the one-time welcome email for a new user.
func WelcomePayload(u *models.User) models.EmailPayload {
	return models.EmailPayload{
		To:     u.Email,
		ToName: u.FirstName,
		Kind:   models.EmailKindWelcome,
		Data:   map[string]string{"firstName": u.FirstName},
	}
}
