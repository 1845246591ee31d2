package bookingRepo

import (
	"errors"
	"time"

	"clearheadspace/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned when no booking matches the given identifier.
var ErrNotFound = errors.New("booking not found")

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// GetByUser retrieves all bookings made by a user, newest first.
	GetByUser(userID string) ([]models.Booking, error)
	// GetAll retrieves every booking, newest first.
	GetAll() ([]models.Booking, error)
	// UpdateWithDocument patches a booking document with the specified update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
	// DueForReminder retrieves confirmed bookings on the given date whose
	// reminder has not been sent yet.
	DueForReminder(date string) ([]models.Booking, error)
	// MarkReminderSent flips the booking's reminder flag.
	MarkReminderSent(id string) error
	// CreatedSince retrieves bookings created at or after the given instant.
	CreatedSince(since time.Time) ([]models.Booking, error)
	// ConfirmedByUser retrieves a user's bookings still in the confirmed state.
	ConfirmedByUser(userID string) ([]models.Booking, error)
}
