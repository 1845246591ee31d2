package userRepo

import (
	"errors"

	"clearheadspace/models"
)

// ErrNotFound is returned when no user matches the given UID.
var ErrNotFound = errors.New("user not found")

// UserRepository defines methods for user profile data access.
type UserRepository interface {
	// GetByUID retrieves a user profile by Firebase UID.
	GetByUID(uid string) (*models.User, error)
	// Upsert creates or replaces the user profile for its UID.
	Upsert(user *models.User) error
	// SetWelcomeSent flips the user's welcome-email flag.
	SetWelcomeSent(uid string) error
	// Delete removes the user profile.
	Delete(uid string) error
}
