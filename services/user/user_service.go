package user

import (
	"errors"
	"fmt"
	"time"

	bookingRepo "clearheadspace/database/repository/booking"
	userRepo "clearheadspace/database/repository/user"
	"clearheadspace/models"
	"clearheadspace/services/notification"
	"clearheadspace/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ErrNotFound is returned when the caller has no stored profile yet.
var ErrNotFound = errors.New("profile not found")

// ProfileRequest carries the editable profile fields.
type ProfileRequest struct {
	FirstName   string   `json:"firstName" validate:"required,max=100"`
	LastName    string   `json:"lastName" validate:"max=100"`
	Preferences []string `json:"preferences" validate:"max=20,dive,max=60"`
}

// UserService manages user profiles and their lifecycle hooks.
type UserService interface {
	// SaveProfile creates or updates the caller's profile. The first save
	// triggers a one-time welcome email.
	SaveProfile(uid, email string, req ProfileRequest) (*models.User, error)
	// GetProfile fetches the caller's profile.
	GetProfile(uid string) (*models.User, error)
	// DeleteAccount cancels the user's confirmed bookings and removes the
	// profile.
	DeleteAccount(uid string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	UserRepo    userRepo.UserRepository
	BookingRepo bookingRepo.BookingRepository
	Dispatcher  notification.Dispatcher
}

func NewDefaultUserService(ur userRepo.UserRepository, br bookingRepo.BookingRepository, d notification.Dispatcher) *DefaultUserService {
	return &DefaultUserService{UserRepo: ur, BookingRepo: br, Dispatcher: d}
}

func (s *DefaultUserService) SaveProfile(uid, email string, req ProfileRequest) (*models.User, error) {
	now := time.Now().UTC()

	existing, err := s.UserRepo.GetByUID(uid)
	if err != nil && !errors.Is(err, userRepo.ErrNotFound) {
		return nil, err
	}

	u := &models.User{
		UID:         uid,
		Email:       email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Preferences: req.Preferences,
		UpdatedAt:   now,
	}
	if existing != nil {
		u.WelcomeSent = existing.WelcomeSent
		u.CreatedAt = existing.CreatedAt
	} else {
		u.CreatedAt = now
	}

	if err := s.UserRepo.Upsert(u); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	if !u.WelcomeSent {
		if err := s.Dispatcher.Dispatch(notification.WelcomePayload(u)); err != nil {
			utils.GetLogger().Warn("failed to dispatch welcome email",
				zap.String("uid", uid), zap.Error(err))
		} else if err := s.UserRepo.SetWelcomeSent(uid); err != nil {
			utils.GetLogger().Warn("failed to flip welcome flag",
				zap.String("uid", uid), zap.Error(err))
		} else {
			u.WelcomeSent = true
		}
	}
	return u, nil
}

func (s *DefaultUserService) GetProfile(uid string) (*models.User, error) {
	u, err := s.UserRepo.GetByUID(uid)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *DefaultUserService) DeleteAccount(uid string) error {
	logger := utils.GetLogger()

	confirmed, err := s.BookingRepo.ConfirmedByUser(uid)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, b := range confirmed {
		if err := s.BookingRepo.UpdateWithDocument(b.ID, bson.M{"$set": bson.M{
			"status":             models.BookingStatusCancelled,
			"cancellationReason": "Account deleted",
			"cancelledAt":        now,
			"cancelledBy":        "system",
			"refundEligible":     false,
			"updatedAt":          now,
		}}); err != nil {
			logger.Warn("failed to cancel booking during account deletion",
				zap.String("uid", uid),
				zap.String("bookingId", b.ID),
				zap.Error(err))
		}
	}

	if err := s.UserRepo.Delete(uid); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	logger.Info("account deleted",
		zap.String("uid", uid),
		zap.Int("cancelledBookings", len(confirmed)))
	return nil
}
