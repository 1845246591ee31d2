package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"clearheadspace/config"
	bookingRepo "clearheadspace/database/repository/booking"
	providerRepo "clearheadspace/database/repository/provider"
	"clearheadspace/models"
	"clearheadspace/services/notification"
	"clearheadspace/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Requester identifies the authenticated caller of a lifecycle operation.
type Requester struct {
	UID   string
	Email string
	Name  string
}

// BookingService owns the booking state machine.
type BookingService interface {
	// Create persists a new confirmed booking and fires confirmation emails.
	Create(requester Requester, req models.BookingRequest) (*models.Booking, error)
	// GetByID fetches a single booking.
	GetByID(id string) (*models.Booking, error)
	// ListForUser returns a user's bookings, optionally filtered to
	// "upcoming" or "past" relative to now.
	ListForUser(userID, scope string) ([]models.Booking, error)
	// Cancel transitions a booking to cancelled and computes refund eligibility.
	Cancel(id, reason, cancelledBy string) (*models.Booking, error)
	// Reschedule moves a booking to a new date and time, subject to the
	// minimum-notice policy.
	Reschedule(id, newDate, newTime string) (*models.Booking, error)
	// Complete marks a session finished and credits the provider's counters.
	Complete(id string, actualDuration int) (*models.Booking, error)
	// CanJoin reports whether the session is joinable right now.
	CanJoin(id string) (bool, *models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	BookingRepo  bookingRepo.BookingRepository
	ProviderRepo providerRepo.ProviderRepository
	Dispatcher   notification.Dispatcher
}

func NewDefaultBookingService(br bookingRepo.BookingRepository, pr providerRepo.ProviderRepository, d notification.Dispatcher) *DefaultBookingService {
	return &DefaultBookingService{BookingRepo: br, ProviderRepo: pr, Dispatcher: d}
}

func (s *DefaultBookingService) Create(requester Requester, req models.BookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	provider, err := s.ProviderRepo.GetByID(req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "provider", ID: req.ProviderID}
		}
		return nil, fmt.Errorf("failed to resolve provider: %w", err)
	}

	now := time.Now().UTC()
	id := uuid.NewString()

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = "pending"
	}
	tz := req.Timezone
	if tz == "" {
		tz = "UTC"
	}

	booking := &models.Booking{
		ID:            id,
		UserID:        requester.UID,
		UserEmail:     requester.Email,
		UserName:      requester.Name,
		ProviderID:    provider.ID,
		ProviderName:  provider.Name,
		ProviderEmail: provider.Email,
		Date:          req.Date,
		Time:          req.Time,
		Duration:      req.Duration,
		SessionFormat: req.SessionFormat,
		Status:        models.BookingStatusConfirmed,
		Amount:        req.Amount,
		PaymentStatus: paymentStatus,
		Notes:         req.Notes,
		Timezone:      tz,
		ReminderSent:  false,
		MeetingLink:   fmt.Sprintf("%s/call/%s", config.AppConfig.FrontendURL, id),
		// First uuid segment, uppercased. Short enough to read out loud.
		MeetingPassword: strings.ToUpper(uuid.NewString()[:8]),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if booking.UserName == "" {
		booking.UserName = req.UserName
	}

	if err := s.BookingRepo.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	if err := s.ProviderRepo.IncrementTotalBookings(provider.ID); err != nil {
		logger.Warn("failed to bump provider booking counter",
			zap.String("providerId", provider.ID), zap.Error(err))
	}

	// Confirmation mail is best effort. The booking stands even if both
	// enqueues fail.
	for _, payload := range notification.ConfirmationPayloads(booking) {
		if err := s.Dispatcher.Dispatch(payload); err != nil {
			logger.Warn("failed to dispatch confirmation email",
				zap.String("bookingId", id), zap.String("to", payload.To), zap.Error(err))
		}
	}

	logger.Info("booking created",
		zap.String("bookingId", id),
		zap.String("providerId", provider.ID),
		zap.String("date", req.Date),
		zap.String("time", req.Time))
	return booking, nil
}

func (s *DefaultBookingService) GetByID(id string) (*models.Booking, error) {
	b, err := s.BookingRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "booking", ID: id}
		}
		return nil, err
	}
	return b, nil
}

func (s *DefaultBookingService) ListForUser(userID, scope string) ([]models.Booking, error) {
	bookings, err := s.BookingRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if scope == "" {
		return bookings, nil
	}

	now := time.Now()
	filtered := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		scheduled, err := ScheduledAt(b.Date, b.Time, b.Timezone)
		if err != nil {
			continue
		}
		upcoming := scheduled.After(now) &&
			(b.Status == models.BookingStatusConfirmed || b.Status == models.BookingStatusRescheduled)
		if (scope == "upcoming") == upcoming {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

func (s *DefaultBookingService) Cancel(id, reason, cancelledBy string) (*models.Booking, error) {
	b, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b.Status == models.BookingStatusCancelled {
		return nil, &AlreadyCancelledError{ID: id}
	}

	now := time.Now()
	scheduled, err := ScheduledAt(b.Date, b.Time, b.Timezone)
	if err != nil {
		return nil, err
	}
	// The 24h window gates refund eligibility only, never the transition.
	refundEligible := HoursUntil(scheduled, now) >= RefundNoticeHours

	if cancelledBy == "" {
		cancelledBy = "user"
	}
	cancelledAt := now.UTC()
	if err := s.BookingRepo.UpdateWithDocument(id, bson.M{"$set": bson.M{
		"status":             models.BookingStatusCancelled,
		"cancellationReason": reason,
		"cancelledAt":        cancelledAt,
		"cancelledBy":        cancelledBy,
		"refundEligible":     refundEligible,
		"updatedAt":          cancelledAt,
	}}); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	b.Status = models.BookingStatusCancelled
	b.CancellationReason = reason
	b.CancelledAt = &cancelledAt
	b.CancelledBy = cancelledBy
	b.RefundEligible = refundEligible
	b.UpdatedAt = cancelledAt

	utils.GetLogger().Info("booking cancelled",
		zap.String("bookingId", id),
		zap.Bool("refundEligible", refundEligible))
	return b, nil
}

func (s *DefaultBookingService) Reschedule(id, newDate, newTime string) (*models.Booking, error) {
	b, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	// Notice is measured against the currently scheduled instant, not the
	// requested one.
	scheduled, err := ScheduledAt(b.Date, b.Time, b.Timezone)
	if err != nil {
		return nil, err
	}
	if HoursUntil(scheduled, now) < RescheduleNoticeHours {
		return nil, &PolicyViolationError{
			Op:     "reschedule",
			Reason: fmt.Sprintf("sessions can only be rescheduled at least %d hours in advance", RescheduleNoticeHours),
		}
	}

	rescheduledAt := now.UTC()
	if err := s.BookingRepo.UpdateWithDocument(id, bson.M{"$set": bson.M{
		"originalDate":  b.Date,
		"originalTime":  b.Time,
		"date":          newDate,
		"time":          newTime,
		"status":        models.BookingStatusRescheduled,
		"rescheduledAt": rescheduledAt,
		"updatedAt":     rescheduledAt,
	}}); err != nil {
		return nil, fmt.Errorf("failed to reschedule booking: %w", err)
	}

	b.OriginalDate = b.Date
	b.OriginalTime = b.Time
	b.Date = newDate
	b.Time = newTime
	b.Status = models.BookingStatusRescheduled
	b.RescheduledAt = &rescheduledAt
	b.UpdatedAt = rescheduledAt

	utils.GetLogger().Info("booking rescheduled",
		zap.String("bookingId", id),
		zap.String("newDate", newDate),
		zap.String("newTime", newTime))
	return b, nil
}

func (s *DefaultBookingService) Complete(id string, actualDuration int) (*models.Booking, error) {
	b, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	completedAt := time.Now().UTC()
	if err := s.BookingRepo.UpdateWithDocument(id, bson.M{"$set": bson.M{
		"status":         models.BookingStatusCompleted,
		"actualDuration": actualDuration,
		"updatedAt":      completedAt,
	}}); err != nil {
		return nil, fmt.Errorf("failed to complete booking: %w", err)
	}

	// Counter credit is a single $inc on the provider document so that
	// concurrent completions for the same provider never lose an update.
	if err := s.ProviderRepo.RecordCompletedSession(b.ProviderID, b.Amount); err != nil {
		utils.GetLogger().Error("failed to credit provider counters",
			zap.String("bookingId", id),
			zap.String("providerId", b.ProviderID),
			zap.Error(err))
	}

	b.Status = models.BookingStatusCompleted
	b.ActualDuration = actualDuration
	b.UpdatedAt = completedAt
	return b, nil
}

func (s *DefaultBookingService) CanJoin(id string) (bool, *models.Booking, error) {
	b, err := s.GetByID(id)
	if err != nil {
		return false, nil, err
	}
	return CanJoinAt(b, time.Now()), b, nil
}
