package handlers

import (
	"errors"
	"net/http"

	bookingRepo "clearheadspace/database/repository/booking"
	providerRepo "clearheadspace/database/repository/provider"
	"clearheadspace/services/availability"
	"clearheadspace/services/booking"
	"clearheadspace/services/matching"
	"clearheadspace/services/provider"
	"clearheadspace/services/reports"
	"clearheadspace/services/user"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Services used by the HTTP layer, wired once at startup.
var (
	BookingService      booking.BookingService
	AvailabilityService availability.AvailabilityService
	MatchingService     matching.MatchingService
	ProviderService     provider.ProviderService
	UserService         user.UserService
	ReportService       *reports.Service
	AdminBookingRepo    bookingRepo.BookingRepository
)

var validate = validator.New()

// Init wires the handler package to its services.
func Init(
	bs booking.BookingService,
	as availability.AvailabilityService,
	ms matching.MatchingService,
	ps provider.ProviderService,
	us user.UserService,
	rs *reports.Service,
	br bookingRepo.BookingRepository,
) {
	BookingService = bs
	AvailabilityService = as
	MatchingService = ms
	ProviderService = ps
	UserService = us
	ReportService = rs
	AdminBookingRepo = br
}

// respondServiceError maps domain errors onto HTTP statuses. Policy and
// lookup failures carry their message; anything else is an opaque 500.
func respondServiceError(c *gin.Context, err error) {
	var (
		notFound  *booking.NotFoundError
		policy    *booking.PolicyViolationError
		cancelled *booking.AlreadyCancelledError
	)
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &policy):
		c.JSON(http.StatusConflict, gin.H{"error": policy.Error()})
	case errors.As(err, &cancelled):
		c.JSON(http.StatusConflict, gin.H{"error": cancelled.Error()})
	case errors.Is(err, provider.ErrNotFound), errors.Is(err, providerRepo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
	case errors.Is(err, user.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
	}
}
