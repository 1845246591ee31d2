package handlers

import (
	"net/http"

	"clearheadspace/middleware"
	"clearheadspace/models"
	"clearheadspace/services/booking"

	"github.com/gin-gonic/gin"
)

func requesterFrom(c *gin.Context) booking.Requester {
	return booking.Requester{
		UID:   c.GetString(middleware.CtxUserUID),
		Email: c.GetString(middleware.CtxUserEmail),
		Name:  c.GetString(middleware.CtxUserName),
	}
}

// CreateBooking reserves a provider slot for the authenticated user.
func CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking request", "details": err.Error()})
		return
	}

	created, err := BookingService.Create(requesterFrom(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListBookings returns the caller's bookings. Accepts ?scope=upcoming|past.
func ListBookings(c *gin.Context) {
	scope := c.Query("scope")
	if scope != "" && scope != "upcoming" && scope != "past" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scope must be upcoming or past"})
		return
	}

	bookings, err := BookingService.ListForUser(c.GetString(middleware.CtxUserUID), scope)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetBooking returns a single booking owned by the caller.
func GetBooking(c *gin.Context) {
	b, ok := ownedBooking(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, b)
}

// JoinBooking gates access to the session room.
func JoinBooking(c *gin.Context) {
	if _, ok := ownedBooking(c); !ok {
		return
	}
	canJoin, b, err := BookingService.CanJoin(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp := gin.H{"canJoin": canJoin}
	if canJoin {
		resp["meetingLink"] = b.MeetingLink
		resp["meetingPassword"] = b.MeetingPassword
	}
	c.JSON(http.StatusOK, resp)
}

// CancelBooking transitions a booking to cancelled.
func CancelBooking(c *gin.Context) {
	if _, ok := ownedBooking(c); !ok {
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	cancelled, err := BookingService.Cancel(c.Param("id"), req.Reason, "user")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelled)
}

// RescheduleBooking moves a booking to a new date and time.
func RescheduleBooking(c *gin.Context) {
	if _, ok := ownedBooking(c); !ok {
		return
	}
	var req struct {
		Date string `json:"date" validate:"required,datetime=2006-01-02"`
		Time string `json:"time" validate:"required,datetime=15:04"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reschedule request", "details": err.Error()})
		return
	}

	rescheduled, err := BookingService.Reschedule(c.Param("id"), req.Date, req.Time)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rescheduled)
}

// CompleteBooking marks a session finished.
func CompleteBooking(c *gin.Context) {
	if _, ok := ownedBooking(c); !ok {
		return
	}
	var req struct {
		ActualDuration int `json:"actualDuration" validate:"gte=0,lte=600"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid completion request", "details": err.Error()})
		return
	}

	completed, err := BookingService.Complete(c.Param("id"), req.ActualDuration)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, completed)
}

// ownedBooking loads the booking in the path and checks the caller owns it.
// Writes the response itself on failure.
func ownedBooking(c *gin.Context) (*models.Booking, bool) {
	b, err := BookingService.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	if b.UserID != c.GetString(middleware.CtxUserUID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this booking"})
		return nil, false
	}
	return b, true
}
