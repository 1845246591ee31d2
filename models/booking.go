package models

import "time"

// Booking statuses.
const (
	BookingStatusConfirmed   = "confirmed"
	BookingStatusCancelled   = "cancelled"
	BookingStatusRescheduled = "rescheduled"
	BookingStatusCompleted   = "completed"
)

// Session formats.
const (
	SessionFormatVideo = "video"
	SessionFormatAudio = "audio"
	SessionFormatChat  = "chat"
)

// Booking represents one reserved provider-slot instance. A booking is never
// physically deleted; cancellation is a status change.
type Booking struct {
	ID            string  `bson:"id" json:"id"`
	UserID        string  `bson:"userId" json:"userId"`
	UserEmail     string  `bson:"userEmail" json:"userEmail"`
	UserName      string  `bson:"userName,omitempty" json:"userName,omitempty"`
	ProviderID    string  `bson:"providerId" json:"providerId"`
	ProviderName  string  `bson:"providerName" json:"providerName"`
	ProviderEmail string  `bson:"providerEmail" json:"providerEmail"`
	Date          string  `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time          string  `bson:"time" json:"time"` // "HH:MM", 24-hour
	Duration      int     `bson:"duration" json:"duration"` // minutes
	SessionFormat string  `bson:"sessionFormat" json:"sessionFormat"`
	Status        string  `bson:"status" json:"status"`
	Amount        float64 `bson:"amount" json:"amount"`
	PaymentStatus string  `bson:"paymentStatus" json:"paymentStatus"`
	Notes         string  `bson:"notes,omitempty" json:"notes,omitempty"`
	Timezone      string  `bson:"timezone" json:"timezone"` // IANA name, e.g. "America/New_York"

	// Reminder guard: set to true once a reminder email has been delivered.
	ReminderSent bool `bson:"reminderSent" json:"reminderSent"`

	// Populated at confirmation time.
	MeetingLink     string `bson:"meetingLink,omitempty" json:"meetingLink,omitempty"`
	MeetingPassword string `bson:"meetingPassword,omitempty" json:"meetingPassword,omitempty"`

	// Present only when Status == "cancelled".
	CancellationReason string     `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancelledBy        string     `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	RefundEligible     bool       `bson:"refundEligible,omitempty" json:"refundEligible,omitempty"`

	// Present only when Status == "rescheduled".
	OriginalDate  string     `bson:"originalDate,omitempty" json:"originalDate,omitempty"`
	OriginalTime  string     `bson:"originalTime,omitempty" json:"originalTime,omitempty"`
	RescheduledAt *time.Time `bson:"rescheduledAt,omitempty" json:"rescheduledAt,omitempty"`

	// Recorded when the session is marked complete.
	ActualDuration int `bson:"actualDuration,omitempty" json:"actualDuration,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// BookingRequest carries the caller-supplied fields for creating a booking.
type BookingRequest struct {
	ProviderID    string  `json:"providerId" validate:"required"`
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string  `json:"time" validate:"required,datetime=15:04"`
	Duration      int     `json:"duration" validate:"required,min=15,max=180"`
	SessionFormat string  `json:"sessionFormat" validate:"required,oneof=video audio chat"`
	Notes         string  `json:"notes"`
	Amount        float64 `json:"amount" validate:"gte=0"`
	PaymentStatus string  `json:"paymentStatus"`
	Timezone      string  `json:"timezone"`
	UserName      string  `json:"userName"`
}
