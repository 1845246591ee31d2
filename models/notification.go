package models

// Email template kinds understood by the notification service.
const (
	EmailKindBookingConfirmation = "booking-confirmation"
	EmailKindBookingReminder     = "booking-reminder"
	EmailKindWelcome             = "welcome"
)

// EmailPayload is the queued unit of outbound mail. Lifecycle transitions
// enqueue one payload per recipient; the async worker renders and delivers it.
type EmailPayload struct {
	To      string            `json:"to"`
	ToName  string            `json:"toName,omitempty"`
	Kind    string            `json:"kind"`
	Data    map[string]string `json:"data"`
	Booking *Booking          `json:"booking,omitempty"`
}
