package notification

import (
	"bytes"
	"fmt"
	"html/template"

	"clearheadspace/models"
)

var (
	confirmationTmpl = template.Must(template.New("booking-confirmation").Parse(`
<div style="font-family:sans-serif;max-width:560px;margin:0 auto">
  <h2>Your session is booked</h2>
  <p>Hi {{.Name}},</p>
  <p>Your {{.Booking.SessionFormat}} session with <strong>{{.Booking.ProviderName}}</strong>
  is confirmed for <strong>{{.Booking.Date}}</strong> at <strong>{{.Booking.Time}}</strong>
  ({{.Booking.Duration}} minutes).</p>
  {{if .Booking.MeetingLink}}
  <p>Join here: <a href="{{.Booking.MeetingLink}}">{{.Booking.MeetingLink}}</a><br>
  Meeting password: <strong>{{.Booking.MeetingPassword}}</strong></p>
  {{end}}
  <p>You can cancel free of charge up to 24 hours before your session.</p>
  <p>Take care,<br>The ClearHeadSpace team</p>
</div>`))

	reminderTmpl = template.Must(template.New("booking-reminder").Parse(`
<div style="font-family:sans-serif;max-width:560px;margin:0 auto">
  <h2>Session reminder</h2>
  <p>Hi {{.Name}},</p>
  <p>This is a reminder that your session with <strong>{{.Booking.ProviderName}}</strong>
  is tomorrow, <strong>{{.Booking.Date}}</strong> at <strong>{{.Booking.Time}}</strong>.</p>
  {{if .Booking.MeetingLink}}
  <p>Join here: <a href="{{.Booking.MeetingLink}}">{{.Booking.MeetingLink}}</a><br>
  Meeting password: <strong>{{.Booking.MeetingPassword}}</strong></p>
  {{end}}
  <p>See you soon,<br>The ClearHeadSpace team</p>
</div>`))

	welcomeTmpl = template.Must(template.New("welcome").Parse(`
<div style="font-family:sans-serif;max-width:560px;margin:0 auto">
  <h2>Welcome to ClearHeadSpace{{if .Name}}, {{.Name}}{{end}}</h2>
  <p>We're glad you're here. Browse our therapists and peer-support buddies
  and book your first session whenever you're ready.</p>
  <p>Take care,<br>The ClearHeadSpace team</p>
</div>`))
)

type templateContext struct {
	Name    string
	Data    map[string]string
	Booking *models.Booking
}

// Render produces the subject line and HTML body for an email payload.
func Render(payload models.EmailPayload) (subject, html string, err error) {
	ctx := templateContext{Name: payload.ToName, Data: payload.Data, Booking: payload.Booking}

	var tmpl *template.Template
	switch payload.Kind {
	case models.EmailKindBookingConfirmation:
		subject = "Your ClearHeadSpace session is confirmed"
		tmpl = confirmationTmpl
	case models.EmailKindBookingReminder:
		subject = "Reminder: your ClearHeadSpace session is tomorrow"
		tmpl = reminderTmpl
	case models.EmailKindWelcome:
		subject = "Welcome to ClearHeadSpace"
		tmpl = welcomeTmpl
	default:
		return "", "", fmt.Errorf("unknown email kind %q", payload.Kind)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", "", fmt.Errorf("failed to render %s email: %w", payload.Kind, err)
	}
	return subject, buf.String(), nil
}
