package notification

import (
	"testing"

	"clearheadspace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooking() *models.Booking {
	return &models.Booking{
		ID:              "bk-1",
		UserEmail:       "sam@example.com",
		UserName:        "Sam",
		ProviderName:    "Dr. Amara Osei",
		ProviderEmail:   "amara@example.com",
		Date:            "2026-09-14",
		Time:            "10:00",
		Duration:        60,
		SessionFormat:   models.SessionFormatVideo,
		MeetingLink:     "https://app.clearheadspace.com/call/bk-1",
		MeetingPassword: "A1B2C3D4",
	}
}

func TestRenderConfirmation(t *testing.T) {
	subject, html, err := Render(models.EmailPayload{
		To:      "sam@example.com",
		ToName:  "Sam",
		Kind:    models.EmailKindBookingConfirmation,
		Booking: sampleBooking(),
	})
	require.NoError(t, err)
	assert.Contains(t, subject, "confirmed")
	assert.Contains(t, html, "Dr. Amara Osei")
	assert.Contains(t, html, "2026-09-14")
	assert.Contains(t, html, "10:00")
	assert.Contains(t, html, "https://app.clearheadspace.com/call/bk-1")
	assert.Contains(t, html, "A1B2C3D4")
}

func TestRenderReminder(t *testing.T) {
	_, html, err := Render(ReminderPayload(sampleBooking()))
	require.NoError(t, err)
	assert.Contains(t, html, "tomorrow")
	assert.Contains(t, html, "Dr. Amara Osei")
}

func TestRenderWelcome(t *testing.T) {
	payload := WelcomePayload(&models.User{Email: "sam@example.com", FirstName: "Sam"})
	subject, html, err := Render(payload)
	require.NoError(t, err)
	assert.Contains(t, subject, "Welcome")
	assert.Contains(t, html, "Sam")
}

func TestRenderUnknownKind(t *testing.T) {
	_, _, err := Render(models.EmailPayload{Kind: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestConfirmationPayloadsCoverBothParties(t *testing.T) {
	payloads := ConfirmationPayloads(sampleBooking())
	require.Len(t, payloads, 2)
	assert.Equal(t, "sam@example.com", payloads[0].To)
	assert.Equal(t, "amara@example.com", payloads[1].To)
}

func TestNewSendgridNotifierRequiresKey(t *testing.T) {
	assert.Nil(t, NewSendgridNotifier("", "from@example.com", "ClearHeadSpace"))
	assert.NotNil(t, NewSendgridNotifier("sg-key", "from@example.com", "ClearHeadSpace"))
}
