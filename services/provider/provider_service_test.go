package provider

import (
	"testing"

	"clearheadspace/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateAvailability(t *testing.T) {
	ok := models.WeeklyAvailability{
		"monday": {"09:00", "14:30"},
		"friday": {},
	}
	assert.NoError(t, validateAvailability(ok))

	badDay := models.WeeklyAvailability{"funday": {"09:00"}}
	assert.Error(t, validateAvailability(badDay))

	badSlot := models.WeeklyAvailability{"monday": {"9am"}}
	assert.Error(t, validateAvailability(badSlot))

	badHour := models.WeeklyAvailability{"monday": {"25:00"}}
	assert.Error(t, validateAvailability(badHour))
}

func TestProviderRequestValidation(t *testing.T) {
	valid := ProviderRequest{
		Name:       "Dr. Amara Osei",
		Title:      "Clinical Psychologist",
		Type:       models.ProviderTypeTherapist,
		Email:      "amara@example.com",
		HourlyRate: 90,
		Rating:     4.8,
	}
	assert.NoError(t, validate.Struct(valid))

	badType := valid
	badType.Type = "coach"
	assert.Error(t, validate.Struct(badType))

	badRating := valid
	badRating.Rating = 5.5
	assert.Error(t, validate.Struct(badRating))

	noEmail := valid
	noEmail.Email = "not-an-email"
	assert.Error(t, validate.Struct(noEmail))
}
