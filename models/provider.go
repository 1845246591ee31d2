package models

import "time"

// Provider types.
const (
	ProviderTypeTherapist = "therapist"
	ProviderTypeBuddy     = "buddy"
)

// WeeklyAvailability maps a lowercase weekday name ("monday".."sunday") to
// the ordered list of "HH:MM" slots the provider opens that day. A missing
// day means the provider takes no sessions on that day.
type WeeklyAvailability map[string][]string

// Provider represents a therapist or peer-support buddy offering bookable
// sessions. Providers are seeded and edited by an administrator; they are
// deactivated via IsActive rather than deleted.
type Provider struct {
	ID           string             `bson:"id" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Title        string             `bson:"title" json:"title"`
	Type         string             `bson:"type" json:"type"` // "therapist" or "buddy"
	Email        string             `bson:"email" json:"email"`
	Bio          string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Specialties  []string           `bson:"specialties" json:"specialties"`
	HourlyRate   float64            `bson:"hourlyRate" json:"hourlyRate"`
	Rating       float64            `bson:"rating" json:"rating"` // 0.0 - 5.0
	IsActive     bool               `bson:"isActive" json:"isActive"`
	Availability WeeklyAvailability `bson:"availability" json:"availability"`

	// Counters maintained atomically by the booking lifecycle.
	TotalBookings     int     `bson:"totalBookings" json:"totalBookings"`
	CompletedSessions int     `bson:"completedSessions" json:"completedSessions"`
	TotalRevenue      float64 `bson:"totalRevenue" json:"totalRevenue"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// ProviderStats is the derived summary returned by the provider stats endpoint.
type ProviderStats struct {
	Rating             float64        `json:"rating"`
	HourlyRate         float64        `json:"hourlyRate"`
	Specialties        []string       `json:"specialties"`
	TotalSlotsThisWeek int            `json:"totalSlotsThisWeek"`
	CompletedSessions  int            `json:"completedSessions"`
	NextAvailable      *AvailableSlot `json:"nextAvailable,omitempty"`
}

// AvailableSlot is a concrete (date, time) opening derived from the weekly
// template.
type AvailableSlot struct {
	Date string `json:"date"` // "YYYY-MM-DD"
	Time string `json:"time"` // "HH:MM"
}

// RankedProvider pairs a provider with its recommendation score.
type RankedProvider struct {
	Provider Provider `json:"provider"`
	Score    float64  `json:"score"`
}
