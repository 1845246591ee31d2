package provider

import (
	"errors"
	"fmt"
	"strings"
	"time"

	providerRepo "clearheadspace/database/repository/provider"
	"clearheadspace/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned when the referenced provider does not exist.
var ErrNotFound = errors.New("provider not found")

var validate = validator.New()

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// ProviderRequest carries the admin-editable provider fields.
type ProviderRequest struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Title       string   `json:"title" validate:"required,max=120"`
	Type        string   `json:"type" validate:"required,oneof=therapist buddy"`
	Email       string   `json:"email" validate:"required,email"`
	Bio         string   `json:"bio"`
	Image       string   `json:"image" validate:"omitempty,url"`
	Specialties []string `json:"specialties" validate:"max=20,dive,max=60"`
	HourlyRate  float64  `json:"hourlyRate" validate:"gte=0"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"`
}

// ProviderService is the admin-facing catalog manager.
type ProviderService interface {
	GetByID(id string) (*models.Provider, error)
	List(ptype, query string) ([]models.Provider, error)
	Create(req ProviderRequest) (*models.Provider, error)
	Update(id string, req ProviderRequest) (*models.Provider, error)
	SetActive(id string, active bool) error
	// SetAvailability replaces the provider's weekly slot template.
	SetAvailability(id string, availability models.WeeklyAvailability) error
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	ProviderRepo providerRepo.ProviderRepository
}

func NewDefaultProviderService(pr providerRepo.ProviderRepository) *DefaultProviderService {
	return &DefaultProviderService{ProviderRepo: pr}
}

func (s *DefaultProviderService) GetByID(id string) (*models.Provider, error) {
	p, err := s.ProviderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *DefaultProviderService) List(ptype, query string) ([]models.Provider, error) {
	if ptype == "" && query == "" {
		return s.ProviderRepo.GetAllActive()
	}
	return s.ProviderRepo.Search(providerRepo.ProviderSearchCriteria{
		Type:       ptype,
		Query:      query,
		ActiveOnly: true,
	})
}

func (s *DefaultProviderService) Create(req ProviderRequest) (*models.Provider, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid provider: %w", err)
	}

	now := time.Now().UTC()
	p := &models.Provider{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Title:        req.Title,
		Type:         req.Type,
		Email:        req.Email,
		Bio:          req.Bio,
		Image:        req.Image,
		Specialties:  req.Specialties,
		HourlyRate:   req.HourlyRate,
		Rating:       req.Rating,
		IsActive:     true,
		Availability: models.WeeklyAvailability{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.ProviderRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *DefaultProviderService) Update(id string, req ProviderRequest) (*models.Provider, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid provider: %w", err)
	}

	p, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.Title = req.Title
	p.Type = req.Type
	p.Email = req.Email
	p.Bio = req.Bio
	p.Image = req.Image
	p.Specialties = req.Specialties
	p.HourlyRate = req.HourlyRate
	p.Rating = req.Rating
	p.UpdatedAt = time.Now().UTC()

	if err := s.ProviderRepo.Update(p); err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *DefaultProviderService) SetActive(id string, active bool) error {
	err := s.ProviderRepo.UpdateWithDocument(id, bson.M{"$set": bson.M{
		"isActive":  active,
		"updatedAt": time.Now().UTC(),
	}})
	if errors.Is(err, providerRepo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *DefaultProviderService) SetAvailability(id string, availability models.WeeklyAvailability) error {
	if err := validateAvailability(availability); err != nil {
		return err
	}
	err := s.ProviderRepo.UpdateWithDocument(id, bson.M{"$set": bson.M{
		"availability": availability,
		"updatedAt":    time.Now().UTC(),
	}})
	if errors.Is(err, providerRepo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// validateAvailability checks weekday keys and HH:MM slot values. Slot order
// within a day is kept as given.
func validateAvailability(availability models.WeeklyAvailability) error {
	for day, slots := range availability {
		if !weekdays[strings.ToLower(day)] {
			return fmt.Errorf("invalid weekday %q", day)
		}
		for _, slot := range slots {
			if err := validate.Var(slot, "datetime=15:04"); err != nil {
				return fmt.Errorf("invalid slot %q on %s", slot, day)
			}
		}
	}
	return nil
}
