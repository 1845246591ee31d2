package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	providerRepo "clearheadspace/database/repository/provider"
	"clearheadspace/models"
	"clearheadspace/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// nextAvailableHorizonDays bounds the forward scan for the next open slot.
const nextAvailableHorizonDays = 14

const slotCacheTTL = 10 * time.Minute

// AvailabilityService answers "what times can I book provider P on date D?"
// from the provider's recurring weekly template. It does not track which
// slots already have bookings.
type AvailabilityService interface {
	// SlotsFor returns the open "HH:MM" slots for a provider on a calendar
	// date. Unknown and inactive providers yield an empty list.
	SlotsFor(providerID, date string) ([]string, error)
	// IsAvailable reports whether the given time appears in SlotsFor.
	IsAvailable(providerID, date, clock string) (bool, error)
	// NextAvailable scans forward from today and returns the first open
	// slot, or nil if the provider has none within the horizon.
	NextAvailable(providerID string) (*models.AvailableSlot, error)
	// Stats summarizes a provider's bookable surface for the current week.
	Stats(providerID string) (*models.ProviderStats, error)
}

// DefaultAvailabilityService is the production implementation. The cache
// client may be nil, in which case every lookup hits the store.
type DefaultAvailabilityService struct {
	ProviderRepo providerRepo.ProviderRepository
	Cache        *redis.Client
}

func NewDefaultAvailabilityService(pr providerRepo.ProviderRepository, cache *redis.Client) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{ProviderRepo: pr, Cache: cache}
}

func (s *DefaultAvailabilityService) SlotsFor(providerID, date string) ([]string, error) {
	return s.slotsFor(providerID, date, time.Now())
}

func (s *DefaultAvailabilityService) slotsFor(providerID, date string, now time.Time) ([]string, error) {
	day, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	today := date == now.Format("2006-01-02")

	// Today's result shifts every hour as slots fall into the past, so only
	// future dates are cached.
	cacheKey := fmt.Sprintf("slots:%s:%s", providerID, date)
	if s.Cache != nil && !today {
		if cached, err := s.Cache.Get(context.Background(), cacheKey).Result(); err == nil {
			var slots []string
			if err := json.Unmarshal([]byte(cached), &slots); err == nil {
				return slots, nil
			}
		}
	}

	provider, err := s.ProviderRepo.GetByID(providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	if !provider.IsActive {
		return []string{}, nil
	}

	weekday := strings.ToLower(day.Weekday().String())
	template := provider.Availability[weekday]

	slots := make([]string, 0, len(template))
	for _, slot := range template {
		if today && !slotAfterHour(slot, now.Hour()) {
			continue
		}
		slots = append(slots, slot)
	}

	if s.Cache != nil && !today {
		if encoded, err := json.Marshal(slots); err == nil {
			if err := s.Cache.Set(context.Background(), cacheKey, encoded, slotCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache slots",
					zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}
	return slots, nil
}

// slotAfterHour keeps a same-day slot only when its hour component is
// strictly later than the current hour. Minutes are ignored on both sides.
func slotAfterHour(slot string, hour int) bool {
	parts := strings.SplitN(slot, ":", 2)
	slotHour, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	return slotHour > hour
}

func (s *DefaultAvailabilityService) IsAvailable(providerID, date, clock string) (bool, error) {
	slots, err := s.SlotsFor(providerID, date)
	if err != nil {
		return false, err
	}
	for _, slot := range slots {
		if slot == clock {
			return true, nil
		}
	}
	return false, nil
}

func (s *DefaultAvailabilityService) NextAvailable(providerID string) (*models.AvailableSlot, error) {
	now := time.Now()
	for d := 0; d < nextAvailableHorizonDays; d++ {
		date := now.AddDate(0, 0, d).Format("2006-01-02")
		slots, err := s.slotsFor(providerID, date, now)
		if err != nil {
			return nil, err
		}
		if len(slots) > 0 {
			return &models.AvailableSlot{Date: date, Time: slots[0]}, nil
		}
	}
	return nil, nil
}

func (s *DefaultAvailabilityService) Stats(providerID string) (*models.ProviderStats, error) {
	provider, err := s.ProviderRepo.GetByID(providerID)
	if err != nil {
		return nil, err
	}

	totalSlots := 0
	for _, daySlots := range provider.Availability {
		totalSlots += len(daySlots)
	}

	next, err := s.NextAvailable(providerID)
	if err != nil {
		return nil, err
	}

	return &models.ProviderStats{
		Rating:             provider.Rating,
		HourlyRate:         provider.HourlyRate,
		Specialties:        provider.Specialties,
		TotalSlotsThisWeek: totalSlots,
		CompletedSessions:  provider.CompletedSessions,
		NextAvailable:      next,
	}, nil
}
