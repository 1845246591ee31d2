package matching

import (
	"sort"
	"strings"

	providerRepo "clearheadspace/database/repository/provider"
	"clearheadspace/models"
)

const (
	specialtyWeight = 10
	ratingWeight    = 2

	// Scored recommendations return up to six entries; unscored catalog
	// fallback returns only four. The asymmetry is deliberate.
	scoredLimit   = 6
	unscoredLimit = 4
)

// MatchingService ranks providers against a user's stated preferences.
type MatchingService interface {
	Recommend(preferences []string) ([]models.RankedProvider, error)
}

// DefaultMatchingService scores the active provider catalog.
type DefaultMatchingService struct {
	ProviderRepo providerRepo.ProviderRepository
}

func NewDefaultMatchingService(pr providerRepo.ProviderRepository) *DefaultMatchingService {
	return &DefaultMatchingService{ProviderRepo: pr}
}

func (s *DefaultMatchingService) Recommend(preferences []string) ([]models.RankedProvider, error) {
	catalog, err := s.ProviderRepo.GetAllActive()
	if err != nil {
		return nil, err
	}
	return Rank(catalog, preferences), nil
}

// Rank scores each provider as 10 x (specialties overlapping any preference)
// + 2 x rating, and returns the top six in descending score order. With no
// preferences it skips scoring entirely and returns the first four catalog
// entries as-is.
func Rank(catalog []models.Provider, preferences []string) []models.RankedProvider {
	if len(preferences) == 0 {
		n := len(catalog)
		if n > unscoredLimit {
			n = unscoredLimit
		}
		ranked := make([]models.RankedProvider, 0, n)
		for _, p := range catalog[:n] {
			ranked = append(ranked, models.RankedProvider{Provider: p})
		}
		return ranked
	}

	ranked := make([]models.RankedProvider, 0, len(catalog))
	for _, p := range catalog {
		score := float64(specialtyWeight*overlapCount(p.Specialties, preferences)) +
			ratingWeight*p.Rating
		ranked = append(ranked, models.RankedProvider{Provider: p, Score: score})
	}

	// Stable sort keeps catalog order among equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > scoredLimit {
		ranked = ranked[:scoredLimit]
	}
	return ranked
}

// overlapCount counts specialties that textually overlap any preference,
// case-insensitive, substring in either direction.
func overlapCount(specialties, preferences []string) int {
	count := 0
	for _, s := range specialties {
		sl := strings.ToLower(s)
		for _, p := range preferences {
			pl := strings.ToLower(p)
			if strings.Contains(sl, pl) || strings.Contains(pl, sl) {
				count++
				break
			}
		}
	}
	return count
}
