package matching

import (
	"fmt"
	"testing"

	"clearheadspace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() []models.Provider {
	return []models.Provider{
		{ID: "p1", Name: "Amara", Rating: 3.0, Specialties: []string{"Anxiety Support", "Stress Management"}},
		{ID: "p2", Name: "Ben", Rating: 5.0, Specialties: []string{"Grief Counseling"}},
		{ID: "p3", Name: "Chen", Rating: 4.0, Specialties: []string{"Relationships"}},
		{ID: "p4", Name: "Dana", Rating: 4.5, Specialties: []string{"anxiety"}},
		{ID: "p5", Name: "Elif", Rating: 2.0, Specialties: []string{"Sleep"}},
	}
}

func TestRankEmptyPreferences(t *testing.T) {
	ranked := Rank(catalog(), nil)

	// No preferences means the first four catalog entries, untouched and
	// unscored.
	require.Len(t, ranked, 4)
	for i, want := range []string{"p1", "p2", "p3", "p4"} {
		assert.Equal(t, want, ranked[i].Provider.ID)
		assert.Zero(t, ranked[i].Score)
	}
}

func TestRankEmptyPreferencesSmallCatalog(t *testing.T) {
	ranked := Rank(catalog()[:2], []string{})
	assert.Len(t, ranked, 2)
}

func TestRankSpecialtyOverlap(t *testing.T) {
	ranked := Rank(catalog(), []string{"anxiety"})

	// p1 matches "Anxiety Support" (pref is a substring of the specialty),
	// p4 matches "anxiety" exactly. Both score 10 + 2*rating, so p4's
	// higher rating puts it first.
	require.Len(t, ranked, 5)
	assert.Equal(t, "p4", ranked[0].Provider.ID)
	assert.InDelta(t, 19.0, ranked[0].Score, 1e-9)
	assert.Equal(t, "p1", ranked[1].Provider.ID)
	assert.InDelta(t, 16.0, ranked[1].Score, 1e-9)
}

func TestRankSubstringEitherDirection(t *testing.T) {
	providers := []models.Provider{
		{ID: "p1", Rating: 1.0, Specialties: []string{"stress"}},
	}
	// The specialty is a substring of the preference this time.
	ranked := Rank(providers, []string{"Stress Management"})
	require.Len(t, ranked, 1)
	assert.InDelta(t, 12.0, ranked[0].Score, 1e-9)
}

func TestRankNoOverlapFallsBackToRating(t *testing.T) {
	ranked := Rank(catalog(), []string{"equine therapy"})

	// Pure rating order: Ben 5.0, Dana 4.5, Chen 4.0, Amara 3.0, Elif 2.0.
	require.Len(t, ranked, 5)
	for i, want := range []string{"p2", "p4", "p3", "p1", "p5"} {
		assert.Equal(t, want, ranked[i].Provider.ID)
	}
	assert.InDelta(t, 10.0, ranked[0].Score, 1e-9)
}

func TestRankCapsAtSix(t *testing.T) {
	var big []models.Provider
	for i := 0; i < 10; i++ {
		big = append(big, models.Provider{
			ID:          fmt.Sprintf("p%d", i),
			Rating:      float64(i) / 2,
			Specialties: []string{"anxiety"},
		})
	}

	ranked := Rank(big, []string{"anxiety"})
	require.Len(t, ranked, 6)
	// Highest rating first.
	assert.Equal(t, "p9", ranked[0].Provider.ID)
}

func TestRankStableOnTies(t *testing.T) {
	providers := []models.Provider{
		{ID: "a", Rating: 3.0},
		{ID: "b", Rating: 3.0},
		{ID: "c", Rating: 3.0},
	}
	ranked := Rank(providers, []string{"nothing matches"})
	require.Len(t, ranked, 3)
	assert.Equal(t, "a", ranked[0].Provider.ID)
	assert.Equal(t, "b", ranked[1].Provider.ID)
	assert.Equal(t, "c", ranked[2].Provider.ID)
}
