package handlers

import (
	"net/http"

	"clearheadspace/models"

	"github.com/gin-gonic/gin"
)

// ListProviders returns the active catalog, optionally filtered by
// ?type=therapist|buddy and a free-text ?q= search.
func ListProviders(c *gin.Context) {
	ptype := c.Query("type")
	if ptype != "" && ptype != models.ProviderTypeTherapist && ptype != models.ProviderTypeBuddy {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be therapist or buddy"})
		return
	}

	providers, err := ProviderService.List(ptype, c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if providers == nil {
		providers = []models.Provider{}
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// GetProvider returns one provider by id.
func GetProvider(c *gin.Context) {
	p, err := ProviderService.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProviderStats returns the derived weekly summary for a provider.
func GetProviderStats(c *gin.Context) {
	stats, err := AvailabilityService.Stats(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetProviderSlots returns the open slots for ?date=YYYY-MM-DD.
func GetProviderSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	slots, err := AvailabilityService.SlotsFor(c.Param("id"), date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// GetNextAvailable returns the provider's first open slot in the next two weeks.
func GetNextAvailable(c *gin.Context) {
	slot, err := AvailabilityService.NextAvailable(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if slot == nil {
		c.JSON(http.StatusOK, gin.H{"nextAvailable": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"nextAvailable": slot})
}

// RecommendProviders ranks providers against the caller's preference tags.
func RecommendProviders(c *gin.Context) {
	var req struct {
		Preferences []string `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ranked, err := MatchingService.Recommend(req.Preferences)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if ranked == nil {
		ranked = []models.RankedProvider{}
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": ranked})
}
