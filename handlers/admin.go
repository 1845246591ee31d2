package handlers

import (
	"net/http"
	"strconv"

	"clearheadspace/models"
	"clearheadspace/services/provider"

	"github.com/gin-gonic/gin"
)

// AdminCreateProvider seeds a new catalog entry.
func AdminCreateProvider(c *gin.Context) {
	var req provider.ProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := ProviderService.Create(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// AdminUpdateProvider edits a catalog entry.
func AdminUpdateProvider(c *gin.Context) {
	var req provider.ProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := ProviderService.Update(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AdminSetProviderActive activates or deactivates a provider.
func AdminSetProviderActive(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := ProviderService.SetActive(c.Param("id"), *req.Active); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Provider updated"})
}

// AdminSetAvailability replaces a provider's weekly slot template.
func AdminSetAvailability(c *gin.Context) {
	var req struct {
		Availability models.WeeklyAvailability `json:"availability" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := ProviderService.SetAvailability(c.Param("id"), req.Availability); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability updated"})
}

// AdminListBookings returns every booking, newest first.
func AdminListBookings(c *gin.Context) {
	bookings, err := AdminBookingRepo.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// AdminReports returns the most recent weekly analytics reports.
func AdminReports(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "12"), 10, 64)

	recent, err := ReportService.Recent(limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if recent == nil {
		recent = []models.AnalyticsReport{}
	}
	c.JSON(http.StatusOK, gin.H{"reports": recent})
}

// AdminGenerateReport runs the weekly aggregation on demand.
func AdminGenerateReport(c *gin.Context) {
	report, err := ReportService.GenerateWeekly()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
