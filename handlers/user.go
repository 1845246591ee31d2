package handlers

import (
	"net/http"

	"clearheadspace/middleware"
	"clearheadspace/services/user"

	"github.com/gin-gonic/gin"
)

// SaveProfile creates or updates the caller's profile. The first save sends
// the welcome email.
func SaveProfile(c *gin.Context) {
	var req user.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile", "details": err.Error()})
		return
	}

	saved, err := UserService.SaveProfile(
		c.GetString(middleware.CtxUserUID),
		c.GetString(middleware.CtxUserEmail),
		req,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// GetProfile returns the caller's profile.
func GetProfile(c *gin.Context) {
	profile, err := UserService.GetProfile(c.GetString(middleware.CtxUserUID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteAccount cancels the caller's confirmed bookings and removes the profile.
func DeleteAccount(c *gin.Context) {
	if err := UserService.DeleteAccount(c.GetString(middleware.CtxUserUID)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
