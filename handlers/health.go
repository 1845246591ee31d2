package handlers

import (
	"net/http"

	"clearheadspace/utils"

	"github.com/gin-gonic/gin"
)

// Health returns the latest liveness snapshot for Mongo and Redis.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status": "ok",
		"deps":   status,
	})
}
