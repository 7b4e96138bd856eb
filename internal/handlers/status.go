package handlers

import (
	"net/http"

	"clinic-api/internal/database"

	"github.com/gin-gonic/gin"
)

func Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Clinic API",
		"version": "0.1.0",
		"status":  "operational",
	})
}

// HealthCheck reports liveness, including database reachability.
func HealthCheck(c *gin.Context) {
	if err := database.DB.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
