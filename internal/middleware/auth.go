package middleware

import (
	"net/http"
	"strings"

	"clinic-api/internal/utils"

	"github.com/gin-gonic/gin"
)

const UserIDContextKey = "user_id"

// AuthMiddleware is a middleware that checks for a valid JWT token
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authorization header is required",
			})
			c.Abort()
			return
		}

		// Check if the authorization header has the correct format
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authorization header must be in the format 'Bearer {token}'",
			})
			c.Abort()
			return
		}

		userID, err := utils.ValidateToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		// Resolved identity is the basis for all ownership checks downstream.
		c.Set(UserIDContextKey, userID.String())
		c.Next()
	}
}
