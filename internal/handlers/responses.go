package handlers

import (
	"errors"
	"log"
	"net/http"

	"clinic-api/internal/middleware"
	"clinic-api/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Every response carries a status discriminator and a human-readable message.
// Store failures keep the underlying error text in "error" like the rest of
// the API's 500 responses.

func errorEnvelope(message string) gin.H {
	return gin.H{"status": "error", "message": message}
}

func respondValidationErrors(c *gin.Context, fieldErrors []validation.FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "Validation error",
		"errors":  fieldErrors,
	})
}

func respondStoreError(c *gin.Context, message string, err error) {
	log.Printf("request_id=%s %s: %v", middleware.RequestIDFromContext(c), message, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": message,
		"error":   err.Error(),
	})
}

// currentUserID resolves the identity the auth middleware attached to the
// request. It writes the failure response itself so callers can just return.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.UserIDContextKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, errorEnvelope("Unauthorized"))
		return uuid.Nil, false
	}

	raw, ok := value.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorEnvelope("Invalid user identity"))
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorEnvelope("Invalid user identity"))
		return uuid.Nil, false
	}

	return userID, true
}

// uniqueViolation reports the violated constraint when err is a postgres
// unique_violation. The store-level constraint is the authoritative guard for
// duplicates; application-level pre-checks only improve the error message.
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return pqErr.Constraint, true
	}
	return "", false
}
