package handlers

import (
	"database/sql"
	"net/http"

	"clinic-api/internal/database"
	"clinic-api/internal/models"
	"clinic-api/internal/utils"
	"clinic-api/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Register handles user registration
func Register(c *gin.Context) {
	var req validation.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid request body"))
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		respondValidationErrors(c, fieldErrors)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		respondStoreError(c, "Failed to register user", err)
		return
	}

	user := models.User{
		ID:    uuid.New(),
		Name:  req.Name,
		Email: req.Email,
	}

	db := database.DB
	query := `INSERT INTO users (id, name, email, password) VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at`
	err = db.QueryRow(query, user.ID, user.Name, user.Email, hashedPassword).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			c.JSON(http.StatusBadRequest, errorEnvelope("User already exists with this email"))
			return
		}
		respondStoreError(c, "Failed to register user", err)
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		respondStoreError(c, "Failed to generate token", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "User registered successfully",
		"data": gin.H{
			"user":  user,
			"token": token,
		},
	})
}

// Login handles user login
func Login(c *gin.Context) {
	var req validation.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid request body"))
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		respondValidationErrors(c, fieldErrors)
		return
	}

	db := database.DB
	var user models.User
	var hashedPassword string
	query := `SELECT id, name, email, password, created_at, updated_at FROM users WHERE email = $1`
	err := db.QueryRow(query, req.Email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&hashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusUnauthorized, errorEnvelope("Invalid email or password"))
			return
		}
		respondStoreError(c, "Failed to log in", err)
		return
	}

	if !utils.CheckPasswordHash(req.Password, hashedPassword) {
		c.JSON(http.StatusUnauthorized, errorEnvelope("Invalid email or password"))
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		respondStoreError(c, "Failed to generate token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Login successful",
		"data": gin.H{
			"user":  user,
			"token": token,
		},
	})
}
