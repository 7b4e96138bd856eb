package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"clinic-api/internal/database"
	"clinic-api/internal/models"
	"clinic-api/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const doctorColumns = `id, first_name, last_name, email, phone, specialization, license_number, experience, qualification, department, consultation_fee, availability, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDoctor(row rowScanner) (models.Doctor, error) {
	var doctor models.Doctor
	err := row.Scan(
		&doctor.ID,
		&doctor.FirstName,
		&doctor.LastName,
		&doctor.Email,
		&doctor.Phone,
		&doctor.Specialization,
		&doctor.LicenseNumber,
		&doctor.Experience,
		&doctor.Qualification,
		&doctor.Department,
		&doctor.ConsultationFee,
		&doctor.Availability,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	)
	return doctor, err
}

func doctorConflictMessage(constraint string) string {
	if strings.Contains(constraint, "license") {
		return "Doctor already exists with this license number"
	}
	return "Doctor already exists with this email"
}

// CreateDoctor creates a new doctor record. Doctors are global; any
// authenticated user may manage them.
func CreateDoctor(c *gin.Context) {
	var req validation.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid request body"))
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		respondValidationErrors(c, fieldErrors)
		return
	}

	availability := models.JSONObject(req.Availability)
	if availability == nil {
		availability = models.JSONObject{}
	}

	db := database.DB
	query := `INSERT INTO doctors (id, first_name, last_name, email, phone, specialization, license_number, experience, qualification, department, consultation_fee, availability)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING ` + doctorColumns

	doctor, err := scanDoctor(db.QueryRow(
		query,
		uuid.New(),
		req.FirstName,
		req.LastName,
		req.Email,
		req.Phone,
		req.Specialization,
		req.LicenseNumber,
		*req.Experience,
		req.Qualification,
		req.Department,
		*req.ConsultationFee,
		availability,
	))
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			c.JSON(http.StatusBadRequest, errorEnvelope(doctorConflictMessage(constraint)))
			return
		}
		respondStoreError(c, "Failed to create doctor", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Doctor created successfully",
		"data":    gin.H{"doctor": doctor},
	})
}

// GetDoctors lists doctors with search, specialization/department filters and
// pagination, newest first.
func GetDoctors(c *gin.Context) {
	params := parseListQueryParams(c.Query("page"), c.Query("limit"), c.Query("search"))
	specialization := likePattern(c.Query("specialization"))
	department := likePattern(c.Query("department"))

	db := database.DB

	countQuery := `
		SELECT COUNT(*)
		FROM doctors
		WHERE (
			$1 = '' OR
			lower(first_name) LIKE $1 OR
			lower(last_name) LIKE $1 OR
			lower(email) LIKE $1 OR
			lower(specialization) LIKE $1
		  )
		  AND ($2 = '' OR lower(specialization) LIKE $2)
		  AND ($3 = '' OR lower(department) LIKE $3)
	`

	var totalItems int
	if err := db.QueryRow(countQuery, params.Pattern, specialization, department).Scan(&totalItems); err != nil {
		respondStoreError(c, "Failed to retrieve doctors", err)
		return
	}

	query := `
		SELECT ` + doctorColumns + `
		FROM doctors
		WHERE (
			$1 = '' OR
			lower(first_name) LIKE $1 OR
			lower(last_name) LIKE $1 OR
			lower(email) LIKE $1 OR
			lower(specialization) LIKE $1
		  )
		  AND ($2 = '' OR lower(specialization) LIKE $2)
		  AND ($3 = '' OR lower(department) LIKE $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5
	`

	rows, err := db.Query(query, params.Pattern, specialization, department, params.Limit, params.Offset)
	if err != nil {
		respondStoreError(c, "Failed to retrieve doctors", err)
		return
	}
	defer rows.Close()

	doctors := make([]models.Doctor, 0)
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			respondStoreError(c, "Failed to retrieve doctors", err)
			return
		}
		doctors = append(doctors, doctor)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"doctors":    doctors,
			"pagination": paginationMeta(params, totalItems),
		},
	})
}

// GetDoctor returns a single doctor by id.
func GetDoctor(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid doctor ID"))
		return
	}

	db := database.DB
	doctor, err := scanDoctor(db.QueryRow(`SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, doctorID))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, errorEnvelope("Doctor not found"))
			return
		}
		respondStoreError(c, "Failed to retrieve doctor", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"doctor": doctor},
	})
}

// UpdateDoctor applies a partial update; absent fields keep their values.
func UpdateDoctor(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid doctor ID"))
		return
	}

	var req validation.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid request body"))
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		respondValidationErrors(c, fieldErrors)
		return
	}

	var availability interface{}
	if req.Availability != nil {
		availability = models.JSONObject(req.Availability)
	}

	db := database.DB
	query := `
		UPDATE doctors
		SET
			first_name = COALESCE($1, first_name),
			last_name = COALESCE($2, last_name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			specialization = COALESCE($5, specialization),
			license_number = COALESCE($6, license_number),
			experience = COALESCE($7, experience),
			qualification = COALESCE($8, qualification),
			department = COALESCE($9, department),
			consultation_fee = COALESCE($10, consultation_fee),
			availability = COALESCE($11, availability),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $12
		RETURNING ` + doctorColumns

	doctor, err := scanDoctor(db.QueryRow(
		query,
		req.FirstName,
		req.LastName,
		req.Email,
		req.Phone,
		req.Specialization,
		req.LicenseNumber,
		req.Experience,
		req.Qualification,
		req.Department,
		req.ConsultationFee,
		availability,
		doctorID,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, errorEnvelope("Doctor not found"))
			return
		}
		if constraint, ok := uniqueViolation(err); ok {
			c.JSON(http.StatusBadRequest, errorEnvelope(doctorConflictMessage(constraint)))
			return
		}
		respondStoreError(c, "Failed to update doctor", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Doctor updated successfully",
		"data":    gin.H{"doctor": doctor},
	})
}

// DeleteDoctor removes a doctor by id.
func DeleteDoctor(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid doctor ID"))
		return
	}

	db := database.DB
	result, err := db.Exec(`DELETE FROM doctors WHERE id = $1`, doctorID)
	if err != nil {
		respondStoreError(c, "Failed to delete doctor", err)
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		respondStoreError(c, "Failed to delete doctor", err)
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, errorEnvelope("Doctor not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Doctor deleted successfully",
	})
}
