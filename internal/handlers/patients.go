package handlers

import (
	"database/sql"
	"net/http"

	"clinic-api/internal/database"
	"clinic-api/internal/models"
	"clinic-api/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const patientColumns = `id, first_name, last_name, email, phone, date_of_birth, gender, address, medical_history, emergency_contact, created_by, created_at, updated_at`

func scanPatient(row rowScanner) (models.Patient, error) {
	var patient models.Patient
	err := row.Scan(
		&patient.ID,
		&patient.FirstName,
		&patient.LastName,
		&patient.Email,
		&patient.Phone,
		&patient.DateOfBirth,
		&patient.Gender,
		&patient.Address,
		&patient.MedicalHistory,
		&patient.EmergencyContact,
		&patient.CreatedBy,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)
	return patient, err
}

// CreatePatient creates a patient owned by the authenticated user. Any
// client-supplied owner is ignored.
func CreatePatient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req validation.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid request body"))
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		respondValidationErrors(c, fieldErrors)
		return
	}

	dateOfBirth, err := models.ParseDateOnly(req.DateOfBirth)
	if err != nil {
		respondValidationErrors(c, []validation.FieldError{{Field: "dateOfBirth", Message: "dateOfBirth must be a valid date in the past"}})
		return
	}

	db := database.DB
	query := `INSERT INTO patients (id, first_name, last_name, email, phone, date_of_birth, gender, address, medical_history, emergency_contact, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING ` + patientColumns

	patient, err := scanPatient(db.QueryRow(
		query,
		uuid.New(),
		req.FirstName,
		req.LastName,
		req.Email,
		req.Phone,
		dateOfBirth,
		req.Gender,
		req.Address,
		req.MedicalHistory,
		req.EmergencyContact,
		userID,
	))
	if err != nil {
		respondStoreError(c, "Failed to create patient", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Patient created successfully",
		"data":    gin.H{"patient": patient},
	})
}

// GetPatients lists the authenticated user's patients with search and
// pagination, newest first.
func GetPatients(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := parseListQueryParams(c.Query("page"), c.Query("limit"), c.Query("search"))

	db := database.DB

	countQuery := `
		SELECT COUNT(*)
		FROM patients
		WHERE created_by = $1
		  AND (
			$2 = '' OR
			lower(first_name) LIKE $2 OR
			lower(last_name) LIKE $2 OR
			lower(email) LIKE $2
		  )
	`

	var totalItems int
	if err := db.QueryRow(countQuery, userID, params.Pattern).Scan(&totalItems); err != nil {
		respondStoreError(c, "Failed to retrieve patients", err)
		return
	}

	query := `
		SELECT ` + patientColumns + `
		FROM patients
		WHERE created_by = $1
		  AND (
			$2 = '' OR
			lower(first_name) LIKE $2 OR
			lower(last_name) LIKE $2 OR
			lower(email) LIKE $2
		  )
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := db.Query(query, userID, params.Pattern, params.Limit, params.Offset)
	if err != nil {
		respondStoreError(c, "Failed to retrieve patients", err)
		return
	}
	defer rows.Close()

	patients := make([]models.Patient, 0)
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			respondStoreError(c, "Failed to retrieve patients", err)
			return
		}
		patients = append(patients, patient)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"patients":   patients,
			"pagination": paginationMeta(params, totalItems),
		},
	})
}

// GetPatient returns one of the user's patients. Someone else's patient is
// indistinguishable from a missing one.
func GetPatient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid patient ID"))
		return
	}

	db := database.DB
	patient, err := scanPatient(db.QueryRow(
		`SELECT `+patientColumns+` FROM patients WHERE id = $1 AND created_by = $2`,
		patientID,
		userID,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, errorEnvelope("Patient not found"))
			return
		}
		respondStoreError(c, "Failed to retrieve patient", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"patient": patient},
	})
}

// UpdatePatient applies a partial update to one of the user's patients.
func UpdatePatient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid patient ID"))
		return
	}

	var req validation.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid request body"))
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		respondValidationErrors(c, fieldErrors)
		return
	}

	var dateOfBirth interface{}
	if req.DateOfBirth != nil {
		parsed, err := models.ParseDateOnly(*req.DateOfBirth)
		if err != nil {
			respondValidationErrors(c, []validation.FieldError{{Field: "dateOfBirth", Message: "dateOfBirth must be a valid date in the past"}})
			return
		}
		dateOfBirth = parsed
	}

	db := database.DB
	query := `
		UPDATE patients
		SET
			first_name = COALESCE($1, first_name),
			last_name = COALESCE($2, last_name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			date_of_birth = COALESCE($5, date_of_birth),
			gender = COALESCE($6, gender),
			address = COALESCE($7, address),
			medical_history = COALESCE($8, medical_history),
			emergency_contact = COALESCE($9, emergency_contact),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $10 AND created_by = $11
		RETURNING ` + patientColumns

	patient, err := scanPatient(db.QueryRow(
		query,
		req.FirstName,
		req.LastName,
		req.Email,
		req.Phone,
		dateOfBirth,
		req.Gender,
		req.Address,
		req.MedicalHistory,
		req.EmergencyContact,
		patientID,
		userID,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, errorEnvelope("Patient not found"))
			return
		}
		respondStoreError(c, "Failed to update patient", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Patient updated successfully",
		"data":    gin.H{"patient": patient},
	})
}

// DeletePatient removes one of the user's patients.
func DeletePatient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid patient ID"))
		return
	}

	db := database.DB
	result, err := db.Exec(`DELETE FROM patients WHERE id = $1 AND created_by = $2`, patientID, userID)
	if err != nil {
		respondStoreError(c, "Failed to delete patient", err)
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		respondStoreError(c, "Failed to delete patient", err)
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, errorEnvelope("Patient not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Patient deleted successfully",
	})
}
