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

const (
	mappingColumns        = `m.id, m.patient_id, m.doctor_id, m.assigned_date, m.status, m.notes, m.created_at, m.updated_at`
	mappingPatientColumns = `p.id, p.first_name, p.last_name, p.email, p.phone, p.date_of_birth, p.gender, p.address, p.medical_history, p.emergency_contact, p.created_by, p.created_at, p.updated_at`
	mappingDoctorColumns  = `d.id, d.first_name, d.last_name, d.email, d.phone, d.specialization, d.license_number, d.experience, d.qualification, d.department, d.consultation_fee, d.availability, d.created_at, d.updated_at`
)

func scanMappingWithDetails(row rowScanner) (models.PatientDoctorMapping, error) {
	var mapping models.PatientDoctorMapping
	var patient models.Patient
	var doctor models.Doctor

	err := row.Scan(
		&mapping.ID,
		&mapping.PatientID,
		&mapping.DoctorID,
		&mapping.AssignedDate,
		&mapping.Status,
		&mapping.Notes,
		&mapping.CreatedAt,
		&mapping.UpdatedAt,
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
	if err != nil {
		return mapping, err
	}

	mapping.Patient = &patient
	mapping.Doctor = &doctor
	return mapping, nil
}

// patientOwnedBy reports whether the patient exists and belongs to the user.
// A single owner-scoped query, so "missing" and "not owned" are the same
// answer and existence never leaks.
func patientOwnedBy(db *sql.DB, patientID, userID uuid.UUID) (bool, error) {
	var id uuid.UUID
	err := db.QueryRow(`SELECT id FROM patients WHERE id = $1 AND created_by = $2`, patientID, userID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateMapping assigns a doctor to one of the user's patients. The
// (patient_id, doctor_id) unique index is the authoritative duplicate guard;
// the existence pre-check only produces the friendlier message when it wins.
func CreateMapping(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req validation.CreateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid request body"))
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		respondValidationErrors(c, fieldErrors)
		return
	}

	patientID := uuid.MustParse(req.PatientID)
	doctorID := uuid.MustParse(req.DoctorID)

	db := database.DB

	owned, err := patientOwnedBy(db, patientID, userID)
	if err != nil {
		respondStoreError(c, "Failed to create mapping", err)
		return
	}
	if !owned {
		c.JSON(http.StatusNotFound, errorEnvelope("Patient not found or access denied"))
		return
	}

	var existingDoctorID uuid.UUID
	err = db.QueryRow(`SELECT id FROM doctors WHERE id = $1`, doctorID).Scan(&existingDoctorID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, errorEnvelope("Doctor not found"))
			return
		}
		respondStoreError(c, "Failed to create mapping", err)
		return
	}

	var alreadyAssigned bool
	err = db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM patient_doctor_mappings WHERE patient_id = $1 AND doctor_id = $2)`,
		patientID,
		doctorID,
	).Scan(&alreadyAssigned)
	if err != nil {
		respondStoreError(c, "Failed to create mapping", err)
		return
	}
	if alreadyAssigned {
		c.JSON(http.StatusBadRequest, errorEnvelope("Patient is already assigned to this doctor"))
		return
	}

	var mappingID uuid.UUID
	err = db.QueryRow(
		`INSERT INTO patient_doctor_mappings (id, patient_id, doctor_id, notes) VALUES ($1, $2, $3, $4) RETURNING id`,
		uuid.New(),
		patientID,
		doctorID,
		req.Notes,
	).Scan(&mappingID)
	if err != nil {
		// A concurrent create can beat the pre-check; the race loser gets the
		// same answer as the pre-check path.
		if _, ok := uniqueViolation(err); ok {
			c.JSON(http.StatusBadRequest, errorEnvelope("Patient is already assigned to this doctor"))
			return
		}
		respondStoreError(c, "Failed to create mapping", err)
		return
	}

	query := `
		SELECT ` + mappingColumns + `, ` + mappingPatientColumns + `, ` + mappingDoctorColumns + `
		FROM patient_doctor_mappings m
		JOIN patients p ON p.id = m.patient_id
		JOIN doctors d ON d.id = m.doctor_id
		WHERE m.id = $1
	`

	mapping, err := scanMappingWithDetails(db.QueryRow(query, mappingID))
	if err != nil {
		respondStoreError(c, "Failed to create mapping", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Patient assigned to doctor successfully",
		"data":    gin.H{"mapping": mapping},
	})
}

// GetMappings lists mappings for the user's patients with an optional status
// filter and pagination, newest first.
func GetMappings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := parseListQueryParams(c.Query("page"), c.Query("limit"), "")
	status := c.Query("status")

	db := database.DB

	countQuery := `
		SELECT COUNT(*)
		FROM patient_doctor_mappings m
		JOIN patients p ON p.id = m.patient_id
		WHERE p.created_by = $1
		  AND ($2 = '' OR m.status = $2)
	`

	var totalItems int
	if err := db.QueryRow(countQuery, userID, status).Scan(&totalItems); err != nil {
		respondStoreError(c, "Failed to retrieve mappings", err)
		return
	}

	query := `
		SELECT ` + mappingColumns + `, ` + mappingPatientColumns + `, ` + mappingDoctorColumns + `
		FROM patient_doctor_mappings m
		JOIN patients p ON p.id = m.patient_id
		JOIN doctors d ON d.id = m.doctor_id
		WHERE p.created_by = $1
		  AND ($2 = '' OR m.status = $2)
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := db.Query(query, userID, status, params.Limit, params.Offset)
	if err != nil {
		respondStoreError(c, "Failed to retrieve mappings", err)
		return
	}
	defer rows.Close()

	mappings := make([]models.PatientDoctorMapping, 0)
	for rows.Next() {
		mapping, err := scanMappingWithDetails(rows)
		if err != nil {
			respondStoreError(c, "Failed to retrieve mappings", err)
			return
		}
		mappings = append(mappings, mapping)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"mappings":   mappings,
			"pagination": paginationMeta(params, totalItems),
		},
	})
}

// GetPatientMappings returns all doctors assigned to one of the user's
// patients, newest first. Bounded by one patient's doctor count, so no
// pagination.
func GetPatientMappings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid patient ID"))
		return
	}

	db := database.DB

	owned, err := patientOwnedBy(db, patientID, userID)
	if err != nil {
		respondStoreError(c, "Failed to retrieve patient mappings", err)
		return
	}
	if !owned {
		c.JSON(http.StatusNotFound, errorEnvelope("Patient not found or access denied"))
		return
	}

	query := `
		SELECT ` + mappingColumns + `, ` + mappingPatientColumns + `, ` + mappingDoctorColumns + `
		FROM patient_doctor_mappings m
		JOIN patients p ON p.id = m.patient_id
		JOIN doctors d ON d.id = m.doctor_id
		WHERE m.patient_id = $1
		ORDER BY m.created_at DESC, m.id DESC
	`

	rows, err := db.Query(query, patientID)
	if err != nil {
		respondStoreError(c, "Failed to retrieve patient mappings", err)
		return
	}
	defer rows.Close()

	mappings := make([]models.PatientDoctorMapping, 0)
	for rows.Next() {
		mapping, err := scanMappingWithDetails(rows)
		if err != nil {
			respondStoreError(c, "Failed to retrieve patient mappings", err)
			return
		}
		mappings = append(mappings, mapping)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"mappings": mappings},
	})
}

// DeleteMapping removes a mapping whose patient belongs to the user. One
// owner-scoped statement covers both "does not exist" and "not owned".
func DeleteMapping(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mappingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid mapping ID"))
		return
	}

	db := database.DB
	result, err := db.Exec(
		`DELETE FROM patient_doctor_mappings m USING patients p WHERE m.id = $1 AND p.id = m.patient_id AND p.created_by = $2`,
		mappingID,
		userID,
	)
	if err != nil {
		respondStoreError(c, "Failed to remove mapping", err)
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		respondStoreError(c, "Failed to remove mapping", err)
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, errorEnvelope("Mapping not found or access denied"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Doctor removed from patient successfully",
	})
}
