package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var mappingJoinTestColumns = []string{
	"id", "patient_id", "doctor_id", "assigned_date", "status", "notes", "created_at", "updated_at",
	"p_id", "p_first_name", "p_last_name", "p_email", "p_phone", "p_date_of_birth",
	"p_gender", "p_address", "p_medical_history", "p_emergency_contact",
	"p_created_by", "p_created_at", "p_updated_at",
	"d_id", "d_first_name", "d_last_name", "d_email", "d_phone", "d_specialization",
	"d_license_number", "d_experience", "d_qualification", "d_department",
	"d_consultation_fee", "d_availability", "d_created_at", "d_updated_at",
}

func mappingJoinRowValues(mappingID, patientID, doctorID, userID uuid.UUID, status string, now time.Time) []driverValue {
	values := []driverValue{
		mappingID.String(), patientID.String(), doctorID.String(), now, status, nil, now, now,
		patientID.String(), "Jane", "Doe", "jane@x.com", "555-0100", "1990-01-01",
		"female", nil, nil, nil, userID.String(), now, now,
	}
	return append(values, doctorRowValues(doctorID, "house@clinic.example", "LIC-1001", now)...)
}

func expectPatientOwnershipCheck(mock sqlmock.Sqlmock, patientID, userID uuid.UUID, owned bool) {
	expectation := mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id FROM patients WHERE id = $1 AND created_by = $2`)).
		WithArgs(patientID.String(), userID.String())
	if owned {
		expectation.WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(patientID.String()))
	} else {
		expectation.WillReturnError(sql.ErrNoRows)
	}
}

func TestCreateMappingSuccess(t *testing.T) {
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	userID := uuid.New()
	patientID := uuid.New()
	doctorID := uuid.New()
	mappingID := uuid.New()
	now := time.Now()

	expectPatientOwnershipCheck(mock, patientID, userID, true)

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id FROM doctors WHERE id = $1`)).
		WithArgs(doctorID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(doctorID.String()))

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM patient_doctor_mappings WHERE patient_id = $1 AND doctor_id = $2)`)).
		WithArgs(patientID.String(), doctorID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.
		ExpectQuery(`INSERT INTO patient_doctor_mappings`).
		WithArgs(sqlmock.AnyArg(), patientID.String(), doctorID.String(), nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(mappingID.String()))

	mock.
		ExpectQuery(`FROM patient_doctor_mappings m`).
		WithArgs(mappingID.String()).
		WillReturnRows(
			sqlmock.NewRows(mappingJoinTestColumns).
				AddRow(mappingJoinRowValues(mappingID, patientID, doctorID, userID, "active", now)...),
		)

	router := gin.New()
	router.POST("/api/mappings", withTestUserID(userID.String()), CreateMapping)

	resp := postJSON(t, router, "/api/mappings", map[string]any{
		"patientId": patientID.String(),
		"doctorId":  doctorID.String(),
	})
	mustStatus(t, resp.Code, http.StatusCreated)

	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	mapping := dataField(t, out, "mapping")
	if mapping["status"] != "active" {
		t.Fatalf("expected active status, got %#v", mapping["status"])
	}
	if _, ok := mapping["patient"].(map[string]any); !ok {
		t.Fatalf("expected embedded patient, got %#v", mapping["patient"])
	}
	if _, ok := mapping["doctor"].(map[string]any); !ok {
		t.Fatalf("expected embedded doctor, got %#v", mapping["doctor"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestCreateMappingAlreadyAssigned(t *testing.T) {
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	userID := uuid.New()
	patientID := uuid.New()
	doctorID := uuid.New()

	expectPatientOwnershipCheck(mock, patientID, userID, true)

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id FROM doctors WHERE id = $1`)).
		WithArgs(doctorID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(doctorID.String()))

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM patient_doctor_mappings WHERE patient_id = $1 AND doctor_id = $2)`)).
		WithArgs(patientID.String(), doctorID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	router := gin.New()
	router.POST("/api/mappings", withTestUserID(userID.String()), CreateMapping)

	resp := postJSON(t, router, "/api/mappings", map[string]any{
		"patientId": patientID.String(),
		"doctorId":  doctorID.String(),
	})
	mustStatus(t, resp.Code, http.StatusBadRequest)

	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out["message"] != "Patient is already assigned to this doctor" {
		t.Fatalf("unexpected message %#v", out["message"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestCreateMappingDuplicateRace(t *testing.T) {
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	userID := uuid.New()
	patientID := uuid.New()
	doctorID := uuid.New()

	expectPatientOwnershipCheck(mock, patientID, userID, true)

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id FROM doctors WHERE id = $1`)).
		WithArgs(doctorID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(doctorID.String()))

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM patient_doctor_mappings WHERE patient_id = $1 AND doctor_id = $2)`)).
		WithArgs(patientID.String(), doctorID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	// A concurrent create wins between the pre-check and the insert; the
	// unique index answers with the same conflict.
	mock.
		ExpectQuery(`INSERT INTO patient_doctor_mappings`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "patient_doctor_mappings_patient_id_doctor_id_key"})

	router := gin.New()
	router.POST("/api/mappings", withTestUserID(userID.String()), CreateMapping)

	resp := postJSON(t, router, "/api/mappings", map[string]any{
		"patientId": patientID.String(),
		"doctorId":  doctorID.String(),
	})
	mustStatus(t, resp.Code, http.StatusBadRequest)

	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out["message"] != "Patient is already assigned to this doctor" {
		t.Fatalf("unexpected message %#v", out["message"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestCreateMappingPatientNotOwned(t *testing.T) {
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	userID := uuid.New()
	patientID := uuid.New()

	expectPatientOwnershipCheck(mock, patientID, userID, false)

	router := gin.New()
	router.POST("/api/mappings", withTestUserID(userID.String()), CreateMapping)

	resp := postJSON(t, router, "/api/mappings", map[string]any{
		"patientId": patientID.String(),
		"doctorId":  uuid.New().String(),
	})
	mustStatus(t, resp.Code, http.StatusNotFound)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestCreateMappingDoctorNotFound(t *testing.T) {
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	userID := uuid.New()
	patientID := uuid.New()
	doctorID := uuid.New()

	expectPatientOwnershipCheck(mock, patientID, userID, true)

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id FROM doctors WHERE id = $1`)).
		WithArgs(doctorID.String()).
		WillReturnError(sql.ErrNoRows)

	router := gin.New()
	router.POST("/api/mappings", withTestUserID(userID.String()), CreateMapping)

	resp := postJSON(t, router, "/api/mappings", map[string]any{
		"patientId": patientID.String(),
		"doctorId":  doctorID.String(),
	})
	mustStatus(t, resp.Code, http.StatusNotFound)

	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out["message"] != "Doctor not found" {
		t.Fatalf("unexpected message %#v", out["message"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestGetMappingsStatusFilter(t *testing.T) {
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	userID := uuid.New()
	now := time.Now()

	mock.
		ExpectQuery(`SELECT COUNT\(\*\)\s+FROM patient_doctor_mappings m`).
		WithArgs(userID.String(), "active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.
		ExpectQuery(`FROM patient_doctor_mappings m`).
		WithArgs(userID.String(), "active", 10, 0).
		WillReturnRows(
			sqlmock.NewRows(mappingJoinTestColumns).
				AddRow(mappingJoinRowValues(uuid.New(), uuid.New(), uuid.New(), userID, "active", now)...),
		)

	router := gin.New()
	router.GET("/api/mappings", withTestUserID(userID.String()), GetMappings)

	req := httptest.NewRequest(http.MethodGet, "/api/mappings?status=active", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	mustStatus(t, resp.Code, http.StatusOK)

	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	data, _ := out["data"].(map[string]any)
	mappings, _ := data["mappings"].([]any)
	if len(mappings) != 1 {
		t.Fatalf("expected 1 mapping, got %d", len(mappings))
	}
	pagination, _ := data["pagination"].(map[string]any)
	if int(pagination["totalItems"].(float64)) != 1 {
		t.Fatalf("expected totalItems=1, got %#v", pagination["totalItems"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestGetPatientMappingsNotOwned(t *testing.T) {
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	userID := uuid.New()
	patientID := uuid.New()

	expectPatientOwnershipCheck(mock, patientID, userID, false)

	router := gin.New()
	router.GET("/api/mappings/:patientId", withTestUserID(userID.String()), GetPatientMappings)

	req := httptest.NewRequest(http.MethodGet, "/api/mappings/"+patientID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	mustStatus(t, resp.Code, http.StatusNotFound)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestDeleteMappingNotOwned(t *testing.T) {
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	userID := uuid.New()
	mappingID := uuid.New()

	// Covers both "mapping does not exist" and "exists but not owned".
	mock.
		ExpectExec(regexp.QuoteMeta(`DELETE FROM patient_doctor_mappings m USING patients p WHERE m.id = $1 AND p.id = m.patient_id AND p.created_by = $2`)).
		WithArgs(mappingID.String(), userID.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	router := gin.New()
	router.DELETE("/api/mappings/:id", withTestUserID(userID.String()), DeleteMapping)

	req := httptest.NewRequest(http.MethodDelete, "/api/mappings/"+mappingID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	mustStatus(t, resp.Code, http.StatusNotFound)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestDeleteMappingSuccess(t *testing.T) {
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	userID := uuid.New()
	mappingID := uuid.New()

	mock.
		ExpectExec(regexp.QuoteMeta(`DELETE FROM patient_doctor_mappings m USING patients p WHERE m.id = $1 AND p.id = m.patient_id AND p.created_by = $2`)).
		WithArgs(mappingID.String(), userID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	router := gin.New()
	router.DELETE("/api/mappings/:id", withTestUserID(userID.String()), DeleteMapping)

	req := httptest.NewRequest(http.MethodDelete, "/api/mappings/"+mappingID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	mustStatus(t, resp.Code, http.StatusOK)

	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out["message"] != "Doctor removed from patient successfully" {
		t.Fatalf("unexpected message %#v", out["message"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
