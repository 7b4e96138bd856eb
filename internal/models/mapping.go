package models

import (
	"time"

	"github.com/google/uuid"
)

// Mapping statuses. A mapping starts active and may move to inactive or
// completed; deletion is unconditional.
const (
	MappingStatusActive    = "active"
	MappingStatusInactive  = "inactive"
	MappingStatusCompleted = "completed"
)

// PatientDoctorMapping is the join record assigning a doctor to a patient.
// The (PatientID, DoctorID) pair is unique.
type PatientDoctorMapping struct {
	ID           uuid.UUID `json:"id" db:"id"`
	PatientID    uuid.UUID `json:"patientId" db:"patient_id"`
	DoctorID     uuid.UUID `json:"doctorId" db:"doctor_id"`
	AssignedDate time.Time `json:"assignedDate" db:"assigned_date"`
	Status       string    `json:"status" db:"status"`
	Notes        *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	Patient *Patient `json:"patient,omitempty" db:"-"`
	Doctor  *Doctor  `json:"doctor,omitempty" db:"-"`
}
