package models

import (
	"time"

	"github.com/google/uuid"
)

// Patient is owned by the user that created it; all reads and writes are
// scoped to that owner.
type Patient struct {
	ID               uuid.UUID `json:"id" db:"id"`
	FirstName        string    `json:"firstName" db:"first_name"`
	LastName         string    `json:"lastName" db:"last_name"`
	Email            string    `json:"email" db:"email"`
	Phone            string    `json:"phone" db:"phone"`
	DateOfBirth      DateOnly  `json:"dateOfBirth" db:"date_of_birth"`
	Gender           string    `json:"gender" db:"gender"`
	Address          *string   `json:"address,omitempty" db:"address"`
	MedicalHistory   *string   `json:"medicalHistory,omitempty" db:"medical_history"`
	EmergencyContact *string   `json:"emergencyContact,omitempty" db:"emergency_contact"`
	CreatedBy        uuid.UUID `json:"createdBy" db:"created_by"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}
