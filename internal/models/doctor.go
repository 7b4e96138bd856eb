package models

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is a global record; any authenticated user may manage any doctor.
type Doctor struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	FirstName       string     `json:"firstName" db:"first_name"`
	LastName        string     `json:"lastName" db:"last_name"`
	Email           string     `json:"email" db:"email"`
	Phone           string     `json:"phone" db:"phone"`
	Specialization  string     `json:"specialization" db:"specialization"`
	LicenseNumber   string     `json:"licenseNumber" db:"license_number"`
	Experience      int        `json:"experience" db:"experience"`
	Qualification   string     `json:"qualification" db:"qualification"`
	Department      string     `json:"department" db:"department"`
	ConsultationFee float64    `json:"consultationFee" db:"consultation_fee"`
	Availability    JSONObject `json:"availability" db:"availability"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}
