package validation

// Request schemas. Create schemas require the mandatory fields; update
// schemas make every field optional but apply the same per-field rules when
// a value is present. Field names in error output follow the json tags.

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreatePatientRequest struct {
	FirstName        string  `json:"firstName" validate:"required,min=2,max=50"`
	LastName         string  `json:"lastName" validate:"required,min=2,max=50"`
	Email            string  `json:"email" validate:"required,email"`
	Phone            string  `json:"phone" validate:"required"`
	DateOfBirth      string  `json:"dateOfBirth" validate:"required,pastdate"`
	Gender           string  `json:"gender" validate:"required,oneof=male female other"`
	Address          *string `json:"address" validate:"omitempty"`
	MedicalHistory   *string `json:"medicalHistory" validate:"omitempty"`
	EmergencyContact *string `json:"emergencyContact" validate:"omitempty"`
}

type UpdatePatientRequest struct {
	FirstName        *string `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName         *string `json:"lastName" validate:"omitempty,min=2,max=50"`
	Email            *string `json:"email" validate:"omitempty,email"`
	Phone            *string `json:"phone" validate:"omitempty,min=1"`
	DateOfBirth      *string `json:"dateOfBirth" validate:"omitempty,pastdate"`
	Gender           *string `json:"gender" validate:"omitempty,oneof=male female other"`
	Address          *string `json:"address" validate:"omitempty"`
	MedicalHistory   *string `json:"medicalHistory" validate:"omitempty"`
	EmergencyContact *string `json:"emergencyContact" validate:"omitempty"`
}

type CreateDoctorRequest struct {
	FirstName       string                 `json:"firstName" validate:"required,min=2,max=50"`
	LastName        string                 `json:"lastName" validate:"required,min=2,max=50"`
	Email           string                 `json:"email" validate:"required,email"`
	Phone           string                 `json:"phone" validate:"required"`
	Specialization  string                 `json:"specialization" validate:"required"`
	LicenseNumber   string                 `json:"licenseNumber" validate:"required"`
	Experience      *int                   `json:"experience" validate:"required,gte=0,lte=50"`
	Qualification   string                 `json:"qualification" validate:"required"`
	Department      string                 `json:"department" validate:"required"`
	ConsultationFee *float64               `json:"consultationFee" validate:"required,gt=0"`
	Availability    map[string]interface{} `json:"availability" validate:"omitempty"`
}

type UpdateDoctorRequest struct {
	FirstName       *string                `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName        *string                `json:"lastName" validate:"omitempty,min=2,max=50"`
	Email           *string                `json:"email" validate:"omitempty,email"`
	Phone           *string                `json:"phone" validate:"omitempty,min=1"`
	Specialization  *string                `json:"specialization" validate:"omitempty,min=1"`
	LicenseNumber   *string                `json:"licenseNumber" validate:"omitempty,min=1"`
	Experience      *int                   `json:"experience" validate:"omitempty,gte=0,lte=50"`
	Qualification   *string                `json:"qualification" validate:"omitempty,min=1"`
	Department      *string                `json:"department" validate:"omitempty,min=1"`
	ConsultationFee *float64               `json:"consultationFee" validate:"omitempty,gt=0"`
	Availability    map[string]interface{} `json:"availability" validate:"omitempty"`
}

type CreateMappingRequest struct {
	PatientID string  `json:"patientId" validate:"required,uuid4"`
	DoctorID  string  `json:"doctorId" validate:"required,uuid4"`
	Notes     *string `json:"notes" validate:"omitempty"`
}
