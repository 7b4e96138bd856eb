package database

import (
	"fmt"
	"log"
)

// CreateTables creates all required tables in the database
func CreateTables() {
	ensurePgcryptoExtension()
	createUsersTable()
	createPatientsTable()
	createDoctorsTable()
	createMappingsTable()
}

func createUsersTable() {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(100) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := DB.Exec(query)
	if err != nil {
		log.Fatal("Failed to create users table:", err)
	}

	fmt.Println("Users table created successfully")
}

func createPatientsTable() {
	query := `
	CREATE TABLE IF NOT EXISTS patients (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		first_name VARCHAR(50) NOT NULL,
		last_name VARCHAR(50) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL,
		date_of_birth DATE NOT NULL,
		gender VARCHAR(10) NOT NULL CHECK (gender IN ('male', 'female', 'other')),
		address TEXT,
		medical_history TEXT,
		emergency_contact VARCHAR(255),
		created_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := DB.Exec(query)
	if err != nil {
		log.Fatal("Failed to create patients table:", err)
	}

	ensurePatientsSchema()
	fmt.Println("Patients table created successfully")
}

func createDoctorsTable() {
	query := `
	CREATE TABLE IF NOT EXISTS doctors (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		first_name VARCHAR(50) NOT NULL,
		last_name VARCHAR(50) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		phone VARCHAR(50) NOT NULL,
		specialization VARCHAR(255) NOT NULL,
		license_number VARCHAR(100) UNIQUE NOT NULL,
		experience INTEGER NOT NULL CHECK (experience BETWEEN 0 AND 50),
		qualification VARCHAR(255) NOT NULL,
		department VARCHAR(255) NOT NULL,
		consultation_fee NUMERIC(10,2) NOT NULL CHECK (consultation_fee >= 0),
		availability JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := DB.Exec(query)
	if err != nil {
		log.Fatal("Failed to create doctors table:", err)
	}

	ensureDoctorsSchema()
	fmt.Println("Doctors table created successfully")
}

func createMappingsTable() {
	query := `
	CREATE TABLE IF NOT EXISTS patient_doctor_mappings (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		patient_id UUID NOT NULL REFERENCES patients(id) ON DELETE CASCADE,
		doctor_id UUID NOT NULL REFERENCES doctors(id) ON DELETE CASCADE,
		assigned_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		status VARCHAR(20) NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive', 'completed')),
		notes TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(patient_id, doctor_id)
	);
	`

	_, err := DB.Exec(query)
	if err != nil {
		log.Fatal("Failed to create patient_doctor_mappings table:", err)
	}

	ensureMappingsSchema()
	fmt.Println("Patient_doctor_mappings table created successfully")
}

func ensurePatientsSchema() {
	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS patients_owner_created_idx ON patients(created_by, created_at DESC)`); err != nil {
		log.Fatal("Failed to ensure patients owner/created index:", err)
	}
}

func ensureDoctorsSchema() {
	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS doctors_created_idx ON doctors(created_at DESC)`); err != nil {
		log.Fatal("Failed to ensure doctors created index:", err)
	}

	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS doctors_specialization_idx ON doctors(lower(specialization))`); err != nil {
		log.Fatal("Failed to ensure doctors specialization index:", err)
	}
}

func ensureMappingsSchema() {
	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS mappings_patient_created_idx ON patient_doctor_mappings(patient_id, created_at DESC)`); err != nil {
		log.Fatal("Failed to ensure mappings patient/created index:", err)
	}

	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS mappings_status_idx ON patient_doctor_mappings(status)`); err != nil {
		log.Fatal("Failed to ensure mappings status index:", err)
	}

	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS mappings_doctor_idx ON patient_doctor_mappings(doctor_id)`); err != nil {
		log.Fatal("Failed to ensure mappings doctor index:", err)
	}
}

func ensurePgcryptoExtension() {
	if _, err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`); err != nil {
		log.Fatal("Failed to ensure pgcrypto extension:", err)
	}
}
