package store

import "github.com/phrazzld/patient-api/internal/domain"

// PatientStore defines the interface for patient record storage.
type PatientStore = RecordStore[domain.Patient]

// PatientSchema binds domain.Patient to a RecordStore.
var PatientSchema = Schema[domain.Patient]{
	Entity: "patient",
	ID:     func(p domain.Patient) int { return p.ID },
	WithID: func(p domain.Patient, id int) domain.Patient {
		p.ID = id
		return p
	},
	Validate:  domain.Patient.Validate,
	Clone:     domain.Patient.Clone,
	NotFound:  ErrPatientNotFound,
	Duplicate: ErrPatientExists,
}
