package session

import (
	"time"

	"github.com/google/uuid"
)

const DefaultStatus = "pending"

// Session maps to the sessions table: the clinical record of a patient
// encounter, optionally tied to the appointment it fulfills.
type Session struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	TenantID      uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	AppointmentID *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	ProviderID    uuid.UUID  `db:"provider_id" json:"provider_id"`
	Status        string     `db:"status" json:"status"`
	StartedAt     *time.Time `db:"started_at" json:"started_at,omitempty"`
	EndedAt       *time.Time `db:"ended_at" json:"ended_at,omitempty"`
	Notes         *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
