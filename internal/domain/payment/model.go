package payment

import (
	"time"

	"github.com/google/uuid"
)

const DefaultStatus = "pending"

// Payment maps to the payments table. A payment optionally references the
// appointment and catalog service it settles.
type Payment struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	TenantID      uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	AppointmentID *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	ServiceID     *uuid.UUID `db:"service_id" json:"service_id,omitempty"`
	Amount        float64    `db:"amount" json:"amount"`
	PaymentType   string     `db:"payment_type" json:"payment_type"`
	Status        string     `db:"status" json:"status"`
	PaidAt        *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	Notes         *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
