package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Default field values applied when a creation request leaves them blank.
const (
	DefaultDurationMinutes = 50
	DefaultStatus          = "scheduled"
	DefaultModality        = "in_person"
	DefaultType            = "consultation"
)

// Appointment maps to the appointments table. An appointment is either
// standalone, the root of a recurring series (RecurrenceIndex 0, rule and
// termination stored on it), or a generated child pointing at its root.
type Appointment struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	TenantID            uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	PatientID           uuid.UUID  `db:"patient_id" json:"patient_id"`
	ProviderID          uuid.UUID  `db:"provider_id" json:"provider_id"`
	ServiceID           *uuid.UUID `db:"service_id" json:"service_id,omitempty"`
	AppointmentDate     time.Time  `db:"appointment_date" json:"appointment_date"`
	DurationMinutes     int        `db:"duration_minutes" json:"duration_minutes"`
	Status              string     `db:"status" json:"status"`
	Modality            string     `db:"modality" json:"modality"`
	Type                string     `db:"type" json:"type"`
	Notes               *string    `db:"notes" json:"notes,omitempty"`
	MeetingURL          *string    `db:"meeting_url" json:"meeting_url,omitempty"`
	RecurrenceRule      *Rule      `db:"recurrence_rule" json:"recurrence_rule,omitempty"`
	RecurrenceEndDate   *time.Time `db:"recurrence_end_date" json:"recurrence_end_date,omitempty"`
	RecurrenceCount     *int       `db:"recurrence_count" json:"recurrence_count,omitempty"`
	ParentAppointmentID *uuid.UUID `db:"parent_appointment_id" json:"parent_appointment_id,omitempty"`
	RecurrenceIndex     int        `db:"recurrence_index" json:"recurrence_index"`
	CreatedBy           string     `db:"created_by" json:"created_by"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

// BaseID returns the canonical series id: the appointment's own id for roots
// and standalone appointments, otherwise its parent's.
func (a *Appointment) BaseID() uuid.UUID {
	if a.ParentAppointmentID != nil {
		return *a.ParentAppointmentID
	}
	return a.ID
}

// Patch carries a partial update. A nil field is left untouched; a non-nil
// field overwrites the stored value on every matched row.
type Patch struct {
	PatientID       *uuid.UUID `json:"patient_id,omitempty"`
	ProviderID      *uuid.UUID `json:"provider_id,omitempty"`
	ServiceID       *uuid.UUID `json:"service_id,omitempty"`
	AppointmentDate *time.Time `json:"appointment_date,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Status          *string    `json:"status,omitempty"`
	Modality        *string    `json:"modality,omitempty"`
	Type            *string    `json:"type,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	MeetingURL      *string    `json:"meeting_url,omitempty"`
}

// IsEmpty reports whether the patch names no fields at all.
func (p *Patch) IsEmpty() bool {
	return p.PatientID == nil && p.ProviderID == nil && p.ServiceID == nil &&
		p.AppointmentDate == nil && p.DurationMinutes == nil && p.Status == nil &&
		p.Modality == nil && p.Type == nil && p.Notes == nil && p.MeetingURL == nil
}
