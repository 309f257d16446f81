package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table. Clinical history lives in sessions;
// this record carries identity, contact, and intake details.
type Patient struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	TenantID           uuid.UUID `db:"tenant_id" json:"tenant_id"`
	FullName           string    `db:"full_name" json:"full_name"`
	Email              *string   `db:"email" json:"email,omitempty"`
	Whatsapp           *string   `db:"whatsapp" json:"whatsapp,omitempty"`
	TaxID              *string   `db:"tax_id" json:"tax_id,omitempty"`
	Street             *string   `db:"street" json:"street,omitempty"`
	HouseNumber        *string   `db:"house_number" json:"house_number,omitempty"`
	Neighborhood       *string   `db:"neighborhood" json:"neighborhood,omitempty"`
	City               *string   `db:"city" json:"city,omitempty"`
	State              *string   `db:"state" json:"state,omitempty"`
	Country            *string   `db:"country" json:"country,omitempty"`
	Nationality        *string   `db:"nationality" json:"nationality,omitempty"`
	MaritalStatus      *string   `db:"marital_status" json:"marital_status,omitempty"`
	Education          *string   `db:"education" json:"education,omitempty"`
	Profession         *string   `db:"profession" json:"profession,omitempty"`
	FamilyContact      *string   `db:"family_contact" json:"family_contact,omitempty"`
	HasChildren        *bool     `db:"has_children" json:"has_children,omitempty"`
	ChildrenCount      *int      `db:"children_count" json:"children_count,omitempty"`
	SpouseName         *string   `db:"spouse_name" json:"spouse_name,omitempty"`
	Insurance          *string   `db:"insurance" json:"insurance,omitempty"`
	InsuranceName      *string   `db:"insurance_name" json:"insurance_name,omitempty"`
	NeedsReimbursement *bool     `db:"needs_reimbursement" json:"needs_reimbursement,omitempty"`
	Status             string    `db:"status" json:"status"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}
