package catalog

import (
	"time"

	"github.com/google/uuid"
)

const DefaultDurationMinutes = 50

// Item maps to the services table: a bookable service offering with its
// pricing and default session length.
type Item struct {
	ID          uuid.UUID `db:"id" json:"id"`
	TenantID    uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name        string    `db:"name" json:"name"`
	Category    *string   `db:"category" json:"category,omitempty"`
	Duration    int       `db:"duration" json:"duration"`
	Price       *float64  `db:"price" json:"price,omitempty"`
	Cost        *float64  `db:"cost" json:"cost,omitempty"`
	Color       *string   `db:"color" json:"color,omitempty"`
	Modality    *string   `db:"modality" json:"modality,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
