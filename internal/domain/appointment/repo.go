package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the storage boundary for appointments. Every method is
// scoped to a tenant; rows outside the caller's tenant behave as absent.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Appointment, error)

	// UpdateOne and UpdateSeries return the number of rows touched so the
	// caller can distinguish not-found from success.
	UpdateOne(ctx context.Context, tenantID, id uuid.UUID, p *Patch) (int64, error)
	UpdateSeries(ctx context.Context, tenantID, baseID uuid.UUID, p *Patch) (int64, error)

	DeleteOne(ctx context.Context, tenantID, id uuid.UUID) (int64, error)
	DeleteSeries(ctx context.Context, tenantID, baseID uuid.UUID) (int64, error)

	ListByDateRange(ctx context.Context, tenantID uuid.UUID, from, to *time.Time, limit, offset int) ([]*Appointment, int, error)
	ListSeries(ctx context.Context, tenantID, baseID uuid.UUID) ([]*Appointment, error)
}
