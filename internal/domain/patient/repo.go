package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) (int64, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) (int64, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*Patient, int, error)
}
