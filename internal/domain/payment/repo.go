package payment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error)
	Update(ctx context.Context, p *Payment) (int64, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) (int64, error)
	ListByPatient(ctx context.Context, tenantID, patientID uuid.UUID, limit, offset int) ([]*Payment, int, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*Payment, int, error)
}
