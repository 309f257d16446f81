package virtualroom

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Room, error)
	GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Room, error)
	Update(ctx context.Context, r *Room) (int64, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) (int64, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*Room, int, error)
}
