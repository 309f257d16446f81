package catalog

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Item, error)
	Update(ctx context.Context, it *Item) (int64, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) (int64, error)
	List(ctx context.Context, tenantID uuid.UUID, activeOnly bool, limit, offset int) ([]*Item, int, error)
}
