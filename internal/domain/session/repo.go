package session

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Session, error)
	Update(ctx context.Context, s *Session) (int64, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) (int64, error)
	ListByPatient(ctx context.Context, tenantID, patientID uuid.UUID, limit, offset int) ([]*Session, int, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*Session, int, error)
}
