package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/praxis/praxis/internal/platform/apperr"
)

const DefaultStatus = "active"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.FullName == "" {
		return apperr.Validation("full_name is required")
	}
	if p.Status == "" {
		p.Status = DefaultStatus
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (s *Service) GetPatient(ctx context.Context, tenantID, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, apperr.Storage(err)
	}
	return p, nil
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.FullName == "" {
		return apperr.Validation("full_name is required")
	}
	rows, err := s.repo.Update(ctx, p)
	if err != nil {
		return apperr.Storage(err)
	}
	if rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Service) DeletePatient(ctx context.Context, tenantID, id uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, tenantID, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Service) ListPatients(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	items, total, err := s.repo.List(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	return items, total, nil
}
