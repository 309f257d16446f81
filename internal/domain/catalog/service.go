package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/praxis/praxis/internal/platform/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateItem(ctx context.Context, it *Item) error {
	if it.Name == "" {
		return apperr.Validation("name is required")
	}
	if it.Duration <= 0 {
		it.Duration = DefaultDurationMinutes
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (s *Service) GetItem(ctx context.Context, tenantID, id uuid.UUID) (*Item, error) {
	it, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, apperr.Storage(err)
	}
	return it, nil
}

func (s *Service) UpdateItem(ctx context.Context, it *Item) error {
	if it.Name == "" {
		return apperr.Validation("name is required")
	}
	rows, err := s.repo.Update(ctx, it)
	if err != nil {
		return apperr.Storage(err)
	}
	if rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Service) DeleteItem(ctx context.Context, tenantID, id uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, tenantID, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Service) ListItems(ctx context.Context, tenantID uuid.UUID, activeOnly bool, limit, offset int) ([]*Item, int, error) {
	items, total, err := s.repo.List(ctx, tenantID, activeOnly, limit, offset)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	return items, total, nil
}
