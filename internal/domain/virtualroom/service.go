package virtualroom

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

func (s *Service) CreateRoom(ctx context.Context, rm *Room) error {
	if rm.Code == "" {
		return apperr.Validation("code is required")
	}
	if err := s.repo.Create(ctx, rm); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (s *Service) GetRoom(ctx context.Context, tenantID, id uuid.UUID) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, apperr.Storage(err)
	}
	return rm, nil
}

func (s *Service) GetRoomByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Room, error) {
	rm, err := s.repo.GetByCode(ctx, tenantID, code)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, apperr.Storage(err)
	}
	return rm, nil
}

func (s *Service) UpdateRoom(ctx context.Context, rm *Room) error {
	if rm.Code == "" {
		return apperr.Validation("code is required")
	}
	rows, err := s.repo.Update(ctx, rm)
	if err != nil {
		return apperr.Storage(err)
	}
	if rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Service) DeleteRoom(ctx context.Context, tenantID, id uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, tenantID, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Service) ListRooms(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*Room, int, error) {
	items, total, err := s.repo.List(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	return items, total, nil
}
