package payment

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

func (s *Service) CreatePayment(ctx context.Context, p *Payment) error {
	if p.PatientID == uuid.Nil {
		return apperr.Validation("patient_id is required")
	}
	if p.Amount <= 0 {
		return apperr.Validation("amount must be positive")
	}
	if p.PaymentType == "" {
		return apperr.Validation("payment_type is required")
	}
	if p.Status == "" {
		p.Status = DefaultStatus
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (s *Service) GetPayment(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, apperr.Storage(err)
	}
	return p, nil
}

func (s *Service) UpdatePayment(ctx context.Context, p *Payment) error {
	if p.Amount <= 0 {
		return apperr.Validation("amount must be positive")
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

func (s *Service) DeletePayment(ctx context.Context, tenantID, id uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, tenantID, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Service) ListPayments(ctx context.Context, tenantID uuid.UUID, patientID *uuid.UUID, limit, offset int) ([]*Payment, int, error) {
	var (
		items []*Payment
		total int
		err   error
	)
	if patientID != nil {
		items, total, err = s.repo.ListByPatient(ctx, tenantID, *patientID, limit, offset)
	} else {
		items, total, err = s.repo.List(ctx, tenantID, limit, offset)
	}
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	return items, total, nil
}
