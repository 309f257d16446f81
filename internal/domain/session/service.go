package session

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

func (s *Service) CreateSession(ctx context.Context, sess *Session) error {
	if sess.PatientID == uuid.Nil {
		return apperr.Validation("patient_id is required")
	}
	if sess.ProviderID == uuid.Nil {
		return apperr.Validation("provider_id is required")
	}
	if sess.Status == "" {
		sess.Status = DefaultStatus
	}
	if sess.StartedAt != nil && sess.EndedAt != nil && sess.EndedAt.Before(*sess.StartedAt) {
		return apperr.Validation("ended_at precedes started_at")
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (s *Service) GetSession(ctx context.Context, tenantID, id uuid.UUID) (*Session, error) {
	sess, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, apperr.Storage(err)
	}
	return sess, nil
}

func (s *Service) UpdateSession(ctx context.Context, sess *Session) error {
	if sess.StartedAt != nil && sess.EndedAt != nil && sess.EndedAt.Before(*sess.StartedAt) {
		return apperr.Validation("ended_at precedes started_at")
	}
	rows, err := s.repo.Update(ctx, sess)
	if err != nil {
		return apperr.Storage(err)
	}
	if rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Service) DeleteSession(ctx context.Context, tenantID, id uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, tenantID, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Service) ListSessions(ctx context.Context, tenantID uuid.UUID, patientID *uuid.UUID, limit, offset int) ([]*Session, int, error) {
	var (
		items []*Session
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
