package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/praxis/praxis/internal/platform/apperr"
	"github.com/praxis/praxis/internal/platform/db"
)

// CreateSeriesInput carries everything needed to create a standalone
// appointment or a recurring series.
type CreateSeriesInput struct {
	PatientID         uuid.UUID
	ProviderID        uuid.UUID
	ServiceID         *uuid.UUID
	StartDate         time.Time
	DurationMinutes   int
	Status            string
	Modality          string
	Type              string
	Notes             *string
	MeetingURL        *string
	RecurrenceRule    *RuleInput
	RecurrenceCount   *int
	RecurrenceEndDate *time.Time
}

// SeriesResult reports the ids assigned to a created series, children in
// generation order.
type SeriesResult struct {
	RootID      uuid.UUID   `json:"root_id"`
	ChildIDs    []uuid.UUID `json:"child_ids"`
	Occurrences []string    `json:"occurrences"`
}

type Service struct {
	repo            Repository
	tx              db.TxRunner
	defaultDuration int
}

func NewService(repo Repository, tx db.TxRunner, defaultDuration int) *Service {
	if defaultDuration <= 0 {
		defaultDuration = DefaultDurationMinutes
	}
	return &Service{repo: repo, tx: tx, defaultDuration: defaultDuration}
}

// CreateSeries validates the input, generates the occurrence sequence, and
// persists the root plus all children in one transaction. The root keeps the
// requested start instant even when the rule's weekday set would place the
// first generated occurrence elsewhere; only children take generated
// instants. Children are inserted sequentially so recurrence_index
// assignment and the returned id order are deterministic. Any insert failure
// rolls the whole series back.
func (s *Service) CreateSeries(ctx context.Context, tenantID uuid.UUID, creatorID string, in *CreateSeriesInput) (*SeriesResult, error) {
	if in.PatientID == uuid.Nil {
		return nil, apperr.Validation("patient_id is required")
	}
	if in.ProviderID == uuid.Nil {
		return nil, apperr.Validation("provider_id is required")
	}
	if in.StartDate.IsZero() {
		return nil, apperr.Validation("appointment_date is required")
	}

	if in.DurationMinutes <= 0 {
		in.DurationMinutes = s.defaultDuration
	}
	if in.Status == "" {
		in.Status = DefaultStatus
	}
	if in.Modality == "" {
		in.Modality = DefaultModality
	}
	if in.Type == "" {
		in.Type = DefaultType
	}

	rule := NormalizeRule(in.RecurrenceRule)
	count := 0
	if in.RecurrenceCount != nil {
		count = *in.RecurrenceCount
	}
	occurrences := Generate(in.StartDate, rule, count, in.RecurrenceEndDate)
	if len(occurrences) == 0 {
		return nil, apperr.Validation("recurrence_end_date precedes the start date")
	}

	result := &SeriesResult{}
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		root := &Appointment{
			TenantID:          tenantID,
			PatientID:         in.PatientID,
			ProviderID:        in.ProviderID,
			ServiceID:         in.ServiceID,
			AppointmentDate:   in.StartDate,
			DurationMinutes:   in.DurationMinutes,
			Status:            in.Status,
			Modality:          in.Modality,
			Type:              in.Type,
			Notes:             in.Notes,
			MeetingURL:        in.MeetingURL,
			RecurrenceRule:    rule,
			RecurrenceEndDate: in.RecurrenceEndDate,
			RecurrenceCount:   in.RecurrenceCount,
			RecurrenceIndex:   0,
			CreatedBy:         creatorID,
		}
		if err := s.repo.Create(ctx, root); err != nil {
			return apperr.Storage(err)
		}
		result.RootID = root.ID
		rootID := root.ID

		for i, occ := range occurrences[1:] {
			child := &Appointment{
				TenantID:            tenantID,
				PatientID:           in.PatientID,
				ProviderID:          in.ProviderID,
				ServiceID:           in.ServiceID,
				AppointmentDate:     occ,
				DurationMinutes:     in.DurationMinutes,
				Status:              in.Status,
				Modality:            in.Modality,
				Type:                in.Type,
				Notes:               in.Notes,
				MeetingURL:          in.MeetingURL,
				ParentAppointmentID: &rootID,
				RecurrenceIndex:     i + 1,
				CreatedBy:           creatorID,
			}
			if err := s.repo.Create(ctx, child); err != nil {
				return apperr.Storage(err)
			}
			result.ChildIDs = append(result.ChildIDs, child.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Occurrences = append(result.Occurrences, FormatOccurrence(in.StartDate))
	for _, occ := range occurrences[1:] {
		result.Occurrences = append(result.Occurrences, FormatOccurrence(occ))
	}
	return result, nil
}

func (s *Service) GetAppointment(ctx context.Context, tenantID, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, apperr.Storage(err)
	}
	return a, nil
}

// GetSeries returns every appointment of the series the given appointment
// belongs to, ordered by recurrence_index.
func (s *Service) GetSeries(ctx context.Context, tenantID, id uuid.UUID) ([]*Appointment, error) {
	target, err := s.GetAppointment(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListSeries(ctx, tenantID, target.BaseID())
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return items, nil
}

// UpdateAppointment applies the patch to a single occurrence or, when
// applyToSeries is set, to every row of the target's series. The target is
// looked up first within the caller's tenant; rows in other tenants are
// reported as not found, never touched.
func (s *Service) UpdateAppointment(ctx context.Context, tenantID, id uuid.UUID, applyToSeries bool, p *Patch) error {
	if p == nil || p.IsEmpty() {
		return apperr.Validation("no fields to update")
	}

	target, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return apperr.Storage(err)
	}

	var rows int64
	if applyToSeries {
		rows, err = s.repo.UpdateSeries(ctx, tenantID, target.BaseID(), p)
	} else {
		rows, err = s.repo.UpdateOne(ctx, tenantID, id, p)
	}
	if err != nil {
		return apperr.Storage(err)
	}
	if rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteAppointment removes a single occurrence or, when deleteSeries is
// set, the root and every sibling of the target's series.
func (s *Service) DeleteAppointment(ctx context.Context, tenantID, id uuid.UUID, deleteSeries bool) error {
	target, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return apperr.Storage(err)
	}

	var rows int64
	if deleteSeries {
		rows, err = s.repo.DeleteSeries(ctx, tenantID, target.BaseID())
	} else {
		rows, err = s.repo.DeleteOne(ctx, tenantID, id)
	}
	if err != nil {
		return apperr.Storage(err)
	}
	if rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Service) ListAppointments(ctx context.Context, tenantID uuid.UUID, from, to *time.Time, limit, offset int) ([]*Appointment, int, error) {
	items, total, err := s.repo.ListByDateRange(ctx, tenantID, from, to, limit, offset)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	return items, total, nil
}
