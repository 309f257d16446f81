package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxis/praxis/internal/platform/apperr"
	"github.com/praxis/praxis/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const sessionCols = `id, tenant_id, appointment_id, patient_id, provider_id, status,
	started_at, ended_at, notes, created_at, updated_at`

func (r *repoPG) scanSession(row pgx.Row) (*Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.TenantID, &s.AppointmentID, &s.PatientID, &s.ProviderID, &s.Status,
		&s.StartedAt, &s.EndedAt, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *repoPG) Create(ctx context.Context, s *Session) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO sessions (id, tenant_id, appointment_id, patient_id, provider_id, status,
			started_at, ended_at, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		s.ID, s.TenantID, s.AppointmentID, s.PatientID, s.ProviderID, s.Status,
		s.StartedAt, s.EndedAt, s.Notes)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Session, error) {
	s, err := r.scanSession(r.conn(ctx).QueryRow(ctx,
		`SELECT `+sessionCols+` FROM sessions WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return s, err
}

func (r *repoPG) Update(ctx context.Context, s *Session) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE sessions SET appointment_id=$3, patient_id=$4, provider_id=$5, status=$6,
			started_at=$7, ended_at=$8, notes=$9, updated_at=NOW()
		WHERE tenant_id = $1 AND id = $2`,
		s.TenantID, s.ID, s.AppointmentID, s.PatientID, s.ProviderID, s.Status,
		s.StartedAt, s.EndedAt, s.Notes)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) Delete(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM sessions WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) ListByPatient(ctx context.Context, tenantID, patientID uuid.UUID, limit, offset int) ([]*Session, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM sessions WHERE tenant_id = $1 AND patient_id = $2`,
		tenantID, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+sessionCols+` FROM sessions WHERE tenant_id = $1 AND patient_id = $2
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		tenantID, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return r.collect(rows, total)
}

func (r *repoPG) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*Session, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM sessions WHERE tenant_id = $1`, tenantID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+sessionCols+` FROM sessions WHERE tenant_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return r.collect(rows, total)
}

func (r *repoPG) collect(rows pgx.Rows, total int) ([]*Session, int, error) {
	var items []*Session
	for rows.Next() {
		s, err := r.scanSession(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}
