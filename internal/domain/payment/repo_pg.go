package payment

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

const paymentCols = `id, tenant_id, patient_id, appointment_id, service_id, amount,
	payment_type, status, paid_at, notes, created_at, updated_at`

func (r *repoPG) scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.TenantID, &p.PatientID, &p.AppointmentID, &p.ServiceID, &p.Amount,
		&p.PaymentType, &p.Status, &p.PaidAt, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Payment) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO payments (id, tenant_id, patient_id, appointment_id, service_id, amount,
			payment_type, status, paid_at, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.TenantID, p.PatientID, p.AppointmentID, p.ServiceID, p.Amount,
		p.PaymentType, p.Status, p.PaidAt, p.Notes)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error) {
	p, err := r.scanPayment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+paymentCols+` FROM payments WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return p, err
}

func (r *repoPG) Update(ctx context.Context, p *Payment) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE payments SET patient_id=$3, appointment_id=$4, service_id=$5, amount=$6,
			payment_type=$7, status=$8, paid_at=$9, notes=$10, updated_at=NOW()
		WHERE tenant_id = $1 AND id = $2`,
		p.TenantID, p.ID, p.PatientID, p.AppointmentID, p.ServiceID, p.Amount,
		p.PaymentType, p.Status, p.PaidAt, p.Notes)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) Delete(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM payments WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) ListByPatient(ctx context.Context, tenantID, patientID uuid.UUID, limit, offset int) ([]*Payment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM payments WHERE tenant_id = $1 AND patient_id = $2`,
		tenantID, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+paymentCols+` FROM payments WHERE tenant_id = $1 AND patient_id = $2
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		tenantID, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collect(rows, r, total)
}

func (r *repoPG) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*Payment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM payments WHERE tenant_id = $1`, tenantID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+paymentCols+` FROM payments WHERE tenant_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collect(rows, r, total)
}

func collect(rows pgx.Rows, r *repoPG, total int) ([]*Payment, int, error) {
	var items []*Payment
	for rows.Next() {
		p, err := r.scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
