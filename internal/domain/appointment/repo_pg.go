package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

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

const apptCols = `id, tenant_id, patient_id, provider_id, service_id, appointment_date,
	duration_minutes, status, modality, type, notes, meeting_url,
	recurrence_rule, recurrence_end_date, recurrence_count,
	parent_appointment_id, recurrence_index, created_by, created_at, updated_at`

func (r *repoPG) scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var ruleJSON []byte
	err := row.Scan(&a.ID, &a.TenantID, &a.PatientID, &a.ProviderID, &a.ServiceID, &a.AppointmentDate,
		&a.DurationMinutes, &a.Status, &a.Modality, &a.Type, &a.Notes, &a.MeetingURL,
		&ruleJSON, &a.RecurrenceEndDate, &a.RecurrenceCount,
		&a.ParentAppointmentID, &a.RecurrenceIndex, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(ruleJSON) > 0 {
		var rule Rule
		if err := json.Unmarshal(ruleJSON, &rule); err != nil {
			return nil, fmt.Errorf("decode recurrence rule for %s: %w", a.ID, err)
		}
		a.RecurrenceRule = &rule
	}
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()

	var ruleJSON []byte
	if a.RecurrenceRule != nil {
		var err error
		ruleJSON, err = json.Marshal(a.RecurrenceRule)
		if err != nil {
			return fmt.Errorf("encode recurrence rule: %w", err)
		}
	}

	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointments (id, tenant_id, patient_id, provider_id, service_id, appointment_date,
			duration_minutes, status, modality, type, notes, meeting_url,
			recurrence_rule, recurrence_end_date, recurrence_count,
			parent_appointment_id, recurrence_index, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		a.ID, a.TenantID, a.PatientID, a.ProviderID, a.ServiceID, a.AppointmentDate,
		a.DurationMinutes, a.Status, a.Modality, a.Type, a.Notes, a.MeetingURL,
		ruleJSON, a.RecurrenceEndDate, a.RecurrenceCount,
		a.ParentAppointmentID, a.RecurrenceIndex, a.CreatedBy)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Appointment, error) {
	a, err := r.scanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointments WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return a, err
}

// patchAssignments renders the SET clause for the fields the patch names.
// Placeholder numbering starts at startIdx; tenant and id occupy the lower
// positions.
func patchAssignments(p *Patch, startIdx int) ([]string, []interface{}) {
	var sets []string
	var args []interface{}
	idx := startIdx
	add := func(col string, v interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, v)
		idx++
	}

	if p.PatientID != nil {
		add("patient_id", *p.PatientID)
	}
	if p.ProviderID != nil {
		add("provider_id", *p.ProviderID)
	}
	if p.ServiceID != nil {
		add("service_id", *p.ServiceID)
	}
	if p.AppointmentDate != nil {
		add("appointment_date", *p.AppointmentDate)
	}
	if p.DurationMinutes != nil {
		add("duration_minutes", *p.DurationMinutes)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	if p.Modality != nil {
		add("modality", *p.Modality)
	}
	if p.Type != nil {
		add("type", *p.Type)
	}
	if p.Notes != nil {
		add("notes", *p.Notes)
	}
	if p.MeetingURL != nil {
		add("meeting_url", *p.MeetingURL)
	}
	return sets, args
}

func (r *repoPG) UpdateOne(ctx context.Context, tenantID, id uuid.UUID, p *Patch) (int64, error) {
	sets, args := patchAssignments(p, 3)
	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, "updated_at = NOW()")
	query := fmt.Sprintf(`UPDATE appointments SET %s WHERE tenant_id = $1 AND id = $2`,
		strings.Join(sets, ", "))
	tag, err := r.conn(ctx).Exec(ctx, query, append([]interface{}{tenantID, id}, args...)...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) UpdateSeries(ctx context.Context, tenantID, baseID uuid.UUID, p *Patch) (int64, error) {
	sets, args := patchAssignments(p, 3)
	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, "updated_at = NOW()")
	query := fmt.Sprintf(`UPDATE appointments SET %s
		WHERE tenant_id = $1 AND (id = $2 OR parent_appointment_id = $2)`,
		strings.Join(sets, ", "))
	tag, err := r.conn(ctx).Exec(ctx, query, append([]interface{}{tenantID, baseID}, args...)...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) DeleteOne(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM appointments WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) DeleteSeries(ctx context.Context, tenantID, baseID uuid.UUID) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM appointments WHERE tenant_id = $1 AND (id = $2 OR parent_appointment_id = $2)`,
		tenantID, baseID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) ListByDateRange(ctx context.Context, tenantID uuid.UUID, from, to *time.Time, limit, offset int) ([]*Appointment, int, error) {
	where := `WHERE tenant_id = $1`
	var args []interface{}
	args = append(args, tenantID)
	idx := 2

	if from != nil {
		where += fmt.Sprintf(` AND appointment_date >= $%d`, idx)
		args = append(args, *from)
		idx++
	}
	if to != nil {
		where += fmt.Sprintf(` AND appointment_date <= $%d`, idx)
		args = append(args, *to)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM appointments `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+apptCols+` FROM appointments %s ORDER BY appointment_date ASC LIMIT $%d OFFSET $%d`,
		where, idx, idx+1)
	rows, err := r.conn(ctx).Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListSeries(ctx context.Context, tenantID, baseID uuid.UUID) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+` FROM appointments
		WHERE tenant_id = $1 AND (id = $2 OR parent_appointment_id = $2)
		ORDER BY recurrence_index ASC`, tenantID, baseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
