package patient

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

const patientCols = `id, tenant_id, full_name, email, whatsapp, tax_id, street, house_number,
	neighborhood, city, state, country, nationality, marital_status, education,
	profession, family_contact, has_children, children_count, spouse_name,
	insurance, insurance_name, needs_reimbursement, status, created_at, updated_at`

func (r *repoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.TenantID, &p.FullName, &p.Email, &p.Whatsapp, &p.TaxID, &p.Street, &p.HouseNumber,
		&p.Neighborhood, &p.City, &p.State, &p.Country, &p.Nationality, &p.MaritalStatus, &p.Education,
		&p.Profession, &p.FamilyContact, &p.HasChildren, &p.ChildrenCount, &p.SpouseName,
		&p.Insurance, &p.InsuranceName, &p.NeedsReimbursement, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients (id, tenant_id, full_name, email, whatsapp, tax_id, street, house_number,
			neighborhood, city, state, country, nationality, marital_status, education,
			profession, family_contact, has_children, children_count, spouse_name,
			insurance, insurance_name, needs_reimbursement, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)`,
		p.ID, p.TenantID, p.FullName, p.Email, p.Whatsapp, p.TaxID, p.Street, p.HouseNumber,
		p.Neighborhood, p.City, p.State, p.Country, p.Nationality, p.MaritalStatus, p.Education,
		p.Profession, p.FamilyContact, p.HasChildren, p.ChildrenCount, p.SpouseName,
		p.Insurance, p.InsuranceName, p.NeedsReimbursement, p.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Patient, error) {
	p, err := r.scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return p, err
}

func (r *repoPG) Update(ctx context.Context, p *Patient) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET full_name=$3, email=$4, whatsapp=$5, tax_id=$6, street=$7, house_number=$8,
			neighborhood=$9, city=$10, state=$11, country=$12, nationality=$13, marital_status=$14,
			education=$15, profession=$16, family_contact=$17, has_children=$18, children_count=$19,
			spouse_name=$20, insurance=$21, insurance_name=$22, needs_reimbursement=$23, status=$24,
			updated_at=NOW()
		WHERE tenant_id = $1 AND id = $2`,
		p.TenantID, p.ID, p.FullName, p.Email, p.Whatsapp, p.TaxID, p.Street, p.HouseNumber,
		p.Neighborhood, p.City, p.State, p.Country, p.Nationality, p.MaritalStatus,
		p.Education, p.Profession, p.FamilyContact, p.HasChildren, p.ChildrenCount,
		p.SpouseName, p.Insurance, p.InsuranceName, p.NeedsReimbursement, p.Status)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) Delete(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM patients WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM patients WHERE tenant_id = $1`, tenantID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patients WHERE tenant_id = $1 ORDER BY full_name ASC LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
