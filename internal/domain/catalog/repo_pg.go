package catalog

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

const itemCols = `id, tenant_id, name, category, duration, price, cost, color, modality,
	description, is_active, created_at, updated_at`

func (r *repoPG) scanItem(row pgx.Row) (*Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.TenantID, &it.Name, &it.Category, &it.Duration, &it.Price, &it.Cost,
		&it.Color, &it.Modality, &it.Description, &it.IsActive, &it.CreatedAt, &it.UpdatedAt)
	return &it, err
}

func (r *repoPG) Create(ctx context.Context, it *Item) error {
	it.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO services (id, tenant_id, name, category, duration, price, cost, color, modality,
			description, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		it.ID, it.TenantID, it.Name, it.Category, it.Duration, it.Price, it.Cost, it.Color, it.Modality,
		it.Description, it.IsActive)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Item, error) {
	it, err := r.scanItem(r.conn(ctx).QueryRow(ctx,
		`SELECT `+itemCols+` FROM services WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return it, err
}

func (r *repoPG) Update(ctx context.Context, it *Item) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE services SET name=$3, category=$4, duration=$5, price=$6, cost=$7, color=$8,
			modality=$9, description=$10, is_active=$11, updated_at=NOW()
		WHERE tenant_id = $1 AND id = $2`,
		it.TenantID, it.ID, it.Name, it.Category, it.Duration, it.Price, it.Cost, it.Color,
		it.Modality, it.Description, it.IsActive)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) Delete(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM services WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool, limit, offset int) ([]*Item, int, error) {
	where := `WHERE tenant_id = $1`
	if activeOnly {
		where += ` AND is_active`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM services `+where, tenantID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+itemCols+` FROM services `+where+` ORDER BY name ASC LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		it, err := r.scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}
