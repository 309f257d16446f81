package virtualroom

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

const roomCols = `id, tenant_id, creator_user_id, code, title, description,
	scheduled_start, scheduled_end, created_at, updated_at`

func (r *repoPG) scanRoom(row pgx.Row) (*Room, error) {
	var rm Room
	err := row.Scan(&rm.ID, &rm.TenantID, &rm.CreatorUserID, &rm.Code, &rm.Title, &rm.Description,
		&rm.ScheduledStart, &rm.ScheduledEnd, &rm.CreatedAt, &rm.UpdatedAt)
	return &rm, err
}

func (r *repoPG) Create(ctx context.Context, rm *Room) error {
	rm.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO virtual_rooms (id, tenant_id, creator_user_id, code, title, description,
			scheduled_start, scheduled_end)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		rm.ID, rm.TenantID, rm.CreatorUserID, rm.Code, rm.Title, rm.Description,
		rm.ScheduledStart, rm.ScheduledEnd)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Room, error) {
	rm, err := r.scanRoom(r.conn(ctx).QueryRow(ctx,
		`SELECT `+roomCols+` FROM virtual_rooms WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return rm, err
}

func (r *repoPG) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Room, error) {
	rm, err := r.scanRoom(r.conn(ctx).QueryRow(ctx,
		`SELECT `+roomCols+` FROM virtual_rooms WHERE tenant_id = $1 AND code = $2`, tenantID, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return rm, err
}

func (r *repoPG) Update(ctx context.Context, rm *Room) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE virtual_rooms SET code=$3, title=$4, description=$5,
			scheduled_start=$6, scheduled_end=$7, updated_at=NOW()
		WHERE tenant_id = $1 AND id = $2`,
		rm.TenantID, rm.ID, rm.Code, rm.Title, rm.Description,
		rm.ScheduledStart, rm.ScheduledEnd)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) Delete(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM virtual_rooms WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*Room, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM virtual_rooms WHERE tenant_id = $1`, tenantID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+roomCols+` FROM virtual_rooms WHERE tenant_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Room
	for rows.Next() {
		rm, err := r.scanRoom(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rm)
	}
	return items, total, rows.Err()
}
