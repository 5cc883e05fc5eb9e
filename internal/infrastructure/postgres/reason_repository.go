package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
	"github.com/oksasatya/digital-user-report/internal/domain/repository"
	"github.com/oksasatya/digital-user-report/pkg/metrics"
)

type ReasonRepository struct {
	pool *pgxpool.Pool
}

func NewReasonRepository(pool *pgxpool.Pool) *ReasonRepository {
	return &ReasonRepository{pool: pool}
}

// Upsert relies on the unique constraint on id_usuario_digital, so concurrent
// saves for one user converge on a single row.
func (r *ReasonRepository) Upsert(ctx context.Context, id entity.DigitalUserID, reason string) (out *entity.NonAffiliationReason, err error) {
	defer func(start time.Time) { metrics.ObserveDB("upsert_reason", start, err) }(time.Now())

	var uid string
	res := &entity.NonAffiliationReason{}
	err = r.pool.QueryRow(ctx, `
		INSERT INTO motivo_no_afiliacion (id_usuario_digital, motivo)
		VALUES ($1, $2)
		ON CONFLICT (id_usuario_digital) DO UPDATE
		SET motivo = EXCLUDED.motivo, updated_at = now()
		RETURNING id_usuario_digital, motivo, created_at, updated_at
	`, id.String(), reason).Scan(&uid, &res.Reason, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert reason: %w", err)
	}
	res.DigitalUserID = entity.DigitalUserID(uid)
	return res, nil
}

func (r *ReasonRepository) List(ctx context.Context) (out []entity.NonAffiliationReason, err error) {
	defer func(start time.Time) { metrics.ObserveDB("list_reasons", start, err) }(time.Now())

	rows, err := r.pool.Query(ctx, `
		SELECT id_usuario_digital, motivo, created_at, updated_at
		FROM motivo_no_afiliacion
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reasons: %w", err)
	}
	defer rows.Close()

	out = []entity.NonAffiliationReason{}
	for rows.Next() {
		var uid string
		var n entity.NonAffiliationReason
		if err := rows.Scan(&uid, &n.Reason, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reason row: %w", err)
		}
		n.DigitalUserID = entity.DigitalUserID(uid)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reason rows: %w", err)
	}
	return out, nil
}

func (r *ReasonRepository) Delete(ctx context.Context, id entity.DigitalUserID) (deleted bool, err error) {
	defer func(start time.Time) { metrics.ObserveDB("delete_reason", start, err) }(time.Now())

	res, err := r.pool.Exec(ctx, `
		DELETE FROM motivo_no_afiliacion WHERE id_usuario_digital = $1
	`, id.String())
	if err != nil {
		return false, fmt.Errorf("failed to delete reason: %w", err)
	}
	return res.RowsAffected() > 0, nil
}

var _ repository.ReasonRepository = (*ReasonRepository)(nil)
