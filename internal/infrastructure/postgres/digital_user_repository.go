package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
	"github.com/oksasatya/digital-user-report/internal/domain/repository"
	"github.com/oksasatya/digital-user-report/pkg/metrics"
)

// The auth provider is reachable only through credencial_usuario, which the
// report role cannot read, so auth_method is projected as NULL on purpose.
const projectedUsersQuery = `
	SELECT du.id_usuario_digital, du.fecha_creacion, du.fecha_ultimo_login, du.nombre_preferido,
	       du.id_contacto, du.id_email, du.email_validado, du.id_telefono, du.telefono_validado, du.foto_perfil,
	       c.nombre_completo, c.numero_identificacion, c.tipo_identificacion,
	       e.email, t.telefono,
	       NULL::text AS auth_method
	FROM usuario_digital du
	LEFT JOIN email e ON e.id_email = du.id_email
	LEFT JOIN telefono t ON t.id_telefono = du.id_telefono
	LEFT JOIN contacto c ON c.id_contacto = du.id_contacto`

const basicUsersQuery = `
	SELECT du.id_usuario_digital, du.fecha_creacion, du.fecha_ultimo_login, du.nombre_preferido,
	       du.id_contacto, du.id_email, du.email_validado, du.id_telefono, du.telefono_validado, du.foto_perfil
	FROM usuario_digital du`

const usersOrderBy = ` ORDER BY du.fecha_creacion::date ASC, du.nombre_preferido ASC`

const creationDateColumn = "du.fecha_creacion"

type DigitalUserRepository struct {
	pool *pgxpool.Pool
}

func NewDigitalUserRepository(pool *pgxpool.Pool) *DigitalUserRepository {
	return &DigitalUserRepository{pool: pool}
}

// buildProjectedQuery returns the joined query text and arguments for r
func buildProjectedQuery(r entity.DateRange) (string, []any) {
	where, args := dateFilter(creationDateColumn, r)
	return projectedUsersQuery + where + usersOrderBy, args
}

func buildBasicQuery(r entity.DateRange) (string, []any) {
	where, args := dateFilter(creationDateColumn, r)
	return basicUsersQuery + where + usersOrderBy, args
}

func (r *DigitalUserRepository) ListProjected(ctx context.Context, dr entity.DateRange) (out []entity.ProjectedUserView, err error) {
	defer func(start time.Time) { metrics.ObserveDB("list_projected_users", start, err) }(time.Now())

	query, args := buildProjectedQuery(dr)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projected users: %w", err)
	}
	defer rows.Close()

	out = []entity.ProjectedUserView{}
	for rows.Next() {
		var v entity.ProjectedUserView
		var id string
		if err := rows.Scan(
			&id, &v.CreatedAt, &v.LastLoginAt, &v.PreferredName,
			&v.ContactID, &v.EmailID, &v.EmailValidated, &v.PhoneID, &v.PhoneValidated, &v.PhotoRef,
			&v.FullName, &v.IDNumber, &v.IDType,
			&v.Email, &v.Phone,
			&v.AuthMethod,
		); err != nil {
			return nil, fmt.Errorf("failed to scan projected user row: %w", err)
		}
		v.ID = entity.DigitalUserID(id)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projected user rows: %w", err)
	}
	return out, nil
}

func (r *DigitalUserRepository) ListBasic(ctx context.Context, dr entity.DateRange) (out []entity.DigitalUser, err error) {
	defer func(start time.Time) { metrics.ObserveDB("list_basic_users", start, err) }(time.Now())

	query, args := buildBasicQuery(dr)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query digital users: %w", err)
	}
	defer rows.Close()

	out = []entity.DigitalUser{}
	for rows.Next() {
		var u entity.DigitalUser
		var id string
		if err := rows.Scan(
			&id, &u.CreatedAt, &u.LastLoginAt, &u.PreferredName,
			&u.ContactID, &u.EmailID, &u.EmailValidated, &u.PhoneID, &u.PhoneValidated, &u.PhotoRef,
		); err != nil {
			return nil, fmt.Errorf("failed to scan digital user row: %w", err)
		}
		u.ID = entity.DigitalUserID(id)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating digital user rows: %w", err)
	}
	return out, nil
}

func (r *DigitalUserRepository) PhotoRef(ctx context.Context, id entity.DigitalUserID) (ref *string, found bool, err error) {
	defer func(start time.Time) { metrics.ObserveDB("get_photo_ref", start, err) }(time.Now())

	err = r.pool.QueryRow(ctx, `
		SELECT foto_perfil FROM usuario_digital WHERE id_usuario_digital = $1
	`, id.String()).Scan(&ref)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get photo reference: %w", err)
	}
	return ref, true, nil
}

var _ repository.DigitalUserRepository = (*DigitalUserRepository)(nil)
