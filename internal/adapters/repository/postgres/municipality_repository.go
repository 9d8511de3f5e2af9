package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/employees-management/internal/core/municipality"
	pgdb "github.com/ogurasousui/employees-management/internal/platform/db/postgres"
)

// MunicipalityRepository は PostgreSQL を利用した市町村永続化の実装です。
type MunicipalityRepository struct {
	pool pgdb.Queryer
}

// NewMunicipalityRepository は MunicipalityRepository を生成します。
func NewMunicipalityRepository(pool pgdb.Queryer) *MunicipalityRepository {
	return &MunicipalityRepository{pool: pool}
}

// Create は市町村を新規作成します。
func (r *MunicipalityRepository) Create(ctx context.Context, m *municipality.Municipality) (*municipality.Municipality, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO municipalities (id, name, created_at, updated_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, name, created_at, updated_at
    `, m.ID, m.Name, m.CreatedAt, m.UpdatedAt)

	created, err := scanMunicipality(row)
	if err != nil {
		return nil, translateMunicipalityPgError(err)
	}
	return created, nil
}

// Update は市町村名を更新します。
func (r *MunicipalityRepository) Update(ctx context.Context, m *municipality.Municipality) (*municipality.Municipality, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE municipalities
           SET name = $1,
               updated_at = $2
         WHERE id = $3
        RETURNING id, name, created_at, updated_at
    `, m.Name, m.UpdatedAt, m.ID)

	updated, err := scanMunicipality(row)
	if err != nil {
		return nil, translateMunicipalityPgError(err)
	}
	return updated, nil
}

// Delete は市町村を削除します。
func (r *MunicipalityRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM municipalities WHERE id = $1`, id)
	if err != nil {
		return translateMunicipalityPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return municipality.ErrMunicipalityNotFound
	}
	return nil
}

// FindByID は ID で市町村を取得します。
func (r *MunicipalityRepository) FindByID(ctx context.Context, id string) (*municipality.Municipality, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, created_at, updated_at
          FROM municipalities
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanMunicipality(row)
	if err != nil {
		return nil, translateMunicipalityPgError(err)
	}
	return found, nil
}

// FindByName は名称で市町村を取得します。
func (r *MunicipalityRepository) FindByName(ctx context.Context, name string) (*municipality.Municipality, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, created_at, updated_at
          FROM municipalities
         WHERE name = $1
         LIMIT 1
    `, name)

	found, err := scanMunicipality(row)
	if err != nil {
		return nil, translateMunicipalityPgError(err)
	}
	return found, nil
}

// List は名称順に全市町村を取得します。
func (r *MunicipalityRepository) List(ctx context.Context) ([]*municipality.Municipality, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, name, created_at, updated_at
          FROM municipalities
         ORDER BY name
    `)
	if err != nil {
		return nil, translateMunicipalityPgError(err)
	}
	defer rows.Close()

	municipalities := make([]*municipality.Municipality, 0)
	for rows.Next() {
		m, err := scanMunicipality(rows)
		if err != nil {
			return nil, translateMunicipalityPgError(err)
		}
		municipalities = append(municipalities, m)
	}
	if err := rows.Err(); err != nil {
		return nil, translateMunicipalityPgError(err)
	}
	return municipalities, nil
}

func scanMunicipality(row pgx.Row) (*municipality.Municipality, error) {
	var m municipality.Municipality
	if err := row.Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, municipality.ErrMunicipalityNotFound
		}
		return nil, err
	}
	return &m, nil
}

func translateMunicipalityPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return municipality.ErrMunicipalityNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return municipality.ErrNameAlreadyExists
		case foreignKeyViolationCode:
			return municipality.ErrMunicipalityInUse
		}
	}
	return err
}
