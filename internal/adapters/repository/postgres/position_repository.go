package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/ogurasousui/employees-management/internal/core/position"
	pgdb "github.com/ogurasousui/employees-management/internal/platform/db/postgres"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	stringTooLongCode       = "22001"
	numericOutOfRangeCode   = "22003"
)

// PositionRepository は PostgreSQL を利用した職位永続化の実装です。
type PositionRepository struct {
	pool pgdb.Queryer
}

// NewPositionRepository は PositionRepository を生成します。
func NewPositionRepository(pool pgdb.Queryer) *PositionRepository {
	return &PositionRepository{pool: pool}
}

// Create は職位を新規作成します。
func (r *PositionRepository) Create(ctx context.Context, p *position.Position) (*position.Position, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO positions (id, name, base_salary, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, name, base_salary, created_at, updated_at
    `, p.ID, p.Name, toNumeric(p.BaseSalary), p.CreatedAt, p.UpdatedAt)

	created, err := scanPosition(row)
	if err != nil {
		return nil, translatePositionPgError(err)
	}
	return created, nil
}

// Update は職位を更新します。
func (r *PositionRepository) Update(ctx context.Context, p *position.Position) (*position.Position, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE positions
           SET name = $1,
               base_salary = $2,
               updated_at = $3
         WHERE id = $4
        RETURNING id, name, base_salary, created_at, updated_at
    `, p.Name, toNumeric(p.BaseSalary), p.UpdatedAt, p.ID)

	updated, err := scanPosition(row)
	if err != nil {
		return nil, translatePositionPgError(err)
	}
	return updated, nil
}

// Delete は職位を削除します。社員から参照されている場合は外部キー制約で失敗します。
func (r *PositionRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		return translatePositionPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}
	return nil
}

// FindByID は ID で職位を取得します。
func (r *PositionRepository) FindByID(ctx context.Context, id string) (*position.Position, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, base_salary, created_at, updated_at
          FROM positions
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanPosition(row)
	if err != nil {
		return nil, translatePositionPgError(err)
	}
	return found, nil
}

// FindByName は名称で職位を取得します。
func (r *PositionRepository) FindByName(ctx context.Context, name string) (*position.Position, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, base_salary, created_at, updated_at
          FROM positions
         WHERE name = $1
         LIMIT 1
    `, name)

	found, err := scanPosition(row)
	if err != nil {
		return nil, translatePositionPgError(err)
	}
	return found, nil
}

// List は名称順に全職位を取得します。
func (r *PositionRepository) List(ctx context.Context) ([]*position.Position, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, name, base_salary, created_at, updated_at
          FROM positions
         ORDER BY name
    `)
	if err != nil {
		return nil, translatePositionPgError(err)
	}
	defer rows.Close()

	positions := make([]*position.Position, 0)
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, translatePositionPgError(err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePositionPgError(err)
	}
	return positions, nil
}

func scanPosition(row pgx.Row) (*position.Position, error) {
	var (
		id         string
		name       string
		baseSalary pgtype.Numeric
		createdAt  time.Time
		updatedAt  time.Time
	)

	if err := row.Scan(&id, &name, &baseSalary, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, position.ErrPositionNotFound
		}
		return nil, err
	}

	salary, err := fromNumeric(baseSalary)
	if err != nil {
		return nil, err
	}

	return &position.Position{
		ID:         id,
		Name:       name,
		BaseSalary: salary,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

func translatePositionPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return position.ErrPositionNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return position.ErrNameAlreadyExists
		case foreignKeyViolationCode:
			return position.ErrPositionInUse
		case checkViolationCode, numericOutOfRangeCode:
			return position.ErrInvalidBaseSalary
		case stringTooLongCode:
			return position.ErrInvalidName
		}
	}
	return err
}
