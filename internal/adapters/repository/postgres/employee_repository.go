package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/ogurasousui/employees-management/internal/core/employee"
	pgdb "github.com/ogurasousui/employees-management/internal/platform/db/postgres"
)

var employeeColumns = []string{
	"id",
	"nss",
	"first_name",
	"last_name_f",
	"last_name_m",
	"birth_date",
	"employee_type",
	"position_id",
	"municipality_id",
	"hourly_rate",
	"hours_worked",
	"created_at",
	"updated_at",
}

const employeeSelect = `
        SELECT id, nss, first_name, last_name_f, last_name_m, birth_date, employee_type,
               position_id, municipality_id, hourly_rate, hours_worked, created_at, updated_at
          FROM employees`

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Create は社員を新規作成します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employees (`+strings.Join(employeeColumns, ", ")+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING `+strings.Join(employeeColumns, ", "),
		employeeValues(e)...,
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return created, nil
}

// InsertMany は社員をまとめて登録します。COPY を用いるため途中で失敗した場合は 1 件も登録されません。
func (r *EmployeeRepository) InsertMany(ctx context.Context, employees []*employee.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, employeeValues(e))
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	copied, err := exec.CopyFrom(ctx, pgx.Identifier{"employees"}, employeeColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return translateEmployeePgError(err)
	}
	if copied != int64(len(employees)) {
		return fmt.Errorf("postgres: copied %d of %d employees", copied, len(employees))
	}
	return nil
}

// Update は社員情報を更新します。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employees
           SET nss = $1,
               first_name = $2,
               last_name_f = $3,
               last_name_m = $4,
               birth_date = $5,
               employee_type = $6,
               position_id = $7,
               municipality_id = $8,
               hourly_rate = $9,
               hours_worked = $10,
               updated_at = $11
         WHERE id = $12
        RETURNING `+strings.Join(employeeColumns, ", "),
		e.NSS,
		e.FirstName,
		e.LastNameF,
		e.LastNameM,
		dateOnly(e.BirthDate),
		string(e.Type),
		e.PositionID,
		e.MunicipalityID,
		toNumeric(e.HourlyRate),
		e.HoursWorked,
		e.UpdatedAt,
		e.ID,
	)

	updated, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return updated, nil
}

// Delete は社員を削除します。
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return translateEmployeePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, employeeSelect+`
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// FindByNSS は社会保障番号で社員を取得します。
func (r *EmployeeRepository) FindByNSS(ctx context.Context, nss int64) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, employeeSelect+`
         WHERE nss = $1
         LIMIT 1
    `, nss)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// List は父姓順に社員を取得します。
func (r *EmployeeRepository) List(ctx context.Context, filter employee.ListEmployeesFilter) ([]*employee.Employee, error) {
	args := make([]any, 0, 3)
	conditions := make([]string, 0, 3)

	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		conditions = append(conditions, "employee_type = $"+strconv.Itoa(len(args)))
	}
	if filter.PositionID != "" {
		args = append(args, filter.PositionID)
		conditions = append(conditions, "position_id = $"+strconv.Itoa(len(args)))
	}
	if filter.MunicipalityID != "" {
		args = append(args, filter.MunicipalityID)
		conditions = append(conditions, "municipality_id = $"+strconv.Itoa(len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := employeeSelect + whereClause + `
         ORDER BY last_name_f, created_at, id
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}
	return employees, nil
}

// CountByPosition は職位を参照している社員数を返します。
func (r *EmployeeRepository) CountByPosition(ctx context.Context, positionID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM employees WHERE position_id = $1`, positionID)
}

// CountByMunicipality は市町村を参照している社員数を返します。
func (r *EmployeeRepository) CountByMunicipality(ctx context.Context, municipalityID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM employees WHERE municipality_id = $1`, municipalityID)
}

func (r *EmployeeRepository) count(ctx context.Context, query string, id string) (int, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var n int64
	if err := exec.QueryRow(ctx, query, id).Scan(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

func employeeValues(e *employee.Employee) []any {
	return []any{
		e.ID,
		e.NSS,
		e.FirstName,
		e.LastNameF,
		e.LastNameM,
		dateOnly(e.BirthDate),
		string(e.Type),
		e.PositionID,
		e.MunicipalityID,
		toNumeric(e.HourlyRate),
		e.HoursWorked,
		e.CreatedAt,
		e.UpdatedAt,
	}
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		e          employee.Employee
		empType    string
		birthDate  time.Time
		hourlyRate pgtype.Numeric
	)

	if err := row.Scan(
		&e.ID,
		&e.NSS,
		&e.FirstName,
		&e.LastNameF,
		&e.LastNameM,
		&birthDate,
		&empType,
		&e.PositionID,
		&e.MunicipalityID,
		&hourlyRate,
		&e.HoursWorked,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	rate, err := fromNumeric(hourlyRate)
	if err != nil {
		return nil, err
	}

	e.Type = employee.Type(empType)
	e.BirthDate = dateOnly(birthDate)
	e.HourlyRate = rate
	return &e, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, employee.ErrDuplicateKey)
		case foreignKeyViolationCode:
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, employee.ErrReferenceNotFound)
		case checkViolationCode:
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, employee.ErrRange)
		case stringTooLongCode, numericOutOfRangeCode:
			return fmt.Errorf("%s: %w", pgErr.Message, employee.ErrRange)
		}
	}
	return err
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
