package postgres

import (
	"context"
	"errors"
	"math/big"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/ogurasousui/employees-management/internal/core/employee"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
)

func sampleEmployee(id string, nss int64) *employee.Employee {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return &employee.Employee{
		ID:             id,
		NSS:            nss,
		FirstName:      "Ana",
		LastNameF:      "Lopez",
		LastNameM:      "Diaz",
		BirthDate:      time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		Type:           employee.TypeHonorary,
		PositionID:     "pos-1",
		MunicipalityID: "mun-1",
		HourlyRate:     decimal.NewFromInt(100),
		HoursWorked:    20,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestScanEmployee_Success(t *testing.T) {
	t.Parallel()

	birth := time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Now().UTC()

	row := stubRow{scanFn: func(dest ...interface{}) error {
		if len(dest) != 13 {
			return errors.New("unexpected dest length")
		}
		*(dest[0].(*string)) = "emp-1"
		*(dest[1].(*int64)) = 12345
		*(dest[2].(*string)) = "Ana"
		*(dest[3].(*string)) = "Lopez"
		*(dest[4].(*string)) = "Diaz"
		*(dest[5].(*time.Time)) = birth
		*(dest[6].(*string)) = string(employee.TypeBase)
		*(dest[7].(*string)) = "pos-1"
		*(dest[8].(*string)) = "mun-1"
		*(dest[9].(*pgtype.Numeric)) = pgtype.Numeric{Int: big.NewInt(150), Exp: 0, Valid: true}
		*(dest[10].(*int)) = 0
		*(dest[11].(*time.Time)) = createdAt
		*(dest[12].(*time.Time)) = createdAt
		return nil
	}}

	emp, err := scanEmployee(row)
	if err != nil {
		t.Fatalf("scanEmployee returned error: %v", err)
	}
	if emp.NSS != 12345 || emp.Type != employee.TypeBase {
		t.Fatalf("unexpected employee %+v", emp)
	}
	if !emp.BirthDate.Equal(birth) {
		t.Fatalf("expected birth date %v, got %v", birth, emp.BirthDate)
	}
	if !emp.HourlyRate.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected hourly rate 150, got %s", emp.HourlyRate)
	}
}

func TestScanEmployee_NoRows(t *testing.T) {
	t.Parallel()

	row := stubRow{scanFn: func(dest ...interface{}) error {
		return pgx.ErrNoRows
	}}

	if _, err := scanEmployee(row); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestTranslateEmployeePgError(t *testing.T) {
	t.Parallel()

	uniqueErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "employees_nss_key"}
	if !errors.Is(translateEmployeePgError(uniqueErr), employee.ErrDuplicateKey) {
		t.Fatalf("expected unique violation to map to ErrDuplicateKey")
	}

	fkErr := &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "employees_position_id_fkey"}
	if !errors.Is(translateEmployeePgError(fkErr), employee.ErrReferenceNotFound) {
		t.Fatalf("expected fk violation to map to ErrReferenceNotFound")
	}

	checkErr := &pgconn.PgError{Code: checkViolationCode}
	if !errors.Is(translateEmployeePgError(checkErr), employee.ErrRange) {
		t.Fatalf("expected check violation to map to ErrRange")
	}

	for _, code := range []string{stringTooLongCode, numericOutOfRangeCode} {
		if !errors.Is(translateEmployeePgError(&pgconn.PgError{Code: code, Message: "value too long"}), employee.ErrRange) {
			t.Fatalf("expected %s to map to ErrRange", code)
		}
	}

	other := errors.New("other")
	if translateEmployeePgError(other) != other {
		t.Fatalf("unexpected translation for generic error")
	}
}

func TestEmployeeRepository_InsertMany(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	mock.ExpectCopyFrom(pgx.Identifier{"employees"}, employeeColumns).WillReturnResult(2)

	err = repo.InsertMany(context.Background(), []*employee.Employee{
		sampleEmployee("emp-1", 1),
		sampleEmployee("emp-2", 2),
	})
	if err != nil {
		t.Fatalf("InsertMany returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_InsertManyDuplicate(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	mock.ExpectCopyFrom(pgx.Identifier{"employees"}, employeeColumns).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "employees_nss_key"})

	err = repo.InsertMany(context.Background(), []*employee.Employee{sampleEmployee("emp-1", 1)})
	if !errors.Is(err, employee.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_InsertManyEmpty(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)
	if err := repo.InsertMany(context.Background(), nil); err != nil {
		t.Fatalf("InsertMany returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_List_WithFilters(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)
	empType := employee.TypeHonorary
	now := time.Now().UTC()
	birth := time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC)
	rate := pgtype.Numeric{Int: big.NewInt(100), Exp: 0, Valid: true}

	rows := pgxmock.NewRows(employeeColumns).
		AddRow("emp-1", int64(1), "Ana", "Lopez", "Diaz", birth, "HONORARY", "pos-1", "mun-1", rate, 20, now, now).
		AddRow("emp-2", int64(2), "Luis", "Perez", "Soto", birth, "HONORARY", "pos-1", "mun-1", rate, 10, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE employee_type = $1 AND position_id = $2`)).
		WithArgs("HONORARY", "pos-1").
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), employee.ListEmployeesFilter{
		Type:       &empType,
		PositionID: "pos-1",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(list))
	}
	if list[1].HoursWorked != 10 {
		t.Fatalf("unexpected hours worked %d", list[1].HoursWorked)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_CountByPosition(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM employees WHERE position_id = $1`)).
		WithArgs("pos-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := repo.CountByPosition(context.Background(), "pos-1")
	if err != nil {
		t.Fatalf("CountByPosition returned error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
