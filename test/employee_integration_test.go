//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	repo "github.com/ogurasousui/employees-management/internal/adapters/repository/postgres"
	"github.com/ogurasousui/employees-management/internal/core/employee"
	"github.com/ogurasousui/employees-management/internal/core/importer"
	"github.com/ogurasousui/employees-management/internal/core/municipality"
	"github.com/ogurasousui/employees-management/internal/core/position"
	"github.com/ogurasousui/employees-management/internal/core/reference"
	"github.com/ogurasousui/employees-management/internal/platform/config"
	pg "github.com/ogurasousui/employees-management/internal/platform/db/postgres"
	"github.com/shopspring/decimal"
)

const (
	migrationsDir = "../assets/migrations"
	seedsDir      = "../assets/seeds"
)

func TestEmployeeImportIntegration(t *testing.T) {
	cfgPath := configPathFromEnv()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if err := resetMigrations(cfg.Database.DSN(), migrationsDir); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	if err := applySeeds(cfg.Database.DSN(), seedsDir); err != nil {
		t.Fatalf("failed to apply seeds: %v", err)
	}

	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	clock := stubClock{now: time.Now().UTC()}
	txManager := pg.NewTransactionManager(pool)
	positionRepo := repo.NewPositionRepository(pool)
	municipalityRepo := repo.NewMunicipalityRepository(pool)
	employeeRepo := repo.NewEmployeeRepository(pool)

	positionSvc := position.NewService(positionRepo, employeeRepo, clock, txManager)
	municipalitySvc := municipality.NewService(municipalityRepo, employeeRepo, clock, txManager)
	employeeSvc := employee.NewService(employeeRepo, positionRepo, municipalityRepo, clock, txManager)
	registry := reference.NewRegistry(positionSvc, municipalitySvc, nil)
	reconciler := importer.NewReconciler(registry, employeeSvc, txManager, nil)

	rows := []importer.BatchRow{
		{NSS: "1001", FirstName: "Ana", LastNameF: "Lopez", LastNameM: "Diaz", Position: "Analyst", Municipality: "Zapopan", BirthDate: "1990-01-15", EmployeeType: "BASE", HourlyRate: "150", HoursWorked: "0"},
		{NSS: "1002", FirstName: "Luis", LastNameF: "Perez", LastNameM: "Soto", Position: "Analyst", Municipality: "Zapopan", BirthDate: "1988-03-02", EmployeeType: "CONTRACTOR", HourlyRate: "90", HoursWorked: "10"},
		{NSS: "1003", FirstName: "Eva", LastNameF: "Ruiz", LastNameM: "Mora", Position: "Nurse", Municipality: "Tonala", BirthDate: "1995-07-30", EmployeeType: "HONORARY", HourlyRate: "100", HoursWorked: "20"},
	}

	dry, err := reconciler.ImportRows(ctx, rows, importer.Options{DryRun: true})
	if err != nil {
		t.Fatalf("dry run error: %v", err)
	}
	if dry.Inserted != 2 || dry.Failed != 1 {
		t.Fatalf("unexpected dry run outcome: %+v", dry)
	}
	if _, err := positionSvc.FindPositionByName(ctx, "Analyst"); !errors.Is(err, position.ErrPositionNotFound) {
		t.Fatalf("dry run must not create positions, got %v", err)
	}

	outcome, err := reconciler.ImportRows(ctx, rows, importer.Options{})
	if err != nil {
		t.Fatalf("ImportRows error: %v", err)
	}
	if outcome.Inserted != 2 || outcome.Failed != 1 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	analyst, err := positionSvc.FindPositionByName(ctx, "Analyst")
	if err != nil {
		t.Fatalf("FindPositionByName error: %v", err)
	}
	if !analyst.BaseSalary.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected base salary 150, got %s", analyst.BaseSalary)
	}

	base, err := employeeSvc.FindEmployeeByNSS(ctx, 1001)
	if err != nil {
		t.Fatalf("FindEmployeeByNSS error: %v", err)
	}
	if base.HoursWorked != 0 || !base.HourlyRate.Equal(analyst.BaseSalary) {
		t.Fatalf("BASE employee not normalized: %+v", base)
	}

	if _, err := employeeSvc.FindEmployeeByNSS(ctx, 1002); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected failed row to be absent, got %v", err)
	}

	if err := positionSvc.DeletePosition(ctx, position.DeletePositionInput{ID: analyst.ID}); !errors.Is(err, position.ErrPositionInUse) {
		t.Fatalf("expected ErrPositionInUse, got %v", err)
	}
}

func resetMigrations(dsn, dir string) error {
	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func applySeeds(dsn, dir string) error {
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func configPathFromEnv() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "../assets/local.yaml"
}

type stubClock struct {
	now time.Time
}

func (s stubClock) Now() time.Time {
	return s.now
}
