package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ogurasousui/employees-management/internal/adapters/repository/postgres"
	"github.com/ogurasousui/employees-management/internal/core/employee"
	"github.com/ogurasousui/employees-management/internal/core/export"
	"github.com/ogurasousui/employees-management/internal/core/importer"
	"github.com/ogurasousui/employees-management/internal/core/municipality"
	"github.com/ogurasousui/employees-management/internal/core/position"
	"github.com/ogurasousui/employees-management/internal/core/reference"
	"github.com/ogurasousui/employees-management/internal/core/salary"
	"github.com/ogurasousui/employees-management/internal/platform/config"
	pg "github.com/ogurasousui/employees-management/internal/platform/db/postgres"
	"github.com/ogurasousui/employees-management/internal/platform/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfigPath = "assets/local.yaml"

type rootOptions struct {
	configPath string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "employees",
		Short:         "Manage employee records, payroll and CSV imports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")

	cmd.AddCommand(
		newMigrateCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
		newSalaryCmd(opts),
		newEmployeeCmd(opts),
		newPositionCmd(opts),
		newMunicipalityCmd(opts),
		newReportCmd(opts),
	)

	return cmd
}

func (o *rootOptions) init() error {
	cfg, err := config.Load(effectiveConfigPath(o.configPath))
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)

	o.cfg = cfg
	o.logger = logger
	return nil
}

func effectiveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return defaultConfigPath
}

// app はデータベースに依存するユースケース群をまとめたものです。
type app struct {
	pool *pgxpool.Pool

	positions      *position.Service
	municipalities *municipality.Service
	employees      *employee.Service
	salaries       *salary.Service
	reconciler     *importer.Reconciler
	projector      *export.Projector
}

func (o *rootOptions) openApp(ctx context.Context) (*app, error) {
	pool, err := pg.NewPool(ctx, o.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}

	txManager := pg.NewTransactionManager(pool)

	positionRepo := postgres.NewPositionRepository(pool)
	municipalityRepo := postgres.NewMunicipalityRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)

	positionSvc := position.NewService(positionRepo, employeeRepo, nil, txManager)
	municipalitySvc := municipality.NewService(municipalityRepo, employeeRepo, nil, txManager)
	employeeSvc := employee.NewService(employeeRepo, positionRepo, municipalityRepo, nil, txManager)

	registry := reference.NewRegistry(positionSvc, municipalitySvc, o.logger.Named("reference"))

	return &app{
		pool:           pool,
		positions:      positionSvc,
		municipalities: municipalitySvc,
		employees:      employeeSvc,
		salaries:       salary.NewService(employeeSvc, salary.NewCalculator()),
		reconciler:     importer.NewReconciler(registry, employeeSvc, txManager, o.logger.Named("importer")),
		projector:      export.NewProjector(positionRepo, municipalityRepo, nil),
	}, nil
}

func (a *app) Close() {
	a.pool.Close()
}

// withApp は app を生成して fn を実行し、終了後にプールを閉じます。
func (o *rootOptions) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	a, err := o.openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}
