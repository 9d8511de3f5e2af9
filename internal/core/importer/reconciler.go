package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ogurasousui/employees-management/internal/core/employee"
	"github.com/ogurasousui/employees-management/internal/core/municipality"
	"github.com/ogurasousui/employees-management/internal/core/position"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Registry は名前から参照データを解決し、無ければ作成します。
type Registry interface {
	FindOrCreatePosition(ctx context.Context, name string, defaultBaseSalary decimal.Decimal) (*position.Position, error)
	FindOrCreateMunicipality(ctx context.Context, name string) (*municipality.Municipality, error)
}

// EmployeeBuilder は社員の検証と一括登録を提供します。
type EmployeeBuilder interface {
	ValidateAndBuild(ctx context.Context, in employee.CreateEmployeeInput) (*employee.Employee, error)
	BulkInsert(ctx context.Context, employees []*employee.Employee) error
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Options は取り込み時のオプションです。
type Options struct {
	// DryRun が true の場合、全行を検証したうえで登録せず、作成した参照データも巻き戻します。
	DryRun bool
}

var errDryRunRollback = errors.New("importer: dry run rollback")

// Reconciler はバッチ取り込みを行います。
type Reconciler struct {
	registry  Registry
	employees EmployeeBuilder
	tx        TransactionManager
	logger    *zap.Logger
}

// NewReconciler は Reconciler を生成します。
func NewReconciler(registry Registry, employees EmployeeBuilder, tx TransactionManager, logger *zap.Logger) *Reconciler {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{registry: registry, employees: employees, tx: tx, logger: logger}
}

// ImportRows は行を入力順に PARSE → RESOLVE_REFERENCES → VALIDATE → STAGE の順で処理します。
//
// どの段階で失敗しても、その行のエラーを Outcome に追加して次の行へ進みます。
// 全行の走査後、有効な行だけを 1 回の一括登録で永続化します。
// 返却されるエラーは一括登録の失敗とコンテキストのキャンセルのみです。
func (r *Reconciler) ImportRows(ctx context.Context, rows []BatchRow, opts Options) (*Outcome, error) {
	if !opts.DryRun {
		return r.importRows(ctx, rows, opts)
	}

	var outcome *Outcome
	err := r.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := r.importRows(txCtx, rows, opts)
		if err != nil {
			return err
		}
		outcome = result
		return errDryRunRollback
	})
	if err != nil && !errors.Is(err, errDryRunRollback) {
		return nil, err
	}
	return outcome, nil
}

func (r *Reconciler) importRows(ctx context.Context, rows []BatchRow, opts Options) (*Outcome, error) {
	outcome := &Outcome{DryRun: opts.DryRun}
	staged := make([]*employee.Employee, 0, len(rows))
	stagedNSS := make(map[int64]int, len(rows))

	for idx, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if row.Row == 0 {
			row.Row = idx + 1
		}

		emp, rowErr := r.processRow(ctx, row, stagedNSS)
		if rowErr != nil {
			r.logger.Warn("import row failed",
				zap.Int("row", rowErr.Row),
				zap.String("stage", string(rowErr.Stage)),
				zap.Error(rowErr.Err),
			)
			outcome.addFailure(rowErr)
			continue
		}

		stagedNSS[emp.NSS] = row.Row
		staged = append(staged, emp)
	}

	if !opts.DryRun {
		if err := r.employees.BulkInsert(ctx, staged); err != nil {
			r.logger.Error("import bulk insert failed", zap.Int("staged", len(staged)), zap.Error(err))
			return nil, fmt.Errorf("importer: %w", err)
		}
	}

	outcome.Inserted = len(staged)
	r.logger.Info("import finished",
		zap.Int("inserted", outcome.Inserted),
		zap.Int("failed", outcome.Failed),
		zap.Bool("dry_run", opts.DryRun),
	)
	return outcome, nil
}

func (r *Reconciler) processRow(ctx context.Context, row BatchRow, stagedNSS map[int64]int) (*employee.Employee, *RowError) {
	fail := func(stage Stage, err error) *RowError {
		return &RowError{Row: row.Row, NSS: row.NSS, Stage: stage, Err: err}
	}

	parsed, err := parseRow(row)
	if err != nil {
		return nil, fail(StageParse, err)
	}

	pos, err := r.registry.FindOrCreatePosition(ctx, parsed.position, parsed.hourlyRate)
	if err != nil {
		return nil, fail(StageResolve, err)
	}

	mun, err := r.registry.FindOrCreateMunicipality(ctx, parsed.municipality)
	if err != nil {
		return nil, fail(StageResolve, err)
	}

	if prev, dup := stagedNSS[parsed.nss]; dup {
		return nil, fail(StageValidate, fmt.Errorf("nss %d already staged by row %d: %w", parsed.nss, prev, employee.ErrDuplicateKey))
	}

	emp, err := r.employees.ValidateAndBuild(ctx, employee.CreateEmployeeInput{
		NSS:            parsed.nss,
		FirstName:      parsed.firstName,
		LastNameF:      parsed.lastNameF,
		LastNameM:      parsed.lastNameM,
		BirthDate:      parsed.birthDate,
		Type:           parsed.employeeType,
		PositionID:     pos.ID,
		MunicipalityID: mun.ID,
		HourlyRate:     &parsed.hourlyRate,
		HoursWorked:    &parsed.hoursWorked,
	})
	if err != nil {
		return nil, fail(StageValidate, err)
	}

	return emp, nil
}
