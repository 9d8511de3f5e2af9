package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/ogurasousui/employees-management/internal/core/municipality"
	"github.com/ogurasousui/employees-management/internal/core/position"
	"github.com/shopspring/decimal"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// PositionReader は職位の参照解決に利用します。
type PositionReader interface {
	FindByID(ctx context.Context, id string) (*position.Position, error)
}

// MunicipalityReader は市町村の参照解決に利用します。
type MunicipalityReader interface {
	FindByID(ctx context.Context, id string) (*municipality.Municipality, error)
}

const (
	// DateLayout は生年月日の入出力フォーマットです。
	DateLayout = "2006-01-02"

	minHonoraryHours = 1
	maxHonoraryHours = 40

	// 氏名は VARCHAR(100)、時給は NUMERIC(12,2) に収まる必要がある
	maxNameLength = 100
	rateScale     = 2
)

var maxHourlyRate = decimal.New(1, 10)

// Service は社員に関するユースケースをまとめます。
type Service struct {
	repo           Repository
	positions      PositionReader
	municipalities MunicipalityReader
	clock          Clock
	tx             TransactionManager
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	ValidateAndBuild(ctx context.Context, in CreateEmployeeInput) (*Employee, error)
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error)
	BulkInsert(ctx context.Context, employees []*Employee) error
	GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error)
	FindEmployeeByNSS(ctx context.Context, nss int64) (*Employee, error)
	ListEmployees(ctx context.Context, in ListEmployeesInput) ([]*Employee, error)
	UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error)
	DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) error
	DeleteEmployeeByNSS(ctx context.Context, nss int64) (*Employee, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, positions PositionReader, municipalities MunicipalityReader, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{
		repo:           repo,
		positions:      positions,
		municipalities: municipalities,
		clock:          clock,
		tx:             tx,
	}
}

// CreateEmployeeInput は社員作成時の入力です。
// HourlyRate と HoursWorked は HONORARY の場合のみ必須で、BASE では無視されます。
type CreateEmployeeInput struct {
	NSS            int64
	FirstName      string
	LastNameF      string
	LastNameM      string
	BirthDate      time.Time
	Type           string
	PositionID     string
	MunicipalityID string
	HourlyRate     *decimal.Decimal
	HoursWorked    *int
}

// UpdateEmployeeInput は社員更新時の入力です。nil の項目は変更しません。
// 社員区分に関する検証 (時給・勤務時間の整合性) は更新時には再実行しません。
type UpdateEmployeeInput struct {
	ID             string
	NSS            *int64
	FirstName      *string
	LastNameF      *string
	LastNameM      *string
	BirthDate      *string
	Type           *string
	PositionID     *string
	MunicipalityID *string
	HourlyRate     *decimal.Decimal
	HoursWorked    *int
}

// DeleteEmployeeInput は社員削除時の入力です。
type DeleteEmployeeInput struct {
	ID string
}

// GetEmployeeInput は社員取得時の入力です。
type GetEmployeeInput struct {
	ID string
}

// ListEmployeesInput は一覧取得時の入力です。
type ListEmployeesInput struct {
	Type           *string
	PositionID     string
	MunicipalityID string
}

// ValidateAndBuild は入力を検証し、永続化前の社員エンティティを構築します。
//
// 検証は次の順に行い、最初に失敗した規則のエラーを返します。
//  1. NSS の重複 (ErrDuplicateKey)
//  2. 職位・市町村の存在 (ErrReferenceNotFound)
//  3. 社員区分が BASE / HONORARY のいずれか (ErrInvalidEnum)
//  4. BASE は時給を職位の基本給、勤務時間を 0 に固定
//  5. HONORARY は時給と勤務時間が必須 (ErrMissingField)、勤務時間は 1〜40 (ErrRange)
func (s *Service) ValidateAndBuild(ctx context.Context, in CreateEmployeeInput) (*Employee, error) {
	var built *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		emp, err := s.validateAndBuild(txCtx, in)
		if err != nil {
			return err
		}
		built = emp
		return nil
	}); err != nil {
		return nil, err
	}
	return built, nil
}

// CreateEmployee は入力を検証して新しい社員を登録します。
func (s *Service) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error) {
	var created *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		emp, err := s.validateAndBuild(txCtx, in)
		if err != nil {
			return err
		}

		result, err := s.repo.Create(txCtx, emp)
		if err != nil {
			return err
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// BulkInsert は検証済みの社員をまとめて登録します。
func (s *Service) BulkInsert(ctx context.Context, employees []*Employee) error {
	if len(employees) == 0 {
		return nil
	}

	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.InsertMany(txCtx, employees)
	}); err != nil {
		return fmt.Errorf("%w: insert %d employees: %w", ErrPersistence, len(employees), err)
	}
	return nil
}

// UpdateEmployee は指定された項目のみ社員情報を更新します。
func (s *Service) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if in.NSS != nil && *in.NSS != existing.NSS {
			if err := validateNSS(*in.NSS); err != nil {
				return err
			}
			if err := s.ensureNSSNotExists(txCtx, *in.NSS); err != nil {
				return err
			}
			existing.NSS = *in.NSS
		}

		if err := patchName(&existing.FirstName, in.FirstName, "first_name"); err != nil {
			return err
		}
		if err := patchName(&existing.LastNameF, in.LastNameF, "last_name_f"); err != nil {
			return err
		}
		if err := patchName(&existing.LastNameM, in.LastNameM, "last_name_m"); err != nil {
			return err
		}

		if in.BirthDate != nil {
			birth, err := ParseDate(*in.BirthDate)
			if err != nil {
				return fmt.Errorf("birth_date: %w", err)
			}
			existing.BirthDate = birth
		}

		if in.Type != nil {
			existing.Type = Type(strings.ToUpper(strings.TrimSpace(*in.Type)))
		}

		if in.PositionID != nil {
			pos, err := s.resolvePosition(txCtx, *in.PositionID)
			if err != nil {
				return err
			}
			existing.PositionID = pos.ID
		}

		if in.MunicipalityID != nil {
			mun, err := s.resolveMunicipality(txCtx, *in.MunicipalityID)
			if err != nil {
				return err
			}
			existing.MunicipalityID = mun.ID
		}

		if in.HourlyRate != nil {
			if err := ValidateRate(*in.HourlyRate); err != nil {
				return fmt.Errorf("hourly_rate: %w", err)
			}
			existing.HourlyRate = *in.HourlyRate
		}

		if in.HoursWorked != nil {
			existing.HoursWorked = *in.HoursWorked
		}

		existing.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteEmployee は社員を削除します。
func (s *Service) DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, in.ID)
	})
}

// DeleteEmployeeByNSS は NSS で社員を特定して削除し、削除した社員を返します。
func (s *Service) DeleteEmployeeByNSS(ctx context.Context, nss int64) (*Employee, error) {
	var deleted *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByNSS(txCtx, nss)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(txCtx, found.ID); err != nil {
			return err
		}
		deleted = found
		return nil
	}); err != nil {
		return nil, fmt.Errorf("nss %d: %w", nss, err)
	}
	return deleted, nil
}

// GetEmployee は社員を取得します。
func (s *Service) GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// FindEmployeeByNSS は NSS で社員を取得します。
func (s *Service) FindEmployeeByNSS(ctx context.Context, nss int64) (*Employee, error) {
	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByNSS(txCtx, nss)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListEmployees は父姓順に社員の一覧を取得します。
func (s *Service) ListEmployees(ctx context.Context, in ListEmployeesInput) ([]*Employee, error) {
	filter := ListEmployeesFilter{
		PositionID:     strings.TrimSpace(in.PositionID),
		MunicipalityID: strings.TrimSpace(in.MunicipalityID),
	}

	if in.Type != nil {
		t, err := normalizeType(*in.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = &t
	}

	var employees []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.List(txCtx, filter)
		if err != nil {
			return err
		}
		employees = result
		return nil
	}); err != nil {
		return nil, err
	}

	return employees, nil
}

func (s *Service) validateAndBuild(ctx context.Context, in CreateEmployeeInput) (*Employee, error) {
	if err := validateNSS(in.NSS); err != nil {
		return nil, err
	}

	if err := s.ensureNSSNotExists(ctx, in.NSS); err != nil {
		return nil, err
	}

	pos, err := s.resolvePosition(ctx, in.PositionID)
	if err != nil {
		return nil, err
	}

	mun, err := s.resolveMunicipality(ctx, in.MunicipalityID)
	if err != nil {
		return nil, err
	}

	empType, err := normalizeType(in.Type)
	if err != nil {
		return nil, err
	}

	var (
		rate  decimal.Decimal
		hours int
	)

	switch empType {
	case TypeBase:
		rate = pos.BaseSalary
		hours = 0
	case TypeHonorary:
		if in.HourlyRate == nil {
			return nil, fmt.Errorf("hourly_rate: %w", ErrMissingField)
		}
		if in.HoursWorked == nil {
			return nil, fmt.Errorf("hours_worked: %w", ErrMissingField)
		}
		if *in.HoursWorked < minHonoraryHours || *in.HoursWorked > maxHonoraryHours {
			return nil, fmt.Errorf("hours_worked %d must be between %d and %d: %w", *in.HoursWorked, minHonoraryHours, maxHonoraryHours, ErrRange)
		}
		if err := ValidateRate(*in.HourlyRate); err != nil {
			return nil, fmt.Errorf("hourly_rate: %w", err)
		}
		rate = *in.HourlyRate
		hours = *in.HoursWorked
	}

	firstName, err := requireName(in.FirstName, "first_name")
	if err != nil {
		return nil, err
	}
	lastNameF, err := requireName(in.LastNameF, "last_name_f")
	if err != nil {
		return nil, err
	}
	lastNameM, err := requireName(in.LastNameM, "last_name_m")
	if err != nil {
		return nil, err
	}

	if in.BirthDate.IsZero() {
		return nil, fmt.Errorf("birth_date: %w", ErrMissingField)
	}

	now := s.clock.Now()
	return &Employee{
		ID:             uuid.NewString(),
		NSS:            in.NSS,
		FirstName:      firstName,
		LastNameF:      lastNameF,
		LastNameM:      lastNameM,
		BirthDate:      normalizeDate(in.BirthDate),
		Type:           empType,
		PositionID:     pos.ID,
		MunicipalityID: mun.ID,
		HourlyRate:     rate,
		HoursWorked:    hours,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (s *Service) ensureNSSNotExists(ctx context.Context, nss int64) error {
	emp, err := s.repo.FindByNSS(ctx, nss)
	if err != nil && !errors.Is(err, ErrEmployeeNotFound) {
		return err
	}
	if emp != nil {
		return fmt.Errorf("nss %d: %w", nss, ErrDuplicateKey)
	}
	return nil
}

func (s *Service) resolvePosition(ctx context.Context, id string) (*position.Position, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, fmt.Errorf("position_id: %w", ErrReferenceNotFound)
	}
	pos, err := s.positions.FindByID(ctx, trimmed)
	if err != nil {
		if errors.Is(err, position.ErrPositionNotFound) {
			return nil, fmt.Errorf("position_id %s: %w", trimmed, ErrReferenceNotFound)
		}
		return nil, err
	}
	return pos, nil
}

func (s *Service) resolveMunicipality(ctx context.Context, id string) (*municipality.Municipality, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, fmt.Errorf("municipality_id: %w", ErrReferenceNotFound)
	}
	mun, err := s.municipalities.FindByID(ctx, trimmed)
	if err != nil {
		if errors.Is(err, municipality.ErrMunicipalityNotFound) {
			return nil, fmt.Errorf("municipality_id %s: %w", trimmed, ErrReferenceNotFound)
		}
		return nil, err
	}
	return mun, nil
}

// ParseDate は YYYY-MM-DD 形式の日付を解析します。
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return t, nil
}

func normalizeType(raw string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(raw)))
	switch t {
	case TypeBase, TypeHonorary:
		return t, nil
	default:
		return "", fmt.Errorf("employee_type %q must be BASE or HONORARY: %w", raw, ErrInvalidEnum)
	}
}

func validateNSS(nss int64) error {
	if nss <= 0 {
		return fmt.Errorf("nss %d: %w", nss, ErrRange)
	}
	return nil
}

// ValidateRate は金額が 0 以上、小数点以下 2 桁以内、10^10 未満であることを検証します。
func ValidateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThanOrEqual(maxHourlyRate) {
		return fmt.Errorf("%s: %w", rate.String(), ErrRange)
	}
	if !rate.Equal(rate.Truncate(rateScale)) {
		return fmt.Errorf("%s has more than %d decimal places: %w", rate.String(), rateScale, ErrFormat)
	}
	return nil
}

func requireName(raw, field string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%s: %w", field, ErrMissingField)
	}
	if n := utf8.RuneCountInString(trimmed); n > maxNameLength {
		return "", fmt.Errorf("%s has %d characters, at most %d allowed: %w", field, n, maxNameLength, ErrRange)
	}
	return trimmed, nil
}

func patchName(dst *string, patch *string, field string) error {
	if patch == nil {
		return nil
	}
	name, err := requireName(*patch, field)
	if err != nil {
		return err
	}
	*dst = name
	return nil
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
