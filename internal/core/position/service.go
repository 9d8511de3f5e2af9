package position

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
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

const maxNameLength = 100

var maxBaseSalary = decimal.New(1, 10)

// Service は職位に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	usage UsageCounter
	clock Clock
	tx    TransactionManager
}

// UseCase は職位ユースケースの公開インターフェースです。
type UseCase interface {
	CreatePosition(ctx context.Context, in CreatePositionInput) (*Position, error)
	GetPosition(ctx context.Context, in GetPositionInput) (*Position, error)
	FindPositionByName(ctx context.Context, name string) (*Position, error)
	ListPositions(ctx context.Context) ([]*Position, error)
	UpdatePosition(ctx context.Context, in UpdatePositionInput) (*Position, error)
	DeletePosition(ctx context.Context, in DeletePositionInput) error
}

// NewService は Service を生成します。usage が nil の場合は削除時の参照チェックを行いません。
func NewService(repo Repository, usage UsageCounter, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, usage: usage, clock: clock, tx: tx}
}

// CreatePositionInput は職位作成時の入力です。
type CreatePositionInput struct {
	Name       string
	BaseSalary decimal.Decimal
}

// UpdatePositionInput は職位更新時の入力です。
type UpdatePositionInput struct {
	ID         string
	Name       *string
	BaseSalary *decimal.Decimal
}

// DeletePositionInput は職位削除時の入力です。
type DeletePositionInput struct {
	ID string
}

// GetPositionInput は職位取得時の入力です。
type GetPositionInput struct {
	ID string
}

// CreatePosition は新しい職位を作成します。
func (s *Service) CreatePosition(ctx context.Context, in CreatePositionInput) (*Position, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	if err := validateBaseSalary(in.BaseSalary); err != nil {
		return nil, err
	}

	var created *Position
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureNameNotExists(txCtx, name); err != nil {
			return err
		}

		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &Position{
			ID:         uuid.NewString(),
			Name:       name,
			BaseSalary: in.BaseSalary,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
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

// UpdatePosition は職位情報を更新します。
func (s *Service) UpdatePosition(ctx context.Context, in UpdatePositionInput) (*Position, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Position
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if in.Name != nil {
			name, err := normalizeName(*in.Name)
			if err != nil {
				return err
			}
			if name != existing.Name {
				if err := s.ensureNameNotExists(txCtx, name); err != nil {
					return err
				}
				existing.Name = name
			}
		}

		if in.BaseSalary != nil {
			if err := validateBaseSalary(*in.BaseSalary); err != nil {
				return err
			}
			existing.BaseSalary = *in.BaseSalary
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

// DeletePosition は職位を削除します。社員から参照されている場合は ErrPositionInUse を返します。
func (s *Service) DeletePosition(ctx context.Context, in DeletePositionInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if s.usage != nil {
			count, err := s.usage.CountByPosition(txCtx, in.ID)
			if err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("%d employees: %w", count, ErrPositionInUse)
			}
		}
		return s.repo.Delete(txCtx, in.ID)
	})
}

// GetPosition は職位を取得します。
func (s *Service) GetPosition(ctx context.Context, in GetPositionInput) (*Position, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Position
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

// FindPositionByName は名前の完全一致 (大文字小文字を区別) で職位を検索します。
func (s *Service) FindPositionByName(ctx context.Context, name string) (*Position, error) {
	var result *Position
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByName(txCtx, name)
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

// ListPositions は名前順に職位の一覧を返します。
func (s *Service) ListPositions(ctx context.Context) ([]*Position, error) {
	var positions []*Position
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.List(txCtx)
		if err != nil {
			return err
		}
		positions = result
		return nil
	}); err != nil {
		return nil, err
	}

	return positions, nil
}

func (s *Service) ensureNameNotExists(ctx context.Context, name string) error {
	found, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, ErrPositionNotFound) {
		return err
	}
	if found != nil {
		return ErrNameAlreadyExists
	}
	return nil
}

func normalizeName(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > maxNameLength {
		return "", ErrInvalidName
	}
	return trimmed, nil
}

// validateBaseSalary は基本給が NUMERIC(12,2) の 0 以上の値として保存できることを検証します。
func validateBaseSalary(salary decimal.Decimal) error {
	if salary.IsNegative() || salary.GreaterThanOrEqual(maxBaseSalary) {
		return fmt.Errorf("base_salary %s: %w", salary.String(), ErrInvalidBaseSalary)
	}
	if !salary.Equal(salary.Truncate(2)) {
		return fmt.Errorf("base_salary %s has more than 2 decimal places: %w", salary.String(), ErrInvalidBaseSalary)
	}
	return nil
}
