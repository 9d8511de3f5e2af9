package municipality

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
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

// Service は市町村に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	usage UsageCounter
	clock Clock
	tx    TransactionManager
}

// UseCase は市町村ユースケースの公開インターフェースです。
type UseCase interface {
	CreateMunicipality(ctx context.Context, in CreateMunicipalityInput) (*Municipality, error)
	GetMunicipality(ctx context.Context, in GetMunicipalityInput) (*Municipality, error)
	FindMunicipalityByName(ctx context.Context, name string) (*Municipality, error)
	ListMunicipalities(ctx context.Context) ([]*Municipality, error)
	RenameMunicipality(ctx context.Context, in RenameMunicipalityInput) (*Municipality, error)
	DeleteMunicipality(ctx context.Context, in DeleteMunicipalityInput) error
}

// NewService は Service を生成します。
func NewService(repo Repository, usage UsageCounter, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, usage: usage, clock: clock, tx: tx}
}

// CreateMunicipalityInput は市町村作成時の入力です。
type CreateMunicipalityInput struct {
	Name string
}

// RenameMunicipalityInput は市町村名変更時の入力です。
type RenameMunicipalityInput struct {
	ID   string
	Name string
}

// DeleteMunicipalityInput は市町村削除時の入力です。
type DeleteMunicipalityInput struct {
	ID string
}

// GetMunicipalityInput は市町村取得時の入力です。
type GetMunicipalityInput struct {
	ID string
}

// CreateMunicipality は新しい市町村を作成します。
func (s *Service) CreateMunicipality(ctx context.Context, in CreateMunicipalityInput) (*Municipality, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	var created *Municipality
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureNameNotExists(txCtx, name); err != nil {
			return err
		}

		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &Municipality{
			ID:        uuid.NewString(),
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
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

// RenameMunicipality は市町村名を変更します。
func (s *Service) RenameMunicipality(ctx context.Context, in RenameMunicipalityInput) (*Municipality, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	var updated *Municipality
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if name == existing.Name {
			updated = existing
			return nil
		}

		if err := s.ensureNameNotExists(txCtx, name); err != nil {
			return err
		}

		existing.Name = name
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

// DeleteMunicipality は市町村を削除します。
func (s *Service) DeleteMunicipality(ctx context.Context, in DeleteMunicipalityInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if s.usage != nil {
			count, err := s.usage.CountByMunicipality(txCtx, in.ID)
			if err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("%d employees: %w", count, ErrMunicipalityInUse)
			}
		}
		return s.repo.Delete(txCtx, in.ID)
	})
}

// GetMunicipality は市町村を取得します。
func (s *Service) GetMunicipality(ctx context.Context, in GetMunicipalityInput) (*Municipality, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Municipality
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

// FindMunicipalityByName は名前の完全一致で市町村を検索します。
func (s *Service) FindMunicipalityByName(ctx context.Context, name string) (*Municipality, error) {
	var result *Municipality
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

// ListMunicipalities は名前順に市町村の一覧を返します。
func (s *Service) ListMunicipalities(ctx context.Context) ([]*Municipality, error) {
	var municipalities []*Municipality
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.List(txCtx)
		if err != nil {
			return err
		}
		municipalities = result
		return nil
	}); err != nil {
		return nil, err
	}

	return municipalities, nil
}

func (s *Service) ensureNameNotExists(ctx context.Context, name string) error {
	found, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, ErrMunicipalityNotFound) {
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
