// Package reference は職位・市町村の「検索して無ければ作成」を提供します。
package reference

import (
	"context"
	"errors"
	"sync"

	"github.com/ogurasousui/employees-management/internal/core/municipality"
	"github.com/ogurasousui/employees-management/internal/core/position"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PositionStore は Registry が利用する職位ユースケースです。
type PositionStore interface {
	FindPositionByName(ctx context.Context, name string) (*position.Position, error)
	CreatePosition(ctx context.Context, in position.CreatePositionInput) (*position.Position, error)
}

// MunicipalityStore は Registry が利用する市町村ユースケースです。
type MunicipalityStore interface {
	FindMunicipalityByName(ctx context.Context, name string) (*municipality.Municipality, error)
	CreateMunicipality(ctx context.Context, in municipality.CreateMunicipalityInput) (*municipality.Municipality, error)
}

// Registry は名前をキーに参照データを解決します。
// 検索と作成の組はミューテックスで直列化され、同一プロセス内での重複作成を防ぎます。
type Registry struct {
	mu             sync.Mutex
	positions      PositionStore
	municipalities MunicipalityStore
	logger         *zap.Logger
}

// NewRegistry は Registry を生成します。
func NewRegistry(positions PositionStore, municipalities MunicipalityStore, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{positions: positions, municipalities: municipalities, logger: logger}
}

// FindOrCreatePosition は名前が完全一致する職位を返し、無ければ defaultBaseSalary で作成します。
// 作成は即座に永続化されるため、同じバッチ内の後続の検索から参照できます。
func (r *Registry) FindOrCreatePosition(ctx context.Context, name string, defaultBaseSalary decimal.Decimal) (*position.Position, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found, err := r.positions.FindPositionByName(ctx, name)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, position.ErrPositionNotFound) {
		return nil, err
	}

	created, err := r.positions.CreatePosition(ctx, position.CreatePositionInput{
		Name:       name,
		BaseSalary: defaultBaseSalary,
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("position created",
		zap.String("position_id", created.ID),
		zap.String("name", created.Name),
		zap.String("base_salary", created.BaseSalary.String()),
	)
	return created, nil
}

// FindOrCreateMunicipality は名前が完全一致する市町村を返し、無ければ作成します。
func (r *Registry) FindOrCreateMunicipality(ctx context.Context, name string) (*municipality.Municipality, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found, err := r.municipalities.FindMunicipalityByName(ctx, name)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, municipality.ErrMunicipalityNotFound) {
		return nil, err
	}

	created, err := r.municipalities.CreateMunicipality(ctx, municipality.CreateMunicipalityInput{Name: name})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("municipality created",
		zap.String("municipality_id", created.ID),
		zap.String("name", created.Name),
	)
	return created, nil
}
