package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ogurasousui/employees-management/internal/core/position"
)

// PositionRepository はメモリ上で職位を保持します。
type PositionRepository struct {
	mu        sync.RWMutex
	positions map[string]*position.Position
}

// NewPositionRepository は PositionRepository を生成します。
func NewPositionRepository() *PositionRepository {
	return &PositionRepository{positions: make(map[string]*position.Position)}
}

// Create は職位を追加します。
func (r *PositionRepository) Create(_ context.Context, p *position.Position) (*position.Position, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.positions {
		if existing.Name == p.Name {
			return nil, position.ErrNameAlreadyExists
		}
	}
	clone := *p
	r.positions[p.ID] = &clone
	return clonePosition(&clone), nil
}

// Update は職位を更新します。
func (r *PositionRepository) Update(_ context.Context, p *position.Position) (*position.Position, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.positions[p.ID]; !ok {
		return nil, position.ErrPositionNotFound
	}
	for _, existing := range r.positions {
		if existing.ID != p.ID && existing.Name == p.Name {
			return nil, position.ErrNameAlreadyExists
		}
	}
	clone := *p
	r.positions[p.ID] = &clone
	return clonePosition(&clone), nil
}

// Delete は職位を削除します。
func (r *PositionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.positions[id]; !ok {
		return position.ErrPositionNotFound
	}
	delete(r.positions, id)
	return nil
}

// FindByID は ID で職位を取得します。
func (r *PositionRepository) FindByID(_ context.Context, id string) (*position.Position, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.positions[id]
	if !ok {
		return nil, position.ErrPositionNotFound
	}
	return clonePosition(p), nil
}

// FindByName は名前で職位を取得します。
func (r *PositionRepository) FindByName(_ context.Context, name string) (*position.Position, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.positions {
		if p.Name == name {
			return clonePosition(p), nil
		}
	}
	return nil, position.ErrPositionNotFound
}

// List は名前順に職位を返します。
func (r *PositionRepository) List(_ context.Context) ([]*position.Position, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*position.Position, 0, len(r.positions))
	for _, p := range r.positions {
		result = append(result, clonePosition(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Len は保持している職位数を返します。
func (r *PositionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.positions)
}

func clonePosition(p *position.Position) *position.Position {
	if p == nil {
		return nil
	}
	copy := *p
	return &copy
}
