package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ogurasousui/employees-management/internal/core/municipality"
)

// MunicipalityRepository はメモリ上で市町村を保持します。
type MunicipalityRepository struct {
	mu             sync.RWMutex
	municipalities map[string]*municipality.Municipality
}

// NewMunicipalityRepository は MunicipalityRepository を生成します。
func NewMunicipalityRepository() *MunicipalityRepository {
	return &MunicipalityRepository{municipalities: make(map[string]*municipality.Municipality)}
}

func (r *MunicipalityRepository) Create(_ context.Context, m *municipality.Municipality) (*municipality.Municipality, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.municipalities {
		if existing.Name == m.Name {
			return nil, municipality.ErrNameAlreadyExists
		}
	}
	clone := *m
	r.municipalities[m.ID] = &clone
	return cloneMunicipality(&clone), nil
}

func (r *MunicipalityRepository) Update(_ context.Context, m *municipality.Municipality) (*municipality.Municipality, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.municipalities[m.ID]; !ok {
		return nil, municipality.ErrMunicipalityNotFound
	}
	for _, existing := range r.municipalities {
		if existing.ID != m.ID && existing.Name == m.Name {
			return nil, municipality.ErrNameAlreadyExists
		}
	}
	clone := *m
	r.municipalities[m.ID] = &clone
	return cloneMunicipality(&clone), nil
}

func (r *MunicipalityRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.municipalities[id]; !ok {
		return municipality.ErrMunicipalityNotFound
	}
	delete(r.municipalities, id)
	return nil
}

func (r *MunicipalityRepository) FindByID(_ context.Context, id string) (*municipality.Municipality, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.municipalities[id]
	if !ok {
		return nil, municipality.ErrMunicipalityNotFound
	}
	return cloneMunicipality(m), nil
}

func (r *MunicipalityRepository) FindByName(_ context.Context, name string) (*municipality.Municipality, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.municipalities {
		if m.Name == name {
			return cloneMunicipality(m), nil
		}
	}
	return nil, municipality.ErrMunicipalityNotFound
}

func (r *MunicipalityRepository) List(_ context.Context) ([]*municipality.Municipality, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*municipality.Municipality, 0, len(r.municipalities))
	for _, m := range r.municipalities {
		result = append(result, cloneMunicipality(m))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Len は保持している市町村数を返します。
func (r *MunicipalityRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.municipalities)
}

func cloneMunicipality(m *municipality.Municipality) *municipality.Municipality {
	if m == nil {
		return nil
	}
	copy := *m
	return &copy
}
