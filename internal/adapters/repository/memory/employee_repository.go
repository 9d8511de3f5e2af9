package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ogurasousui/employees-management/internal/core/employee"
)

// EmployeeRepository はメモリ上で社員を保持します。登録順を保持し、一覧は父姓で安定ソートします。
type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]*employee.Employee
	order     []string

	// InsertManyErr が設定されている場合、InsertMany はこのエラーを返します。
	InsertManyErr error
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{employees: make(map[string]*employee.Employee)}
}

func (r *EmployeeRepository) Create(_ context.Context, e *employee.Employee) (*employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nssTaken(e.NSS, "") {
		return nil, employee.ErrDuplicateKey
	}
	r.put(e)
	return cloneEmployee(e), nil
}

// InsertMany は全件の NSS を検査してから一括で追加します。途中で失敗した場合は何も追加しません。
func (r *EmployeeRepository) InsertMany(_ context.Context, employees []*employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.InsertManyErr != nil {
		return r.InsertManyErr
	}

	seen := make(map[int64]struct{}, len(employees))
	for _, e := range employees {
		if _, dup := seen[e.NSS]; dup || r.nssTaken(e.NSS, "") {
			return employee.ErrDuplicateKey
		}
		seen[e.NSS] = struct{}{}
	}
	for _, e := range employees {
		r.put(e)
	}
	return nil
}

func (r *EmployeeRepository) Update(_ context.Context, e *employee.Employee) (*employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[e.ID]; !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	if r.nssTaken(e.NSS, e.ID) {
		return nil, employee.ErrDuplicateKey
	}
	r.employees[e.ID] = cloneEmployee(e)
	return cloneEmployee(e), nil
}

func (r *EmployeeRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	for idx, existingID := range r.order {
		if existingID == id {
			r.order = append(r.order[:idx], r.order[idx+1:]...)
			break
		}
	}
	return nil
}

func (r *EmployeeRepository) FindByID(_ context.Context, id string) (*employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	return cloneEmployee(e), nil
}

func (r *EmployeeRepository) FindByNSS(_ context.Context, nss int64) (*employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if e := r.employees[id]; e.NSS == nss {
			return cloneEmployee(e), nil
		}
	}
	return nil, employee.ErrEmployeeNotFound
}

func (r *EmployeeRepository) List(_ context.Context, filter employee.ListEmployeesFilter) ([]*employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*employee.Employee, 0, len(r.order))
	for _, id := range r.order {
		e := r.employees[id]
		if filter.Type != nil && e.Type != *filter.Type {
			continue
		}
		if filter.PositionID != "" && e.PositionID != filter.PositionID {
			continue
		}
		if filter.MunicipalityID != "" && e.MunicipalityID != filter.MunicipalityID {
			continue
		}
		result = append(result, cloneEmployee(e))
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].LastNameF < result[j].LastNameF })
	return result, nil
}

func (r *EmployeeRepository) CountByPosition(_ context.Context, positionID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, e := range r.employees {
		if e.PositionID == positionID {
			count++
		}
	}
	return count, nil
}

func (r *EmployeeRepository) CountByMunicipality(_ context.Context, municipalityID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, e := range r.employees {
		if e.MunicipalityID == municipalityID {
			count++
		}
	}
	return count, nil
}

// Len は保持している社員数を返します。
func (r *EmployeeRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.employees)
}

func (r *EmployeeRepository) put(e *employee.Employee) {
	r.employees[e.ID] = cloneEmployee(e)
	r.order = append(r.order, e.ID)
}

func (r *EmployeeRepository) nssTaken(nss int64, exceptID string) bool {
	for id, e := range r.employees {
		if id != exceptID && e.NSS == nss {
			return true
		}
	}
	return false
}

func cloneEmployee(e *employee.Employee) *employee.Employee {
	if e == nil {
		return nil
	}
	copy := *e
	return &copy
}
