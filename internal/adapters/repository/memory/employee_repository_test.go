package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ogurasousui/employees-management/internal/adapters/repository/memory"
	"github.com/ogurasousui/employees-management/internal/core/employee"
)

func newEmployee(id string, nss int64, lastName string, t employee.Type) *employee.Employee {
	return &employee.Employee{
		ID:             id,
		NSS:            nss,
		FirstName:      "Name",
		LastNameF:      lastName,
		Type:           t,
		PositionID:     "pos-1",
		MunicipalityID: "mun-1",
	}
}

func TestEmployeeRepository_CreateDuplicateNSS(t *testing.T) {
	t.Parallel()

	repo := memory.NewEmployeeRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, newEmployee("a", 1, "Lopez", employee.TypeBase)); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := repo.Create(ctx, newEmployee("b", 1, "Perez", employee.TypeBase)); !errors.Is(err, employee.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestEmployeeRepository_InsertManyIsAllOrNothing(t *testing.T) {
	t.Parallel()

	repo := memory.NewEmployeeRepository()
	ctx := context.Background()

	batch := []*employee.Employee{
		newEmployee("a", 1, "Lopez", employee.TypeBase),
		newEmployee("b", 2, "Perez", employee.TypeBase),
		newEmployee("c", 1, "Ruiz", employee.TypeBase),
	}
	if err := repo.InsertMany(ctx, batch); !errors.Is(err, employee.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if repo.Len() != 0 {
		t.Fatalf("expected nothing inserted, got %d", repo.Len())
	}

	if err := repo.InsertMany(ctx, batch[:2]); err != nil {
		t.Fatalf("InsertMany returned error: %v", err)
	}
	if repo.Len() != 2 {
		t.Fatalf("expected 2 employees, got %d", repo.Len())
	}
}

func TestEmployeeRepository_InsertManyErr(t *testing.T) {
	t.Parallel()

	repo := memory.NewEmployeeRepository()
	boom := errors.New("disk full")
	repo.InsertManyErr = boom

	if err := repo.InsertMany(context.Background(), []*employee.Employee{newEmployee("a", 1, "Lopez", employee.TypeBase)}); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
}

func TestEmployeeRepository_ListFiltersAndOrders(t *testing.T) {
	t.Parallel()

	repo := memory.NewEmployeeRepository()
	ctx := context.Background()

	for _, e := range []*employee.Employee{
		newEmployee("a", 1, "Ruiz", employee.TypeBase),
		newEmployee("b", 2, "Lopez", employee.TypeHonorary),
		newEmployee("c", 3, "Lopez", employee.TypeBase),
	} {
		if _, err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	all, err := repo.List(ctx, employee.ListEmployeesFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	for i, want := range []string{"b", "c", "a"} {
		if all[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, all[i].ID)
		}
	}

	base := employee.TypeBase
	filtered, err := repo.List(ctx, employee.ListEmployeesFilter{Type: &base})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(filtered) != 2 || filtered[0].ID != "c" || filtered[1].ID != "a" {
		t.Fatalf("unexpected filtered result: %+v", filtered)
	}
}

func TestEmployeeRepository_UpdateDeleteAndCounts(t *testing.T) {
	t.Parallel()

	repo := memory.NewEmployeeRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, newEmployee("a", 1, "Ruiz", employee.TypeBase)); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := repo.Create(ctx, newEmployee("b", 2, "Lopez", employee.TypeBase)); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	moved := newEmployee("b", 2, "Lopez", employee.TypeBase)
	moved.PositionID = "pos-2"
	if _, err := repo.Update(ctx, moved); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if _, err := repo.Update(ctx, newEmployee("b", 1, "Lopez", employee.TypeBase)); !errors.Is(err, employee.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	if n, _ := repo.CountByPosition(ctx, "pos-1"); n != 1 {
		t.Fatalf("expected 1 employee in pos-1, got %d", n)
	}
	if n, _ := repo.CountByMunicipality(ctx, "mun-1"); n != 2 {
		t.Fatalf("expected 2 employees in mun-1, got %d", n)
	}

	found, err := repo.FindByNSS(ctx, 2)
	if err != nil || found.PositionID != "pos-2" {
		t.Fatalf("unexpected FindByNSS result %+v, %v", found, err)
	}

	if err := repo.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := repo.Delete(ctx, "a"); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
	if _, err := repo.FindByNSS(ctx, 1); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	repo := memory.NewEmployeeRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, newEmployee("a", 1, "Ruiz", employee.TypeBase)); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	found, _ := repo.FindByID(ctx, "a")
	found.LastNameF = "Changed"

	again, _ := repo.FindByID(ctx, "a")
	if again.LastNameF != "Ruiz" {
		t.Fatalf("expected stored employee to be unchanged, got %s", again.LastNameF)
	}
}
