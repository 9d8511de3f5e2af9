package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ogurasousui/employees-management/internal/adapters/repository/memory"
	"github.com/ogurasousui/employees-management/internal/core/municipality"
	"github.com/ogurasousui/employees-management/internal/core/position"
	"github.com/shopspring/decimal"
)

func TestPositionRepository_UniqueNameAndOrder(t *testing.T) {
	t.Parallel()

	repo := memory.NewPositionRepository()
	ctx := context.Background()

	for _, p := range []*position.Position{
		{ID: "1", Name: "Nurse", BaseSalary: decimal.NewFromInt(100)},
		{ID: "2", Name: "Analyst", BaseSalary: decimal.NewFromInt(120)},
	} {
		if _, err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}
	if _, err := repo.Create(ctx, &position.Position{ID: "3", Name: "Nurse"}); !errors.Is(err, position.ErrNameAlreadyExists) {
		t.Fatalf("expected ErrNameAlreadyExists, got %v", err)
	}
	if _, err := repo.Update(ctx, &position.Position{ID: "2", Name: "Nurse"}); !errors.Is(err, position.ErrNameAlreadyExists) {
		t.Fatalf("expected ErrNameAlreadyExists on rename, got %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Analyst" || list[1].Name != "Nurse" {
		t.Fatalf("unexpected list %+v", list)
	}

	found, err := repo.FindByName(ctx, "Nurse")
	if err != nil || found.ID != "1" {
		t.Fatalf("unexpected FindByName result %+v, %v", found, err)
	}
	if err := repo.Delete(ctx, "1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.FindByID(ctx, "1"); !errors.Is(err, position.ErrPositionNotFound) {
		t.Fatalf("expected ErrPositionNotFound, got %v", err)
	}
}

func TestMunicipalityRepository_UniqueNameAndOrder(t *testing.T) {
	t.Parallel()

	repo := memory.NewMunicipalityRepository()
	ctx := context.Background()

	for _, m := range []*municipality.Municipality{
		{ID: "1", Name: "Zapopan"},
		{ID: "2", Name: "Guadalajara"},
	} {
		if _, err := repo.Create(ctx, m); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}
	if _, err := repo.Create(ctx, &municipality.Municipality{ID: "3", Name: "Zapopan"}); !errors.Is(err, municipality.ErrNameAlreadyExists) {
		t.Fatalf("expected ErrNameAlreadyExists, got %v", err)
	}
	if _, err := repo.Update(ctx, &municipality.Municipality{ID: "9", Name: "Tonala"}); !errors.Is(err, municipality.ErrMunicipalityNotFound) {
		t.Fatalf("expected ErrMunicipalityNotFound, got %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Guadalajara" {
		t.Fatalf("unexpected list %+v", list)
	}
	if repo.Len() != 2 {
		t.Fatalf("expected 2 municipalities, got %d", repo.Len())
	}
}
