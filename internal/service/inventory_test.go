package service

import (
	"context"
	"errors"
	"testing"

	"domeda/internal/domain"
	"domeda/internal/repository"
)

func TestReserve(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	ledger := NewInventoryLedger(store)
	d := seedDish(t, store, "Борщ", 1, 390, 5)

	got, err := ledger.Reserve(ctx, d.ID, 3)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if got.PortionsAvailable != 2 {
		t.Fatalf("portions %v, want 2", got.PortionsAvailable)
	}

	// нехватка не трогает остаток
	if _, err := ledger.Reserve(ctx, d.ID, 3); !errors.Is(err, domain.ErrDishStockNotEnough) {
		t.Fatalf("got %v, want dish_stock_not_enough", err)
	}
	after, _ := store.GetByID(ctx, d.ID)
	if after.PortionsAvailable != 2 {
		t.Fatalf("portions %v, want 2", after.PortionsAvailable)
	}

	if _, err := ledger.Reserve(ctx, 999, 1); !errors.Is(err, domain.ErrDishNotFound) {
		t.Fatalf("got %v, want dish_not_found", err)
	}
}

func TestReserve_ZeroStockIsShortage(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	ledger := NewInventoryLedger(store)
	d := seedDish(t, store, "Борщ", 1, 390, 0)

	if _, err := ledger.Reserve(ctx, d.ID, 1); !errors.Is(err, domain.ErrDishStockNotEnough) {
		t.Fatalf("got %v, want dish_stock_not_enough", err)
	}
}

func TestReserve_DisabledDishUnavailable(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	ledger := NewInventoryLedger(store)
	d := seedDish(t, store, "Борщ", 1, 390, 5)
	d.Disabled = true
	if err := store.Update(ctx, d); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, err := ledger.Reserve(ctx, d.ID, 1); !errors.Is(err, domain.ErrDishUnavailable) {
		t.Fatalf("got %v, want dish_unavailable", err)
	}
}

func TestRelease_CappedAtCeiling(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	ledger := NewInventoryLedger(store)
	d := seedDish(t, store, "Борщ", 1, 390, 5)

	if _, err := ledger.Reserve(ctx, d.ID, 2); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := ledger.Release(ctx, d.ID, 2); err != nil {
		t.Fatalf("release: %v", err)
	}
	after, _ := store.GetByID(ctx, d.ID)
	if after.PortionsAvailable != 5 {
		t.Fatalf("portions %v, want 5", after.PortionsAvailable)
	}

	// возврат сверх номинала не поднимает остаток выше потолка
	if err := ledger.Release(ctx, d.ID, 10); err != nil {
		t.Fatalf("release: %v", err)
	}
	after, _ = store.GetByID(ctx, d.ID)
	if after.PortionsAvailable != 5 {
		t.Fatalf("portions %v, must stay at ceiling 5", after.PortionsAvailable)
	}
}
