package service

import (
	"context"
	"errors"
	"testing"

	"domeda/internal/domain"
	"domeda/internal/repository"
	"domeda/pkg/logging"
)

func setupCatalog(t *testing.T) (*repository.MemoryStore, *CatalogService) {
	t.Helper()
	store := repository.NewMemoryStore()
	return store, NewCatalogService(store, logging.Discard())
}

func TestListDishes_SortAndFilter(t *testing.T) {
	ctx := context.Background()
	store, svc := setupCatalog(t)
	seedDish(t, store, "Борщ", 1, 390, 8)
	seedDish(t, store, "Плов", 2, 450, 6)
	cheap := seedDish(t, store, "Сырники", 1, 260, 12)

	views, err := svc.ListDishes(ctx, repository.DishFilter{}, SortPriceAsc, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 3 || views[0].ID != cheap.ID {
		t.Fatalf("price-asc order broken: %v", views)
	}

	views, err = svc.ListDishes(ctx, repository.DishFilter{CookID: 2}, "", false)
	if err != nil {
		t.Fatalf("list by cook: %v", err)
	}
	if len(views) != 1 || views[0].Title != "Плов" {
		t.Fatalf("cook filter: %v", views)
	}
}

func TestListDishes_AvailableOnly(t *testing.T) {
	ctx := context.Background()
	store, svc := setupCatalog(t)
	seedDish(t, store, "Борщ", 1, 390, 8)
	seedDish(t, store, "Плов", 2, 450, 0)

	views, err := svc.ListDishes(ctx, repository.DishFilter{}, "", true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 || views[0].Title != "Борщ" {
		t.Fatalf("sold-out dish leaked into available_only: %v", views)
	}

	views, _ = svc.ListDishes(ctx, repository.DishFilter{}, "", false)
	if len(views) != 2 {
		t.Fatalf("full list must keep sold-out dishes: %v", views)
	}
	for _, v := range views {
		if v.Title == "Плов" && v.AvailabilityLabel != "Закончилось" {
			t.Fatalf("label %q", v.AvailabilityLabel)
		}
	}
}

func TestGetDish(t *testing.T) {
	ctx := context.Background()
	store, svc := setupCatalog(t)
	d := seedDish(t, store, "Борщ", 1, 390, 8)

	v, err := svc.GetDish(ctx, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !v.IsAvailable || v.Title != "Борщ" {
		t.Fatalf("view %v", v)
	}

	if _, err := svc.GetDish(ctx, 999); !errors.Is(err, domain.ErrDishNotFound) {
		t.Fatalf("got %v, want dish_not_found", err)
	}
	if _, err := svc.GetDish(ctx, 0); !errors.Is(err, domain.ErrDishNotFound) {
		t.Fatalf("got %v, want dish_not_found for zero id", err)
	}
}

func TestCartPreview(t *testing.T) {
	ctx := context.Background()
	store, svc := setupCatalog(t)
	d1 := seedDish(t, store, "Борщ", 1, 390, 8)
	seedDish(t, store, "Плов", 2, 450, 6)

	// неизвестные ID пропускаются без ошибки
	views, err := svc.CartPreview(ctx, []int64{d1.ID, 999})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(views) != 1 || views[0].ID != d1.ID {
		t.Fatalf("preview %v", views)
	}

	// пустая корзина — весь каталог
	views, err = svc.CartPreview(ctx, nil)
	if err != nil {
		t.Fatalf("preview all: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d dishes, want 2", len(views))
	}
}
