package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"domeda/internal/domain"
	"domeda/internal/repository"
)

// Сортировки каталога
const (
	SortRating    = "rating"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// CatalogService читающая проекция каталога: витрина и сверка корзины.
// Ничего не мутирует; авторитетные цены и остатки всё равно
// перепроверяются оркестратором чекаута.
type CatalogService struct {
	dishes repository.DishRepository
	log    *slog.Logger
	now    func() time.Time
}

func NewCatalogService(dishes repository.DishRepository, log *slog.Logger) *CatalogService {
	return &CatalogService{dishes: dishes, log: log, now: time.Now}
}

// ListDishes каталог с фильтрами и сортировкой, обогащённый доступностью
func (s *CatalogService) ListDishes(ctx context.Context, f repository.DishFilter, sortKey string, availableOnly bool) ([]domain.DishView, error) {
	dishes, err := s.dishes.List(ctx, f)
	if err != nil {
		return nil, err
	}
	now := s.now()
	views := make([]domain.DishView, 0, len(dishes))
	for _, d := range dishes {
		v := domain.NewDishView(d, now)
		if availableOnly && !v.IsAvailable {
			continue
		}
		views = append(views, v)
	}
	switch sortKey {
	case SortPriceAsc:
		sort.Slice(views, func(i, j int) bool { return views[i].Price < views[j].Price })
	case SortPriceDesc:
		sort.Slice(views, func(i, j int) bool { return views[i].Price > views[j].Price })
	default:
		sort.Slice(views, func(i, j int) bool { return views[i].Rating > views[j].Rating })
	}
	return views, nil
}

// GetDish одно блюдо с доступностью
func (s *CatalogService) GetDish(ctx context.Context, id int64) (*domain.DishView, error) {
	if id <= 0 {
		return nil, domain.ErrDishNotFound
	}
	d, err := s.dishes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrDishNotFound
		}
		return nil, err
	}
	v := domain.NewDishView(*d, s.now())
	return &v, nil
}

// CartPreview актуальные снимки блюд по ID из корзины клиента.
// Клиентская корзина — лишь подсказка: цены и остатки берутся из каталога,
// неизвестные ID молча пропускаются.
func (s *CatalogService) CartPreview(ctx context.Context, ids []int64) ([]domain.DishView, error) {
	f := repository.DishFilter{IDs: ids}
	dishes, err := s.dishes.List(ctx, f)
	if err != nil {
		return nil, err
	}
	now := s.now()
	views := make([]domain.DishView, 0, len(dishes))
	for _, d := range dishes {
		views = append(views, domain.NewDishView(d, now))
	}
	return views, nil
}
