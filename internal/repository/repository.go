package repository

import (
	"context"
	"errors"
	"strings"

	"domeda/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// DishFilter параметры фильтрации каталога
type DishFilter struct {
	IDs       []int64
	District  string
	CookID    int64
	Search    string
	Delivery  []domain.DeliveryMode
	Tags      []string
	MaxPrice  int64
	MinRating float64
}

// OrderFilter параметры выборки заказов
type OrderFilter struct {
	OrderID       string
	CookID        int64
	Status        domain.OrderStatus
	CustomerPhone string
	CustomerName  string
}

// DishRepository интерфейс каталога блюд
type DishRepository interface {
	Create(ctx context.Context, d *domain.Dish) error
	GetByID(ctx context.Context, id int64) (*domain.Dish, error)
	Update(ctx context.Context, d *domain.Dish) error
	List(ctx context.Context, f DishFilter) ([]domain.Dish, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	List(ctx context.Context, f OrderFilter) ([]domain.Order, error)
}

// PaymentRepository интерфейс журнала оплат
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	List(ctx context.Context) ([]domain.Payment, error)
}

// TxManager абстракция транзакции. Для in-memory — глобальная блокировка записи.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// helper: только цифры, для сопоставления телефонов
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
