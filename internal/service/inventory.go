package service

import (
	"context"
	"errors"
	"time"

	"domeda/internal/domain"
	"domeda/internal/repository"
)

// InventoryLedger единственный владелец счётчика остатков порций.
// Атомарность проверки и списания обеспечивает вызывающая сторона,
// выполняя Reserve/Release внутри TxManager.WithTransaction.
type InventoryLedger struct {
	dishes repository.DishRepository
	now    func() time.Time
}

func NewInventoryLedger(dishes repository.DishRepository) *InventoryLedger {
	return &InventoryLedger{dishes: dishes, now: time.Now}
}

// Reserve списывает qty порций; при нехватке остаток не меняется
func (l *InventoryLedger) Reserve(ctx context.Context, dishID, qty int64) (*domain.Dish, error) {
	d, err := l.dishes.GetByID(ctx, dishID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrDishNotFound
		}
		return nil, err
	}
	if !domain.Orderable(*d, l.now()) {
		return nil, domain.ErrDishUnavailable
	}
	// нулевой остаток — тоже нехватка, а не недоступность
	if qty > d.PortionsAvailable {
		return nil, domain.ErrDishStockNotEnough
	}
	d.PortionsAvailable -= qty
	if err := l.dishes.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Release возвращает qty порций, не превышая номинальный потолок блюда.
// Вызывается не более одного раза на зарезервированную позицию.
func (l *InventoryLedger) Release(ctx context.Context, dishID, qty int64) error {
	d, err := l.dishes.GetByID(ctx, dishID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrDishNotFound
		}
		return err
	}
	d.PortionsAvailable += qty
	if d.PortionsTotal > 0 && d.PortionsAvailable > d.PortionsTotal {
		d.PortionsAvailable = d.PortionsTotal
	}
	return l.dishes.Update(ctx, d)
}
