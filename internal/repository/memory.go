package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"domeda/internal/domain"
)

// MemoryStore объединённое in-memory хранилище и генераторы ID
type MemoryStore struct {
	mu           sync.RWMutex
	nextDishID   int64
	nextOrderSeq int64
	nextPaySeq   int64
	dishesByID   map[int64]domain.Dish
	ordersByID   map[string]domain.Order
	payments     []domain.Payment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextDishID:   1,
		nextOrderSeq: 1,
		nextPaySeq:   1,
		dishesByID:   make(map[int64]domain.Dish),
		ordersByID:   make(map[string]domain.Order),
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// Ensure interfaces
var _ DishRepository = (*MemoryStore)(nil)

// OrderRepository и PaymentRepository реализованы типами-обёртками

// DishRepository implementation
func (m *MemoryStore) Create(ctx context.Context, d *domain.Dish) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	d.ID = m.nextDishID
	m.nextDishID++
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	if d.PortionsTotal == 0 {
		d.PortionsTotal = d.PortionsAvailable
	}
	m.dishesByID[d.ID] = *d
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id int64) (*domain.Dish, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	d, ok := m.dishesByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := d
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, d *domain.Dish) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.dishesByID[d.ID]; !ok {
		return ErrNotFound
	}
	m.dishesByID[d.ID] = *d
	return nil
}

func (m *MemoryStore) List(ctx context.Context, f DishFilter) ([]domain.Dish, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	var ids map[int64]struct{}
	if len(f.IDs) > 0 {
		ids = make(map[int64]struct{}, len(f.IDs))
		for _, id := range f.IDs {
			ids[id] = struct{}{}
		}
	}
	out := make([]domain.Dish, 0)
	for _, d := range m.dishesByID {
		if ids != nil {
			if _, ok := ids[d.ID]; !ok {
				continue
			}
		}
		if f.District != "" && d.District != f.District {
			continue
		}
		if f.CookID > 0 && d.CookID != f.CookID {
			continue
		}
		if f.Search != "" &&
			!containsIgnoreCase(d.Title, f.Search) &&
			!containsIgnoreCase(d.Cook, f.Search) &&
			!containsIgnoreCase(d.District, f.Search) {
			continue
		}
		if len(f.Delivery) > 0 && !intersectsDelivery(d.Delivery, f.Delivery) {
			continue
		}
		if len(f.Tags) > 0 && !intersectsTags(d.Tags, f.Tags) {
			continue
		}
		if f.MaxPrice > 0 && d.Price > f.MaxPrice {
			continue
		}
		if f.MinRating > 0 && d.Rating < f.MinRating {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func intersectsDelivery(have, want []domain.DeliveryMode) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func intersectsTags(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// OrderRepository implementation on wrapper type
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	o.ID = fmt.Sprintf("ORD-%s-%04d", o.CreatedAt.Format("20060102"), mo.store.nextOrderSeq)
	mo.store.nextOrderSeq++
	mo.store.ordersByID[o.ID] = *o
	return nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o
	return &cp, nil
}

func (mo *MemoryOrders) Update(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	if _, ok := mo.store.ordersByID[o.ID]; !ok {
		return ErrNotFound
	}
	mo.store.ordersByID[o.ID] = *o
	return nil
}

func (mo *MemoryOrders) List(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	out := make([]domain.Order, 0)
	for _, o := range mo.store.ordersByID {
		if f.OrderID != "" && o.ID != f.OrderID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.CookID > 0 && !orderHasCook(o, f.CookID) {
			continue
		}
		if f.CustomerPhone != "" {
			digits := digitsOnly(f.CustomerPhone)
			if digits == "" || !containsIgnoreCase(digitsOnly(o.CustomerPhone), digits) {
				continue
			}
		}
		if f.CustomerName != "" && !containsIgnoreCase(o.CustomerName, f.CustomerName) {
			continue
		}
		out = append(out, o)
	}
	// свежие заказы первыми
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func orderHasCook(o domain.Order, cookID int64) bool {
	for _, it := range o.Items {
		if it.CookID == cookID {
			return true
		}
	}
	return false
}

// PaymentRepository implementation on wrapper type
type MemoryPayments struct{ store *MemoryStore }

func NewMemoryPayments(store *MemoryStore) *MemoryPayments { return &MemoryPayments{store: store} }

var _ PaymentRepository = (*MemoryPayments)(nil)

func (mp *MemoryPayments) Create(ctx context.Context, p *domain.Payment) error {
	mp.store.wlock(ctx)
	defer mp.store.wunlock(ctx)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.ID = fmt.Sprintf("PAY-%s-%04d", p.CreatedAt.Format("20060102"), mp.store.nextPaySeq)
	mp.store.nextPaySeq++
	mp.store.payments = append(mp.store.payments, *p)
	return nil
}

func (mp *MemoryPayments) List(ctx context.Context) ([]domain.Payment, error) {
	mp.store.rlock(ctx)
	defer mp.store.runlock(ctx)
	out := make([]domain.Payment, len(mp.store.payments))
	copy(out, mp.store.payments)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Для in-memory используем блокировку записи и помечаем контекст, чтобы репозитории пропускали внутренние локи
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
