package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"domeda/internal/domain"
	"domeda/internal/repository"
)

// CheckoutItem строка клиентской корзины; не является доверенным вводом
type CheckoutItem struct {
	DishID int64 `json:"dish_id"`
	Qty    int64 `json:"qty"`
}

// CheckoutRequest корзина и платёжные поля, как их прислал клиент
type CheckoutRequest struct {
	Items         []CheckoutItem `json:"items"`
	CustomerName  string         `json:"customer_name"`
	CustomerPhone string         `json:"customer_phone"`
	Address       string         `json:"address"`
	Comment       string         `json:"comment"`
	City          string         `json:"city"`
	DeliveryMode  string         `json:"delivery_mode"`
	Payment       *CardPayment   `json:"payment"`
}

// OrderService оркестрация чекаута и машина статусов заказа.
// Все мутации выполняются внутри одной транзакции TxManager.
type OrderService struct {
	dishes   repository.DishRepository
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	ledger   *InventoryLedger
	cards    PaymentValidator
	tx       repository.TxManager
	log      *slog.Logger
	now      func() time.Time
}

func NewOrderService(
	dishes repository.DishRepository,
	orders repository.OrderRepository,
	payments repository.PaymentRepository,
	ledger *InventoryLedger,
	cards PaymentValidator,
	tx repository.TxManager,
	log *slog.Logger,
) *OrderService {
	return &OrderService{
		dishes:   dishes,
		orders:   orders,
		payments: payments,
		ledger:   ledger,
		cards:    cards,
		tx:       tx,
		log:      log,
		now:      time.Now,
	}
}

// checkoutLine проверенная строка корзины с разрешённым блюдом
type checkoutLine struct {
	dish *domain.Dish
	qty  int64
}

// Checkout превращает корзину в оплаченный заказ или завершается без следа.
// Порядок проверок: строки корзины → блюда → способ доставки → карта →
// резервирование остатков единым блоком → запись заказа и платежа.
func (s *OrderService) Checkout(ctx context.Context, req CheckoutRequest) (*domain.Order, *domain.Payment, error) {
	if len(req.Items) == 0 {
		return nil, nil, domain.ErrItemsRequired
	}
	for _, it := range req.Items {
		if it.DishID <= 0 || it.Qty <= 0 {
			return nil, nil, domain.ErrItemsInvalid
		}
	}

	var (
		order   *domain.Order
		payment *domain.Payment
	)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		now := s.now().UTC()

		lines := make([]checkoutLine, 0, len(req.Items))
		for _, it := range req.Items {
			d, err := s.dishes.GetByID(ctx, it.DishID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.ErrDishNotFound
				}
				return err
			}
			if !domain.Orderable(*d, now) {
				return domain.ErrDishUnavailable
			}
			lines = append(lines, checkoutLine{dish: d, qty: it.Qty})
		}

		modeRaw := strings.TrimSpace(req.DeliveryMode)
		if modeRaw == "" {
			modeRaw = string(domain.DeliveryPickup)
		}
		mode, ok := domain.ParseDeliveryMode(modeRaw)
		if !ok {
			return domain.ErrDeliveryModeInvalid
		}
		if mode != domain.DeliveryPickup && strings.TrimSpace(req.Address) == "" {
			return domain.ErrAddressRequired
		}
		for _, line := range lines {
			if !line.dish.SupportsDelivery(mode) {
				return domain.ErrDeliveryModeNotAvailable
			}
		}

		var total int64
		items := make([]domain.OrderItem, 0, len(lines))
		for _, line := range lines {
			subtotal := line.dish.Price * line.qty
			total += subtotal
			items = append(items, domain.OrderItem{
				DishID:    line.dish.ID,
				DishTitle: line.dish.Title,
				CookID:    line.dish.CookID,
				Cook:      line.dish.Cook,
				Qty:       line.qty,
				UnitPrice: line.dish.Price,
				Subtotal:  subtotal,
			})
		}

		// до этой точки ни одного побочного эффекта
		charge, err := s.cards.Validate(req.Payment, total, now)
		if err != nil {
			return err
		}

		// резервируем все строки как единое целое: при отказе возвращаем
		// уже списанное и выходим с ошибкой этой строки
		reserved := make([]checkoutLine, 0, len(lines))
		for _, line := range lines {
			if _, err := s.ledger.Reserve(ctx, line.dish.ID, line.qty); err != nil {
				for _, r := range reserved {
					if relErr := s.ledger.Release(ctx, r.dish.ID, r.qty); relErr != nil {
						s.log.Error("rollback release failed",
							"dish_id", r.dish.ID, "qty", r.qty, "error", relErr)
					}
				}
				return err
			}
			reserved = append(reserved, line)
		}

		districts := make(map[string]struct{})
		for _, line := range lines {
			if line.dish.District != "" {
				districts[line.dish.District] = struct{}{}
			}
		}
		districtList := make([]string, 0, len(districts))
		for d := range districts {
			districtList = append(districtList, d)
		}
		sort.Strings(districtList)

		customerName := strings.TrimSpace(req.CustomerName)
		if customerName == "" {
			customerName = "Гость"
		}
		city := strings.TrimSpace(req.City)
		if city == "" {
			city = "Москва"
		}

		o := domain.Order{
			Items:         items,
			TotalPrice:    total,
			Districts:     districtList,
			City:          city,
			CustomerName:  customerName,
			CustomerPhone: strings.TrimSpace(req.CustomerPhone),
			Address:       strings.TrimSpace(req.Address),
			Comment:       strings.TrimSpace(req.Comment),
			DeliveryMode:  mode,
			Status:        domain.StatusPaid,
			StatusHistory: []domain.StatusEvent{{
				Status:      domain.StatusPaid,
				StatusLabel: domain.StatusPaid.Label(),
				At:          now,
				By:          "payment",
				Note:        "Оплата подтверждена",
			}},
			CreatedAt: now,
		}
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}

		p := domain.Payment{
			OrderID:    o.ID,
			Status:     "captured",
			Provider:   "domeda_pay_mock",
			Method:     charge.Method,
			CardBrand:  charge.CardBrand,
			CardMasked: charge.CardMasked,
			CardLast4:  charge.CardLast4,
			Holder:     charge.Holder,
			Amount:     charge.Amount,
			Currency:   charge.Currency,
			CreatedAt:  now,
		}
		if err := s.payments.Create(ctx, &p); err != nil {
			return err
		}

		o.PaymentID = p.ID
		o.PaymentStatus = p.Status
		o.PaymentSummary = p.Summary()
		if err := s.orders.Update(ctx, &o); err != nil {
			return err
		}

		order = &o
		payment = &p
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	s.log.Info("order created",
		"order_id", order.ID, "total", order.TotalPrice, "items", len(order.Items))
	return order, payment, nil
}

// UpdateStatus применяет один переход машины статусов и дописывает историю.
// Отмена возвращает зарезервированные порции ровно один раз: повторная
// отмена невозможна, cancelled — терминальный статус.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, statusRaw, actor, note string) (*domain.Order, error) {
	target, ok := domain.ParseStatus(strings.ToLower(strings.TrimSpace(statusRaw)))
	if !ok {
		return nil, domain.ErrStatusInvalid
	}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		actor = "cook"
	}

	var updated *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}
		if !domain.CanTransition(o.Status, target, o.DeliveryMode) {
			return domain.ErrStatusTransitionInvalid
		}

		now := s.now().UTC()
		o.Status = target
		o.StatusHistory = append(o.StatusHistory, domain.StatusEvent{
			Status:      target,
			StatusLabel: target.Label(),
			At:          now,
			By:          actor,
			Note:        strings.TrimSpace(note),
		})
		switch target {
		case domain.StatusCompleted:
			o.CompletedAt = &now
		case domain.StatusCancelled:
			o.CancelledAt = &now
			for _, it := range o.Items {
				if err := s.ledger.Release(ctx, it.DishID, it.Qty); err != nil {
					return err
				}
			}
		}
		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("order status changed",
		"order_id", updated.ID, "status", string(updated.Status), "by", actor)
	return updated, nil
}

// GetOrder возвращает заказ по id
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

// ListOrders выборка заказов по фильтру, свежие первыми
func (s *OrderService) ListOrders(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error) {
	return s.orders.List(ctx, f)
}

// ListPayments журнал оплат, свежие первыми
func (s *OrderService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return s.payments.List(ctx)
}
