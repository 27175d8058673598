package domain

import (
	"sort"
	"time"
)

// DeliveryMode способ получения заказа
type DeliveryMode string

const (
	DeliveryPickup  DeliveryMode = "pickup"
	DeliveryCook    DeliveryMode = "cook"
	DeliveryCourier DeliveryMode = "courier"
)

// ParseDeliveryMode принимает только три известных значения
func ParseDeliveryMode(s string) (DeliveryMode, bool) {
	switch DeliveryMode(s) {
	case DeliveryPickup, DeliveryCook, DeliveryCourier:
		return DeliveryMode(s), true
	}
	return "", false
}

// Dish позиция каталога; остатком порций владеет инвентарный регистр
type Dish struct {
	ID                int64          `json:"id"`
	CookID            int64          `json:"cook_id"`
	Title             string         `json:"title"`
	Cook              string         `json:"cook"`
	District          string         `json:"district"`
	Price             int64          `json:"price"`
	Rating            float64        `json:"rating"`
	Tags              []string       `json:"tags"`
	Delivery          []DeliveryMode `json:"delivery"`
	PortionsTotal     int64          `json:"portions_total"`
	PortionsAvailable int64          `json:"portions_available"`
	AvailableFrom     string         `json:"available_from,omitempty"`
	AvailableUntil    string         `json:"available_until,omitempty"`
	Disabled          bool           `json:"disabled,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}

// SupportsDelivery проверяет, входит ли способ в набор блюда
func (d Dish) SupportsDelivery(mode DeliveryMode) bool {
	for _, m := range d.Delivery {
		if m == mode {
			return true
		}
	}
	return false
}

// DishView блюдо с вычисленной доступностью для выдачи клиенту
type DishView struct {
	Dish
	IsAvailable       bool   `json:"is_available"`
	AvailabilityLabel string `json:"availability_label"`
}

// OrderItem позиция заказа; цена и название — снимок на момент оформления
type OrderItem struct {
	DishID    int64  `json:"dish_id"`
	DishTitle string `json:"dish_title"`
	CookID    int64  `json:"cook_id"`
	Cook      string `json:"cook"`
	Qty       int64  `json:"qty"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}

// StatusEvent запись в истории статусов; история только дописывается
type StatusEvent struct {
	Status      OrderStatus `json:"status"`
	StatusLabel string      `json:"status_label"`
	At          time.Time   `json:"at"`
	By          string      `json:"by"`
	Note        string      `json:"note,omitempty"`
}

// PaymentSummary краткая сводка оплаты внутри заказа
type PaymentSummary struct {
	Method     string `json:"method"`
	CardBrand  string `json:"card_brand"`
	CardMasked string `json:"card_masked"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
}

// Order сущность заказа
type Order struct {
	ID             string          `json:"id"`
	Items          []OrderItem     `json:"items"`
	TotalPrice     int64           `json:"total_price"`
	Districts      []string        `json:"districts"`
	City           string          `json:"city"`
	CustomerName   string          `json:"customer_name"`
	CustomerPhone  string          `json:"customer_phone"`
	Address        string          `json:"address"`
	Comment        string          `json:"comment"`
	DeliveryMode   DeliveryMode    `json:"delivery_mode"`
	Status         OrderStatus     `json:"status"`
	StatusHistory  []StatusEvent   `json:"status_history"`
	PaymentID      string          `json:"payment_id,omitempty"`
	PaymentStatus  string          `json:"payment_status,omitempty"`
	PaymentSummary *PaymentSummary `json:"payment_summary,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	CancelledAt    *time.Time      `json:"cancelled_at,omitempty"`
}

// OrderView заказ с производными полями для ответов API
type OrderView struct {
	Order
	StatusLabel  string        `json:"status_label"`
	NextStatuses []OrderStatus `json:"next_statuses"`
	ItemCount    int64         `json:"item_count"`
	CookIDs      []int64       `json:"cook_ids"`
}

// View вычисляет производные поля; сам заказ не меняется
func (o Order) View() OrderView {
	var count int64
	ids := make(map[int64]struct{})
	for _, it := range o.Items {
		count += it.Qty
		if it.CookID > 0 {
			ids[it.CookID] = struct{}{}
		}
	}
	cookIDs := make([]int64, 0, len(ids))
	for id := range ids {
		cookIDs = append(cookIDs, id)
	}
	sort.Slice(cookIDs, func(i, j int) bool { return cookIDs[i] < cookIDs[j] })

	return OrderView{
		Order:        o,
		StatusLabel:  o.Status.Label(),
		NextStatuses: NextStatuses(o.Status, o.DeliveryMode),
		ItemCount:    count,
		CookIDs:      cookIDs,
	}
}

// Payment запись об оплате; номер карты хранится только в маскированном виде
type Payment struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	Provider   string    `json:"provider"`
	Method     string    `json:"method"`
	CardBrand  string    `json:"card_brand"`
	CardMasked string    `json:"card_masked"`
	CardLast4  string    `json:"card_last4"`
	Holder     string    `json:"holder"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}

func (p Payment) Summary() *PaymentSummary {
	return &PaymentSummary{
		Method:     p.Method,
		CardBrand:  p.CardBrand,
		CardMasked: p.CardMasked,
		Amount:     p.Amount,
		Currency:   p.Currency,
	}
}
