package domain

// OrderStatus статус заказа
type OrderStatus string

const (
	StatusNew        OrderStatus = "new"
	StatusPaid       OrderStatus = "paid"
	StatusAccepted   OrderStatus = "accepted"
	StatusCooking    OrderStatus = "cooking"
	StatusReady      OrderStatus = "ready"
	StatusDelivering OrderStatus = "delivering"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

var statusLabels = map[OrderStatus]string{
	StatusNew:        "Новый",
	StatusPaid:       "Оплачен",
	StatusAccepted:   "Принят",
	StatusCooking:    "Готовится",
	StatusReady:      "Готов к выдаче",
	StatusDelivering: "В пути",
	StatusCompleted:  "Завершен",
	StatusCancelled:  "Отменен",
}

// statusNext следующий шаг линейной цепочки; терминальные статусы отсутствуют
var statusNext = map[OrderStatus]OrderStatus{
	StatusNew:        StatusPaid,
	StatusPaid:       StatusAccepted,
	StatusAccepted:   StatusCooking,
	StatusCooking:    StatusReady,
	StatusReady:      StatusDelivering,
	StatusDelivering: StatusCompleted,
}

// ParseStatus распознаёт имя статуса
func ParseStatus(s string) (OrderStatus, bool) {
	if _, ok := statusLabels[OrderStatus(s)]; ok {
		return OrderStatus(s), true
	}
	return "", false
}

// Label русская подпись статуса для клиента
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Terminal завершённые статусы не имеют исходящих переходов
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// NextStatuses допустимые переходы из текущего статуса: один шаг вперёд
// по цепочке плюс отмена. Для самовывоза из "ready" заказ завершается
// сразу, без этапа доставки.
func NextStatuses(s OrderStatus, mode DeliveryMode) []OrderStatus {
	if s.Terminal() {
		return []OrderStatus{}
	}
	next, ok := statusNext[s]
	if !ok {
		return []OrderStatus{}
	}
	if s == StatusReady && mode == DeliveryPickup {
		next = StatusCompleted
	}
	return []OrderStatus{next, StatusCancelled}
}

// CanTransition табличная проверка перехода
func CanTransition(from, to OrderStatus, mode DeliveryMode) bool {
	for _, allowed := range NextStatuses(from, mode) {
		if allowed == to {
			return true
		}
	}
	return false
}
