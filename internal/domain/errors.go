package domain

import "errors"

// ErrorKind категория ошибки; транспортный слой выбирает по ней HTTP-статус
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindConflict
	KindState
	KindNotFound
	KindInternal
)

// Error ошибка с машинным кодом, который отдаётся клиенту как есть
type Error struct {
	Code string
	Kind ErrorKind
}

func (e *Error) Error() string { return e.Code }

var (
	ErrItemsRequired   = &Error{Code: "items_required", Kind: KindValidation}
	ErrItemsInvalid    = &Error{Code: "items_invalid", Kind: KindValidation}
	ErrAddressRequired = &Error{Code: "address_required", Kind: KindValidation}

	ErrDeliveryModeInvalid      = &Error{Code: "delivery_mode_invalid", Kind: KindValidation}
	ErrDeliveryModeNotAvailable = &Error{Code: "delivery_mode_not_available", Kind: KindConflict}

	ErrPaymentRequired           = &Error{Code: "payment_required", Kind: KindValidation}
	ErrPaymentMethodNotSupported = &Error{Code: "payment_method_not_supported", Kind: KindValidation}
	ErrCardNumberInvalid         = &Error{Code: "card_number_invalid", Kind: KindValidation}
	ErrCardExpiryInvalid         = &Error{Code: "card_expiry_invalid", Kind: KindValidation}
	ErrCardExpired               = &Error{Code: "card_expired", Kind: KindValidation}
	ErrCardCVCInvalid            = &Error{Code: "card_cvc_invalid", Kind: KindValidation}
	ErrCardHolderInvalid         = &Error{Code: "card_holder_invalid", Kind: KindValidation}

	ErrDishNotFound       = &Error{Code: "dish_not_found", Kind: KindNotFound}
	ErrDishUnavailable    = &Error{Code: "dish_unavailable", Kind: KindConflict}
	ErrDishStockNotEnough = &Error{Code: "dish_stock_not_enough", Kind: KindConflict}

	ErrOrderNotFound           = &Error{Code: "order_not_found", Kind: KindNotFound}
	ErrStatusInvalid           = &Error{Code: "status_invalid", Kind: KindState}
	ErrStatusTransitionInvalid = &Error{Code: "status_transition_invalid", Kind: KindState}
)

// KindOf возвращает категорию ошибки; неизвестные считаются внутренними
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
