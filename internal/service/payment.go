package service

import (
	"fmt"
	"strings"
	"time"

	"domeda/internal/domain"
)

// CardPayment платёжные поля чекаута в сыром виде
type CardPayment struct {
	Method     string `json:"method"`
	Holder     string `json:"holder"`
	CardNumber string `json:"card_number"`
	ExpMonth   int    `json:"exp_month"`
	ExpYear    int    `json:"exp_year"`
	CVC        string `json:"cvc"`
}

// CardCharge результат успешной проверки: только маскированные данные
type CardCharge struct {
	Method     string
	CardBrand  string
	CardMasked string
	CardLast4  string
	Holder     string
	Amount     int64
	Currency   string
}

// PaymentValidator замена на реальный платёжный шлюз не должна трогать
// логику заказов: оркестратор знает только этот интерфейс.
type PaymentValidator interface {
	Validate(payment *CardPayment, amount int64, now time.Time) (*CardCharge, error)
}

// CardValidator структурная проверка карточных полей, без внешнего шлюза.
// Успешная проверка считается подтверждением оплаты.
type CardValidator struct{}

func NewCardValidator() *CardValidator { return &CardValidator{} }

var _ PaymentValidator = (*CardValidator)(nil)

func (v *CardValidator) Validate(payment *CardPayment, amount int64, now time.Time) (*CardCharge, error) {
	if payment == nil {
		return nil, domain.ErrPaymentRequired
	}
	if strings.ToLower(strings.TrimSpace(payment.Method)) != "card" {
		return nil, domain.ErrPaymentMethodNotSupported
	}

	number := digitsOnly(payment.CardNumber)
	cvc := digitsOnly(payment.CVC)
	holder := strings.TrimSpace(payment.Holder)

	if len(number) < 13 || len(number) > 19 {
		return nil, domain.ErrCardNumberInvalid
	}
	if !validLuhn(number) {
		return nil, domain.ErrCardNumberInvalid
	}
	if payment.ExpMonth < 1 || payment.ExpMonth > 12 {
		return nil, domain.ErrCardExpiryInvalid
	}
	if payment.ExpYear < 2000 || payment.ExpYear > 2100 {
		return nil, domain.ErrCardExpiryInvalid
	}
	if len(cvc) < 3 || len(cvc) > 4 {
		return nil, domain.ErrCardCVCInvalid
	}
	if len(holder) < 2 {
		return nil, domain.ErrCardHolderInvalid
	}
	if payment.ExpYear < now.Year() ||
		(payment.ExpYear == now.Year() && payment.ExpMonth < int(now.Month())) {
		return nil, domain.ErrCardExpired
	}

	return &CardCharge{
		Method:     "card",
		CardBrand:  cardBrand(number),
		CardMasked: maskCardNumber(number),
		CardLast4:  number[len(number)-4:],
		Holder:     holder,
		Amount:     amount,
		Currency:   "RUB",
	}, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// validLuhn контрольная сумма номера карты
func validLuhn(number string) bool {
	if number == "" {
		return false
	}
	checksum := 0
	parity := len(number) % 2
	for i, r := range number {
		digit := int(r - '0')
		if i%2 == parity {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		checksum += digit
	}
	return checksum%10 == 0
}

func cardBrand(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return "VISA"
	case len(number) >= 2 && number[0] == '5' && number[1] >= '1' && number[1] <= '5':
		return "MASTERCARD"
	case strings.HasPrefix(number, "34"), strings.HasPrefix(number, "37"):
		return "AMEX"
	case strings.HasPrefix(number, "2200"):
		return "MIR"
	default:
		return "CARD"
	}
}

func maskCardNumber(number string) string {
	if len(number) < 8 {
		return ""
	}
	return fmt.Sprintf("%s **** **** %s", number[:4], number[len(number)-4:])
}
