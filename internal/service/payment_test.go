package service

import (
	"errors"
	"testing"
	"time"

	"domeda/internal/domain"
)

func testNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func validTestCard() *CardPayment {
	return &CardPayment{
		Method:     "card",
		Holder:     "IVAN PETROV",
		CardNumber: "4242 4242 4242 4242",
		ExpMonth:   12,
		ExpYear:    2030,
		CVC:        "123",
	}
}

func TestCardValidator_Accepts(t *testing.T) {
	v := NewCardValidator()
	charge, err := v.Validate(validTestCard(), 780, testNow())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if charge.CardBrand != "VISA" {
		t.Fatalf("brand %v", charge.CardBrand)
	}
	if charge.CardMasked != "4242 **** **** 4242" {
		t.Fatalf("masked %v", charge.CardMasked)
	}
	if charge.CardLast4 != "4242" {
		t.Fatalf("last4 %v", charge.CardLast4)
	}
	if charge.Amount != 780 || charge.Currency != "RUB" {
		t.Fatalf("amount %v %v", charge.Amount, charge.Currency)
	}
}

func TestCardValidator_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *CardPayment)
		want   *domain.Error
	}{
		{"wrong method", func(c *CardPayment) { c.Method = "cash" }, domain.ErrPaymentMethodNotSupported},
		{"short number", func(c *CardPayment) { c.CardNumber = "4242" }, domain.ErrCardNumberInvalid},
		{"luhn fail", func(c *CardPayment) { c.CardNumber = "4242424242424241" }, domain.ErrCardNumberInvalid},
		{"month out of range", func(c *CardPayment) { c.ExpMonth = 13 }, domain.ErrCardExpiryInvalid},
		{"year out of range", func(c *CardPayment) { c.ExpYear = 1999 }, domain.ErrCardExpiryInvalid},
		{"cvc short", func(c *CardPayment) { c.CVC = "12" }, domain.ErrCardCVCInvalid},
		{"holder short", func(c *CardPayment) { c.Holder = "A" }, domain.ErrCardHolderInvalid},
		{"expired year", func(c *CardPayment) { c.ExpYear = 2020 }, domain.ErrCardExpired},
		{"expired month", func(c *CardPayment) { c.ExpYear = 2025; c.ExpMonth = 5 }, domain.ErrCardExpired},
	}
	v := NewCardValidator()
	for _, tc := range cases {
		card := validTestCard()
		tc.mutate(card)
		_, err := v.Validate(card, 100, testNow())
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestCardValidator_PaymentRequired(t *testing.T) {
	v := NewCardValidator()
	if _, err := v.Validate(nil, 100, testNow()); !errors.Is(err, domain.ErrPaymentRequired) {
		t.Fatalf("got %v, want payment_required", err)
	}
}

func TestCardBrand(t *testing.T) {
	cases := map[string]string{
		"4242424242424242": "VISA",
		"5105105105105100": "MASTERCARD",
		"378282246310005":  "AMEX",
		"2200123456789010": "MIR",
		"6011000990139424": "CARD",
	}
	for number, want := range cases {
		if got := cardBrand(number); got != want {
			t.Fatalf("%s: brand %v, want %v", number, got, want)
		}
	}
}
