package domain

import (
	"testing"
	"time"
)

func at(hhmm string) time.Time {
	tm, _ := time.Parse("15:04", hhmm)
	return time.Date(2025, 6, 1, tm.Hour(), tm.Minute(), 0, 0, time.UTC)
}

func TestAvailability_SoldOut(t *testing.T) {
	d := Dish{PortionsAvailable: 0}
	available, label := Availability(d, at("12:00"))
	if available || label != "Закончилось" {
		t.Fatalf("got %v %q", available, label)
	}
}

func TestAvailability_TimeWindow(t *testing.T) {
	d := Dish{PortionsAvailable: 5, AvailableFrom: "11:00", AvailableUntil: "20:00"}

	available, _ := Availability(d, at("12:30"))
	if !available {
		t.Fatalf("expected available inside window")
	}

	available, label := Availability(d, at("09:00"))
	if available || label != "Вне времени приема" {
		t.Fatalf("got %v %q", available, label)
	}

	available, _ = Availability(d, at("21:00"))
	if available {
		t.Fatalf("expected unavailable after window")
	}
}

func TestAvailability_Labels(t *testing.T) {
	d := Dish{PortionsAvailable: 3}
	_, label := Availability(d, at("12:00"))
	if label != "В наличии · 3 порц." {
		t.Fatalf("label %q", label)
	}

	d.AvailableUntil = "20:00"
	_, label = Availability(d, at("12:00"))
	if label != "В наличии · до 20:00 · 3 порц." {
		t.Fatalf("label %q", label)
	}
}

func TestAvailability_Disabled(t *testing.T) {
	d := Dish{PortionsAvailable: 4, Disabled: true}
	if available, _ := Availability(d, at("12:00")); available {
		t.Fatalf("disabled dish must be unavailable")
	}
}

func TestOrderView(t *testing.T) {
	o := Order{
		Status:       StatusPaid,
		DeliveryMode: DeliveryCourier,
		Items: []OrderItem{
			{DishID: 1, CookID: 2, Qty: 2},
			{DishID: 3, CookID: 1, Qty: 1},
		},
	}
	v := o.View()
	if v.ItemCount != 3 {
		t.Fatalf("item count %v", v.ItemCount)
	}
	if len(v.CookIDs) != 2 || v.CookIDs[0] != 1 || v.CookIDs[1] != 2 {
		t.Fatalf("cook ids %v", v.CookIDs)
	}
	if v.StatusLabel != "Оплачен" {
		t.Fatalf("status label %q", v.StatusLabel)
	}
	if len(v.NextStatuses) != 2 || v.NextStatuses[0] != StatusAccepted {
		t.Fatalf("next statuses %v", v.NextStatuses)
	}
}
