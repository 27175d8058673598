package domain

import "testing"

func TestNextStatuses_LinearChain(t *testing.T) {
	got := NextStatuses(StatusNew, DeliveryCourier)
	if len(got) != 2 || got[0] != StatusPaid || got[1] != StatusCancelled {
		t.Fatalf("next(new) = %v, want [paid cancelled]", got)
	}

	got = NextStatuses(StatusCooking, DeliveryCourier)
	if len(got) != 2 || got[0] != StatusReady || got[1] != StatusCancelled {
		t.Fatalf("next(cooking) = %v, want [ready cancelled]", got)
	}
}

func TestNextStatuses_Terminal(t *testing.T) {
	if got := NextStatuses(StatusCompleted, DeliveryCourier); len(got) != 0 {
		t.Fatalf("next(completed) = %v, want empty", got)
	}
	if got := NextStatuses(StatusCancelled, DeliveryPickup); len(got) != 0 {
		t.Fatalf("next(cancelled) = %v, want empty", got)
	}
}

func TestNextStatuses_PickupSkipsDelivering(t *testing.T) {
	got := NextStatuses(StatusReady, DeliveryPickup)
	if len(got) != 2 || got[0] != StatusCompleted || got[1] != StatusCancelled {
		t.Fatalf("next(ready, pickup) = %v, want [completed cancelled]", got)
	}

	got = NextStatuses(StatusReady, DeliveryCourier)
	if len(got) != 2 || got[0] != StatusDelivering {
		t.Fatalf("next(ready, courier) = %v, want delivering first", got)
	}
}

func TestCanTransition(t *testing.T) {
	if CanTransition(StatusNew, StatusReady, DeliveryCourier) {
		t.Fatalf("new -> ready must be rejected")
	}
	if !CanTransition(StatusNew, StatusCancelled, DeliveryCourier) {
		t.Fatalf("cancel must be reachable from new")
	}
	if !CanTransition(StatusDelivering, StatusCompleted, DeliveryCourier) {
		t.Fatalf("delivering -> completed must be allowed")
	}
	if CanTransition(StatusCompleted, StatusCancelled, DeliveryCourier) {
		t.Fatalf("completed is terminal")
	}
	// тот же статус не является переходом
	if CanTransition(StatusCooking, StatusCooking, DeliveryCourier) {
		t.Fatalf("self transition must be rejected")
	}
}

func TestParseStatus(t *testing.T) {
	if _, ok := ParseStatus("cooking"); !ok {
		t.Fatalf("cooking must parse")
	}
	if _, ok := ParseStatus("shipped"); ok {
		t.Fatalf("unknown status must not parse")
	}
}

func TestStatusLabel(t *testing.T) {
	if StatusReady.Label() != "Готов к выдаче" {
		t.Fatalf("unexpected label: %v", StatusReady.Label())
	}
}
