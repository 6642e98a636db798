package enums

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to OrderStatus
	}{
		{OrderStatusCreated, OrderStatusPaid},
		{OrderStatusCreated, OrderStatusCancelled},
		{OrderStatusPaid, OrderStatusShipped},
		{OrderStatusPaid, OrderStatusCancelled},
		{OrderStatusShipped, OrderStatusDelivered},
		{OrderStatusShipped, OrderStatusCancelled},
	}
	for _, tt := range allowed {
		if !tt.from.CanTransitionTo(tt.to) {
			t.Fatalf("expected %s -> %s to be allowed", tt.from, tt.to)
		}
	}

	denied := []struct {
		from, to OrderStatus
	}{
		{OrderStatusCreated, OrderStatusShipped},
		{OrderStatusCreated, OrderStatusDelivered},
		{OrderStatusPaid, OrderStatusCreated},
		{OrderStatusPaid, OrderStatusDelivered},
		{OrderStatusDelivered, OrderStatusCancelled},
		{OrderStatusDelivered, OrderStatusShipped},
		{OrderStatusCancelled, OrderStatusPaid},
		{OrderStatusCancelled, OrderStatusCreated},
	}
	for _, tt := range denied {
		if tt.from.CanTransitionTo(tt.to) {
			t.Fatalf("expected %s -> %s to be denied", tt.from, tt.to)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if OrderStatusCreated.IsTerminal() || OrderStatusPaid.IsTerminal() || OrderStatusShipped.IsTerminal() {
		t.Fatal("only delivered and cancelled are terminal")
	}
	if !OrderStatusDelivered.IsTerminal() || !OrderStatusCancelled.IsTerminal() {
		t.Fatal("delivered and cancelled should be terminal")
	}
	if OrderStatus("bogus").IsTerminal() {
		t.Fatal("unknown statuses are not terminal")
	}
}

func TestParseOrderStatus(t *testing.T) {
	if _, err := ParseOrderStatus("paid"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseOrderStatus("PAID"); err == nil {
		t.Fatal("parse should be case sensitive")
	}
	if _, err := ParseOrderStatus("unknown"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestPaymentMethodPrepaid(t *testing.T) {
	if !PaymentMethodCard.IsPrepaid() {
		t.Fatal("card payments are prepaid")
	}
	if PaymentMethodCOD.IsPrepaid() {
		t.Fatal("cod payments are not prepaid")
	}
}

func TestParseProductSortDefaults(t *testing.T) {
	sort, err := ParseProductSort("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sort != ProductSortNew {
		t.Fatalf("expected default sort new, got %s", sort)
	}
	if _, err := ParseProductSort("price_desc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseProductSort("weird"); err == nil {
		t.Fatal("expected error for unknown sort")
	}
}
