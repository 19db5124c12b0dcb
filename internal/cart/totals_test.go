package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestComputeTotalsEmptyCartStillPaysShipping(t *testing.T) {
	totals := ComputeTotals(nil)
	if !totals.Subtotal.IsZero() {
		t.Fatalf("expected zero subtotal, got %s", totals.Subtotal)
	}
	if !totals.Shipping.Equal(dec("99")) {
		t.Fatalf("expected standard shipping, got %s", totals.Shipping)
	}
	if !totals.Total.Equal(dec("99")) {
		t.Fatalf("expected total 99, got %s", totals.Total)
	}
	if totals.ItemCount != 0 {
		t.Fatalf("expected zero items, got %d", totals.ItemCount)
	}
}

func TestComputeTotalsBelowThreshold(t *testing.T) {
	lines := []Line{{ID: 1, ProductID: 1, Size: "M", Quantity: 1, UnitPrice: dec("500")}}
	totals := ComputeTotals(lines)
	if !totals.Subtotal.Equal(dec("500")) {
		t.Fatalf("expected subtotal 500, got %s", totals.Subtotal)
	}
	if !totals.Shipping.Equal(dec("99")) {
		t.Fatalf("expected shipping 99, got %s", totals.Shipping)
	}
	if !totals.Total.Equal(dec("599")) {
		t.Fatalf("expected total 599, got %s", totals.Total)
	}
}

func TestComputeTotalsThresholdIsStrict(t *testing.T) {
	exactly := ComputeTotals([]Line{{Quantity: 1, UnitPrice: dec("1000")}})
	if !exactly.Shipping.Equal(dec("99")) {
		t.Fatalf("subtotal of exactly 1000 must still pay shipping, got %s", exactly.Shipping)
	}

	over := ComputeTotals([]Line{{Quantity: 1, UnitPrice: dec("1000.01")}})
	if !over.Shipping.IsZero() {
		t.Fatalf("subtotal above 1000 must ship free, got %s", over.Shipping)
	}
	if !over.Total.Equal(dec("1000.01")) {
		t.Fatalf("expected total 1000.01, got %s", over.Total)
	}
}

func TestComputeTotalsSumsQuantities(t *testing.T) {
	lines := []Line{
		{Quantity: 2, UnitPrice: dec("199.50")},
		{Quantity: 3, UnitPrice: dec("49.99")},
	}
	totals := ComputeTotals(lines)
	if !totals.Subtotal.Equal(dec("548.97")) {
		t.Fatalf("expected subtotal 548.97, got %s", totals.Subtotal)
	}
	if totals.ItemCount != 5 {
		t.Fatalf("expected 5 items, got %d", totals.ItemCount)
	}
}
