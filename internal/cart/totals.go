package cart

import "github.com/shopspring/decimal"

var (
	freeShippingThreshold = decimal.NewFromInt(1000)
	standardShippingFee   = decimal.NewFromInt(99)
)

// Totals is the derived money view of a cart. It is recomputed from the
// lines on every read and never stored.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// ComputeTotals sums the lines at their captured unit prices. Shipping is
// waived once the subtotal strictly exceeds the free-shipping threshold;
// an empty cart still carries the standard fee.
func ComputeTotals(lines []Line) Totals {
	subtotal := decimal.Zero
	count := 0
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		count += line.Quantity
	}

	shipping := standardShippingFee
	if subtotal.GreaterThan(freeShippingThreshold) {
		shipping = decimal.Zero
	}

	return Totals{
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal.Add(shipping),
		ItemCount: count,
	}
}
