// Package pricing computes order totals in fixed-point decimal arithmetic.
// Rounding to two places happens only at the boundary, never mid-computation.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/pedidopronto/delivery-app/models"
)

// Line is one priced order line.
type Line struct {
	Price    decimal.Decimal
	Quantity int
}

// Discount describes a coupon discount to apply against the subtotal.
type Discount struct {
	Type  models.DiscountType
	Value decimal.Decimal
}

// Totals is the result of ComputeTotals.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// ComputeTotals sums the lines and applies the discount, clamped so the
// total can never go negative. Callers are responsible for ensuring
// quantity >= 1 and price >= 0; this function has no failure modes.
func ComputeTotals(lines []Line, discount *Discount) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	amount := decimal.Zero
	if discount != nil {
		if discount.Type == models.DiscountPercentage {
			amount = subtotal.Mul(discount.Value).Div(hundred)
		} else {
			amount = discount.Value
		}
		if amount.GreaterThan(subtotal) {
			amount = subtotal
		}
	}

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: amount,
		Total:          subtotal.Sub(amount),
	}
}

// LineFromFloat builds a Line from a stored float price.
func LineFromFloat(price float64, quantity int) Line {
	return Line{Price: decimal.NewFromFloat(price), Quantity: quantity}
}

// Round2 rounds a decimal to two places for persistence or display.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
