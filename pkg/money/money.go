// Package money does order arithmetic on decimals and rounds half away from zero
// to cents, so 1.275 becomes 1.28.
package money

import "github.com/shopspring/decimal"

// ServiceFeeRate is the marketplace fee charged on every order subtotal.
var ServiceFeeRate = decimal.RequireFromString("0.05")

// Totals is the computed money breakdown of an order.
type Totals struct {
	Subtotal   float64
	ServiceFee float64
	Total      float64
}

// LineTotal returns round(price * quantity, 2).
func LineTotal(price float64, quantity int) float64 {
	return decimal.NewFromFloat(price).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).
		InexactFloat64()
}

// ComputeTotals sums already-rounded line totals and applies the service fee.
func ComputeTotals(lineTotals []float64) Totals {
	subtotal := decimal.Zero
	for _, line := range lineTotals {
		subtotal = subtotal.Add(decimal.NewFromFloat(line))
	}
	subtotal = subtotal.Round(2)
	fee := subtotal.Mul(ServiceFeeRate).Round(2)
	total := subtotal.Add(fee).Round(2)
	return Totals{
		Subtotal:   subtotal.InexactFloat64(),
		ServiceFee: fee.InexactFloat64(),
		Total:      total.InexactFloat64(),
	}
}
