// Package calculator computes invoice totals under the Quebec tax regime.
//
// The package is pure: no state, no I/O, no failure modes. Non-finite
// inputs are the caller's responsibility. No rounding is applied here;
// amounts keep full floating precision and are rounded to two decimals
// only at presentation time, so stored totals can be re-derived exactly.
package calculator

// Tax rates applied sequentially to the subtotal (non-compounding).
const (
	// TPSRate is the federal sales tax rate (5%).
	TPSRate = 0.05

	// TVQRate is the Quebec sales tax rate (9.975%).
	TVQRate = 0.09975
)

// LineItem is the slice of an invoice item the calculator needs.
type LineItem struct {
	Quantity  float64
	UnitPrice float64
}

// Totals is the result of a totals computation.
type Totals struct {
	// SubTotal is the pre-tax sum of quantity x unit price over all items.
	SubTotal float64

	// TPS is SubTotal x TPSRate.
	TPS float64

	// TVQ is SubTotal x TVQRate.
	TVQ float64

	// Total is SubTotal + TPS + TVQ.
	Total float64
}

// ComputeTotals derives subtotal, both taxes and the grand total from the
// given line items. An empty item list yields all zeros. Line totals are
// not rounded individually.
func ComputeTotals(items []LineItem) Totals {
	var subTotal float64
	for _, item := range items {
		subTotal += item.Quantity * item.UnitPrice
	}

	tps := subTotal * TPSRate
	tvq := subTotal * TVQRate

	return Totals{
		SubTotal: subTotal,
		TPS:      tps,
		TVQ:      tvq,
		Total:    subTotal + tps + tvq,
	}
}
