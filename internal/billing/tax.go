package billing

import (
	"github.com/shopspring/decimal"

	"github.com/kounterpro/billing/internal/model"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// TaxBreakdown aggregates the invoice totals. All values carry full
// precision; rounding to two decimals happens only when rendering.
type TaxBreakdown struct {
	SubtotalExclTax   decimal.Decimal
	TaxAmount         decimal.Decimal
	GrandTotalInclTax decimal.Decimal
	TotalUnits        decimal.Decimal
}

// RateExclTax converts a tax-inclusive unit rate into its tax-exclusive base:
// rateIncl / (1 + taxRate/100).
func RateExclTax(rateInclTax, taxRatePercent decimal.Decimal) decimal.Decimal {
	multiplier := one.Add(taxRatePercent.Div(hundred))
	return rateInclTax.Div(multiplier)
}

// ComputeTotals fills the derived fields of every line item and returns the
// aggregated totals. TaxAmount is derived as grandTotal - subtotal rather
// than re-summed independently, so grandTotal == subtotal + taxAmount holds
// exactly.
func ComputeTotals(items []model.InvoiceLineItem, taxRatePercent decimal.Decimal) TaxBreakdown {
	var subtotal, grandTotal, totalUnits decimal.Decimal

	for i := range items {
		item := &items[i]
		item.RateExclTax = RateExclTax(item.RateInclTax, taxRatePercent)
		item.AmountExclTax = item.Quantity.Mul(item.RateExclTax)

		subtotal = subtotal.Add(item.AmountExclTax)
		grandTotal = grandTotal.Add(item.Quantity.Mul(item.RateInclTax))
		totalUnits = totalUnits.Add(item.Quantity)
	}

	return TaxBreakdown{
		SubtotalExclTax:   subtotal,
		TaxAmount:         grandTotal.Sub(subtotal),
		GrandTotalInclTax: grandTotal,
		TotalUnits:        totalUnits,
	}
}
