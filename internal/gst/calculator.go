// Package gst computes GST totals for invoice line items.
package gst

import (
	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
)

var (
	hundred    = decimal.NewFromInt(100)
	twoHundred = decimal.NewFromInt(200)
)

// Round2 rounds to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineAmount is the line subtotal the form layer stores when quantity or rate changes.
func LineAmount(quantity, rate decimal.Decimal) decimal.Decimal {
	return Round2(quantity.Mul(rate))
}

// ComputeTotals returns the tax breakdown for items at the given rate and regime.
//
// Each item's Amount is taken as its taxable base. Negative amounts and a
// negative rate count as zero. Tax is rounded once on the aggregate taxable
// value, never per line, and under the intrastate regime SGST is always the
// same value as CGST.
func ComputeTotals(items []domain.LineItem, rate decimal.Decimal, regime domain.TaxRegime) domain.InvoiceTotals {
	subtotal := decimal.Zero
	taxable := decimal.Zero
	for i := range items {
		amount := nonNegative(items[i].Amount)
		subtotal = subtotal.Add(amount)
		if !items[i].ExcludeFromTax {
			taxable = taxable.Add(amount)
		}
	}
	subtotal = Round2(subtotal)
	taxable = Round2(taxable)
	rate = nonNegative(rate)

	cgst, sgst, igst := decimal.Zero, decimal.Zero, decimal.Zero
	switch regime {
	case domain.TaxRegimeIntrastate:
		cgst = Round2(taxable.Mul(rate).Div(twoHundred))
		sgst = cgst
	case domain.TaxRegimeInterstate:
		igst = Round2(taxable.Mul(rate).Div(hundred))
	}

	totalTax := cgst.Add(sgst).Add(igst)
	return domain.InvoiceTotals{
		Subtotal:     subtotal,
		TaxableValue: taxable,
		CGST:         cgst,
		SGST:         sgst,
		IGST:         igst,
		TotalTax:     totalTax,
		GrandTotal:   Round2(subtotal.Add(totalTax)),
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
