// Package ledger holds the payment bookkeeping rules for sales records.
package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
)

// StatusFor derives the payment status of a sale from its totals.
func StatusFor(total, received decimal.Decimal) domain.PaymentStatus {
	switch {
	case received.GreaterThanOrEqual(total):
		return domain.PaymentStatusPaid
	case !received.IsPositive():
		return domain.PaymentStatusPending
	default:
		return domain.PaymentStatusPartiallyPaid
	}
}

// Pending is the amount still owed, never below zero.
func Pending(total, received decimal.Decimal) decimal.Decimal {
	p := total.Sub(received)
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// NewSale opens a ledger entry for a finalized invoice. A new sale is always
// pending, even when the invoice total is zero.
func NewSale(bill *domain.Bill) *domain.Sale {
	total := bill.Totals.GrandTotal
	return &domain.Sale{
		ID:             uuid.New(),
		BillID:         bill.ID,
		InvoiceNumber:  bill.Number,
		BuyerName:      bill.Buyer.Name,
		TotalAmount:    total,
		ReceivedAmount: decimal.Zero,
		PendingAmount:  Pending(total, decimal.Zero),
		Status:         domain.PaymentStatusPending,
	}
}

// ValidatePayment checks a payment before it is recorded. An empty mode
// defaults to cash.
func ValidatePayment(p *domain.Payment) error {
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", domain.ErrInvalidPayment)
	}
	if p.Mode == "" {
		p.Mode = domain.PaymentModeCash
	}
	if !domain.AllowedPaymentModes[p.Mode] {
		return fmt.Errorf("%w: unsupported payment mode %q", domain.ErrInvalidPayment, p.Mode)
	}
	return nil
}

// ApplyPayment adds amount to the sale's received total. The amount may not
// exceed what is still pending.
func ApplyPayment(sale *domain.Sale, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", domain.ErrInvalidPayment)
	}
	if pending := Pending(sale.TotalAmount, sale.ReceivedAmount); amount.GreaterThan(pending) {
		return fmt.Errorf("%w: amount %s exceeds pending amount %s",
			domain.ErrInvalidPayment, amount.StringFixed(2), pending.StringFixed(2))
	}
	recompute(sale, sale.ReceivedAmount.Add(amount))
	return nil
}

// ReversePayment removes a previously applied amount. Received never drops below zero.
func ReversePayment(sale *domain.Sale, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", domain.ErrInvalidPayment)
	}
	received := sale.ReceivedAmount.Sub(amount)
	if received.IsNegative() {
		received = decimal.Zero
	}
	recompute(sale, received)
	return nil
}

func recompute(sale *domain.Sale, received decimal.Decimal) {
	sale.ReceivedAmount = received
	sale.PendingAmount = Pending(sale.TotalAmount, received)
	sale.Status = StatusFor(sale.TotalAmount, received)
}

// Summarize totals a set of sales.
func Summarize(sales []domain.Sale) domain.SalesStats {
	stats := domain.SalesStats{
		Count:         len(sales),
		TotalSales:    decimal.Zero,
		TotalReceived: decimal.Zero,
		TotalPending:  decimal.Zero,
	}
	for i := range sales {
		stats.TotalSales = stats.TotalSales.Add(sales[i].TotalAmount)
		stats.TotalReceived = stats.TotalReceived.Add(sales[i].ReceivedAmount)
		stats.TotalPending = stats.TotalPending.Add(Pending(sales[i].TotalAmount, sales[i].ReceivedAmount))
	}
	return stats
}
