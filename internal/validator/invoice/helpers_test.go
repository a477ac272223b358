package invoice_test

import (
	"context"

	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
	"gstbill/internal/validator/invoice"
)

// validBill returns an intrastate bill (both parties in state 29) that passes every rule.
func validBill() *domain.Bill {
	return &domain.Bill{
		Number: "SEL/2526/0001",
		Status: domain.BillStatusInvoice,
		Seller: domain.Party{
			Name:  "Seller Corp",
			GSTIN: "29ABCDE1234F1Z5",
			PAN:   "ABCDE1234F",
		},
		Buyer: domain.Party{
			Name:  "Buyer Corp",
			GSTIN: "29FGHIJ5678K1Z2",
			PAN:   "FGHIJ5678K",
			Phone: "9876543210",
		},
		Items: []domain.LineItem{
			{
				Description: "Widget",
				HSNCode:     "8471",
				Quantity:    decimal.NewFromInt(10),
				Rate:        decimal.NewFromInt(100),
				Amount:      decimal.NewFromInt(1000),
			},
		},
		GSTRate:   decimal.NewFromInt(18),
		TaxRegime: domain.TaxRegimeIntrastate,
	}
}

type ruleLike interface {
	RuleKey() string
	Validate(ctx context.Context, bill *domain.Bill) []invoice.ValidationResult
}

func find[T ruleLike](rules []T, key string) T {
	var zero T
	for _, r := range rules {
		if r.RuleKey() == key {
			return r
		}
	}
	return zero
}

func allPassed(results []invoice.ValidationResult) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
