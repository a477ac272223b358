package service

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gstbill/internal/amountwords"
	"gstbill/internal/config"
	"gstbill/internal/domain"
	"gstbill/internal/gst"
)

// LineItemInput is one line of a bill as submitted by a client form.
// Numbers are parsed leniently; a missing amount is derived from quantity and rate.
type LineItemInput struct {
	Description    string            `json:"description"`
	HSNCode        string            `json:"hsn_code"`
	Quantity       gst.LenientNumber `json:"quantity"`
	Rate           gst.LenientNumber `json:"rate"`
	Amount         gst.LenientNumber `json:"amount"`
	ExcludeFromTax bool              `json:"exclude_from_tax"`
}

// PreviewInput is the DTO for a live totals calculation.
type PreviewInput struct {
	Items       []LineItemInput   `json:"items"`
	GSTRate     gst.LenientNumber `json:"gst_rate"`
	TaxRegime   string            `json:"tax_regime"`
	SellerGSTIN string            `json:"seller_gstin"`
	BuyerGSTIN  string            `json:"buyer_gstin"`
}

// PreviewResult is the computed breakdown returned to the form.
type PreviewResult struct {
	Items         []domain.LineItem    `json:"items"`
	GSTRate       decimal.Decimal      `json:"gst_rate"`
	TaxRegime     domain.TaxRegime     `json:"tax_regime"`
	Totals        domain.InvoiceTotals `json:"totals"`
	AmountInWords string               `json:"amount_in_words"`
}

// CalculatorService exposes the tax engine and the words converter.
type CalculatorService interface {
	Preview(input PreviewInput) (*PreviewResult, error)
	AmountInWords(amount string) (string, error)
}

type calculatorService struct {
	cfg config.BillingConfig
}

// NewCalculatorService creates a new CalculatorService implementation.
func NewCalculatorService(cfg config.BillingConfig) CalculatorService {
	return &calculatorService{cfg: cfg}
}

func (s *calculatorService) Preview(input PreviewInput) (*PreviewResult, error) {
	regime, err := gst.ResolveTaxRegime(input.TaxRegime, input.SellerGSTIN, input.BuyerGSTIN)
	if err != nil {
		return nil, err
	}

	items := toLineItems(input.Items)
	rate := s.rateOrDefault(input.GSTRate)
	totals := gst.ComputeTotals(items, rate, regime)

	return &PreviewResult{
		Items:         items,
		GSTRate:       rate,
		TaxRegime:     regime,
		Totals:        totals,
		AmountInWords: s.words(totals.GrandTotal),
	}, nil
}

func (s *calculatorService) AmountInWords(amount string) (string, error) {
	return amountwords.FromString(amount)
}

func (s *calculatorService) rateOrDefault(n gst.LenientNumber) decimal.Decimal {
	if !n.IsSet() {
		return s.cfg.DefaultGSTRate
	}
	return n.Decimal()
}

// words never fails a calculation; an unconvertible total renders as "".
func (s *calculatorService) words(total decimal.Decimal) string {
	if !s.cfg.AmountInWords {
		return ""
	}
	w, err := amountwords.Convert(total)
	if err != nil {
		zap.L().Warn("amount in words unavailable",
			zap.String("amount", total.String()),
			zap.Error(err),
		)
		return ""
	}
	return w
}

func toLineItems(in []LineItemInput) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(in))
	for _, li := range in {
		qty := li.Quantity.Decimal()
		rate := li.Rate.Decimal()
		amount := li.Amount.Decimal()
		if !li.Amount.IsSet() {
			amount = gst.LineAmount(qty, rate)
		}
		items = append(items, domain.LineItem{
			Description:    li.Description,
			HSNCode:        li.HSNCode,
			Quantity:       qty,
			Rate:           rate,
			Amount:         amount,
			ExcludeFromTax: li.ExcludeFromTax,
		})
	}
	return items
}
