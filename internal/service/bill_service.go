package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gstbill/internal/config"
	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/invoicenum"
	"gstbill/internal/ledger"
	"gstbill/internal/metrics"
	"gstbill/internal/port"
	"gstbill/internal/validator"
)

const dateLayout = "2006-01-02"

// BillInput is the DTO for creating or replacing a quotation or invoice.
// Totals and amount in words are always computed server-side.
type BillInput struct {
	Number      string            `json:"number"`
	Status      string            `json:"status" binding:"omitempty,oneof=quotation invoice"`
	InvoiceDate string            `json:"invoice_date"`
	Seller      domain.Party      `json:"seller"`
	Buyer       domain.Party      `json:"buyer"`
	Items       []LineItemInput   `json:"items"`
	GSTRate     gst.LenientNumber `json:"gst_rate"`
	TaxRegime   string            `json:"tax_regime"`
	Notes       string            `json:"notes"`
}

// DuplicateBillInput is the DTO for copying a bill.
type DuplicateBillInput struct {
	Number string `json:"number"`
}

// InvoiceConversion is the result of finalizing a bill.
type InvoiceConversion struct {
	Bill *domain.Bill `json:"bill"`
	Sale *domain.Sale `json:"sale"`
}

// BillService defines the quotation and invoice management contract.
type BillService interface {
	Create(ctx context.Context, input BillInput) (*domain.Bill, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error)
	List(ctx context.Context, status string, offset, limit int) ([]domain.Bill, int, error)
	Update(ctx context.Context, id uuid.UUID, input BillInput) (*domain.Bill, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Duplicate(ctx context.Context, id uuid.UUID, newNumber string) (*domain.Bill, error)
	ConvertToInvoice(ctx context.Context, id uuid.UUID) (*InvoiceConversion, error)
	NextNumber(ctx context.Context, prefix, companyName string) (string, error)
	Validate(ctx context.Context, input BillInput) (*validator.Report, error)
}

type billService struct {
	bills   port.BillRepository
	sales   port.SaleRepository
	engine  *validator.Engine
	calc    *calculatorService
	cfg     config.BillingConfig
	metrics *metrics.Metrics
}

// NewBillService creates a new BillService implementation. m may be nil.
func NewBillService(
	bills port.BillRepository,
	sales port.SaleRepository,
	engine *validator.Engine,
	cfg config.BillingConfig,
	m *metrics.Metrics,
) BillService {
	return &billService{
		bills:   bills,
		sales:   sales,
		engine:  engine,
		calc:    &calculatorService{cfg: cfg},
		cfg:     cfg,
		metrics: m,
	}
}

func (s *billService) Create(ctx context.Context, input BillInput) (*domain.Bill, error) {
	bill := &domain.Bill{ID: uuid.New()}
	if err := s.apply(bill, input); err != nil {
		return nil, err
	}

	if bill.Number == "" {
		number, err := s.NextNumber(ctx, "", bill.Seller.Name)
		if err != nil {
			return nil, err
		}
		bill.Number = number
	}

	if err := s.engine.Validate(ctx, bill).Err(); err != nil {
		return nil, err
	}

	if err := s.bills.Create(ctx, bill); err != nil {
		return nil, err
	}

	if bill.Status == domain.BillStatusInvoice {
		if _, err := s.openSale(ctx, bill); err != nil {
			// An invoice is never left without its sales record.
			if derr := s.bills.Delete(ctx, bill.ID); derr != nil {
				zap.L().Error("invoice saved without sales record",
					zap.String("bill_id", bill.ID.String()),
					zap.String("number", bill.Number),
					zap.Error(derr),
				)
			}
			return nil, err
		}
	}
	s.metrics.BillSaved(string(bill.Status))
	return bill, nil
}

func (s *billService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error) {
	return s.bills.GetByID(ctx, id)
}

func (s *billService) List(ctx context.Context, status string, offset, limit int) ([]domain.Bill, int, error) {
	st := domain.BillStatus(strings.ToLower(strings.TrimSpace(status)))
	if st != "" && !st.Valid() {
		return nil, 0, domain.ErrInvalidBillStatus
	}
	return s.bills.List(ctx, st, offset, limit)
}

func (s *billService) Update(ctx context.Context, id uuid.UUID, input BillInput) (*domain.Bill, error) {
	bill, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hasSale, err := s.sales.ExistsForBill(ctx, id)
	if err != nil {
		return nil, err
	}
	if hasSale {
		return nil, domain.ErrBillLocked
	}

	prev := *bill
	number := bill.Number
	if err := s.apply(bill, input); err != nil {
		return nil, err
	}
	if bill.Number == "" {
		bill.Number = number
	}

	if err := s.engine.Validate(ctx, bill).Err(); err != nil {
		return nil, err
	}

	if err := s.bills.Update(ctx, bill); err != nil {
		return nil, err
	}

	if bill.Status == domain.BillStatusInvoice {
		if _, err := s.openSale(ctx, bill); err != nil {
			if rerr := s.bills.Update(ctx, &prev); rerr != nil {
				zap.L().Error("invoice saved without sales record",
					zap.String("bill_id", bill.ID.String()),
					zap.String("number", bill.Number),
					zap.Error(rerr),
				)
			}
			return nil, err
		}
	}
	s.metrics.BillSaved(string(bill.Status))
	return bill, nil
}

func (s *billService) Delete(ctx context.Context, id uuid.UUID) error {
	hasSale, err := s.sales.ExistsForBill(ctx, id)
	if err != nil {
		return err
	}
	if hasSale {
		return domain.ErrBillHasSales
	}
	return s.bills.Delete(ctx, id)
}

// Duplicate copies a bill as a new quotation, whatever the source status.
func (s *billService) Duplicate(ctx context.Context, id uuid.UUID, newNumber string) (*domain.Bill, error) {
	src, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dup := *src
	dup.ID = uuid.New()
	dup.Status = domain.BillStatusQuotation
	dup.InvoiceDate = today()
	dup.Items = append([]domain.LineItem(nil), src.Items...)
	dup.Number = strings.TrimSpace(newNumber)
	if dup.Number == "" {
		number, err := s.NextNumber(ctx, "", src.Seller.Name)
		if err != nil {
			return nil, err
		}
		dup.Number = number
	}

	if err := s.bills.Create(ctx, &dup); err != nil {
		return nil, err
	}
	s.metrics.BillSaved(string(dup.Status))
	return &dup, nil
}

// ConvertToInvoice finalizes a bill and opens its sales record. Converting an
// invoice again returns the existing sale.
func (s *billService) ConvertToInvoice(ctx context.Context, id uuid.UUID) (*InvoiceConversion, error) {
	bill, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if bill.Status != domain.BillStatusInvoice {
		bill.Status = domain.BillStatusInvoice
		if err := s.bills.Update(ctx, bill); err != nil {
			return nil, err
		}
		s.metrics.BillSaved(string(bill.Status))
	}

	// Conversion is retryable: a failed openSale leaves the bill an invoice and
	// the next call opens the missing record.
	sale, err := s.openSale(ctx, bill)
	if err != nil {
		return nil, err
	}
	return &InvoiceConversion{Bill: bill, Sale: sale}, nil
}

// NextNumber resolves the prefix (explicit, configured, then from the company
// name) and returns the next number in the current financial year.
func (s *billService) NextNumber(ctx context.Context, prefix, companyName string) (string, error) {
	if strings.TrimSpace(prefix) == "" {
		prefix = s.cfg.DefaultPrefix
	}
	if strings.TrimSpace(companyName) == "" {
		companyName = s.cfg.CompanyName
	}
	p := strings.ToUpper(invoicenum.Prefix(prefix, companyName))

	now := time.Now()
	last, err := s.bills.LatestNumberWithPrefix(ctx, invoicenum.SearchPrefix(p, now))
	if err != nil {
		return "", err
	}
	return invoicenum.Next(p, last, now), nil
}

// Validate runs every check against the bill input without saving it.
func (s *billService) Validate(ctx context.Context, input BillInput) (*validator.Report, error) {
	bill := &domain.Bill{}
	if err := s.apply(bill, input); err != nil {
		return nil, err
	}
	return s.engine.Validate(ctx, bill), nil
}

// apply copies input onto bill and recomputes its totals.
func (s *billService) apply(bill *domain.Bill, input BillInput) error {
	status := domain.BillStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	if status == "" {
		status = domain.BillStatusQuotation
	}
	if !status.Valid() {
		return domain.ErrInvalidBillStatus
	}

	date, err := parseDate(input.InvoiceDate)
	if err != nil {
		return err
	}

	preview, err := s.calc.Preview(PreviewInput{
		Items:       input.Items,
		GSTRate:     input.GSTRate,
		TaxRegime:   input.TaxRegime,
		SellerGSTIN: input.Seller.GSTIN,
		BuyerGSTIN:  input.Buyer.GSTIN,
	})
	if err != nil {
		return err
	}

	bill.Number = strings.TrimSpace(input.Number)
	bill.Status = status
	bill.InvoiceDate = date
	bill.Seller = input.Seller
	bill.Buyer = input.Buyer
	bill.Items = preview.Items
	bill.GSTRate = preview.GSTRate
	bill.TaxRegime = preview.TaxRegime
	bill.Totals = preview.Totals
	bill.AmountInWords = preview.AmountInWords
	bill.Notes = input.Notes
	return nil
}

func (s *billService) openSale(ctx context.Context, bill *domain.Bill) (*domain.Sale, error) {
	sale, err := s.sales.CreateForBill(ctx, ledger.NewSale(bill))
	if err != nil {
		return nil, fmt.Errorf("opening sales record for %s: %w", bill.Number, err)
	}
	zap.L().Info("sales record opened",
		zap.String("bill_id", bill.ID.String()),
		zap.String("number", bill.Number),
		zap.String("sale_id", sale.ID.String()),
	)
	return sale, nil
}

// parseDate reads a YYYY-MM-DD date; blank means today.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return today(), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return t, nil
}

func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
