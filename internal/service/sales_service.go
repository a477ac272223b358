package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/ledger"
	"gstbill/internal/metrics"
	"gstbill/internal/port"
)

// SalesFilterInput is the query DTO for listing sales. Dates are YYYY-MM-DD;
// To is inclusive.
type SalesFilterInput struct {
	Status string `form:"status"`
	From   string `form:"from"`
	To     string `form:"to"`
}

// PaymentInput is the DTO for recording a payment against a sale.
type PaymentInput struct {
	Amount      gst.LenientNumber `json:"amount" binding:"required"`
	PaymentDate string            `json:"payment_date"`
	Mode        string            `json:"mode"`
	Reference   string            `json:"reference"`
	ProofURL    string            `json:"proof_url"`
}

// SalesService defines the sales ledger contract.
type SalesService interface {
	List(ctx context.Context, input SalesFilterInput) ([]domain.Sale, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	AddPayment(ctx context.Context, saleID uuid.UUID, input PaymentInput) (*domain.Sale, error)
	DeletePayment(ctx context.Context, saleID, paymentID uuid.UUID) (*domain.Sale, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*domain.SalesStats, error)
}

type salesService struct {
	repo    port.SaleRepository
	metrics *metrics.Metrics
}

// NewSalesService creates a new SalesService implementation. m may be nil.
func NewSalesService(repo port.SaleRepository, m *metrics.Metrics) SalesService {
	return &salesService{repo: repo, metrics: m}
}

func (s *salesService) List(ctx context.Context, input SalesFilterInput) ([]domain.Sale, error) {
	filter, err := toSaleFilter(input)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

func (s *salesService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *salesService) AddPayment(ctx context.Context, saleID uuid.UUID, input PaymentInput) (*domain.Sale, error) {
	date, err := parseDate(input.PaymentDate)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ID:          uuid.New(),
		SaleID:      saleID,
		Amount:      gst.Round2(input.Amount.Decimal()),
		PaymentDate: date,
		Mode:        domain.PaymentMode(strings.TrimSpace(input.Mode)),
		Reference:   strings.TrimSpace(input.Reference),
		ProofURL:    strings.TrimSpace(input.ProofURL),
	}
	if err := ledger.ValidatePayment(payment); err != nil {
		return nil, err
	}

	sale, err := s.repo.AddPayment(ctx, payment)
	if err != nil {
		return nil, err
	}
	s.metrics.PaymentRecorded(string(payment.Mode))

	zap.L().Info("payment recorded",
		zap.String("sale_id", saleID.String()),
		zap.String("amount", payment.Amount.String()),
		zap.String("status", string(sale.Status)),
	)
	return sale, nil
}

func (s *salesService) DeletePayment(ctx context.Context, saleID, paymentID uuid.UUID) (*domain.Sale, error) {
	return s.repo.DeletePayment(ctx, saleID, paymentID)
}

func (s *salesService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *salesService) Stats(ctx context.Context) (*domain.SalesStats, error) {
	sales, err := s.repo.List(ctx, domain.SaleFilter{})
	if err != nil {
		return nil, err
	}
	stats := ledger.Summarize(sales)
	return &stats, nil
}

func toSaleFilter(input SalesFilterInput) (domain.SaleFilter, error) {
	var filter domain.SaleFilter

	if st := strings.ToLower(strings.TrimSpace(input.Status)); st != "" && st != "all" {
		filter.Status = domain.PaymentStatus(st)
		switch filter.Status {
		case domain.PaymentStatusPending, domain.PaymentStatusPartiallyPaid, domain.PaymentStatusPaid:
		default:
			return filter, domain.ErrInvalidSaleStatus
		}
	}

	if strings.TrimSpace(input.From) != "" {
		from, err := time.Parse(dateLayout, strings.TrimSpace(input.From))
		if err != nil {
			return filter, domain.ErrInvalidDate
		}
		filter.From = &from
	}
	if strings.TrimSpace(input.To) != "" {
		to, err := time.Parse(dateLayout, strings.TrimSpace(input.To))
		if err != nil {
			return filter, domain.ErrInvalidDate
		}
		// The repository bound is exclusive; include the whole end day.
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}
	return filter, nil
}
