package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/ledger"
	"gstbill/internal/metrics"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func TestSalesService_AddPayment_Success(t *testing.T) {
	repo := new(mocks.MockSaleRepo)
	reg := prometheus.NewRegistry()
	svc := service.NewSalesService(repo, metrics.New(reg))

	saleID := uuid.New()
	updated := &domain.Sale{
		ID:             saleID,
		TotalAmount:    decimal.NewFromInt(1180),
		ReceivedAmount: decimal.NewFromInt(500),
		PendingAmount:  decimal.NewFromInt(680),
		Status:         domain.PaymentStatusPartiallyPaid,
	}
	repo.On("AddPayment", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.SaleID == saleID &&
			p.ID != uuid.Nil &&
			p.Amount.Equal(decimal.NewFromInt(500)) &&
			p.Mode == domain.PaymentModeCash &&
			p.PaymentDate.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)) &&
			p.Reference == "RCPT-1"
	})).Return(updated, nil)

	sale, err := svc.AddPayment(context.Background(), saleID, service.PaymentInput{
		Amount:      "500",
		PaymentDate: "2025-07-01",
		Reference:   " RCPT-1 ",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPartiallyPaid, sale.Status)
	repo.AssertExpectations(t)

	count, err := testutil.GatherAndCount(reg, "gstbill_payments_recorded_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSalesService_AddPayment_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		input   service.PaymentInput
		wantErr error
	}{
		{"zero amount", service.PaymentInput{Amount: "0"}, domain.ErrInvalidPayment},
		{"negative amount", service.PaymentInput{Amount: "-10"}, domain.ErrInvalidPayment},
		{"garbage amount", service.PaymentInput{Amount: "lots"}, domain.ErrInvalidPayment},
		{"unknown mode", service.PaymentInput{Amount: "10", Mode: "Barter"}, domain.ErrInvalidPayment},
		{"bad date", service.PaymentInput{Amount: "10", PaymentDate: "yesterday"}, domain.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockSaleRepo)
			svc := service.NewSalesService(repo, nil)

			sale, err := svc.AddPayment(context.Background(), uuid.New(), tt.input)

			assert.Nil(t, sale)
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "AddPayment", mock.Anything, mock.Anything)
		})
	}
}

func TestSalesService_AddPayment_ExceedsPending(t *testing.T) {
	repo := new(mocks.MockSaleRepo)
	reg := prometheus.NewRegistry()
	svc := service.NewSalesService(repo, metrics.New(reg))

	sale := &domain.Sale{
		ID:            uuid.New(),
		TotalAmount:   decimal.NewFromInt(100),
		PendingAmount: decimal.NewFromInt(100),
		Status:        domain.PaymentStatusPending,
	}
	repo.On("AddPayment", mock.Anything, mock.AnythingOfType("*domain.Payment")).
		Return(nil, ledger.ApplyPayment(sale, decimal.NewFromInt(250)))

	got, err := svc.AddPayment(context.Background(), sale.ID, service.PaymentInput{Amount: "250", Mode: "UPI"})

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrInvalidPayment)
	assert.Equal(t, domain.PaymentStatusPending, sale.Status)
	count, err := testutil.GatherAndCount(reg, "gstbill_payments_recorded_total")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSalesService_AddPayment_SaleNotFound(t *testing.T) {
	repo := new(mocks.MockSaleRepo)
	svc := service.NewSalesService(repo, nil)

	repo.On("AddPayment", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil, domain.ErrSaleNotFound)

	_, err := svc.AddPayment(context.Background(), uuid.New(), service.PaymentInput{Amount: "10", Mode: "UPI"})

	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
}

func TestSalesService_DeletePayment(t *testing.T) {
	repo := new(mocks.MockSaleRepo)
	svc := service.NewSalesService(repo, nil)

	saleID, paymentID := uuid.New(), uuid.New()
	expected := &domain.Sale{ID: saleID, Status: domain.PaymentStatusPending}
	repo.On("DeletePayment", mock.Anything, saleID, paymentID).Return(expected, nil)

	sale, err := svc.DeletePayment(context.Background(), saleID, paymentID)

	require.NoError(t, err)
	assert.Equal(t, expected, sale)
}

func TestSalesService_List_Filters(t *testing.T) {
	repo := new(mocks.MockSaleRepo)
	svc := service.NewSalesService(repo, nil)

	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	toExclusive := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.SaleFilter) bool {
		return f.Status == domain.PaymentStatusPaid &&
			f.From != nil && f.From.Equal(from) &&
			f.To != nil && f.To.Equal(toExclusive)
	})).Return([]domain.Sale{{ID: uuid.New()}}, nil)

	sales, err := svc.List(context.Background(), service.SalesFilterInput{
		Status: "paid",
		From:   "2025-04-01",
		To:     "2025-04-30",
	})

	require.NoError(t, err)
	assert.Len(t, sales, 1)
	repo.AssertExpectations(t)
}

func TestSalesService_List_AllMeansNoStatus(t *testing.T) {
	repo := new(mocks.MockSaleRepo)
	svc := service.NewSalesService(repo, nil)

	repo.On("List", mock.Anything, domain.SaleFilter{}).Return([]domain.Sale{}, nil)

	sales, err := svc.List(context.Background(), service.SalesFilterInput{Status: "all"})

	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestSalesService_List_InvalidFilter(t *testing.T) {
	repo := new(mocks.MockSaleRepo)
	svc := service.NewSalesService(repo, nil)

	_, err := svc.List(context.Background(), service.SalesFilterInput{Status: "overdue"})
	assert.ErrorIs(t, err, domain.ErrInvalidSaleStatus)

	_, err = svc.List(context.Background(), service.SalesFilterInput{From: "01-04-2025"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestSalesService_Stats(t *testing.T) {
	repo := new(mocks.MockSaleRepo)
	svc := service.NewSalesService(repo, nil)

	repo.On("List", mock.Anything, domain.SaleFilter{}).Return([]domain.Sale{
		{TotalAmount: decimal.NewFromInt(1000), ReceivedAmount: decimal.NewFromInt(1000)},
		{TotalAmount: decimal.NewFromInt(500), ReceivedAmount: decimal.NewFromInt(200)},
	}, nil)

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.True(t, stats.TotalSales.Equal(decimal.NewFromInt(1500)))
	assert.True(t, stats.TotalReceived.Equal(decimal.NewFromInt(1200)))
	assert.True(t, stats.TotalPending.Equal(decimal.NewFromInt(300)))
}

func TestSalesService_Delete(t *testing.T) {
	repo := new(mocks.MockSaleRepo)
	svc := service.NewSalesService(repo, nil)

	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(domain.ErrSaleNotFound)

	err := svc.Delete(context.Background(), id)

	assert.True(t, errors.Is(err, domain.ErrSaleNotFound))
}
