package scheduler_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gstbill/internal/domain"
	"gstbill/internal/metrics"
	"gstbill/internal/scheduler"
	"gstbill/mocks"
)

func TestScheduleLedgerSnapshot_RejectsBadSpec(t *testing.T) {
	s := scheduler.New(new(mocks.MockSalesService), nil, zap.NewNop())

	assert.Error(t, s.ScheduleLedgerSnapshot("every tuesday"))
	assert.NoError(t, s.ScheduleLedgerSnapshot("@every 5m"))
	assert.NoError(t, s.ScheduleLedgerSnapshot("*/10 * * * *"))
}

func TestSnapshotLedger_PublishesGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	sales := new(mocks.MockSalesService)
	sales.On("Stats", mock.Anything).Return(&domain.SalesStats{
		Count:         2,
		TotalSales:    decimal.RequireFromString("2360"),
		TotalReceived: decimal.RequireFromString("1000"),
		TotalPending:  decimal.RequireFromString("1360"),
	}, nil)

	scheduler.New(sales, metrics.New(reg), zap.NewNop()).SnapshotLedger()

	expected := `
# HELP gstbill_ledger_amount_rupees Sales ledger totals at the last snapshot, by kind (sales, received, pending).
# TYPE gstbill_ledger_amount_rupees gauge
gstbill_ledger_amount_rupees{kind="pending"} 1360
gstbill_ledger_amount_rupees{kind="received"} 1000
gstbill_ledger_amount_rupees{kind="sales"} 2360
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "gstbill_ledger_amount_rupees"))
	sales.AssertExpectations(t)
}

func TestSnapshotLedger_ErrorLeavesGaugesUnset(t *testing.T) {
	reg := prometheus.NewRegistry()
	sales := new(mocks.MockSalesService)
	sales.On("Stats", mock.Anything).Return(nil, errors.New("db down"))

	scheduler.New(sales, metrics.New(reg), zap.NewNop()).SnapshotLedger()

	assert.Equal(t, 0, testutil.CollectAndCount(reg, "gstbill_ledger_amount_rupees"))
}

func TestStartStop(t *testing.T) {
	s := scheduler.New(new(mocks.MockSalesService), nil, zap.NewNop())
	require.NoError(t, s.ScheduleLedgerSnapshot("@every 1h"))

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NotPanics(t, func() { s.Stop(ctx) })
}
