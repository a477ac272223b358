package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
	"gstbill/internal/handler"
	"gstbill/mocks"
)

func TestDashboardHandler_Stats(t *testing.T) {
	mockSvc := new(mocks.MockDashboardService)
	h := handler.NewDashboardHandler(mockSvc)

	mockSvc.On("Stats", mock.Anything).Return(&domain.DashboardStats{
		InvoiceStats: domain.InvoiceStats{TotalInvoices: 4, TotalRevenue: decimal.NewFromInt(9000)},
		Sales:        domain.SalesStats{Count: 4},
	}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/dashboard", nil)

	h.Stats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, float64(4), data["total_invoices"])
	assert.Equal(t, "9000", data["total_revenue"])
	assert.Contains(t, data, "sales")
}

func TestDashboardHandler_Stats_Error(t *testing.T) {
	mockSvc := new(mocks.MockDashboardService)
	h := handler.NewDashboardHandler(mockSvc)

	mockSvc.On("Stats", mock.Anything).Return(nil, errors.New("timeout"))

	c, w := newContext(http.MethodGet, "/api/v1/dashboard", nil)

	h.Stats(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	h := handler.NewHealthHandler(stubPinger{})

	c, w := newContext(http.MethodGet, "/healthz", nil)
	h.Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(http.MethodGet, "/readyz", nil)
	h.Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	h := handler.NewHealthHandler(stubPinger{err: errors.New("dial tcp: refused")})

	c, w := newContext(http.MethodGet, "/readyz", nil)
	h.Readiness(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable","error":"database not reachable"}`, w.Body.String())
}
