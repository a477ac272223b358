// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Metrics groups the HTTP and billing collectors.
type Metrics struct {
	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	billsSaved *prometheus.CounterVec
	payments   *prometheus.CounterVec
	ledger     *prometheus.GaugeVec
}

// New creates the collectors and registers them with registerer.
// A nil registerer uses prometheus.DefaultRegisterer.
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gstbill_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gstbill_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		billsSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gstbill_bills_saved_total",
			Help: "Bills created or updated, by status.",
		}, []string{"status"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gstbill_payments_recorded_total",
			Help: "Payments recorded against sales, by mode.",
		}, []string{"mode"}),
		ledger: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gstbill_ledger_amount_rupees",
			Help: "Sales ledger totals at the last snapshot, by kind (sales, received, pending).",
		}, []string{"kind"}),
	}
	registerer.MustRegister(m.requests, m.duration, m.billsSaved, m.payments, m.ledger)
	return m
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// BillSaved counts a persisted bill.
func (m *Metrics) BillSaved(status string) {
	if m == nil {
		return
	}
	m.billsSaved.WithLabelValues(status).Inc()
}

// PaymentRecorded counts a payment added to a sale.
func (m *Metrics) PaymentRecorded(mode string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(mode).Inc()
}

// SetLedger publishes a snapshot of the sales ledger totals.
func (m *Metrics) SetLedger(sales, received, pending decimal.Decimal) {
	if m == nil {
		return
	}
	m.ledger.WithLabelValues("sales").Set(sales.InexactFloat64())
	m.ledger.WithLabelValues("received").Set(received.InexactFloat64())
	m.ledger.WithLabelValues("pending").Set(pending.InexactFloat64())
}
