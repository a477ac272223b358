package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gstbill/internal/config"
	"gstbill/internal/handler"
	"gstbill/internal/metrics"
	"gstbill/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	log *zap.Logger,
	m *metrics.Metrics,
	calcH *handler.CalculatorHandler,
	billH *handler.BillHandler,
	salesH *handler.SalesHandler,
	dashH *handler.DashboardHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(m))
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		})
		v1.Use(limiter.Middleware())
	}

	// Stateless calculations
	calc := v1.Group("/gst")
	calc.POST("/preview", calcH.Preview)
	calc.POST("/amount-in-words", calcH.AmountInWords)

	// Quotations and invoices
	bills := v1.Group("/bills")
	bills.GET("/next-number", billH.NextNumber)
	bills.POST("/validate", billH.Validate)
	bills.POST("", billH.Create)
	bills.GET("", billH.List)
	bills.GET("/:id", billH.GetByID)
	bills.PUT("/:id", billH.Update)
	bills.DELETE("/:id", billH.Delete)
	bills.POST("/:id/duplicate", billH.Duplicate)
	bills.POST("/:id/convert", billH.Convert)

	// Sales ledger
	sales := v1.Group("/sales")
	sales.GET("", salesH.List)
	sales.GET("/stats", salesH.Stats)
	sales.GET("/:id", salesH.GetByID)
	sales.DELETE("/:id", salesH.Delete)
	sales.POST("/:id/payments", salesH.AddPayment)
	sales.DELETE("/:id/payments/:paymentId", salesH.DeletePayment)

	v1.GET("/dashboard", dashH.Stats)

	return r
}
