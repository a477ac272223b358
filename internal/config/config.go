package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Log       LogConfig
	CORS      CORSConfig
	Billing   BillingConfig
	Metrics   MetricsConfig
	RateLimit RateLimitConfig
	Jobs      JobsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// BillingConfig holds defaults applied to bills that omit them.
type BillingConfig struct {
	DefaultGSTRate decimal.Decimal `mapstructure:"default_gst_rate"`
	DefaultPrefix  string          `mapstructure:"default_prefix"`
	CompanyName    string          `mapstructure:"company_name"`
	AmountInWords  bool            `mapstructure:"amount_in_words"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// RateLimitConfig holds the per-client request budget for /api routes.
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// JobsConfig holds cron schedules for background jobs. An empty schedule
// disables the job.
type JobsConfig struct {
	LedgerSnapshot string `mapstructure:"ledger_snapshot"`
}

// Load reads configuration from environment variables with the GSTBILL_ prefix.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GSTBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "gstbill")
	v.SetDefault("db.password", "gstbill_secret")
	v.SetDefault("db.name", "gstbill_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000")

	// Billing defaults
	v.SetDefault("billing.default_gst_rate", "18")
	v.SetDefault("billing.default_prefix", "")
	v.SetDefault("billing.company_name", "")
	v.SetDefault("billing.amount_in_words", true)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)

	// Job defaults
	v.SetDefault("jobs.ledger_snapshot", "@every 5m")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "GSTBILL_SERVER_PORT",
		"server.read_timeout":            "GSTBILL_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "GSTBILL_SERVER_WRITE_TIMEOUT",
		"server.environment":             "GSTBILL_SERVER_ENVIRONMENT",
		"db.host":                        "GSTBILL_DB_HOST",
		"db.port":                        "GSTBILL_DB_PORT",
		"db.user":                        "GSTBILL_DB_USER",
		"db.password":                    "GSTBILL_DB_PASSWORD",
		"db.name":                        "GSTBILL_DB_NAME",
		"db.sslmode":                     "GSTBILL_DB_SSLMODE",
		"db.max_open":                    "GSTBILL_DB_MAX_OPEN",
		"db.max_idle":                    "GSTBILL_DB_MAX_IDLE",
		"log.level":                      "GSTBILL_LOG_LEVEL",
		"log.format":                     "GSTBILL_LOG_FORMAT",
		"cors.allowed_origins":           "GSTBILL_CORS_ALLOWED_ORIGINS",
		"billing.default_gst_rate":       "GSTBILL_BILLING_DEFAULT_GST_RATE",
		"billing.default_prefix":         "GSTBILL_BILLING_DEFAULT_PREFIX",
		"billing.company_name":           "GSTBILL_BILLING_COMPANY_NAME",
		"billing.amount_in_words":        "GSTBILL_BILLING_AMOUNT_IN_WORDS",
		"metrics.enabled":                "GSTBILL_METRICS_ENABLED",
		"metrics.path":                   "GSTBILL_METRICS_PATH",
		"rate_limit.enabled":             "GSTBILL_RATE_LIMIT_ENABLED",
		"rate_limit.requests_per_second": "GSTBILL_RATE_LIMIT_REQUESTS_PER_SECOND",
		"rate_limit.burst":               "GSTBILL_RATE_LIMIT_BURST",
		"jobs.ledger_snapshot":           "GSTBILL_JOBS_LEDGER_SNAPSHOT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GSTBILL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTBILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	rate, err := decimal.NewFromString(strings.TrimSpace(v.GetString("billing.default_gst_rate")))
	if err != nil || rate.IsNegative() {
		return nil, fmt.Errorf("config: invalid billing.default_gst_rate %q", v.GetString("billing.default_gst_rate"))
	}
	cfg.Billing = BillingConfig{
		DefaultGSTRate: rate,
		DefaultPrefix:  strings.ToUpper(strings.TrimSpace(v.GetString("billing.default_prefix"))),
		CompanyName:    v.GetString("billing.company_name"),
		AmountInWords:  v.GetBool("billing.amount_in_words"),
	}

	metricsPath := v.GetString("metrics.path")
	if !strings.HasPrefix(metricsPath, "/") {
		metricsPath = "/" + metricsPath
	}
	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("metrics.enabled"),
		Path:    metricsPath,
	}

	cfg.RateLimit = RateLimitConfig{
		Enabled:           v.GetBool("rate_limit.enabled"),
		RequestsPerSecond: v.GetFloat64("rate_limit.requests_per_second"),
		Burst:             v.GetInt("rate_limit.burst"),
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.RequestsPerSecond <= 0 || cfg.RateLimit.Burst <= 0) {
		return nil, fmt.Errorf("config: rate_limit requires positive requests_per_second and burst")
	}

	cfg.Jobs = JobsConfig{
		LedgerSnapshot: strings.TrimSpace(v.GetString("jobs.ledger_snapshot")),
	}

	return cfg, nil
}
