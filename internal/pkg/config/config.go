package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.)
// - default: Values common across all environments (timeouts, retry policy, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Checkout CheckoutConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`

	MaxConns int32 `envconfig:"DB_MAX_CONNS" default:"20"`
	MinConns int32 `envconfig:"DB_MIN_CONNS" default:"2"`

	// Upper bound on how long a statement waits for a row lock held by another checkout.
	LockTimeout      time.Duration `envconfig:"DB_LOCK_TIMEOUT" default:"2s"`
	StatementTimeout time.Duration `envconfig:"DB_STATEMENT_TIMEOUT" default:"5s"`
}

type CheckoutConfig struct {
	MaxAttempts int           `envconfig:"CHECKOUT_MAX_ATTEMPTS" default:"4"`
	BaseDelay   time.Duration `envconfig:"CHECKOUT_BASE_DELAY" default:"50ms"`
	// Overall budget for one checkout call, retries included.
	Timeout     time.Duration `envconfig:"CHECKOUT_TIMEOUT" default:"15s"`
	StrictTotal bool          `envconfig:"CHECKOUT_STRICT_TOTAL" default:"false"`
	Preflight   bool          `envconfig:"CHECKOUT_PREFLIGHT" default:"true"`
}

// Empty Addr disables the catalog cache.
type RedisConfig struct {
	Addr       string        `envconfig:"REDIS_ADDR" default:""`
	Password   string        `envconfig:"REDIS_PASSWORD" default:""`
	DB         int           `envconfig:"REDIS_DB" default:"0"`
	CatalogTTL time.Duration `envconfig:"REDIS_CATALOG_TTL" default:"30s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Retry-After,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c Config) Validate() error {
	if c.Checkout.MaxAttempts < 1 || c.Checkout.MaxAttempts > 10 {
		return fmt.Errorf("CHECKOUT_MAX_ATTEMPTS must be between 1 and 10, got %d", c.Checkout.MaxAttempts)
	}
	if c.Checkout.BaseDelay <= 0 {
		return fmt.Errorf("CHECKOUT_BASE_DELAY must be positive, got %s", c.Checkout.BaseDelay)
	}
	if c.DB.LockTimeout <= 0 {
		return fmt.Errorf("DB_LOCK_TIMEOUT must be positive, got %s", c.DB.LockTimeout)
	}
	if c.DB.LockTimeout >= c.Checkout.Timeout {
		return fmt.Errorf("DB_LOCK_TIMEOUT (%s) must be shorter than CHECKOUT_TIMEOUT (%s)",
			c.DB.LockTimeout, c.Checkout.Timeout)
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:             "localhost",
			Port:             "15433", // Test DB port
			User:             "test",
			Password:         "test",
			DBName:           "test_db",
			SSLMode:          "disable",
			TimeZone:         "UTC",
			MaxConns:         20,
			MinConns:         1,
			LockTimeout:      500 * time.Millisecond,
			StatementTimeout: 5 * time.Second,
		},
		Checkout: CheckoutConfig{
			MaxAttempts: 4,
			BaseDelay:   10 * time.Millisecond,
			Timeout:     10 * time.Second,
			Preflight:   true,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
	}
}
