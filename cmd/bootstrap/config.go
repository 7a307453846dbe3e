package bootstrap

import (
	"log/slog"

	"pos-checkout/internal/pkg/config"
	"pos-checkout/internal/usecase/retry"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(logCheckoutPolicy),
)

func logCheckoutPolicy(cfg config.Config, logger *slog.Logger) {
	p := retry.NewPolicy(cfg.Checkout)
	logger.Info("checkout policy",
		"max_attempts", p.MaxAttempts,
		"base_delay", p.BaseDelay,
		"retry_budget", p.Budget(),
		"lock_timeout", cfg.DB.LockTimeout,
		"timeout", cfg.Checkout.Timeout,
		"strict_total", cfg.Checkout.StrictTotal,
		"preflight", cfg.Checkout.Preflight)
}
