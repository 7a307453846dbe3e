package bootstrap

import (
	"pos-checkout/internal/pkg/metrics"
	"pos-checkout/internal/usecase/commands"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		metrics.New,
		func(m *metrics.Metrics) commands.CheckoutRecorder { return m },
	),
)
