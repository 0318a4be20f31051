package bootstrap

import (
	"therapy-booking/internal/infra/metrics"
	"therapy-booking/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		NewRegistry,
		NewGatherer,
		fx.Annotate(
			NewBookingMetrics,
			fx.As(new(shared.BookingMetrics)),
		),
	),
)

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func NewGatherer(reg *prometheus.Registry) prometheus.Gatherer {
	return reg
}

func NewBookingMetrics(reg *prometheus.Registry) *metrics.BookingMetrics {
	return metrics.NewBookingMetrics(reg)
}
