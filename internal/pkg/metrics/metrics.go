package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pos"

// Metrics owns its own registry so several app instances can live in one process (tests).
type Metrics struct {
	registry *prometheus.Registry

	checkouts        *prometheus.CounterVec
	checkoutAttempts prometheus.Histogram
	checkoutDuration *prometheus.HistogramVec

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Checkout outcomes by result.",
		}, []string{"result"}),
		checkoutAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "checkout_attempts",
			Help:      "Transaction attempts used per checkout.",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 8, 10},
		}),
		checkoutDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "checkout_duration_seconds",
			Help:      "Checkout latency including retries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.checkouts, m.checkoutAttempts, m.checkoutDuration,
		m.requests, m.latency,
	)
	return m
}

func (m *Metrics) ObserveCheckout(result string, attempts int, elapsed time.Duration) {
	m.checkouts.WithLabelValues(result).Inc()
	if attempts > 0 {
		m.checkoutAttempts.Observe(float64(attempts))
	}
	m.checkoutDuration.WithLabelValues(result).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
