package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics собирает метрики вызовов шлюза.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics создаёт метрики и регистрирует их в reg (если reg не nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "classroom_gateway_requests_total",
				Help: "Total number of API calls made through the gateway",
			},
			[]string{"method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "classroom_gateway_request_duration_seconds",
				Help:    "Duration of API calls made through the gateway",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}

	return m
}

func (m *Metrics) observe(method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(method, status).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
