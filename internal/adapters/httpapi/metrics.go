package httpapi

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	throttled prometheus.Counter
	goals     *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quadra_http_requests_total",
				Help: "HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quadra_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"route"},
		),
		throttled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "quadra_http_throttled_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
		goals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quadra_goal_searches_total",
				Help: "Goal searches by outcome and winning strategy",
			},
			[]string{"found", "strategy"},
		),
	}
	reg.MustRegister(m.requests, m.duration, m.throttled, m.goals)
	return m
}
