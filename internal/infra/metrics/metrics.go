package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so tests and multiple apps in one process do not
// collide on the default registerer. A nil *Metrics is a valid no-op.
type Metrics struct {
	registry *prometheus.Registry

	matchesCreated       prometheus.Counter
	swipes               *prometheus.CounterVec
	scoreCache           *prometheus.CounterVec
	notificationFailures *prometheus.CounterVec
	httpRequests         *prometheus.CounterVec
	httpDuration         *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		matchesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "trusthub_matches_created_total",
			Help: "Matches created by the swipe engine",
		}),
		swipes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trusthub_swipes_total",
			Help: "Swipes recorded by action",
		}, []string{"action"}),
		scoreCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trusthub_score_cache_requests_total",
			Help: "Score cache lookups by result",
		}, []string{"result"}),
		notificationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trusthub_notification_failures_total",
			Help: "Notifications that could not be dispatched",
		}, []string{"kind"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trusthub_http_requests_total",
			Help: "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trusthub_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) MatchCreated() {
	if m == nil {
		return
	}
	m.matchesCreated.Inc()
}

func (m *Metrics) Swipe(action string) {
	if m == nil {
		return
	}
	m.swipes.WithLabelValues(action).Inc()
}

func (m *Metrics) ScoreCacheHit() {
	if m == nil {
		return
	}
	m.scoreCache.WithLabelValues("hit").Inc()
}

func (m *Metrics) ScoreCacheMiss() {
	if m == nil {
		return
	}
	m.scoreCache.WithLabelValues("miss").Inc()
}

func (m *Metrics) ScoreCacheError() {
	if m == nil {
		return
	}
	m.scoreCache.WithLabelValues("error").Inc()
}

func (m *Metrics) NotificationFailed(kind string) {
	if m == nil {
		return
	}
	m.notificationFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
