package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

// Metrics exposes Prometheus collectors for the dashboard refresh model.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry  *prometheus.Registry
	handler   http.Handler
	refreshes *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	ticks     *prometheus.CounterVec
	stale     *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	refreshes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webnotas_view_refresh_total",
		Help: "View refreshes partitioned by view and status.",
	}, []string{"view", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "webnotas_view_refresh_duration_seconds",
		Help:    "Duration of view refreshes, upstream round trip included.",
		Buckets: prometheus.DefBuckets,
	}, []string{"view"})
	ticks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webnotas_poll_ticks_total",
		Help: "Poller ticks partitioned by poller and status.",
	}, []string{"poller", "status"})
	stale := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webnotas_view_stale_responses_total",
		Help: "Responses dropped because a newer request had been issued.",
	}, []string{"view"})
	registry.MustRegister(refreshes, duration, ticks, stale)

	return &Metrics{
		registry:  registry,
		handler:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		refreshes: refreshes,
		duration:  duration,
		ticks:     ticks,
		stale:     stale,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Tracker measures a single refresh.
type Tracker struct {
	metrics *Metrics
	view    string
	start   time.Time
}

func (m *Metrics) Track(view string) *Tracker {
	return &Tracker{metrics: m, view: view, start: time.Now()}
}

// End records the outcome and returns err untouched.
func (t *Tracker) End(err error) error {
	if t == nil || t.metrics == nil {
		return err
	}
	t.metrics.refreshes.WithLabelValues(t.view, statusOf(err)).Inc()
	t.metrics.duration.WithLabelValues(t.view).Observe(time.Since(t.start).Seconds())
	return err
}

func (m *Metrics) ObserveTick(poller string, err error) {
	if m == nil {
		return
	}
	m.ticks.WithLabelValues(poller, statusOf(err)).Inc()
}

func (m *Metrics) StaleDropped(view string) {
	if m == nil {
		return
	}
	m.stale.WithLabelValues(view).Inc()
}

func statusOf(err error) string {
	if err != nil {
		return statusFailure
	}
	return statusSuccess
}
