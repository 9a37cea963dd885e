package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTracker_RecordsStatus(t *testing.T) {
	m := New()

	assert.NoError(t, m.Track("jobs").End(nil))
	err := errors.New("boom")
	assert.Same(t, err, m.Track("jobs").End(err))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshes.WithLabelValues("jobs", statusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshes.WithLabelValues("jobs", statusFailure)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	err := errors.New("boom")
	assert.Same(t, err, m.Track("jobs").End(err))
	m.ObserveTick("jobs", nil)
	m.StaleDropped("jobs")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveTick("jobs", nil)
	m.StaleDropped("jobs")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "webnotas_poll_ticks_total")
	assert.Contains(t, rec.Body.String(), "webnotas_view_stale_responses_total")
}
