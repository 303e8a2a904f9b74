package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New()
	m.Ticks.WithLabelValues("generating").Add(3)
	m.Solved.WithLabelValues("bfs").Inc()
	m.Moves.WithLabelValues("bfs").Observe(12)
	m.Subscribers.Set(2)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Ticks.WithLabelValues("generating")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Subscribers))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `maze_ticks_total{phase="generating"} 3`)
	assert.Contains(t, body, `maze_search_solved_total{mode="bfs"} 1`)
	assert.Contains(t, body, "maze_search_moves_bucket")
	assert.Contains(t, body, "go_goroutines")
}

func TestNewUsesSeparateRegistries(t *testing.T) {
	a, b := New(), New()
	a.Resets.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.Resets))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Resets))
}
