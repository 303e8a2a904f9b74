package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "maze"

type Metrics struct {
	Registry *prometheus.Registry

	// Ticks counts Advance calls that did work. Labels: phase (the phase the
	// tick started in).
	Ticks *prometheus.CounterVec
	// Resets counts maze rebuilds.
	Resets prometheus.Counter
	// Solved counts finished searches. Labels: mode.
	Solved *prometheus.CounterVec
	// Moves observes the discovered-cell count of finished searches.
	// Labels: mode.
	Moves *prometheus.HistogramVec
	// Worklist tracks the length of the search worklist after each tick.
	Worklist prometheus.Gauge
	// Subscribers tracks connected frame listeners.
	Subscribers prometheus.Gauge
}

// New registers every collector on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Ticks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Ticks that performed work, by phase",
		}, []string{"phase"}),
		Resets: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Mazes rebuilt from scratch",
		}),
		Solved: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "solved_total",
			Help:      "Finished searches, by mode",
		}, []string{"mode"}),
		Moves: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "moves",
			Help:      "Cells discovered by finished searches",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 12),
		}, []string{"mode"}),
		Worklist: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "worklist_length",
			Help:      "Pending worklist items",
		}),
		Subscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "subscribers",
			Help:      "Connected frame subscribers",
		}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
