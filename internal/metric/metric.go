package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"monthcal/internal/view"
)

// Recorder holds the widget's Prometheus collectors.
type Recorder struct {
	gatherer prometheus.Gatherer

	intents  *prometheus.CounterVec
	events   prometheus.Gauge
	renders  prometheus.Counter
	captures *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		gatherer: reg,
		intents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "monthcal_intents_total",
			Help: "User intents handled, by kind and outcome",
		}, []string{"kind", "outcome"}),
		events: f.NewGauge(prometheus.GaugeOpts{
			Name: "monthcal_events",
			Help: "Number of events held in memory",
		}),
		renders: f.NewCounter(prometheus.CounterOpts{
			Name: "monthcal_month_renders_total",
			Help: "Full month grids derived and rendered",
		}),
		captures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "monthcal_snapshot_captures_total",
			Help: "Headless PNG captures of the month page, by outcome",
		}, []string{"outcome"}),
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Hook returns a controller hook counting intents.
func (r *Recorder) Hook() view.Hook {
	return func(in view.Intent, err error) {
		r.intents.WithLabelValues(in.Kind.String(), outcome(err)).Inc()
	}
}

// SetEvents records the current number of stored events.
func (r *Recorder) SetEvents(n int) {
	r.events.Set(float64(n))
}

// Rendered counts one month render.
func (r *Recorder) Rendered() {
	r.renders.Inc()
}

// Captured counts one snapshot attempt.
func (r *Recorder) Captured(err error) {
	r.captures.WithLabelValues(outcome(err)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
