package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/gridpath/search"
	"github.com/katalvlaran/gridpath/session"
)

const namespace = "gridpath"

// Collector holds the metric vectors shared by all sessions.
type Collector struct {
	events     *prometheus.CounterVec
	sessions   *prometheus.CounterVec
	pathLength *prometheus.HistogramVec
	expanded   *prometheus.HistogramVec
}

// NewCollector registers the metrics on reg. A nil reg registers on
// prometheus.DefaultRegisterer. Registering twice on the same registry panics,
// as with any promauto metric.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Collector{
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_events_total",
			Help:      "Search events by strategy and kind",
		}, []string{"strategy", "kind"}),

		sessions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Finished sessions by strategy and outcome",
		}, []string{"strategy", "outcome"}),

		pathLength: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_length",
			Help:      "Coordinates per found path",
			Buckets:   prometheus.ExponentialBuckets(2, 2, 10), // 2 to 1024
		}, []string{"strategy"}),

		expanded: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "expanded_per_session",
			Help:      "Expanded events per finished session",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10), // 1 to ~262k
		}, []string{"strategy"}),
	}
}

// Observer returns a session observer that labels everything with strategy.
func (c *Collector) Observer(strategy search.Strategy) session.Observer {
	return &observer{c: c, strategy: strategy.String()}
}

// observer is the per-strategy view of a Collector.
type observer struct {
	c        *Collector
	strategy string
}

// OnEvent counts e.
func (o *observer) OnEvent(e search.Event) {
	o.c.events.WithLabelValues(o.strategy, e.Kind.String()).Inc()
}

// OnFinish records the outcome and, for found paths, the path length.
func (o *observer) OnFinish(r session.Result) {
	o.c.sessions.WithLabelValues(o.strategy, r.Outcome.String()).Inc()
	o.c.expanded.WithLabelValues(o.strategy).Observe(float64(r.Expanded))
	if r.Outcome == session.OutcomeFound {
		o.c.pathLength.WithLabelValues(o.strategy).Observe(float64(len(r.Path)))
	}
}
