// Package observe exports live route activity as Prometheus metrics.
//
//	reg := prometheus.NewRegistry()
//	m := observe.NewMetrics(observe.WithRegistry(reg))
//	host := liveroute.NewHost(hist, liveroute.WithHostObserver(m))
package observe

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/liveroute/pkg/liveroute"
)

// MetricsConfig configures the metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "liveroute").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for evaluation duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the metrics.
type Option func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "liveroute",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics implements liveroute.Observer.
type Metrics struct {
	transitions *prometheus.CounterVec
	hooks       *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	hidden      *prometheus.GaugeVec
}

var _ liveroute.Observer = (*Metrics)(nil)

// NewMetrics creates and registers the metrics. Registering twice on the
// same registry panics, as with promauto.
func NewMetrics(opts ...Option) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transitions_total",
			Help:        "Total number of live route state transitions",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "from", "to"}),

		hooks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "hooks_total",
			Help:        "Total number of onHide/onReappear hook calls",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "hook"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "evaluation_duration_seconds",
			Help:        "Live route evaluation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		hidden: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "hidden_views",
			Help:        "Number of views currently kept alive while hidden",
			ConstLabels: config.ConstLabels,
		}, []string{"route"}),
	}
}

// ObserveTransition records a state change and keeps the hidden gauge in
// step with it.
func (m *Metrics) ObserveTransition(route string, from, to liveroute.State) {
	m.transitions.WithLabelValues(route, from.String(), to.String()).Inc()
	switch {
	case to == liveroute.StateHidden && from != liveroute.StateHidden:
		m.hidden.WithLabelValues(route).Inc()
	case from == liveroute.StateHidden && to != liveroute.StateHidden:
		m.hidden.WithLabelValues(route).Dec()
	}
}

// ObserveHook records a hook call.
func (m *Metrics) ObserveHook(route, hook string) {
	m.hooks.WithLabelValues(route, hook).Inc()
}

// ObserveEvaluation records how long an evaluation took.
func (m *Metrics) ObserveEvaluation(route string, d time.Duration) {
	m.duration.WithLabelValues(route).Observe(d.Seconds())
}
