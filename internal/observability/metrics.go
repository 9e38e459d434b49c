package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dataset load and render pass.
type Metrics struct {
	FeaturesLoaded  prometheus.Gauge
	MarkersRendered prometheus.Gauge
	FeaturesSkipped prometheus.Counter

	FetchDuration prometheus.Histogram
	FetchBytes    prometheus.Gauge
	LoadFailures  *prometheus.CounterVec // labels: reason={status,parse,request}

	PipelineState *prometheus.GaugeVec // label: state={idle,loading,rendered,failed}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.FeaturesLoaded,
		m.MarkersRendered,
		m.FeaturesSkipped,
		m.FetchDuration,
		m.FetchBytes,
		m.LoadFailures,
		m.PipelineState,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FeaturesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crashscope",
			Name:      "dataset_features",
			Help:      "Number of features in the fetched dataset.",
		}),
		MarkersRendered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crashscope",
			Name:      "markers_rendered",
			Help:      "Number of markers built from valid point features.",
		}),
		FeaturesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crashscope",
			Name:      "features_skipped_total",
			Help:      "Features dropped for invalid or missing point geometry.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crashscope",
			Name:      "dataset_fetch_duration_seconds",
			Help:      "Duration of the single dataset fetch and decode.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FetchBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crashscope",
			Name:      "dataset_bytes",
			Help:      "Size of the fetched dataset body in bytes.",
		}),
		LoadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crashscope",
			Name:      "load_failures_total",
			Help:      "Dataset load failures by reason.",
		}, []string{"reason"}),
		PipelineState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "crashscope",
			Name:      "pipeline_state",
			Help:      "1 for the pipeline's current state, 0 for the others.",
		}, []string{"state"}),
	}
}
