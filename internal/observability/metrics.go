package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "parcel_risk"

// Metrics holds the Prometheus counters, histograms, and gauges for the scoring service.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Assessment metrics.
	Assessments          *prometheus.CounterVec // labels: region, tier
	OverallScore         prometheus.Histogram
	AssessmentConfidence prometheus.Histogram

	// Upstream hazard lookup metrics.
	HazardRequests    *prometheus.CounterVec   // labels: category, outcome={success,error,empty}
	HazardCache       *prometheus.CounterVec   // labels: category, result={hit,miss}
	HazardAPIDuration *prometheus.HistogramVec // labels: category
	HazardEnabled     prometheus.Gauge
}

var scoreBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total parcel requests read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_produced_total",
			Help:      "Total assessments written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total requests that could not be parsed or assessed.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-assess-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Completed assessments by region and overall risk tier.",
		}, []string{"region", "tier"}),
		OverallScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "overall_risk_score",
			Help:      "Distribution of overall 0-100 risk scores.",
			Buckets:   scoreBuckets,
		}),
		AssessmentConfidence: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assessment_confidence",
			Help:      "Distribution of 0-100 assessment confidence.",
			Buckets:   scoreBuckets,
		}),
		HazardRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hazard_requests_total",
			Help:      "Hazard API requests by category and outcome.",
		}, []string{"category", "outcome"}),
		HazardCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hazard_cache_total",
			Help:      "Hazard lookup cache results by category.",
		}, []string{"category", "result"}),
		HazardAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "hazard_api_duration_seconds",
			Help:      "Hazard API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"category"}),
		HazardEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hazard_api_enabled",
			Help:      "1 when missing analyses are looked up upstream, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.Assessments,
		m.OverallScore,
		m.AssessmentConfidence,
		m.HazardRequests,
		m.HazardCache,
		m.HazardAPIDuration,
		m.HazardEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		MessagesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "messages_consumed_total"}),
		MessagesProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "messages_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "batch_processing_duration_seconds"}),
		Assessments:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "assessments_total"}, []string{"region", "tier"}),
		OverallScore:            prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "overall_risk_score", Buckets: scoreBuckets}),
		AssessmentConfidence:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "assessment_confidence", Buckets: scoreBuckets}),
		HazardRequests:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "hazard_requests_total"}, []string{"category", "outcome"}),
		HazardCache:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "hazard_cache_total"}, []string{"category", "result"}),
		HazardAPIDuration:       prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: "hazard_api_duration_seconds"}, []string{"category"}),
		HazardEnabled:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "hazard_api_enabled"}),
	}
}
