package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/genoslab/docregress/internal/core/domain"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	evaluationsTotal    *prometheus.CounterVec
	evaluationDuration  *prometheus.HistogramVec
	evaluationsInFlight prometheus.Gauge
	queueLag            prometheus.Histogram
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	evaluationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docregress",
			Subsystem: "worker",
			Name:      "evaluations_total",
			Help:      "Total evaluated samples by format, mode and outcome.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"format", "mode", "outcome"},
	)
	evaluationDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docregress",
			Subsystem: "worker",
			Name:      "evaluation_duration_seconds",
			Help:      "Sample evaluation duration in seconds by format.",
			Buckets:   prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"format"},
	)
	evaluationsInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docregress",
			Subsystem: "worker",
			Name:      "evaluations_in_flight",
			Help:      "Number of in-flight sample evaluations.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "docregress",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between sample enqueue and evaluation start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(evaluationsTotal, evaluationDuration, evaluationsInFlight, queueLag)

	return &WorkerMetrics{
		registry:            registry,
		evaluationsTotal:    evaluationsTotal,
		evaluationDuration:  evaluationDuration,
		evaluationsInFlight: evaluationsInFlight,
		queueLag:            queueLag,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartEvaluation() {
	m.evaluationsInFlight.Inc()
}

func (m *WorkerMetrics) FinishEvaluation(outcome *domain.Outcome) {
	m.evaluationsInFlight.Dec()
	if outcome == nil {
		return
	}

	result := "passed"
	switch {
	case outcome.Err != "":
		result = "error"
	case !outcome.Passed:
		result = "failed"
	}

	m.evaluationsTotal.WithLabelValues(outcome.Format, string(outcome.Mode), result).Inc()
	m.evaluationDuration.WithLabelValues(outcome.Format).Observe(outcome.Duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.Observe(lag.Seconds())
}
