package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	FlightsAppended prometheus.Counter
	FlightsRemoved  prometheus.Counter
	AssistCalls     *prometheus.CounterVec
	AssistLatency   prometheus.Histogram
	ErrorsCount     *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		FlightsAppended: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_appended_total",
			Help:      "The total number of flights added to the log",
		}),
		FlightsRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_removed_total",
			Help:      "The total number of flights deleted from the log",
		}),
		AssistCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assist_calls_total",
			Help:      "The total number of assistant calls by operation and outcome",
		}, []string{"operation", "outcome"}),
		AssistLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assist_call_duration_seconds",
			Help:      "Time the assistant service took to answer",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
