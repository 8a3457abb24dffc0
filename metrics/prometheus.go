package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"asokatrip/database/docstore"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	QueriesTotal    *prometheus.CounterVec
	QueryDuration   *prometheus.HistogramVec
	HTTPRequests    *prometheus.CounterVec
	BookingsCreated prometheus.Counter
	SupersededLoads prometheus.Counter
}

// NewMetrics creates new prometheus metrics on reg. A nil reg uses the default registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		QueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Document store queries by collection and outcome",
		}, []string{"collection", "outcome"}),
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Time taken by document store queries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "The total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		BookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "The total number of bookings created",
		}),
		SupersededLoads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "superseded_loads_total",
			Help:      "Report loads cancelled by a newer load for the same view",
		}),
	}
}

// ObserveQuery records one query against collection. Safe on a nil receiver.
func (m *Metrics) ObserveQuery(collection string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(collection, Outcome(err)).Inc()
	m.QueryDuration.WithLabelValues(collection).Observe(time.Since(started).Seconds())
}

// Outcome classifies a query error for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, docstore.ErrMissingIndex):
		return "missing_index"
	case errors.Is(err, docstore.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
