package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	Registry *prometheus.Registry

	RequestDuration  *prometheus.HistogramVec
	BookingsCreated  prometheus.Counter
	BookingsCanceled prometheus.Counter
	RoomsBooked      prometheus.Counter
	RepositoryErrors *prometheus.CounterVec
}

// NewMetrics creates the service metrics on their own registry.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time taken to serve HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		BookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "The total number of confirmed bookings",
		}),
		BookingsCanceled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_cancelled_total",
			Help:      "The total number of cancelled bookings",
		}),
		RoomsBooked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_booked_total",
			Help:      "The total number of hotel rooms marked booked",
		}),
		RepositoryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repository_errors_total",
			Help:      "The total number of failed repository operations",
		}, []string{"operation", "kind"}),
	}
	m.Registry.MustRegister(
		m.RequestDuration,
		m.BookingsCreated,
		m.BookingsCanceled,
		m.RoomsBooked,
		m.RepositoryErrors,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveError counts err against operation when it is not nil.
func (m *Metrics) ObserveError(operation string, err error) {
	if m == nil || err == nil {
		return
	}
	m.RepositoryErrors.WithLabelValues(operation, string(KindOf(err))).Inc()
}

