package storage

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// storageOps counts backend calls by backend, operation and outcome
	// (ok, empty, error).
	storageOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_operations_total",
			Help: "Total number of storage backend operations.",
		},
		[]string{"backend", "op", "result"},
	)

	// storageLat records backend call duration in seconds.
	storageLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_operation_duration_seconds",
			Help:    "Duration of storage backend operations in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "op"},
	)
)

func init() {
	prometheus.MustRegister(storageOps, storageLat)
}

func observe(backend, op string, start time.Time, err error) {
	result := "ok"
	switch {
	case errors.Is(err, ErrNoData):
		result = "empty"
	case err != nil:
		result = "error"
	}
	storageOps.WithLabelValues(backend, op, result).Inc()
	storageLat.WithLabelValues(backend, op).Observe(time.Since(start).Seconds())
}
