// Package metrics defines the prometheus collectors updated by the marshal engine.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "fieldmarshal"

	fieldLabelName = "field"
)

var (
	// batchBuckets are in seconds, from 10µs up to ~10s.
	batchBuckets = prometheus.ExponentialBuckets(0.00001, 4, 11)

	FieldsSerialized = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fields_serialized_total",
			Help:      "number of fields successfully serialized",
		})

	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "number of field serializations rejected with a validation error",
		}, []string{fieldLabelName})

	LoadOnlySkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_only_skipped_total",
			Help:      "number of load-only fields skipped while dumping",
		})

	BatchItems = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_items_total",
			Help:      "number of objects marshaled in batch mode",
		})

	BatchFailedItems = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_failed_items_total",
			Help:      "number of batch objects with at least one validation failure",
		})

	BatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "wall time of batch marshal calls",
			Buckets:   batchBuckets,
		})

	metricRegisterer prometheus.Registerer
	registerOnce     sync.Once
)

// GetRegisterer returns the registerer passed to Register, or prometheus.DefaultRegisterer.
func GetRegisterer() prometheus.Registerer {
	if metricRegisterer == nil {
		return prometheus.DefaultRegisterer
	}

	return metricRegisterer
}

// Register registers all collectors once. Later calls are no-ops.
func Register(registry prometheus.Registerer) {
	registerOnce.Do(func() {
		metricRegisterer = registry
		registry.MustRegister(FieldsSerialized)
		registry.MustRegister(ValidationFailures)
		registry.MustRegister(LoadOnlySkipped)
		registry.MustRegister(BatchItems)
		registry.MustRegister(BatchFailedItems)
		registry.MustRegister(BatchDuration)
	})
}
