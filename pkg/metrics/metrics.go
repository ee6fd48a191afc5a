// Package metrics records store activity with Prometheus collectors.
//
// bookdb is a short-lived terminal process, so nothing is served over HTTP.
// Instead the registry can be written once on exit to a file picked up by the
// node_exporter textfile collector.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ssargent/bookdb/pkg/store"
)

const (
	statusSuccess  = "success"
	statusError    = "error"
	statusNotFound = "not_found"
	statusInvalid  = "invalid"

	operationLoad   = "load"
	operationAppend = "append"
)

// Metrics holds all Prometheus metrics for the store
type Metrics struct {
	registry *prometheus.Registry

	storeOperationsTotal   *prometheus.CounterVec
	storeOperationDuration *prometheus.HistogramVec
	recordsLoaded          prometheus.Gauge
}

// NewMetrics creates a registry and registers all metrics on it
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		storeOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookdb_store_operations_total",
				Help: "Total number of store operations",
			},
			[]string{"operation", "status"},
		),

		storeOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bookdb_store_operation_duration_seconds",
				Help:    "Store operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		recordsLoaded: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bookdb_records_loaded",
				Help: "Number of records returned by the last successful load",
			},
		),
	}
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveLoad records the outcome of a store load
func (m *Metrics) ObserveLoad(elapsed time.Duration, records int, err error) {
	m.storeOperationsTotal.WithLabelValues(operationLoad, statusFor(err)).Inc()
	m.storeOperationDuration.WithLabelValues(operationLoad).Observe(elapsed.Seconds())
	if err == nil {
		m.recordsLoaded.Set(float64(records))
	}
}

// ObserveAppend records the outcome of a store append
func (m *Metrics) ObserveAppend(elapsed time.Duration, err error) {
	m.storeOperationsTotal.WithLabelValues(operationAppend, statusFor(err)).Inc()
	m.storeOperationDuration.WithLabelValues(operationAppend).Observe(elapsed.Seconds())
}

// WriteTextfile writes every metric in the Prometheus text format.
// The file is written to a temporary name and renamed into place.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func statusFor(err error) string {
	var loadErr *store.LoadError
	switch {
	case err == nil:
		return statusSuccess
	case errors.Is(err, store.ErrNotFound):
		return statusNotFound
	case errors.As(err, &loadErr):
		return statusInvalid
	default:
		return statusError
	}
}

var _ store.Observer = (*Metrics)(nil)
