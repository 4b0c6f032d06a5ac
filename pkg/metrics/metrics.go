// Package metrics provides performance tracking for the datatable engine
// using Prometheus metrics. It offers collectors for the engine's structural
// operations: concatenation, reification, casting, and statistics scans.
//
// # Basic Usage
//
//	// Record concatenated rows
//	metrics.RowsProcessed.WithLabelValues("rbind", "success").Add(float64(nrows))
//
//	// Track operation latency
//	timer := metrics.NewTimer("rbind")
//	err := table.Rbind(ctx, sources, alignment, ncols)
//	timer.Stop()
//
// # Metric Types
//
// Counter: monotonically increasing values (e.g., total rows concatenated)
// Gauge: values that can go up or down (e.g., resident column memory)
// Histogram: distribution of values (e.g., operation latency percentiles)
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RowsProcessed tracks the total number of rows flowing through
	// structural operations.
	// Labels: operation (rbind/reify/cast), status (success/failure)
	RowsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datatable_rows_processed_total",
			Help: "Total number of rows processed by structural operations",
		},
		[]string{"operation", "status"},
	)

	// OperationLatency tracks the distribution of structural operation
	// latencies in nanoseconds. Buckets are tuned for in-memory work.
	// Labels: operation (rbind/reify/cast/stats)
	OperationLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "datatable_operation_latency_nanoseconds",
			Help: "Structural operation latency in nanoseconds",
			Buckets: []float64{
				1000,  // 1μs - single column, few rows
				10000, // 10μs - small tables
				1e5,   // 100μs
				1e6,   // 1ms - standard tables
				1e7,   // 10ms
				1e8,   // 100ms - large concatenations
				1e9,   // 1s
			},
		},
		[]string{"operation"},
	)

	// ColumnsMaterialized tracks how many columns have been densified,
	// either by reification or by concatenation output.
	ColumnsMaterialized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datatable_columns_materialized_total",
			Help: "Total number of columns materialized",
		},
		[]string{"operation"},
	)

	// StatsComputations counts lazy statistics scans. A cached statistic
	// answered without a scan does not increment this.
	StatsComputations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "datatable_stats_computations_total",
			Help: "Total number of lazy statistics scans performed",
		},
	)

	// ColumnMemory tracks resident memory held by materialized columns.
	ColumnMemory = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "datatable_column_memory_bytes",
			Help: "Memory held by materialized column buffers in bytes",
		},
		[]string{"table"},
	)
)

// Timer provides a simple timing mechanism for measuring operation
// durations and recording them into OperationLatency.
type Timer struct {
	start     time.Time
	operation string
}

// NewTimer creates a new timer for the named operation and starts timing
// immediately.
func NewTimer(operation string) *Timer {
	return &Timer{
		start:     time.Now(),
		operation: operation,
	}
}

// Stop stops the timer, records the elapsed time into OperationLatency,
// and returns the duration.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	OperationLatency.WithLabelValues(t.operation).Observe(float64(elapsed.Nanoseconds()))
	return elapsed
}

// Elapsed returns the time elapsed without stopping the timer.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
