// Package datatable provides a high-performance, in-memory columnar table
// engine. It stores tabular data as independently-typed columns, supports
// zero-copy views (row permutations and selections) over those columns,
// and supports lazily-computed virtual columns that derive values from
// other columns without materializing them.
//
// The engine targets workloads that repeatedly filter, reshape, bin, and
// concatenate large tables while minimizing memory copies and deferring
// computation until results are actually read.
//
// # Architecture
//
// The engine is organized into focused packages:
//
//   - pkg/frame: columns, row indexes, tables, statistics, concatenation
//     (rbind), and the binning virtual column
//   - pkg/config: engine configuration with YAML loading
//   - pkg/logger: structured logging built on zap
//   - pkg/metrics: Prometheus metrics for structural operations
//   - pkg/dterrors: structured error handling with categories and stack
//     traces
//
// # Quick Start
//
//	target, _ := frame.FromColumns(
//	    []string{"id", "score"},
//	    []*frame.Column{
//	        frame.NewInt32Column([]int32{1, 2, 3}, nil),
//	        frame.NewFloat64Column([]float64{0.5, 2.5, 7.5}, nil),
//	    },
//	)
//
//	// Vertical concatenation with NA filling and type promotion.
//	err := target.Rbind(ctx, sources, alignment, ncols)
//
//	// Lazy binning of a numeric column into 4 intervals.
//	binned, err := frame.MakeBinned(target.Column(1), 4, true)
//
// See the package documentation of pkg/frame for the full data model.
package datatable
