package frame

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Rukhsaar305/datatable/pkg/dterrors"
	"github.com/Rukhsaar305/datatable/pkg/logger"
	"github.com/Rukhsaar305/datatable/pkg/metrics"
)

// maxWorkers bounds the number of columns materialized concurrently by
// structural operations. Zero means runtime.NumCPU().
var maxWorkers atomic.Int32

// SetParallelism bounds the number of concurrently materialized columns
// during reification and concatenation. Values below one reset to the
// number of CPUs.
func SetParallelism(n int) {
	if n < 1 {
		n = 0
	}
	maxWorkers.Store(int32(n))
}

func parallelism() int {
	if n := int(maxWorkers.Load()); n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// DataTable is an ordered collection of named columns sharing a common
// logical row count, plus an optional pending row index describing an
// unmaterialized view over all its columns.
//
// Structural mutation (Rbind, Reify, ApplyRowIndex) is an exclusive-writer
// operation; element and statistics reads may run concurrently once no
// writer is active. Source tables passed to Rbind are never mutated.
type DataTable struct {
	mu       sync.RWMutex
	names    []string
	columns  []*Column
	rowindex *RowIndex
	nrows    int
}

// NewDataTable creates an empty table.
func NewDataTable() *DataTable {
	return &DataTable{}
}

// FromColumns creates a table from parallel name and column slices. All
// columns must share one row count and names must be unique.
func FromColumns(names []string, columns []*Column) (*DataTable, error) {
	if len(names) != len(columns) {
		return nil, dterrors.New(dterrors.ErrorTypeShape, "name and column counts differ").
			WithDetail("names", len(names)).
			WithDetail("columns", len(columns))
	}
	t := NewDataTable()
	for i, name := range names {
		if err := t.AddColumn(name, columns[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// AddColumn appends a named column to the table. The column's row count
// must match the table's; adding to a table with a pending row index is a
// shape violation (reify first).
func (t *DataTable) AddColumn(name string, col *Column) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.rowindex != nil {
		return dterrors.New(dterrors.ErrorTypeShape, "cannot add column to a table with a pending row index")
	}
	if len(t.columns) > 0 && col.NRows() != t.nrows {
		return dterrors.New(dterrors.ErrorTypeShape, "column row count does not match table").
			WithDetail("column", name).
			WithDetail("column_rows", col.NRows()).
			WithDetail("table_rows", t.nrows)
	}
	for _, existing := range t.names {
		if existing == name {
			return dterrors.New(dterrors.ErrorTypeShape, "duplicate column name").
				WithDetail("column", name)
		}
	}

	if len(t.columns) == 0 {
		t.nrows = col.NRows()
	}
	t.names = append(t.names, name)
	t.columns = append(t.columns, col)
	return nil
}

// NRows returns the logical row count (after the pending row index, if any).
func (t *DataTable) NRows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.nrows
}

// NCols returns the number of columns.
func (t *DataTable) NCols() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.columns)
}

// Names returns the column names in order.
func (t *DataTable) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Column returns the i-th column handle. The handle reads physical rows;
// use Cell for row-index-aware access.
func (t *DataTable) Column(i int) *Column {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.columns[i]
}

// ColumnByName returns the column with the given name.
func (t *DataTable) ColumnByName(name string) (*Column, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i, n := range t.names {
		if n == name {
			return t.columns[i], true
		}
	}
	return nil, false
}

// HasRowIndex reports whether a row index is pending.
func (t *DataTable) HasRowIndex() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rowindex != nil
}

// Cell reads the element at the given column and logical row, reading
// through the pending row index when one is present.
func (t *DataTable) Cell(col, row int) (interface{}, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.rowindex != nil {
		row = t.rowindex.Apply(row)
	}
	return t.columns[col].Get(row)
}

// ApplyRowIndex installs a pending row index over the table's logical
// rows. When a row index is already pending the two are composed, so the
// new index selects over the current view, not over physical rows.
func (t *DataTable) ApplyRowIndex(ri *RowIndex) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ri.Max() >= t.nrows {
		return dterrors.New(dterrors.ErrorTypeShape, "row index out of range for table").
			WithDetail("max_position", ri.Max()).
			WithDetail("table_rows", t.nrows)
	}
	if t.rowindex != nil {
		ri = composeRowIndexes(t.rowindex, ri)
	}
	t.rowindex = ri
	t.nrows = ri.Len()
	return nil
}

// composeRowIndexes builds the mapping outer∘inner: logical rows of the
// result pass through inner first, then outer, yielding physical rows.
func composeRowIndexes(outer, inner *RowIndex) *RowIndex {
	indices := make([]int, inner.Len())
	for i := range indices {
		indices[i] = outer.Apply(inner.Apply(i))
	}
	max := -1
	for _, idx := range indices {
		if idx > max {
			max = idx
		}
	}
	return &RowIndex{kind: ArrayIndex, nrows: len(indices), indices: indices, max: max}
}

// Filter evaluates a predicate over the logical rows of one column and
// returns a row index selecting the rows where it holds. The predicate
// receives the element value and its validity.
func (t *DataTable) Filter(col int, pred func(v interface{}, valid bool) bool) (*RowIndex, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if col < 0 || col >= len(t.columns) {
		return nil, dterrors.New(dterrors.ErrorTypeShape, "filter column out of range").
			WithDetail("column", col).
			WithDetail("ncols", len(t.columns))
	}

	bm := roaring.New()
	c := t.columns[col]
	for row := 0; row < t.nrows; row++ {
		physical := row
		if t.rowindex != nil {
			physical = t.rowindex.Apply(row)
		}
		v, ok := c.Get(physical)
		if pred(v, ok) {
			bm.Add(uint32(row))
		}
	}
	return RowIndexFromBitmap(bm), nil
}

// Reify applies the pending row index to every column, replacing each
// with a dense materialized column, and clears the index. Reifying a
// table with no pending row index is a no-op; reification is idempotent.
func (t *DataTable) Reify(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reifyLocked(ctx)
}

func (t *DataTable) reifyLocked(ctx context.Context) error {
	if t.rowindex == nil {
		return nil
	}

	timer := metrics.NewTimer("reify")
	ri := t.rowindex
	reified := make([]*Column, len(t.columns))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(parallelism())
	for i, col := range t.columns {
		i, col := i, col
		g.Go(func() error {
			view, err := col.Extract(ri)
			if err != nil {
				return err
			}
			dense, err := view.materialize()
			if err != nil {
				return err
			}
			reified[i] = dense
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.RowsProcessed.WithLabelValues("reify", "failure").Add(float64(ri.Len()))
		return dterrors.Wrap(err, dterrors.ErrorTypeResource, "reification failed")
	}

	t.columns = reified
	t.nrows = ri.Len()
	t.rowindex = nil

	metrics.RowsProcessed.WithLabelValues("reify", "success").Add(float64(t.nrows))
	metrics.ColumnsMaterialized.WithLabelValues("reify").Add(float64(len(t.columns)))
	logger.Get().Debug("table reified",
		zap.Int("nrows", t.nrows),
		zap.Int("ncols", len(t.columns)),
		zap.Duration("elapsed", timer.Stop()))
	return nil
}

// ColumnSummary describes one column for inspection surfaces.
type ColumnSummary struct {
	Name  string   `json:"name"`
	SType string   `json:"stype"`
	NRows int      `json:"nrows"`
	Valid int      `json:"valid"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}

// Summaries computes a summary for every column, forcing lazy statistics.
// Min/max are reported for numeric columns with at least one valid value.
// Statistics reflect physical column storage; reify first when a row index
// is pending.
func (t *DataTable) Summaries() []ColumnSummary {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]ColumnSummary, len(t.columns))
	for i, col := range t.columns {
		s := ColumnSummary{
			Name:  t.names[i],
			SType: col.SType().String(),
			NRows: t.nrows,
			Valid: col.ValidCount(),
		}
		if min, max, ok := col.MinMax(); ok {
			s.Min, s.Max = &min, &max
		}
		out[i] = s
	}
	return out
}
