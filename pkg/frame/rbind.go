package frame

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Rukhsaar305/datatable/pkg/dterrors"
	"github.com/Rukhsaar305/datatable/pkg/logger"
	"github.com/Rukhsaar305/datatable/pkg/metrics"
)

// AbsentColumn marks a destination column with no counterpart in a source
// table; the corresponding segment contributes only NA markers.
const AbsentColumn = -1

// Alignment maps destination columns to source columns for Rbind:
// alignment[i][j] is the index of the column in sources[j] feeding
// destination column i, or AbsentColumn.
type Alignment [][]int

// Rbind appends the rows of the source tables to this table, extending it
// to ncolsOut columns. Destination column i is the concatenation of the
// target's column i (or an all-NA segment when i is a newly introduced
// column), followed by one segment per source in order: the aligned source
// column resolved through that source's own pending row index, or an all-NA
// segment where alignment[i][j] is AbsentColumn. Each segment's relative
// row order is preserved.
//
// Segment types are unified by the promotion oracle; a destination column
// absent from the target settles on the type promoted across its present
// segments only. Mixing string and non-string segments fails.
//
// Rbind validates the alignment, then builds every destination column into
// a fresh column array, and only then swaps the table's state. A failed
// Rbind leaves the target exactly as it was, apart from reification, which
// is value-preserving. Source tables are never mutated.
func (t *DataTable) Rbind(ctx context.Context, sources []*DataTable, alignment Alignment, ncolsOut int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ncolsOut < len(t.columns) {
		return dterrors.New(dterrors.ErrorTypeShape, "destination column count below target's").
			WithDetail("ncols_out", ncolsOut).
			WithDetail("target_ncols", len(t.columns))
	}
	if len(alignment) != ncolsOut {
		return dterrors.New(dterrors.ErrorTypeShape, "alignment row count does not match destination columns").
			WithDetail("alignment_rows", len(alignment)).
			WithDetail("ncols_out", ncolsOut)
	}
	for i, row := range alignment {
		if len(row) != len(sources) {
			return dterrors.New(dterrors.ErrorTypeShape, "alignment width does not match source count").
				WithDetail("dest_column", i).
				WithDetail("alignment_width", len(row)).
				WithDetail("sources", len(sources))
		}
		for j, k := range row {
			if k == AbsentColumn {
				continue
			}
			if k < 0 || k >= sources[j].ncolsUnlocked(t) {
				return dterrors.New(dterrors.ErrorTypeShape, "alignment references column out of range").
					WithDetail("dest_column", i).
					WithDetail("source", j).
					WithDetail("source_column", k)
			}
		}
	}

	// The target must be dense before its columns can serve as head
	// segments.
	if err := t.reifyLocked(ctx); err != nil {
		return err
	}

	nrowsOut := t.nrows
	for j, src := range sources {
		n := src.nrowsUnlocked(t)
		if n > math.MaxInt-nrowsOut {
			return dterrors.New(dterrors.ErrorTypeResource, "combined row count overflows").
				WithDetail("source", j)
		}
		nrowsOut += n
	}

	timer := metrics.NewTimer("rbind")
	newCols := make([]*Column, ncolsOut)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(parallelism())
	for i := 0; i < ncolsOut; i++ {
		i := i
		g.Go(func() error {
			head := t.headSegment(i)
			segments := make([]*Column, 0, len(sources)+1)
			segments = append(segments, head)
			for j, src := range sources {
				seg, err := sourceSegment(src, alignment[i][j], t)
				if err != nil {
					return dterrors.Wrap(err, dterrors.ErrorTypeShape, "building source segment").
						WithDetail("dest_column", i).
						WithDetail("source", j)
				}
				segments = append(segments, seg)
			}
			col, err := rbindColumns(segments, nrowsOut)
			if err != nil {
				return dterrors.Wrap(err, dterrors.ErrorTypeShape, "concatenating column").
					WithDetail("dest_column", i)
			}
			newCols[i] = col
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.RowsProcessed.WithLabelValues("rbind", "failure").Add(float64(nrowsOut))
		return err
	}

	// Commit: all destination columns built, swap state atomically.
	newNames := make([]string, ncolsOut)
	copy(newNames, t.names)
	for i := len(t.names); i < ncolsOut; i++ {
		newNames[i] = fmt.Sprintf("C%d", i)
	}
	t.names = newNames
	t.columns = newCols
	t.nrows = nrowsOut

	metrics.RowsProcessed.WithLabelValues("rbind", "success").Add(float64(nrowsOut))
	metrics.ColumnsMaterialized.WithLabelValues("rbind").Add(float64(ncolsOut))
	logger.Get().Debug("tables concatenated",
		zap.Int("sources", len(sources)),
		zap.Int("nrows", t.nrows),
		zap.Int("ncols", len(t.columns)),
		zap.Duration("elapsed", timer.Stop()))
	return nil
}

// headSegment returns the target's existing column i, or a constant-NA
// placeholder of unsettled type for a newly introduced destination column.
func (t *DataTable) headSegment(i int) *Column {
	if i < len(t.columns) {
		return t.columns[i]
	}
	return NewNAColumn(Void, t.nrows)
}

// sourceSegment resolves the segment contributed by one source table:
// an all-NA column for absent alignment entries, otherwise the source's
// column read through the source's own pending row index.
func sourceSegment(src *DataTable, colIdx int, target *DataTable) (*Column, error) {
	if src != target {
		src.mu.RLock()
		defer src.mu.RUnlock()
	}
	if colIdx == AbsentColumn {
		return NewNAColumn(Void, src.nrows), nil
	}
	col := src.columns[colIdx]
	if src.rowindex != nil {
		return col.Extract(src.rowindex)
	}
	return col, nil
}

// ncolsUnlocked reads a source's column count, skipping the lock when the
// source is the target itself (whose lock the caller already holds).
func (t *DataTable) ncolsUnlocked(holder *DataTable) int {
	if t == holder {
		return len(t.columns)
	}
	return t.NCols()
}

func (t *DataTable) nrowsUnlocked(holder *DataTable) int {
	if t == holder {
		return t.nrows
	}
	return t.NRows()
}

// rbindColumns concatenates ordered segments into one dense column of the
// minimal common storage type. Void segments (all-NA placeholders)
// contribute only null markers and do not constrain the result type; when
// every segment is Void the result is a constant-NA column of unsettled
// type.
func rbindColumns(segments []*Column, total int) (*Column, error) {
	stypes := make([]SType, len(segments))
	for i, seg := range segments {
		stypes[i] = seg.SType()
	}
	stype, err := PromoteAll(stypes)
	if err != nil {
		return nil, err
	}
	if stype == Void {
		return NewNAColumn(Void, total), nil
	}

	b := newDenseBuilder(stype, total)
	for _, seg := range segments {
		n := seg.NRows()
		for row := 0; row < n; row++ {
			v, ok := seg.Get(row)
			if err := b.append(v, ok); err != nil {
				return nil, err
			}
		}
	}
	impl, err := b.finish()
	if err != nil {
		return nil, err
	}
	return newColumn(impl), nil
}
