package frame

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/Rukhsaar305/datatable/pkg/dterrors"
)

// RowIndexKind discriminates the representation of a RowIndex.
type RowIndexKind uint8

const (
	// IdentityIndex maps every logical row to the same physical row.
	IdentityIndex RowIndexKind = iota
	// SliceIndex maps logical rows through start + step*i.
	SliceIndex
	// ArrayIndex maps logical rows through an explicit position array,
	// with duplicates and gaps allowed.
	ArrayIndex
)

// RowIndex is an immutable mapping from logical row positions to physical
// row positions. A nil *RowIndex means "no view pending" everywhere one is
// accepted. A RowIndex never mutates the column or table it is applied to.
type RowIndex struct {
	kind    RowIndexKind
	nrows   int
	start   int
	step    int
	indices []int
	max     int // largest physical position referenced; -1 when empty
}

// IdentityRowIndex creates an identity mapping over n rows.
func IdentityRowIndex(n int) *RowIndex {
	return &RowIndex{kind: IdentityIndex, nrows: n, step: 1, max: n - 1}
}

// SliceRowIndex creates a mapping start, start+step, ... of the given
// count. Step may be zero (repeating one row) or negative, as long as no
// referenced position is negative.
func SliceRowIndex(start, step, count int) (*RowIndex, error) {
	if start < 0 || count < 0 {
		return nil, dterrors.New(dterrors.ErrorTypeShape, "invalid slice row index").
			WithDetail("start", start).
			WithDetail("count", count)
	}
	last := start
	if count > 0 {
		last = start + step*(count-1)
	}
	if last < 0 {
		return nil, dterrors.New(dterrors.ErrorTypeShape, "slice row index reaches negative positions").
			WithDetail("start", start).
			WithDetail("step", step).
			WithDetail("count", count)
	}
	max := last
	if start > max {
		max = start
	}
	if count == 0 {
		max = -1
	}
	return &RowIndex{kind: SliceIndex, nrows: count, start: start, step: step, max: max}, nil
}

// ArrayRowIndex creates a mapping from an explicit array of physical
// positions. The slice is copied. Positions may repeat and skip rows, but
// must be non-negative.
func ArrayRowIndex(indices []int) (*RowIndex, error) {
	copied := make([]int, len(indices))
	max := -1
	for i, idx := range indices {
		if idx < 0 {
			return nil, dterrors.New(dterrors.ErrorTypeShape, "negative row position in index array").
				WithDetail("logical_row", i).
				WithDetail("physical_row", idx)
		}
		if idx > max {
			max = idx
		}
		copied[i] = idx
	}
	return &RowIndex{kind: ArrayIndex, nrows: len(copied), indices: copied, max: max}, nil
}

// RowIndexFromBitmap creates a selection mapping from a roaring bitmap of
// physical row positions, in ascending order. This is the construction path
// used by Filter.
func RowIndexFromBitmap(bm *roaring.Bitmap) *RowIndex {
	n := int(bm.GetCardinality())
	indices := make([]int, 0, n)
	it := bm.Iterator()
	for it.HasNext() {
		indices = append(indices, int(it.Next()))
	}
	max := -1
	if n > 0 {
		max = indices[n-1]
	}
	return &RowIndex{kind: ArrayIndex, nrows: n, indices: indices, max: max}
}

// Kind returns the representation of the index.
func (ri *RowIndex) Kind() RowIndexKind { return ri.kind }

// Len returns the number of logical rows in the mapping.
func (ri *RowIndex) Len() int { return ri.nrows }

// Apply translates a logical row position into a physical one. The caller
// must ensure 0 <= row < Len().
func (ri *RowIndex) Apply(row int) int {
	switch ri.kind {
	case SliceIndex:
		return ri.start + ri.step*row
	case ArrayIndex:
		return ri.indices[row]
	default:
		return row
	}
}

// Max returns the largest physical position referenced, or -1 for an empty
// mapping.
func (ri *RowIndex) Max() int { return ri.max }

// Validate checks that every referenced physical position fits a column of
// the given length.
func (ri *RowIndex) Validate(nrows int) error {
	if ri.max >= nrows {
		return dterrors.New(dterrors.ErrorTypeShape, "row index out of range for column").
			WithDetail("max_position", ri.max).
			WithDetail("column_rows", nrows)
	}
	return nil
}
