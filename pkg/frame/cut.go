package frame

import (
	"math"

	"github.com/Rukhsaar305/datatable/pkg/dterrors"
)

// float32Epsilon is the smallest relative increment of a single-precision
// float (2^-23). It guards every bin boundary uniformly, so that floating
// rounding cannot push a boundary value one bin past the intended range.
const float32Epsilon = 0x1p-23

// binnedColumn is a virtual column mapping a numeric child's values into
// integer bin identifiers through a two-point linear transform:
//
//	bin_id = int32(a*x + b) + shift
//
// where the int32 conversion truncates toward zero. The transform holds
// the child column and the three derived scalars as its only state.
type binnedColumn struct {
	child *Column
	a     float64
	b     float64
	shift int32
	stats Stats
}

// MakeBinned returns a column of int32 bin identifiers for the numeric
// input column, discretized into nbins intervals. rightClosed selects
// right-closed interval semantics (the maximum stays inside the last bin)
// versus left-closed. The input's values are not copied; elements are
// computed on demand from the child.
//
// When the input's min/max statistics are unavailable or non-finite, or
// nbins is zero, binning is undefined and the result is an all-NA int32
// column of the same row count.
func MakeBinned(col *Column, nbins int, rightClosed bool) (*Column, error) {
	if !col.SType().IsNumeric() {
		return nil, dterrors.New(dterrors.ErrorTypeShape, "binning requires a numeric column").
			WithDetail("stype", col.SType().String())
	}
	if nbins < 0 {
		return nil, dterrors.New(dterrors.ErrorTypeShape, "negative bin count").
			WithDetail("nbins", nbins)
	}

	min, max, ok := col.MinMax()
	if !ok || math.IsInf(min, 0) || math.IsInf(max, 0) || nbins == 0 {
		return NewNAColumn(Int32, col.NRows()), nil
	}

	a, b, shift := cutCoeffs(min, max, nbins, rightClosed)
	return newColumn(&binnedColumn{child: col, a: a, b: b, shift: shift}), nil
}

// cutCoeffs derives the linear transform for binning.
//
// min == max puts every value in the single central bin:
//
//	a = 0;  b = nbins/2 * (1 ∓ epsilon);  shift = 0
//
// with the epsilon sign chosen by rightClosed. Otherwise values are scaled
// to [0, nbins*(1-epsilon)] for right-closed bins, or to the mirrored
// negative range [(epsilon-1)*nbins, 0] followed by a shift of nbins-1 for
// left-closed bins, recovering non-negative bin ids.
func cutCoeffs(min, max float64, nbins int, rightClosed bool) (a, b float64, shift int32) {
	if min == max {
		sign := 1.0
		if rightClosed {
			sign = -1.0
		}
		return 0, 0.5 * float64(nbins) * (1 + sign*float32Epsilon), 0
	}

	a = (1 - float32Epsilon) * float64(nbins) / (max - min)
	b = -a * min
	if !rightClosed {
		b += (float32Epsilon - 1) * float64(nbins)
		shift = int32(nbins) - 1
	}
	return a, b, shift
}

func (c *binnedColumn) SType() SType { return Int32 }
func (c *binnedColumn) NRows() int   { return c.child.NRows() }

func (c *binnedColumn) Get(row int) (interface{}, bool) {
	x, ok := c.child.Float64(row)
	if !ok {
		return nil, false
	}
	return int32(c.a*x+c.b) + c.shift, true
}

// Clone duplicates the transform scalars and shares the child column.
func (c *binnedColumn) Clone() ColumnImpl {
	return &binnedColumn{child: c.child, a: c.a, b: c.b, shift: c.shift}
}

func (c *binnedColumn) NChildren() int { return 1 }

func (c *binnedColumn) Child(i int) *Column {
	if i != 0 {
		panic("frame: binned column has exactly one child")
	}
	return c.child
}

func (c *binnedColumn) Stats() *Stats { return &c.stats }
