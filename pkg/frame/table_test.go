package frame

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rukhsaar305/datatable/pkg/dterrors"
)

func TestFromColumnsValidation(t *testing.T) {
	_, err := FromColumns([]string{"a"}, nil)
	assert.True(t, dterrors.IsType(err, dterrors.ErrorTypeShape))

	_, err = FromColumns(
		[]string{"a", "b"},
		[]*Column{
			NewInt32Column([]int32{1, 2}, nil),
			NewInt32Column([]int32{1}, nil),
		},
	)
	assert.True(t, dterrors.IsType(err, dterrors.ErrorTypeShape))

	_, err = FromColumns(
		[]string{"a", "a"},
		[]*Column{
			NewInt32Column([]int32{1}, nil),
			NewInt32Column([]int32{2}, nil),
		},
	)
	assert.True(t, dterrors.IsType(err, dterrors.ErrorTypeShape))
}

func TestTableCellThroughRowIndex(t *testing.T) {
	tbl, err := FromColumns([]string{"a"}, []*Column{
		NewInt64Column([]int64{10, 20, 30}, nil),
	})
	require.NoError(t, err)

	ri, err := ArrayRowIndex([]int{2, 0})
	require.NoError(t, err)
	require.NoError(t, tbl.ApplyRowIndex(ri))

	assert.Equal(t, 2, tbl.NRows())
	v, ok := tbl.Cell(0, 0)
	require.True(t, ok)
	assert.Equal(t, int64(30), v)
	v, ok = tbl.Cell(0, 1)
	require.True(t, ok)
	assert.Equal(t, int64(10), v)
}

func TestApplyRowIndexOutOfRange(t *testing.T) {
	tbl, err := FromColumns([]string{"a"}, []*Column{
		NewInt64Column([]int64{1, 2}, nil),
	})
	require.NoError(t, err)

	ri, err := ArrayRowIndex([]int{0, 2})
	require.NoError(t, err)
	err = tbl.ApplyRowIndex(ri)
	assert.True(t, dterrors.IsType(err, dterrors.ErrorTypeShape))
}

func TestApplyRowIndexComposes(t *testing.T) {
	tbl, err := FromColumns([]string{"a"}, []*Column{
		NewInt64Column([]int64{0, 10, 20, 30, 40}, nil),
	})
	require.NoError(t, err)

	// First view: rows 4,3,2,1 (reverse, dropping row 0).
	outer, err := ArrayRowIndex([]int{4, 3, 2, 1})
	require.NoError(t, err)
	require.NoError(t, tbl.ApplyRowIndex(outer))

	// Second view selects over the first: logical rows 0 and 2 of the
	// current view, i.e. physical rows 4 and 2.
	inner, err := ArrayRowIndex([]int{0, 2})
	require.NoError(t, err)
	require.NoError(t, tbl.ApplyRowIndex(inner))

	assert.Equal(t, 2, tbl.NRows())
	v, _ := tbl.Cell(0, 0)
	assert.Equal(t, int64(40), v)
	v, _ = tbl.Cell(0, 1)
	assert.Equal(t, int64(20), v)
}

func TestReifyAppliesRowIndex(t *testing.T) {
	tbl, err := FromColumns(
		[]string{"a", "b"},
		[]*Column{
			NewInt32Column([]int32{1, 2, 3, 4}, nil),
			NewStrColumn([]string{"w", "x", "y", "z"}, nil),
		},
	)
	require.NoError(t, err)

	ri, err := SliceRowIndex(3, -1, 3)
	require.NoError(t, err)
	require.NoError(t, tbl.ApplyRowIndex(ri))

	require.NoError(t, tbl.Reify(context.Background()))

	assert.False(t, tbl.HasRowIndex())
	assert.Equal(t, 3, tbl.NRows())

	// Reified columns are dense, not views.
	assert.Equal(t, 0, tbl.Column(0).NChildren())
	assert.Equal(t, 0, tbl.Column(1).NChildren())

	v, _ := tbl.Cell(0, 0)
	assert.Equal(t, int32(4), v)
	s, _ := tbl.Cell(1, 2)
	assert.Equal(t, "x", s)
}

func TestReifyIdempotent(t *testing.T) {
	tbl, err := FromColumns([]string{"a"}, []*Column{
		NewInt32Column([]int32{5, 6, 7}, nil),
	})
	require.NoError(t, err)

	ri, err := ArrayRowIndex([]int{2, 0})
	require.NoError(t, err)
	require.NoError(t, tbl.ApplyRowIndex(ri))

	ctx := context.Background()
	require.NoError(t, tbl.Reify(ctx))
	reified := tbl.Column(0)

	// Reifying again must be a no-op leaving the same columns in place.
	require.NoError(t, tbl.Reify(ctx))
	assert.Same(t, reified, tbl.Column(0))
	assert.Equal(t, 2, tbl.NRows())
}

func TestReifyWithoutRowIndexIsNoOp(t *testing.T) {
	col := NewInt32Column([]int32{1}, nil)
	tbl, err := FromColumns([]string{"a"}, []*Column{col})
	require.NoError(t, err)

	require.NoError(t, tbl.Reify(context.Background()))
	assert.Same(t, col, tbl.Column(0))
}

func TestFilterBuildsSelection(t *testing.T) {
	tbl, err := FromColumns([]string{"a"}, []*Column{
		NewFloat64Column([]float64{1, -2, 3, -4, 5}, nil),
	})
	require.NoError(t, err)

	ri, err := tbl.Filter(0, func(v interface{}, valid bool) bool {
		return valid && v.(float64) > 0
	})
	require.NoError(t, err)
	require.NoError(t, tbl.ApplyRowIndex(ri))
	require.NoError(t, tbl.Reify(context.Background()))

	assert.Equal(t, 3, tbl.NRows())
	got := make([]float64, 3)
	for i := range got {
		v, ok := tbl.Cell(0, i)
		require.True(t, ok)
		got[i] = v.(float64)
	}
	assert.Equal(t, []float64{1, 3, 5}, got)
}

func TestFilterColumnOutOfRange(t *testing.T) {
	tbl, err := FromColumns([]string{"a"}, []*Column{
		NewInt32Column([]int32{1}, nil),
	})
	require.NoError(t, err)

	_, err = tbl.Filter(1, func(interface{}, bool) bool { return true })
	assert.True(t, dterrors.IsType(err, dterrors.ErrorTypeShape))
}

func TestAddColumnValidation(t *testing.T) {
	tbl, err := FromColumns([]string{"a"}, []*Column{
		NewInt32Column([]int32{1, 2}, nil),
	})
	require.NoError(t, err)

	err = tbl.AddColumn("b", NewInt32Column([]int32{1}, nil))
	assert.True(t, dterrors.IsType(err, dterrors.ErrorTypeShape))

	err = tbl.AddColumn("a", NewInt32Column([]int32{3, 4}, nil))
	assert.True(t, dterrors.IsType(err, dterrors.ErrorTypeShape))

	ri, err := ArrayRowIndex([]int{0})
	require.NoError(t, err)
	require.NoError(t, tbl.ApplyRowIndex(ri))
	err = tbl.AddColumn("c", NewInt32Column([]int32{9}, nil))
	assert.True(t, dterrors.IsType(err, dterrors.ErrorTypeShape))
}

func TestSummaries(t *testing.T) {
	tbl, err := FromColumns(
		[]string{"n", "s"},
		[]*Column{
			NewFloat64Column([]float64{1, 2, 3}, []bool{true, true, false}),
			NewStrColumn([]string{"a", "b", "c"}, nil),
		},
	)
	require.NoError(t, err)

	sums := tbl.Summaries()
	require.Len(t, sums, 2)

	assert.Equal(t, "n", sums[0].Name)
	assert.Equal(t, "float64", sums[0].SType)
	assert.Equal(t, 2, sums[0].Valid)
	require.NotNil(t, sums[0].Min)
	assert.Equal(t, 1.0, *sums[0].Min)
	assert.Equal(t, 2.0, *sums[0].Max)

	assert.Equal(t, "str", sums[1].SType)
	assert.Equal(t, 3, sums[1].Valid)
	assert.Nil(t, sums[1].Min)
}
