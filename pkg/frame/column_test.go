package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rukhsaar305/datatable/pkg/dterrors"
)

func TestMaterializedColumnAccess(t *testing.T) {
	col := NewInt32Column([]int32{10, 20, 30}, []bool{true, false, true})
	assert.Equal(t, Int32, col.SType())
	assert.Equal(t, 3, col.NRows())
	assert.Equal(t, 0, col.NChildren())

	v, ok := col.Get(0)
	require.True(t, ok)
	assert.Equal(t, int32(10), v)

	_, ok = col.Get(1)
	assert.False(t, ok)

	f, ok := col.Float64(2)
	require.True(t, ok)
	assert.Equal(t, 30.0, f)
}

func TestBoolColumnBitPacking(t *testing.T) {
	values := make([]bool, 130)
	valid := make([]bool, 130)
	for i := range values {
		values[i] = i%3 == 0
		valid[i] = i%5 != 0
	}
	col := NewBoolColumn(values, valid)
	assert.Equal(t, Bool, col.SType())
	assert.Equal(t, 130, col.NRows())

	for i := range values {
		v, ok := col.Get(i)
		if i%5 == 0 {
			assert.False(t, ok, "row %d", i)
			continue
		}
		require.True(t, ok, "row %d", i)
		assert.Equal(t, i%3 == 0, v, "row %d", i)
	}
}

func TestStrColumnAccess(t *testing.T) {
	col := NewStrColumn([]string{"a", "", "c"}, []bool{true, false, true})
	s, ok := col.Str(0)
	require.True(t, ok)
	assert.Equal(t, "a", s)
	_, ok = col.Str(1)
	assert.False(t, ok)
}

func TestNAColumn(t *testing.T) {
	col := NewNAColumn(Int32, 4)
	assert.Equal(t, Int32, col.SType())
	assert.Equal(t, 4, col.NRows())
	for i := 0; i < 4; i++ {
		_, ok := col.Get(i)
		assert.False(t, ok)
	}
	assert.Equal(t, 0, col.ValidCount())
}

func TestExtractView(t *testing.T) {
	col := NewFloat64Column([]float64{1.5, 2.5, 3.5, 4.5}, nil)
	ri, err := ArrayRowIndex([]int{3, 1, 1})
	require.NoError(t, err)

	view, err := col.Extract(ri)
	require.NoError(t, err)
	assert.Equal(t, 3, view.NRows())
	assert.Equal(t, Float64, view.SType())

	// The view holds a reference to the source, not a copy.
	assert.Equal(t, 1, view.NChildren())
	assert.Same(t, col, view.Child(0))

	got := make([]float64, 3)
	for i := range got {
		v, ok := view.Float64(i)
		require.True(t, ok)
		got[i] = v
	}
	assert.Equal(t, []float64{4.5, 2.5, 2.5}, got)
}

func TestExtractNilRowIndex(t *testing.T) {
	col := NewInt64Column([]int64{1, 2}, nil)
	same, err := col.Extract(nil)
	require.NoError(t, err)
	assert.Same(t, col, same)
}

func TestExtractMalformedRowIndex(t *testing.T) {
	col := NewInt64Column([]int64{1, 2}, nil)
	ri, err := ArrayRowIndex([]int{0, 5})
	require.NoError(t, err)

	_, err = col.Extract(ri)
	require.Error(t, err)
	assert.True(t, dterrors.IsType(err, dterrors.ErrorTypeShape))
}

func TestCastWidening(t *testing.T) {
	col := NewInt32Column([]int32{1, 2, 3}, []bool{true, false, true})
	casted, err := col.Cast(Float64)
	require.NoError(t, err)
	assert.Equal(t, Float64, casted.SType())

	v, ok := casted.Get(0)
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	_, ok = casted.Get(1)
	assert.False(t, ok)
}

func TestCastNarrowingRejected(t *testing.T) {
	col := NewFloat64Column([]float64{1.5}, nil)
	_, err := col.Cast(Int32)
	require.Error(t, err)
	assert.True(t, dterrors.IsType(err, dterrors.ErrorTypeCast))
}

func TestCastInPlacePreservesHandle(t *testing.T) {
	col := NewInt16Column([]int16{7, 8}, nil)
	require.NoError(t, col.CastInPlace(Int64))
	assert.Equal(t, Int64, col.SType())
	v, ok := col.Get(1)
	require.True(t, ok)
	assert.Equal(t, int64(8), v)
}

func TestCloneSharesStorage(t *testing.T) {
	data := []int64{1, 2, 3}
	col := NewInt64Column(data, nil)
	clone := col.Clone()

	for i := range data {
		want, _ := col.Get(i)
		got, _ := clone.Get(i)
		assert.Equal(t, want, got)
	}

	// Clones own fresh statistics caches.
	assert.NotSame(t, col.Stats(), clone.Stats())
}
