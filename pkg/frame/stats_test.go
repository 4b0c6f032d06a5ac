package frame

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsMinMax(t *testing.T) {
	col := NewFloat64Column([]float64{3.5, -1.25, 9.0, 4.0}, nil)
	min, max, ok := col.MinMax()
	require.True(t, ok)
	assert.Equal(t, -1.25, min)
	assert.Equal(t, 9.0, max)
	assert.Equal(t, 4, col.ValidCount())
}

func TestStatsSkipsInvalidAndNaN(t *testing.T) {
	col := NewFloat64Column(
		[]float64{100.0, 2.0, math.NaN(), 5.0},
		[]bool{false, true, true, true},
	)
	min, max, ok := col.MinMax()
	require.True(t, ok)
	assert.Equal(t, 2.0, min)
	assert.Equal(t, 5.0, max)
	assert.Equal(t, 3, col.ValidCount())
}

func TestStatsKeepsInfinities(t *testing.T) {
	col := NewFloat64Column([]float64{1.0, math.Inf(1)}, nil)
	_, max, ok := col.MinMax()
	require.True(t, ok)
	assert.True(t, math.IsInf(max, 1))
}

func TestStatsAllInvalid(t *testing.T) {
	col := NewInt32Column([]int32{1, 2}, []bool{false, false})
	_, _, ok := col.MinMax()
	assert.False(t, ok)
	assert.Equal(t, 0, col.ValidCount())
}

func TestStatsNonNumericHasNoRange(t *testing.T) {
	col := NewStrColumn([]string{"x", "y"}, nil)
	_, _, ok := col.MinMax()
	assert.False(t, ok)
	assert.Equal(t, 2, col.ValidCount())
}

func TestStatsVirtualColumn(t *testing.T) {
	col := NewInt32Column([]int32{5, 1, 9, 3}, nil)
	ri, err := ArrayRowIndex([]int{1, 2})
	require.NoError(t, err)
	view, err := col.Extract(ri)
	require.NoError(t, err)

	min, max, ok := view.MinMax()
	require.True(t, ok)
	assert.Equal(t, 1.0, min)
	assert.Equal(t, 9.0, max)
}

// Concurrent first access to the same uncached statistic must settle on
// one cached value.
func TestStatsConcurrentFirstAccess(t *testing.T) {
	col := NewFloat64Column([]float64{4.0, 8.0, -2.0}, nil)

	const goroutines = 16
	results := make([][2]float64, goroutines)
	oks := make([]bool, goroutines)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			min, max, ok := col.MinMax()
			results[g] = [2]float64{min, max}
			oks[g] = ok
		}()
	}
	wg.Wait()

	for g, r := range results {
		require.True(t, oks[g])
		assert.Equal(t, [2]float64{-2.0, 8.0}, r)
	}
}

func TestStatsFreshAfterCast(t *testing.T) {
	col := NewInt32Column([]int32{1, 2}, nil)
	before := col.Stats()
	_, _, ok := col.MinMax()
	require.True(t, ok)

	require.NoError(t, col.CastInPlace(Int64))
	assert.NotSame(t, before, col.Stats())
}
