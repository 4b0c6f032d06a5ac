package frame

import (
	"math"
	"sync"

	"github.com/Rukhsaar305/datatable/pkg/metrics"
)

// Stats is a lazily computed, cached set of per-column aggregates. Each
// ColumnImpl instance owns exactly one Stats cell; the cache is populated
// by a single scan on first query and never shared across implementations,
// so replacing an implementation (cast, concatenation) implicitly
// invalidates it.
//
// The first-access scan runs under a mutex: concurrent first queries of
// the same uncached statistic block and observe one cached result.
type Stats struct {
	mu       sync.Mutex
	computed bool
	nValid   int
	min      float64
	max      float64
	hasRange bool
}

// MinMax returns the minimum and maximum over the column's valid numeric
// values as float64. ok is false when no valid numeric value exists (or
// the column is non-numeric). NaN values are excluded from the range;
// infinities are kept and surface to callers, which decide how to treat
// non-finite bounds.
func (s *Stats) MinMax(col ColumnImpl) (min, max float64, ok bool) {
	s.ensure(col)
	return s.min, s.max, s.hasRange
}

// ValidCount returns the number of valid elements in the column.
func (s *Stats) ValidCount(col ColumnImpl) int {
	s.ensure(col)
	return s.nValid
}

func (s *Stats) ensure(col ColumnImpl) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.computed {
		return
	}

	n := col.NRows()
	for row := 0; row < n; row++ {
		v, ok := col.Get(row)
		if !ok {
			continue
		}
		s.nValid++
		f, numeric := asFloat64(v)
		if !numeric || math.IsNaN(f) {
			continue
		}
		if !s.hasRange {
			s.min, s.max = f, f
			s.hasRange = true
			continue
		}
		if f < s.min {
			s.min = f
		}
		if f > s.max {
			s.max = f
		}
	}

	s.computed = true
	metrics.StatsComputations.Inc()
}
