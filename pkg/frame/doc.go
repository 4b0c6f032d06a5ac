// Package frame implements an in-memory columnar table engine. It stores
// tabular data as independently-typed columns, supports zero-copy views
// (row permutations and selections) over those columns, and supports
// lazily-computed virtual columns derived from other columns without
// materializing them.
//
// # Columns
//
// A Column is a shared handle over a ColumnImpl, the polymorphic backing
// implementation. Three families of implementations exist:
//
//   - Materialized: dense typed buffers with bit-packed validity masks
//   - Constant-NA: no storage, every element reads as invalid
//   - Virtual: elements computed on demand from child columns plus
//     immutable parameters (row-index views, binning)
//
// All implementations expose the same contract — storage type, row count,
// element access with validity, cloning, child traversal, and a lazily
// populated statistics cache — so generic machinery (statistics, cloning,
// dependency walking) never needs to know the concrete variant. Any new
// virtual transform that implements ColumnImpl participates in the same
// evaluation machinery.
//
// # Views and reification
//
// A RowIndex is an immutable logical-to-physical row mapping: identity,
// slice, or arbitrary position array (selection masks build through
// roaring bitmaps). Applying one to a DataTable marks a pending view;
// Reify materializes the view into dense columns and clears it.
// Reification is idempotent.
//
// # Concatenation
//
// Rbind vertically concatenates tables, reconciling differing column sets
// through an alignment map, filling absent columns with NA segments, and
// promoting mismatched segment types to a minimal common storage type.
// Concatenation never narrows values silently, and a failed Rbind leaves
// the target table unchanged: all destination columns are built before
// any table state is swapped.
//
// # Binning
//
// MakeBinned is the representative virtual transform: it maps a numeric
// column into integer bin identifiers using a two-point linear transform
// derived from the child's cached min/max statistics, computing each
// element on demand.
//
// Basic usage:
//
//	age := frame.NewInt32Column([]int32{23, 41, 35, 58}, nil)
//	t, _ := frame.FromColumns([]string{"age"}, []*frame.Column{age})
//
//	binned, _ := frame.MakeBinned(age, 4, true)
//	if v, ok := binned.Get(0); ok {
//	    fmt.Println("bin:", v)
//	}
package frame
