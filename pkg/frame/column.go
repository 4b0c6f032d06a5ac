package frame

import (
	"github.com/Rukhsaar305/datatable/pkg/dterrors"
)

// ColumnImpl is the contract every column implementation satisfies:
// materialized buffers, constant-NA columns, and virtual (computed)
// columns all expose the same element-access, traversal, and statistics
// surface. A virtual implementation must be a pure function of its
// children's current values and its own immutable parameters; it never
// mutates a child.
type ColumnImpl interface {
	// SType returns the storage type of the elements.
	SType() SType
	// NRows returns the number of rows.
	NRows() int
	// Get returns the element at the given row and whether it is valid.
	// Invalid elements return a nil value.
	Get(row int) (interface{}, bool)
	// Clone returns a new implementation with identical element-access
	// results. Underlying buffers and child columns are shared, never
	// deep-copied; the clone owns a fresh statistics cache.
	Clone() ColumnImpl
	// NChildren returns the number of child columns of a virtual
	// implementation; zero for leaf implementations.
	NChildren() int
	// Child returns the i-th child column. Panics if i >= NChildren.
	Child(i int) *Column
	// Stats returns the implementation's statistics cache. The cache is
	// owned by this instance and never shared across implementations.
	Stats() *Stats
}

// Column is a shared handle over a ColumnImpl. Multiple handles may share
// one implementation; the handle itself is immutable from the outside
// except through CastInPlace, which rebinds the implementation while
// preserving handle identity.
type Column struct {
	impl ColumnImpl
}

func newColumn(impl ColumnImpl) *Column {
	return &Column{impl: impl}
}

// SType returns the storage type of the column.
func (c *Column) SType() SType { return c.impl.SType() }

// NRows returns the number of rows.
func (c *Column) NRows() int { return c.impl.NRows() }

// Get returns the element at the given row and whether it is valid.
func (c *Column) Get(row int) (interface{}, bool) { return c.impl.Get(row) }

// Stats returns the column's statistics cache.
func (c *Column) Stats() *Stats { return c.impl.Stats() }

// NChildren returns the number of child columns backing this column.
func (c *Column) NChildren() int { return c.impl.NChildren() }

// Child returns the i-th child column.
func (c *Column) Child(i int) *Column { return c.impl.Child(i) }

// Clone returns a new handle over a cloned implementation. Buffers and
// child columns are shared with the original.
func (c *Column) Clone() *Column {
	return newColumn(c.impl.Clone())
}

// MinMax returns the column's cached minimum and maximum as float64,
// computing them lazily on first access. ok is false when the column has
// no valid numeric values.
func (c *Column) MinMax() (min, max float64, ok bool) {
	return c.impl.Stats().MinMax(c.impl)
}

// ValidCount returns the number of valid elements, computed lazily.
func (c *Column) ValidCount() int {
	return c.impl.Stats().ValidCount(c.impl)
}

// Float64 reads the element at row converted to float64. ok is false for
// invalid elements. Panics for non-numeric storage types.
func (c *Column) Float64(row int) (float64, bool) {
	v, ok := c.impl.Get(row)
	if !ok {
		return 0, false
	}
	f, numeric := asFloat64(v)
	if !numeric {
		panic("frame: Float64 access on non-numeric column")
	}
	return f, true
}

// Int64 reads the element at row converted to int64. ok is false for
// invalid elements. Panics for non-numeric storage types.
func (c *Column) Int64(row int) (int64, bool) {
	v, ok := c.impl.Get(row)
	if !ok {
		return 0, false
	}
	i, numeric := asInt64(v)
	if !numeric {
		panic("frame: Int64 access on non-numeric column")
	}
	return i, true
}

// Str reads the element at row as a string. ok is false for invalid
// elements. Panics for non-string storage types.
func (c *Column) Str(row int) (string, bool) {
	v, ok := c.impl.Get(row)
	if !ok {
		return "", false
	}
	s, isStr := v.(string)
	if !isStr {
		panic("frame: Str access on non-string column")
	}
	return s, true
}

// Extract returns a new column representing this column read through the
// given row index, without copying the underlying storage. The result
// holds a reference to this column; it stays valid only as long as the
// referenced data does not change. A nil row index returns the column
// itself.
func (c *Column) Extract(ri *RowIndex) (*Column, error) {
	if ri == nil {
		return c, nil
	}
	if err := ri.Validate(c.NRows()); err != nil {
		return nil, err
	}
	return newColumn(&viewColumn{child: c, ri: ri}), nil
}

// Cast returns a new materialized column with elements converted to the
// requested storage type. Conversions never narrow silently: only
// promotions that preserve every representable value are allowed.
func (c *Column) Cast(to SType) (*Column, error) {
	if to == c.SType() {
		return c, nil
	}
	if to == Void {
		return NewNAColumn(Void, c.NRows()), nil
	}
	common, err := Promote(c.SType(), to)
	if err != nil {
		return nil, dterrors.Wrap(err, dterrors.ErrorTypeCast, "unsupported cast").
			WithDetail("from", c.SType().String()).
			WithDetail("to", to.String())
	}
	if common != to {
		return nil, dterrors.New(dterrors.ErrorTypeCast, "narrowing cast would lose data").
			WithDetail("from", c.SType().String()).
			WithDetail("to", to.String())
	}

	n := c.NRows()
	b := newDenseBuilder(to, n)
	for row := 0; row < n; row++ {
		v, ok := c.impl.Get(row)
		if err := b.append(v, ok); err != nil {
			return nil, err
		}
	}
	impl, err := b.finish()
	if err != nil {
		return nil, err
	}
	return newColumn(impl), nil
}

// CastInPlace converts the column to the requested storage type, rebinding
// the internal implementation while preserving the identity of the handle.
// Any cached statistics are discarded with the old implementation.
func (c *Column) CastInPlace(to SType) error {
	casted, err := c.Cast(to)
	if err != nil {
		return err
	}
	c.impl = casted.impl
	return nil
}

// materialize returns a column backed by dense storage with the same
// storage type and element values. Materialized and constant-NA columns
// are returned as-is.
func (c *Column) materialize() (*Column, error) {
	if c.impl.NChildren() == 0 {
		return c, nil
	}
	if c.SType() == Void {
		return NewNAColumn(Void, c.NRows()), nil
	}

	n := c.NRows()
	b := newDenseBuilder(c.SType(), n)
	for row := 0; row < n; row++ {
		v, ok := c.impl.Get(row)
		if err := b.append(v, ok); err != nil {
			return nil, err
		}
	}
	impl, err := b.finish()
	if err != nil {
		return nil, err
	}
	return newColumn(impl), nil
}

// asFloat64 converts any numeric element value to float64.
func asFloat64(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case int16:
		return float64(x), true
	case int8:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// asInt64 converts any integer-valued element to int64. Floats convert
// only when they carry an integral value; the bool return is false for
// non-numeric values, not for fractional floats, which truncate toward
// zero as in the storage contract.
func asInt64(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int32:
		return int64(x), true
	case int16:
		return int64(x), true
	case int8:
		return int64(x), true
	case float64:
		return int64(x), true
	case float32:
		return int64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
