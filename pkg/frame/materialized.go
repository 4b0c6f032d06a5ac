package frame

import (
	"github.com/Rukhsaar305/datatable/pkg/dterrors"
)

// validity is a bit-packed validity mask: 64 rows per uint64, a set bit
// meaning the row holds a valid value. A nil *validity means every row is
// valid.
type validity struct {
	words []uint64
}

func newValidity(n int) *validity {
	return &validity{words: make([]uint64, (n+63)/64)}
}

func (v *validity) get(i int) bool {
	return v.words[i/64]&(1<<(i%64)) != 0
}

func (v *validity) set(i int) {
	v.words[i/64] |= 1 << (i % 64)
}

// validityFromBools packs a per-row validity slice, returning nil when
// every row is valid (the common case costs no memory).
func validityFromBools(valid []bool) *validity {
	allValid := true
	for _, ok := range valid {
		if !ok {
			allValid = false
			break
		}
	}
	if allValid {
		return nil
	}
	v := newValidity(len(valid))
	for i, ok := range valid {
		if ok {
			v.set(i)
		}
	}
	return v
}

// numeric constrains the element types backed by dense numeric buffers.
type numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// numColumn is a materialized column over a dense numeric buffer. The
// buffer is owned jointly by every handle and clone referencing it and is
// treated as immutable.
type numColumn[T numeric] struct {
	stype SType
	data  []T
	valid *validity
	stats Stats
}

func (c *numColumn[T]) SType() SType { return c.stype }
func (c *numColumn[T]) NRows() int   { return len(c.data) }

func (c *numColumn[T]) Get(row int) (interface{}, bool) {
	if c.valid != nil && !c.valid.get(row) {
		return nil, false
	}
	return c.data[row], true
}

func (c *numColumn[T]) Clone() ColumnImpl {
	return &numColumn[T]{stype: c.stype, data: c.data, valid: c.valid}
}

func (c *numColumn[T]) NChildren() int { return 0 }
func (c *numColumn[T]) Child(int) *Column {
	panic("frame: materialized column has no children")
}
func (c *numColumn[T]) Stats() *Stats { return &c.stats }

// boolColumn stores booleans bit-packed, 64 values per word, alongside a
// validity mask of the same shape.
type boolColumn struct {
	words []uint64
	count int
	valid *validity
	stats Stats
}

func (c *boolColumn) SType() SType { return Bool }
func (c *boolColumn) NRows() int   { return c.count }

func (c *boolColumn) Get(row int) (interface{}, bool) {
	if c.valid != nil && !c.valid.get(row) {
		return nil, false
	}
	return c.words[row/64]&(1<<(row%64)) != 0, true
}

func (c *boolColumn) Clone() ColumnImpl {
	return &boolColumn{words: c.words, count: c.count, valid: c.valid}
}

func (c *boolColumn) NChildren() int { return 0 }
func (c *boolColumn) Child(int) *Column {
	panic("frame: materialized column has no children")
}
func (c *boolColumn) Stats() *Stats { return &c.stats }

// strColumn stores string values in a dense slice.
type strColumn struct {
	values []string
	valid  *validity
	stats  Stats
}

func (c *strColumn) SType() SType { return Str }
func (c *strColumn) NRows() int   { return len(c.values) }

func (c *strColumn) Get(row int) (interface{}, bool) {
	if c.valid != nil && !c.valid.get(row) {
		return nil, false
	}
	return c.values[row], true
}

func (c *strColumn) Clone() ColumnImpl {
	return &strColumn{values: c.values, valid: c.valid}
}

func (c *strColumn) NChildren() int { return 0 }
func (c *strColumn) Child(int) *Column {
	panic("frame: materialized column has no children")
}
func (c *strColumn) Stats() *Stats { return &c.stats }

func newNumColumn[T numeric](stype SType, data []T, valid []bool) *Column {
	var v *validity
	if valid != nil {
		v = validityFromBools(valid)
	}
	return newColumn(&numColumn[T]{stype: stype, data: data, valid: v})
}

// NewInt8Column creates a materialized int8 column over the given buffer.
// The column takes ownership of the slices; valid may be nil for all-valid.
func NewInt8Column(data []int8, valid []bool) *Column {
	return newNumColumn(Int8, data, valid)
}

// NewInt16Column creates a materialized int16 column over the given buffer.
func NewInt16Column(data []int16, valid []bool) *Column {
	return newNumColumn(Int16, data, valid)
}

// NewInt32Column creates a materialized int32 column over the given buffer.
func NewInt32Column(data []int32, valid []bool) *Column {
	return newNumColumn(Int32, data, valid)
}

// NewInt64Column creates a materialized int64 column over the given buffer.
func NewInt64Column(data []int64, valid []bool) *Column {
	return newNumColumn(Int64, data, valid)
}

// NewFloat32Column creates a materialized float32 column over the given buffer.
func NewFloat32Column(data []float32, valid []bool) *Column {
	return newNumColumn(Float32, data, valid)
}

// NewFloat64Column creates a materialized float64 column over the given buffer.
func NewFloat64Column(data []float64, valid []bool) *Column {
	return newNumColumn(Float64, data, valid)
}

// NewBoolColumn creates a materialized, bit-packed boolean column.
func NewBoolColumn(values []bool, valid []bool) *Column {
	words := make([]uint64, (len(values)+63)/64)
	for i, b := range values {
		if b {
			words[i/64] |= 1 << (i % 64)
		}
	}
	var v *validity
	if valid != nil {
		v = validityFromBools(valid)
	}
	return newColumn(&boolColumn{words: words, count: len(values), valid: v})
}

// NewStrColumn creates a materialized string column over the given slice.
func NewStrColumn(values []string, valid []bool) *Column {
	var v *validity
	if valid != nil {
		v = validityFromBools(valid)
	}
	return newColumn(&strColumn{values: values, valid: v})
}

// denseBuilder accumulates element values into dense storage of a fixed
// target type, converting from whatever representation the source columns
// report. It backs casting, reification, and concatenation output.
type denseBuilder struct {
	stype SType
	i8    []int8
	i16   []int16
	i32   []int32
	i64   []int64
	f32   []float32
	f64   []float64
	bools []bool
	strs  []string
	valid []bool
	anyNA bool
}

func newDenseBuilder(stype SType, capacity int) *denseBuilder {
	b := &denseBuilder{stype: stype, valid: make([]bool, 0, capacity)}
	switch stype {
	case Bool:
		b.bools = make([]bool, 0, capacity)
	case Int8:
		b.i8 = make([]int8, 0, capacity)
	case Int16:
		b.i16 = make([]int16, 0, capacity)
	case Int32:
		b.i32 = make([]int32, 0, capacity)
	case Int64:
		b.i64 = make([]int64, 0, capacity)
	case Float32:
		b.f32 = make([]float32, 0, capacity)
	case Float64:
		b.f64 = make([]float64, 0, capacity)
	case Str:
		b.strs = make([]string, 0, capacity)
	}
	return b
}

func (b *denseBuilder) appendNA() {
	b.anyNA = true
	b.valid = append(b.valid, false)
	switch b.stype {
	case Bool:
		b.bools = append(b.bools, false)
	case Int8:
		b.i8 = append(b.i8, 0)
	case Int16:
		b.i16 = append(b.i16, 0)
	case Int32:
		b.i32 = append(b.i32, 0)
	case Int64:
		b.i64 = append(b.i64, 0)
	case Float32:
		b.f32 = append(b.f32, 0)
	case Float64:
		b.f64 = append(b.f64, 0)
	case Str:
		b.strs = append(b.strs, "")
	}
}

func (b *denseBuilder) append(v interface{}, ok bool) error {
	if !ok {
		b.appendNA()
		return nil
	}
	switch b.stype {
	case Bool:
		bv, isBool := v.(bool)
		if !isBool {
			return b.conversionError(v)
		}
		b.bools = append(b.bools, bv)
	case Int8:
		iv, numeric := asInt64(v)
		if !numeric {
			return b.conversionError(v)
		}
		b.i8 = append(b.i8, int8(iv))
	case Int16:
		iv, numeric := asInt64(v)
		if !numeric {
			return b.conversionError(v)
		}
		b.i16 = append(b.i16, int16(iv))
	case Int32:
		iv, numeric := asInt64(v)
		if !numeric {
			return b.conversionError(v)
		}
		b.i32 = append(b.i32, int32(iv))
	case Int64:
		iv, numeric := asInt64(v)
		if !numeric {
			return b.conversionError(v)
		}
		b.i64 = append(b.i64, iv)
	case Float32:
		fv, numeric := asFloat64(v)
		if !numeric {
			return b.conversionError(v)
		}
		b.f32 = append(b.f32, float32(fv))
	case Float64:
		fv, numeric := asFloat64(v)
		if !numeric {
			return b.conversionError(v)
		}
		b.f64 = append(b.f64, fv)
	case Str:
		sv, isStr := v.(string)
		if !isStr {
			return b.conversionError(v)
		}
		b.strs = append(b.strs, sv)
	default:
		return dterrors.New(dterrors.ErrorTypeInternal, "dense builder with void target type")
	}
	b.valid = append(b.valid, true)
	return nil
}

func (b *denseBuilder) conversionError(v interface{}) error {
	return dterrors.Newf(dterrors.ErrorTypeCast, "cannot store %T as %s", v, b.stype)
}

func (b *denseBuilder) finish() (ColumnImpl, error) {
	var valid []bool
	if b.anyNA {
		valid = b.valid
	}
	var v *validity
	if valid != nil {
		v = validityFromBools(valid)
	}
	switch b.stype {
	case Bool:
		words := make([]uint64, (len(b.bools)+63)/64)
		for i, bv := range b.bools {
			if bv {
				words[i/64] |= 1 << (i % 64)
			}
		}
		return &boolColumn{words: words, count: len(b.bools), valid: v}, nil
	case Int8:
		return &numColumn[int8]{stype: Int8, data: b.i8, valid: v}, nil
	case Int16:
		return &numColumn[int16]{stype: Int16, data: b.i16, valid: v}, nil
	case Int32:
		return &numColumn[int32]{stype: Int32, data: b.i32, valid: v}, nil
	case Int64:
		return &numColumn[int64]{stype: Int64, data: b.i64, valid: v}, nil
	case Float32:
		return &numColumn[float32]{stype: Float32, data: b.f32, valid: v}, nil
	case Float64:
		return &numColumn[float64]{stype: Float64, data: b.f64, valid: v}, nil
	case Str:
		return &strColumn{values: b.strs, valid: v}, nil
	default:
		return nil, dterrors.New(dterrors.ErrorTypeInternal, "dense builder with void target type")
	}
}
