package frame

import (
	"github.com/Rukhsaar305/datatable/pkg/dterrors"
)

// SType identifies the storage type of a column.
type SType uint8

const (
	// Void is the storage type of all-NA columns with no settled type.
	Void SType = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	Str
)

var stypeNames = map[SType]string{
	Void:    "void",
	Bool:    "bool",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Float32: "float32",
	Float64: "float64",
	Str:     "str",
}

func (s SType) String() string {
	if name, ok := stypeNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsNumeric reports whether the type participates in arithmetic promotion.
// Bool counts as numeric: it promotes to integers.
func (s SType) IsNumeric() bool {
	return s >= Bool && s <= Float64
}

// IsFloat reports whether the type is a floating storage type.
func (s SType) IsFloat() bool {
	return s == Float32 || s == Float64
}

// Size returns the per-element storage width in bytes. Str reports the
// string header size; Void and Bool report 1.
func (s SType) Size() int {
	switch s {
	case Int16:
		return 2
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	case Str:
		return 16
	default:
		return 1
	}
}

// Promote returns the minimal common storage type for two input types.
// Void promotes to anything; Bool promotes to any integer; mixed
// integer/float combinations widen so that no value can be silently
// truncated. Str unifies only with Str or Void.
func Promote(a, b SType) (SType, error) {
	if a == b {
		return a, nil
	}
	if a == Void {
		return b, nil
	}
	if b == Void {
		return a, nil
	}
	if a == Str || b == Str {
		return Void, dterrors.New(dterrors.ErrorTypeShape, "incompatible storage types").
			WithDetail("left", a.String()).
			WithDetail("right", b.String())
	}

	// Both numeric from here on.
	if a.IsFloat() == b.IsFloat() {
		if a > b {
			return a, nil
		}
		return b, nil
	}

	// Mixed integer/float: float32 keeps 24 bits of mantissa, enough for
	// int16 and narrower; anything wider needs float64.
	intType, floatType := a, b
	if a.IsFloat() {
		intType, floatType = b, a
	}
	if floatType == Float64 || intType > Int16 {
		return Float64, nil
	}
	return Float32, nil
}

// PromoteAll folds Promote over a list of types. An empty list yields Void.
func PromoteAll(stypes []SType) (SType, error) {
	result := Void
	for _, s := range stypes {
		var err error
		result, err = Promote(result, s)
		if err != nil {
			return Void, err
		}
	}
	return result, nil
}
