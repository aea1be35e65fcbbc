// Package value provides the tagged cell value stored in data sets and
// rendered into chart scripts.
package value

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrTypeMismatch is returned when a payload is requested as a type other
	// than the active alternative.
	ErrTypeMismatch = errors.New("value type mismatch")
	// ErrUnsupported is returned when converting a Go value that has no
	// corresponding alternative.
	ErrUnsupported = errors.New("unsupported value type")
)

// NullMarker is the text written for a null value.
const NullMarker = "'null'"

// Kind identifies the active alternative of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUint
	KindFloat32
	KindFloat64
	KindString
)

var kindNames = [...]string{
	KindNull:    "null",
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindInt:     "int",
	KindUint8:   "uint8",
	KindUint16:  "uint16",
	KindUint32:  "uint32",
	KindUint64:  "uint64",
	KindUint:    "uint",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindString:  "string",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Kinds lists every alternative in tag order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames))
	for k := range kindNames {
		out = append(out, Kind(k))
	}
	return out
}

// Scalar is the set of Go types a Value can hold.
type Scalar interface {
	int8 | int16 | int32 | int64 | int |
		uint8 | uint16 | uint32 | uint64 | uint |
		float32 | float64 | string
}

// Value is a single table cell. The zero Value is null.
//
// Signed integers live in i, unsigned integers in u, floats in f and text
// in s; kind selects which field is meaningful.
type Value struct {
	kind Kind
	i    int64
	u    uint64
	f    float64
	s    string
}

// Null returns the null value.
func Null() Value { return Value{} }

// Int returns an int value.
func Int(v int) Value { return Value{kind: KindInt, i: int64(v)} }

// Float64 returns a float64 value.
func Float64(v float64) Value { return Value{kind: KindFloat64, f: v} }

// String returns a text value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Of wraps a scalar in the Value alternative matching its Go type.
func Of[T Scalar](v T) Value {
	switch x := any(v).(type) {
	case int8:
		return Value{kind: KindInt8, i: int64(x)}
	case int16:
		return Value{kind: KindInt16, i: int64(x)}
	case int32:
		return Value{kind: KindInt32, i: int64(x)}
	case int64:
		return Value{kind: KindInt64, i: x}
	case int:
		return Value{kind: KindInt, i: int64(x)}
	case uint8:
		return Value{kind: KindUint8, u: uint64(x)}
	case uint16:
		return Value{kind: KindUint16, u: uint64(x)}
	case uint32:
		return Value{kind: KindUint32, u: uint64(x)}
	case uint64:
		return Value{kind: KindUint64, u: x}
	case uint:
		return Value{kind: KindUint, u: uint64(x)}
	case float32:
		return Value{kind: KindFloat32, f: float64(x)}
	case float64:
		return Value{kind: KindFloat64, f: x}
	case string:
		return Value{kind: KindString, s: x}
	}
	// unreachable: Scalar is closed
	return Value{}
}

// From converts an arbitrary Go value. It accepts nil, a Value, or any
// Scalar type.
func From(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case int8:
		return Of(x), nil
	case int16:
		return Of(x), nil
	case int32:
		return Of(x), nil
	case int64:
		return Of(x), nil
	case int:
		return Of(x), nil
	case uint8:
		return Of(x), nil
	case uint16:
		return Of(x), nil
	case uint32:
		return Of(x), nil
	case uint64:
		return Of(x), nil
	case uint:
		return Of(x), nil
	case float32:
		return Of(x), nil
	case float64:
		return Of(x), nil
	case string:
		return Of(x), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupported, v)
	}
}

// KindOf reports the alternative used for T.
func KindOf[T Scalar]() Kind {
	var zero T
	return Of(zero).kind
}

// Get returns the payload of v as T. It fails with ErrTypeMismatch unless
// the active alternative is exactly T.
func Get[T Scalar](v Value) (T, error) {
	var zero T
	want := KindOf[T]()
	if v.kind != want {
		return zero, fmt.Errorf("%w: holds %s, requested %s", ErrTypeMismatch, v.kind, want)
	}
	var out any
	switch want {
	case KindInt8:
		out = int8(v.i)
	case KindInt16:
		out = int16(v.i)
	case KindInt32:
		out = int32(v.i)
	case KindInt64:
		out = v.i
	case KindInt:
		out = int(v.i)
	case KindUint8:
		out = uint8(v.u)
	case KindUint16:
		out = uint16(v.u)
	case KindUint32:
		out = uint32(v.u)
	case KindUint64:
		out = v.u
	case KindUint:
		out = uint(v.u)
	case KindFloat32:
		out = float32(v.f)
	case KindFloat64:
		out = v.f
	case KindString:
		out = v.s
	}
	return out.(T), nil
}

// MustGet is like Get but panics on a mismatch. Intended for tests and
// for callers that already branched on Kind.
func MustGet[T Scalar](v Value) T {
	out, err := Get[T](v)
	if err != nil {
		panic(err)
	}
	return out
}

// Kind returns the active alternative.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null alternative.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsNumeric reports whether v holds an integer or floating-point payload.
func (v Value) IsNumeric() bool {
	return v.kind != KindNull && v.kind != KindString
}

// String renders v as script literal text: null as NullMarker, numbers as
// locale-independent decimals and text single-quoted without escaping.
// NaN and infinite floats have no script literal and render as NullMarker.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return NullMarker
	case KindInt8, KindInt16, KindInt32, KindInt64, KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindUint8, KindUint16, KindUint32, KindUint64, KindUint:
		return strconv.FormatUint(v.u, 10)
	case KindFloat32, KindFloat64:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return NullMarker
		}
		if v.kind == KindFloat32 {
			return strconv.FormatFloat(v.f, 'f', -1, 32)
		}
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindString:
		return "'" + v.s + "'"
	default:
		panic(fmt.Sprintf("value: no rendering for %s", v.kind))
	}
}

// Text returns the unquoted display text of v: the raw string for text
// values, an empty string for null and the literal form otherwise.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.s
	default:
		return v.String()
	}
}

// Compare orders values by alternative tag first and payload second. Values
// of different alternatives are never coerced to a common numeric type.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}
	switch a.kind {
	case KindNull:
		return 0
	case KindInt8, KindInt16, KindInt32, KindInt64, KindInt:
		return cmp.Compare(a.i, b.i)
	case KindUint8, KindUint16, KindUint32, KindUint64, KindUint:
		return cmp.Compare(a.u, b.u)
	case KindFloat32, KindFloat64:
		return cmp.Compare(a.f, b.f)
	case KindString:
		return cmp.Compare(a.s, b.s)
	default:
		panic(fmt.Sprintf("value: no ordering for %s", a.kind))
	}
}

// Equal reports whether a and b hold the same alternative and payload.
func Equal(a, b Value) bool {
	return a.kind == b.kind && Compare(a, b) == 0
}

// Less reports whether a orders before b.
func Less(a, b Value) bool {
	return Compare(a, b) < 0
}
