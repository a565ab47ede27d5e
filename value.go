package fitdecode

import (
	"fmt"
	"time"
)

// Kind identifies which alternative of Value is populated.
type Kind int

const (
	KindNone Kind = iota
	KindInt
	KindUint
	KindFloat
	KindString
	KindBytes
	KindBool
	KindTime
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// Value is the dynamic value carried by a FieldData: one FIT field may
// render to an integer, a float, a string, raw bytes, a boolean, a time, or
// a tuple of any of those (when the field definition packs more than one
// base-type element), or may be entirely absent (the base type's
// invalid-value sentinel was seen on the wire).
type Value struct {
	kind  Kind
	i     int64
	u     uint64
	f     float64
	s     string
	b     []byte
	bl    bool
	t     time.Time
	tuple []Value
}

// None is the zero Value: Kind() == KindNone.
var None = Value{}

func IntValue(v int64) Value      { return Value{kind: KindInt, i: v} }
func UintValue(v uint64) Value    { return Value{kind: KindUint, u: v} }
func FloatValue(v float64) Value  { return Value{kind: KindFloat, f: v} }
func StringValue(v string) Value  { return Value{kind: KindString, s: v} }
func BytesValue(v []byte) Value   { return Value{kind: KindBytes, b: v} }
func BoolValue(v bool) Value      { return Value{kind: KindBool, bl: v} }
func TimeValue(v time.Time) Value { return Value{kind: KindTime, t: v} }

func TupleValue(vs []Value) Value {
	return Value{kind: KindTuple, tuple: vs}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNone() bool { return v.kind == KindNone }

func (v Value) Int() int64      { return v.i }
func (v Value) Uint() uint64    { return v.u }
func (v Value) Float() float64  { return v.f }
func (v Value) Str() string     { return v.s }
func (v Value) Bytes() []byte   { return v.b }
func (v Value) Bool() bool      { return v.bl }
func (v Value) Time() time.Time { return v.t }
func (v Value) Tuple() []Value  { return v.tuple }

// AsFloat64 returns v's numeric content as a float64, for use by scale/
// offset and unit-conversion arithmetic that doesn't care about the
// original integer width or signedness. ok is false for non-numeric kinds.
func (v Value) AsFloat64() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindUint:
		return float64(v.u), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// AsInt64 returns v's numeric content as an int64. ok is false for
// non-numeric kinds.
func (v Value) AsInt64() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindUint:
		return int64(v.u), true
	case KindFloat:
		return int64(v.f), true
	default:
		return 0, false
	}
}

// AsUint64 returns v's numeric content reinterpreted as a uint64, for
// bit-slicing component extraction. ok is false for non-numeric kinds.
func (v Value) AsUint64() (uint64, bool) {
	switch v.kind {
	case KindInt:
		return uint64(v.i), true
	case KindUint:
		return v.u, true
	case KindFloat:
		return uint64(v.f), true
	default:
		return 0, false
	}
}

// WithFloat64 returns a copy of v with its numeric payload replaced by f,
// preserving v's Kind when it is already a float, or promoting int/uint
// values to float (scale/offset application always yields a float once
// either scale or offset is non-trivial).
func (v Value) WithFloat64(f float64) Value {
	return FloatValue(f)
}

// Map applies fn to every element of a tuple, or to v itself if it is not a
// tuple. Used to implement "apply element-wise to tuples" per spec.
func (v Value) Map(fn func(Value) Value) Value {
	if v.kind != KindTuple {
		return fn(v)
	}
	out := make([]Value, len(v.tuple))
	for i, e := range v.tuple {
		out[i] = fn(e)
	}
	return TupleValue(out)
}

// Interface returns v's content as a plain Go value, suitable for
// formatting, JSON encoding via an outer struct, or user inspection.
func (v Value) Interface() any {
	switch v.kind {
	case KindNone:
		return nil
	case KindInt:
		return v.i
	case KindUint:
		return v.u
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBytes:
		return v.b
	case KindBool:
		return v.bl
	case KindTime:
		return v.t
	case KindTuple:
		out := make([]any, len(v.tuple))
		for i, e := range v.tuple {
			out[i] = e.Interface()
		}
		return out
	default:
		return nil
	}
}

func (v Value) String() string {
	return fmt.Sprintf("%s(%v)", v.kind, v.Interface())
}
