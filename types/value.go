package types

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Kind identifies the variant held by a Value. Kinds are declared in the order
// Values of different kinds compare in.
type Kind uint8

const (
	// NoneKind is the kind of the absent Value
	NoneKind Kind = iota
	// BoolKind is the kind of boolean Values
	BoolKind
	// IntKind is the kind of int64 Values
	IntKind
	// FloatKind is the kind of float64 Values
	FloatKind
	// PointerKind is the kind of Values referencing a row Key
	PointerKind
	// StringKind is the kind of string Values
	StringKind
	// BytesKind is the kind of byte slice Values
	BytesKind
	// TupleKind is the kind of Values holding a sequence of Values
	TupleKind
	// IntArrayKind is the kind of Values holding an integer Array
	IntArrayKind
	// FloatArrayKind is the kind of Values holding a float Array
	FloatArrayKind
)

var kindNames = [...]string{
	NoneKind:       "None",
	BoolKind:       "Bool",
	IntKind:        "Int",
	FloatKind:      "Float",
	PointerKind:    "Pointer",
	StringKind:     "String",
	BytesKind:      "Bytes",
	TupleKind:      "Tuple",
	IntArrayKind:   "IntArray",
	FloatArrayKind: "FloatArray",
}

// String returns the name of this Kind
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is an immutable tagged union. The zero Value is None.
type Value struct {
	kind  Kind
	num   uint64 // bool, int64, float64 bits or Key
	str   string // string and bytes payloads
	tuple []Value
	array *Array
}

// None is the absent Value
var None = Value{}

// Bool creates a boolean Value
func Bool(b bool) Value {
	v := Value{kind: BoolKind}
	if b {
		v.num = 1
	}
	return v
}

// Int creates an integer Value
func Int(i int64) Value {
	return Value{kind: IntKind, num: uint64(i)}
}

// Float creates a float Value
func Float(f float64) Value {
	return Value{kind: FloatKind, num: math.Float64bits(f)}
}

// Pointer creates a Value referencing the row identified by k
func Pointer(k Key) Value {
	return Value{kind: PointerKind, num: uint64(k)}
}

// String creates a string Value
func String(s string) Value {
	return Value{kind: StringKind, str: s}
}

// Bytes creates a byte slice Value. The bytes are copied.
func Bytes(b []byte) Value {
	return Value{kind: BytesKind, str: string(b)}
}

// Tuple creates a Value holding a sequence of Values. The slice is retained, not copied.
func Tuple(values ...Value) Value {
	return Value{kind: TupleKind, tuple: values}
}

// ArrayValue wraps an Array in a Value. The Array is retained, not copied.
func ArrayValue(a *Array) Value {
	if a.IsInt() {
		return Value{kind: IntArrayKind, array: a}
	}
	return Value{kind: FloatArrayKind, array: a}
}

// IntArray creates a one-dimensional integer Array Value
func IntArray(data ...int64) Value {
	return ArrayValue(NewIntArray([]int{len(data)}, data))
}

// FloatArray creates a one-dimensional float Array Value
func FloatArray(data ...float64) Value {
	return ArrayValue(NewFloatArray([]int{len(data)}, data))
}

// Kind returns the variant held by this Value
func (v Value) Kind() Kind {
	return v.kind
}

// IsNone returns true iff this Value is absent
func (v Value) IsNone() bool {
	return v.kind == NoneKind
}

// AsBool returns the boolean held by this Value
func (v Value) AsBool() (bool, bool) {
	return v.num == 1, v.kind == BoolKind
}

// AsInt returns the integer held by this Value
func (v Value) AsInt() (int64, bool) {
	return int64(v.num), v.kind == IntKind
}

// AsFloat returns the float held by this Value
func (v Value) AsFloat() (float64, bool) {
	return math.Float64frombits(v.num), v.kind == FloatKind
}

// AsPointer returns the Key referenced by this Value
func (v Value) AsPointer() (Key, bool) {
	return Key(v.num), v.kind == PointerKind
}

// AsString returns the string held by this Value
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == StringKind
}

// AsBytes returns a copy of the bytes held by this Value
func (v Value) AsBytes() ([]byte, bool) {
	return []byte(v.str), v.kind == BytesKind
}

// AsTuple returns the sequence held by this Value. The result must not be modified.
func (v Value) AsTuple() ([]Value, bool) {
	return v.tuple, v.kind == TupleKind
}

// AsArray returns the Array held by this Value. The result must not be modified.
func (v Value) AsArray() (*Array, bool) {
	return v.array, v.kind == IntArrayKind || v.kind == FloatArrayKind
}

// String produces a string representation of this Value
func (v Value) String() string {
	switch v.kind {
	case NoneKind:
		return "None"
	case BoolKind:
		if v.num == 1 {
			return "True"
		}
		return "False"
	case IntKind:
		return strconv.FormatInt(int64(v.num), 10)
	case FloatKind:
		return fmt.Sprintf("%v", math.Float64frombits(v.num))
	case PointerKind:
		return Key(v.num).String()
	case StringKind:
		return strconv.Quote(v.str)
	case BytesKind:
		return fmt.Sprintf("b%q", v.str)
	case TupleKind:
		parts := make([]string, len(v.tuple))
		for i, e := range v.tuple {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return v.array.String()
	}
}

// Hash writes a canonical encoding of this Value to a hasher. Equal Values produce equal hashes.
func (v Value) Hash(hasher *xxhash.Digest) {
	var buf [9]byte
	buf[0] = byte(v.kind)
	switch v.kind {
	case NoneKind:
		hasher.Write(buf[:1])
	case FloatKind:
		binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(canonicalFloat(math.Float64frombits(v.num))))
		hasher.Write(buf[:])
	case BoolKind, IntKind, PointerKind:
		binary.LittleEndian.PutUint64(buf[1:], v.num)
		hasher.Write(buf[:])
	case StringKind, BytesKind:
		binary.LittleEndian.PutUint64(buf[1:], uint64(len(v.str)))
		hasher.Write(buf[:])
		hasher.Write([]byte(v.str))
	case TupleKind:
		binary.LittleEndian.PutUint64(buf[1:], uint64(len(v.tuple)))
		hasher.Write(buf[:])
		for _, e := range v.tuple {
			e.Hash(hasher)
		}
	default:
		// the binary encoding of arrays is already canonical, up to signed zeros and NaNs
		a := v.array
		if a.IsInt() {
			hasher.Write(appendArray(buf[:1], a))
			return
		}
		hasher.Write(appendArray(buf[:1], canonicalFloatArray(a)))
	}
}

// canonicalFloat maps every NaN to a single NaN and -0 to +0, matching the equality of Compare
func canonicalFloat(f float64) float64 {
	if math.IsNaN(f) {
		return math.NaN()
	}
	if f == 0 {
		return 0
	}
	return f
}

func canonicalFloatArray(a *Array) *Array {
	c := a.Clone()
	for i, f := range c.floats {
		c.floats[i] = canonicalFloat(f)
	}
	return c
}
