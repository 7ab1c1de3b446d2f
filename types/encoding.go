package types

import (
	"encoding/binary"
	"fmt"
	"math"
)

// MarshalBinary serializes this Value. The encoding is a kind byte followed by
// a little-endian payload, recursively for tuples.
func (v Value) MarshalBinary() ([]byte, error) {
	return appendValue(nil, v), nil
}

// UnmarshalBinary deserializes a Value produced by MarshalBinary
func (v *Value) UnmarshalBinary(data []byte) error {
	d := decoder{buf: data}
	val, err := d.value()
	if err != nil {
		return err
	}
	if len(d.buf) != 0 {
		return fmt.Errorf("%d trailing bytes after value", len(d.buf))
	}
	*v = val
	return nil
}

func appendValue(buf []byte, v Value) []byte {
	buf = append(buf, byte(v.kind))
	switch v.kind {
	case NoneKind:
	case BoolKind, IntKind, FloatKind, PointerKind:
		buf = binary.LittleEndian.AppendUint64(buf, v.num)
	case StringKind, BytesKind:
		buf = binary.AppendUvarint(buf, uint64(len(v.str)))
		buf = append(buf, v.str...)
	case TupleKind:
		buf = binary.AppendUvarint(buf, uint64(len(v.tuple)))
		for _, e := range v.tuple {
			buf = appendValue(buf, e)
		}
	default:
		buf = appendArray(buf, v.array)
	}
	return buf
}

func appendArray(buf []byte, a *Array) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(a.shape)))
	for _, d := range a.shape {
		buf = binary.AppendUvarint(buf, uint64(d))
	}
	if a.IsInt() {
		for _, e := range a.ints {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(e))
		}
		return buf
	}
	for _, e := range a.floats {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(e))
	}
	return buf
}

type decoder struct {
	buf []byte
}

func (d *decoder) uvarint() (uint64, error) {
	n, read := binary.Uvarint(d.buf)
	if read <= 0 {
		return 0, fmt.Errorf("malformed length in encoded value")
	}
	d.buf = d.buf[read:]
	return n, nil
}

func (d *decoder) uint64() (uint64, error) {
	if len(d.buf) < 8 {
		return 0, fmt.Errorf("truncated encoded value")
	}
	n := binary.LittleEndian.Uint64(d.buf)
	d.buf = d.buf[8:]
	return n, nil
}

func (d *decoder) value() (Value, error) {
	if len(d.buf) == 0 {
		return None, fmt.Errorf("truncated encoded value")
	}
	kind := Kind(d.buf[0])
	d.buf = d.buf[1:]
	switch kind {
	case NoneKind:
		return None, nil
	case BoolKind, IntKind, FloatKind, PointerKind:
		n, err := d.uint64()
		if err != nil {
			return None, err
		}
		if kind == BoolKind && n > 1 {
			return None, fmt.Errorf("invalid boolean payload %d", n)
		}
		return Value{kind: kind, num: n}, nil
	case StringKind, BytesKind:
		n, err := d.uvarint()
		if err != nil {
			return None, err
		}
		if uint64(len(d.buf)) < n {
			return None, fmt.Errorf("truncated encoded value")
		}
		s := string(d.buf[:n])
		d.buf = d.buf[n:]
		return Value{kind: kind, str: s}, nil
	case TupleKind:
		n, err := d.uvarint()
		if err != nil {
			return None, err
		}
		if n > uint64(len(d.buf)) {
			return None, fmt.Errorf("tuple length %d exceeds encoded data", n)
		}
		tuple := make([]Value, n)
		for i := range tuple {
			if tuple[i], err = d.value(); err != nil {
				return None, err
			}
		}
		return Tuple(tuple...), nil
	case IntArrayKind, FloatArrayKind:
		a, err := d.array(kind == FloatArrayKind)
		if err != nil {
			return None, err
		}
		return ArrayValue(a), nil
	default:
		return None, fmt.Errorf("unknown value kind %d", kind)
	}
}

func (d *decoder) array(isFloat bool) (*Array, error) {
	ndim, err := d.uvarint()
	if err != nil {
		return nil, err
	}
	if ndim > uint64(len(d.buf)) {
		return nil, fmt.Errorf("array rank %d exceeds encoded data", ndim)
	}
	shape := make([]int, ndim)
	size := uint64(1)
	for i := range shape {
		dim, err := d.uvarint()
		if err != nil {
			return nil, err
		}
		if dim > math.MaxInt {
			return nil, fmt.Errorf("array dimension %d is too large", dim)
		}
		// every partial product of the shape must fit in the remaining data
		limit := uint64(len(d.buf)) / 8
		if dim != 0 && size > limit/dim {
			return nil, fmt.Errorf("array dimension %d exceeds encoded data", dim)
		}
		shape[i] = int(dim)
		size *= dim
	}
	if size > uint64(len(d.buf))/8 {
		return nil, fmt.Errorf("array of %d elements exceeds encoded data", size)
	}
	a := &Array{shape: shape, isFloat: isFloat}
	if isFloat {
		a.floats = make([]float64, size)
	} else {
		a.ints = make([]int64, size)
	}
	for i := uint64(0); i < size; i++ {
		n, _ := d.uint64()
		if isFloat {
			a.floats[i] = math.Float64frombits(n)
		} else {
			a.ints[i] = int64(n)
		}
	}
	return a, nil
}
