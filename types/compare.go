package types

import (
	"cmp"
	"math"
	"strings"
)

// Compare defines the total order over Values: Values of different kinds are
// ordered by Kind, Values of the same kind by their payload. Floats are ordered
// totally, with -0 equal to +0 and NaN equal to itself and above every other float.
func Compare(l, r Value) int {
	if l.kind != r.kind {
		return cmp.Compare(l.kind, r.kind)
	}
	switch l.kind {
	case NoneKind:
		return 0
	case BoolKind, PointerKind:
		return cmp.Compare(l.num, r.num)
	case IntKind:
		return cmp.Compare(int64(l.num), int64(r.num))
	case FloatKind:
		return compareFloats(math.Float64frombits(l.num), math.Float64frombits(r.num))
	case StringKind, BytesKind:
		return strings.Compare(l.str, r.str)
	case TupleKind:
		return compareTuples(l.tuple, r.tuple)
	default:
		return compareArrays(l.array, r.array)
	}
}

// Equal returns true iff l and r are equal under Compare
func Equal(l, r Value) bool {
	return Compare(l, r) == 0
}

// Less returns true iff l sorts before r
func Less(l, r Value) bool {
	return Compare(l, r) < 0
}

func compareTuples(l, r []Value) int {
	for i := 0; i < len(l) && i < len(r); i++ {
		if c := Compare(l[i], r[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(l), len(r))
}

func compareFloats(l, r float64) int {
	lnan, rnan := math.IsNaN(l), math.IsNaN(r)
	switch {
	case lnan && rnan:
		return 0
	case lnan:
		return 1
	case rnan:
		return -1
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}
