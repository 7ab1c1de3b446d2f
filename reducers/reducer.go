package reducers

import (
	"encoding/gob"
	"strings"

	"github.com/go-sif/reduce"
	errors "github.com/go-sif/reduce/errors"
	"github.com/go-sif/reduce/types"
)

func init() {
	// partial states travel between workers inside gob-encoded accumulators
	gob.Register(IntSumState{})
	gob.Register(types.Value{})
	gob.Register(UniqueState{})
	gob.Register(ArgState{})
	gob.Register(AnyState{})
	gob.Register([]types.Value{})
	gob.Register([]TupleEntry{})
}

// Kind enumerates the built-in reducers
type Kind int

const (
	// FloatSum sums float values, skipping other kinds
	FloatSum Kind = iota
	// IntSum sums integer values
	IntSum
	// ArraySum sums numeric arrays element-wise
	ArraySum
	// Unique returns the single distinct value of a group
	Unique
	// Min returns the smallest value
	Min
	// ArgMin returns a pointer to the row with the smallest value
	ArgMin
	// Max returns the largest value
	Max
	// ArgMax returns a pointer to the row with the largest value
	ArgMax
	// SortedTuple collects values into a sorted tuple
	SortedTuple
	// Tuple collects values into a tuple ordered by an optional second column, then by Key
	Tuple
	// Any picks the value of one row, reproducibly
	Any
)

var kindNames = map[Kind]string{
	FloatSum:    "float_sum",
	IntSum:      "int_sum",
	ArraySum:    "array_sum",
	Unique:      "unique",
	Min:         "min",
	ArgMin:      "argmin",
	Max:         "max",
	ArgMax:      "argmax",
	SortedTuple: "sorted_tuple",
	Tuple:       "tuple",
	Any:         "any",
}

const skipNonesSuffix = ":skip_nones"

// Reducer selects the reduction applied to a column. SkipNones only affects
// SortedTuple and Tuple. A Reducer is resolved into a Strategy once per column.
type Reducer struct {
	Kind      Kind
	SkipNones bool
}

// SortedTupleOf selects a SortedTuple reduction
func SortedTupleOf(skipNones bool) Reducer {
	return Reducer{Kind: SortedTuple, SkipNones: skipNones}
}

// TupleOf selects a Tuple reduction
func TupleOf(skipNones bool) Reducer {
	return Reducer{Kind: Tuple, SkipNones: skipNones}
}

// Of selects a reduction which has no configuration
func Of(kind Kind) Reducer {
	return Reducer{Kind: kind}
}

// String returns the name of this Reducer, as accepted by ParseReducer
func (r Reducer) String() string {
	name, ok := kindNames[r.Kind]
	if !ok {
		return "unknown"
	}
	if r.SkipNones && (r.Kind == SortedTuple || r.Kind == Tuple) {
		return name + skipNonesSuffix
	}
	return name
}

// ParseReducer selects a Reducer by name, e.g. "int_sum" or "tuple:skip_nones"
func ParseReducer(name string) (Reducer, error) {
	base := strings.ToLower(strings.TrimSpace(name))
	skipNones := false
	if strings.HasSuffix(base, skipNonesSuffix) {
		base = strings.TrimSuffix(base, skipNonesSuffix)
		skipNones = true
	}
	for kind, kindName := range kindNames {
		if kindName != base {
			continue
		}
		if skipNones && kind != SortedTuple && kind != Tuple {
			break
		}
		return Reducer{Kind: kind, SkipNones: skipNones}, nil
	}
	return Reducer{}, errors.UnknownReducerError{Name: name}
}

// Strategy resolves this Reducer into its implementation. Every Reducer has one;
// IntSum combines by scaled addition of its semigroup states.
func (r Reducer) Strategy() reduce.Strategy {
	name := r.String()
	switch r.Kind {
	case FloatSum:
		return reduce.Erase(name, reduce.FromUnary[float64](FloatSumReducer{}))
	case IntSum:
		return reduce.Erase(name, reduce.SemigroupAsReducer[IntSumState](name, IntSumReducer{}))
	case ArraySum:
		return reduce.Erase(name, reduce.FromUnary[types.Value](ArraySumReducer{}))
	case Unique:
		return reduce.Erase(name, reduce.FromUnary[UniqueState](UniqueReducer{}))
	case Min:
		return reduce.Erase(name, reduce.FromUnary[types.Value](MinReducer{}))
	case ArgMin:
		return reduce.Erase(name, reduce.FromUnary[ArgState](ArgMinReducer{}))
	case Max:
		return reduce.Erase(name, reduce.FromUnary[types.Value](MaxReducer{}))
	case ArgMax:
		return reduce.Erase(name, reduce.FromUnary[ArgState](ArgMaxReducer{}))
	case SortedTuple:
		return reduce.Erase(name, reduce.FromUnary[[]types.Value](NewSortedTupleReducer(r.SkipNones)))
	case Tuple:
		return reduce.Erase[[]TupleEntry](name, NewTupleReducer(r.SkipNones))
	case Any:
		return reduce.Erase(name, reduce.FromUnary[AnyState](AnyWithSalt(AnySalt)))
	default:
		panic(errors.UnknownReducerError{Name: name})
	}
}

// SemigroupStrategy resolves this Reducer into a semigroup implementation, for
// reducers whose state supports retraction by addition
func (r Reducer) SemigroupStrategy() (reduce.SemigroupStrategy, bool) {
	if r.Kind == IntSum {
		return reduce.EraseSemigroup[IntSumState](r.String(), IntSumReducer{}), true
	}
	return nil, false
}
