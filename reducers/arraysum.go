package reducers

import (
	"github.com/go-sif/reduce"
	errors "github.com/go-sif/reduce/errors"
	"github.com/go-sif/reduce/types"
)

// ArraySumReducer sums integer or float arrays element-wise
type ArraySumReducer struct{}

// cowArray is an Array which is either borrowed from a state or owned by the
// running sum. Borrowed arrays are copied before their first modification.
type cowArray struct {
	array *types.Array
	owned bool
}

func newCowArray(value types.Value, count int) cowArray {
	array, ok := value.AsArray()
	if !ok {
		panic(errors.UnsupportedTypeError{Reducer: "array_sum", Kind: value.Kind().String()})
	}
	if count == 1 {
		return cowArray{array: array}
	}
	return cowArray{array: array.Scale(int64(count)), owned: true}
}

func (c cowArray) add(rhs cowArray) cowArray {
	if c.array.IsInt() != rhs.array.IsInt() {
		panic(errors.MixedArrayTypesError{})
	}
	if !c.owned {
		c = cowArray{array: c.array.Clone(), owned: true}
	}
	c.array.AddInPlace(rhs.array)
	return c
}

// InitUnary keeps a reference to the row's array
func (ArraySumReducer) InitUnary(_ types.Key, value types.Value) (types.Value, bool) {
	return value, true
}

// Combine sums all partial arrays. Arrays with a count above one are scaled once
// rather than added repeatedly. Mixed element types or shapes panic.
func (ArraySumReducer) Combine(states []reduce.Weighted[types.Value]) types.Value {
	if len(states) == 0 {
		panic(errors.EmptyCombineError{Reducer: "array_sum"})
	}
	acc := newCowArray(states[0].State, states[0].Count)
	for _, w := range states[1:] {
		acc = acc.add(newCowArray(w.State, w.Count))
	}
	return types.ArrayValue(acc.array)
}

// Finish returns the summed array
func (ArraySumReducer) Finish(state types.Value) types.Value {
	return state
}
