package reducers

import (
	"github.com/go-sif/reduce"
	errors "github.com/go-sif/reduce/errors"
	"github.com/go-sif/reduce/types"
)

// IntSumState is the running count and sum of a group of integers. It forms a
// commutative group, so rows are retracted by adding their negated state.
type IntSumState struct {
	Count int64
	Sum   int64
}

// SingleIntSum creates the state of one row holding val
func SingleIntSum(val int64) IntSumState {
	return IntSumState{Count: 1, Sum: val}
}

// IsZero returns true iff this state is neutral
func (s IntSumState) IsZero() bool {
	return s.Count == 0 && s.Sum == 0
}

// PlusEquals returns the component-wise sum of two states
func (s IntSumState) PlusEquals(rhs IntSumState) IntSumState {
	return IntSumState{Count: s.Count + rhs.Count, Sum: s.Sum + rhs.Sum}
}

// Multiply scales both components of this state by n
func (s IntSumState) Multiply(n int64) IntSumState {
	return IntSumState{Count: s.Count * n, Sum: s.Sum * n}
}

// NetCount returns the number of rows summed
func (s IntSumState) NetCount() int64 {
	return s.Count
}

// IntSumReducer sums integer columns
type IntSumReducer struct{}

// Init creates the state of one row. Non-integer values are a schema violation and panic.
func (IntSumReducer) Init(_ types.Key, value types.Value) (IntSumState, bool) {
	i, ok := value.AsInt()
	if !ok {
		panic(errors.UnsupportedTypeError{Reducer: "int_sum", Kind: value.Kind().String()})
	}
	return SingleIntSum(i), true
}

// Finish returns the sum, discarding the count
func (IntSumReducer) Finish(state IntSumState) types.Value {
	return types.Int(state.Sum)
}

var _ reduce.SemigroupReducerImpl[IntSumState] = IntSumReducer{}
