package reducers

import (
	"github.com/go-sif/reduce"
	errors "github.com/go-sif/reduce/errors"
	"github.com/go-sif/reduce/types"
)

// UniqueState holds the single value of a column which is constant within a group
type UniqueState struct {
	Value types.Value
	Set   bool
}

// UniqueReducer returns the only value of a column within a group. Observing two
// distinct values means the column is not unique per group, and panics.
type UniqueReducer struct{}

// InitUnary creates the state of one row
func (UniqueReducer) InitUnary(_ types.Key, value types.Value) (UniqueState, bool) {
	return UniqueState{Value: value, Set: true}, true
}

// Combine asserts that all partial states are equal
func (UniqueReducer) Combine(states []reduce.Weighted[UniqueState]) UniqueState {
	if len(states) == 0 {
		panic(errors.EmptyCombineError{Reducer: "unique"})
	}
	first := states[0].State
	for _, w := range states[1:] {
		if w.State.Set != first.Set || !types.Equal(w.State.Value, first.Value) {
			panic(errors.NonUniqueValueError{First: first.Value.String(), Second: w.State.Value.String()})
		}
	}
	return first
}

// Finish returns the observed value, or None if there was none
func (UniqueReducer) Finish(state UniqueState) types.Value {
	if !state.Set {
		return types.None
	}
	return state.Value
}
