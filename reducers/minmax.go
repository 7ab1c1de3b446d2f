package reducers

import (
	"github.com/go-sif/reduce"
	errors "github.com/go-sif/reduce/errors"
	"github.com/go-sif/reduce/types"
)

// MinReducer returns the smallest value of a group. Counts do not matter.
type MinReducer struct{}

// InitUnary creates the state of one row
func (MinReducer) InitUnary(_ types.Key, value types.Value) (types.Value, bool) {
	return value, true
}

// Combine selects the smallest partial state
func (MinReducer) Combine(states []reduce.Weighted[types.Value]) types.Value {
	return extremum("min", states, -1)
}

// Finish returns the state unchanged
func (MinReducer) Finish(state types.Value) types.Value {
	return state
}

// MaxReducer returns the largest value of a group. Counts do not matter.
type MaxReducer struct{}

// InitUnary creates the state of one row
func (MaxReducer) InitUnary(_ types.Key, value types.Value) (types.Value, bool) {
	return value, true
}

// Combine selects the largest partial state
func (MaxReducer) Combine(states []reduce.Weighted[types.Value]) types.Value {
	return extremum("max", states, 1)
}

// Finish returns the state unchanged
func (MaxReducer) Finish(state types.Value) types.Value {
	return state
}

// extremum keeps the first state v with Compare(v, best) == sign
func extremum(name string, states []reduce.Weighted[types.Value], sign int) types.Value {
	if len(states) == 0 {
		panic(errors.EmptyCombineError{Reducer: name})
	}
	best := states[0].State
	for _, w := range states[1:] {
		if types.Compare(w.State, best) == sign {
			best = w.State
		}
	}
	return best
}
