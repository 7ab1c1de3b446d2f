package reducers

import (
	"github.com/go-sif/reduce"
	errors "github.com/go-sif/reduce/errors"
	"github.com/go-sif/reduce/types"
)

// ArgState is a value together with the Key of the row it was observed in
type ArgState struct {
	Value types.Value
	Key   types.Key
}

func compareArgStates(l, r ArgState) int {
	if c := types.Compare(l.Value, r.Value); c != 0 {
		return c
	}
	return l.Key.Compare(r.Key)
}

// ArgMinReducer returns a pointer to the row holding the smallest value of a
// group. Among equal values, the smallest Key wins.
type ArgMinReducer struct{}

// InitUnary creates the state of one row
func (ArgMinReducer) InitUnary(key types.Key, value types.Value) (ArgState, bool) {
	return ArgState{Value: value, Key: key}, true
}

// Combine selects the smallest (value, key) pair
func (ArgMinReducer) Combine(states []reduce.Weighted[ArgState]) ArgState {
	if len(states) == 0 {
		panic(errors.EmptyCombineError{Reducer: "argmin"})
	}
	best := states[0].State
	for _, w := range states[1:] {
		if compareArgStates(w.State, best) < 0 {
			best = w.State
		}
	}
	return best
}

// Finish returns a pointer to the winning row
func (ArgMinReducer) Finish(state ArgState) types.Value {
	return types.Pointer(state.Key)
}

// ArgMaxReducer returns a pointer to the row holding the largest value of a
// group. Among equal values the smallest Key wins, as for ArgMinReducer.
type ArgMaxReducer struct{}

// InitUnary creates the state of one row
func (ArgMaxReducer) InitUnary(key types.Key, value types.Value) (ArgState, bool) {
	return ArgState{Value: value, Key: key}, true
}

// Combine selects the pair maximizing (value, reversed key)
func (ArgMaxReducer) Combine(states []reduce.Weighted[ArgState]) ArgState {
	if len(states) == 0 {
		panic(errors.EmptyCombineError{Reducer: "argmax"})
	}
	best := states[0].State
	for _, w := range states[1:] {
		c := types.Compare(w.State.Value, best.Value)
		if c > 0 || (c == 0 && w.State.Key < best.Key) {
			best = w.State
		}
	}
	return best
}

// Finish returns a pointer to the winning row
func (ArgMaxReducer) Finish(state ArgState) types.Value {
	return types.Pointer(state.Key)
}
