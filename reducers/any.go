package reducers

import (
	"github.com/go-sif/reduce"
	errors "github.com/go-sif/reduce/errors"
	"github.com/go-sif/reduce/types"
)

// AnySalt decorrelates the choice of AnyReducer from the natural order of Keys.
// Changing it changes which rows are picked, so it must stay fixed across runs.
const AnySalt uint64 = 0xDEADBEEFDEADBEEF

// AnyState is a row's Key together with its value
type AnyState struct {
	Key   types.Key
	Value types.Value
}

// AnyReducer picks one row per group, reproducibly: the row whose salted Key is
// smallest, ties broken by value
type AnyReducer struct {
	salt uint64
}

// AnyWithSalt creates an AnyReducer using a different salt than AnySalt
func AnyWithSalt(salt uint64) AnyReducer {
	return AnyReducer{salt: salt}
}

// InitUnary creates the state of one row
func (AnyReducer) InitUnary(key types.Key, value types.Value) (AnyState, bool) {
	return AnyState{Key: key, Value: value}, true
}

// Combine selects the state with the smallest (salted key, value)
func (r AnyReducer) Combine(states []reduce.Weighted[AnyState]) AnyState {
	if len(states) == 0 {
		panic(errors.EmptyCombineError{Reducer: "any"})
	}
	best := states[0].State
	bestSalted := best.Key.SaltedWith(r.salt)
	for _, w := range states[1:] {
		salted := w.State.Key.SaltedWith(r.salt)
		if salted < bestSalted || (salted == bestSalted && types.Less(w.State.Value, best.Value)) {
			best, bestSalted = w.State, salted
		}
	}
	return best
}

// Finish returns the value of the picked row
func (AnyReducer) Finish(state AnyState) types.Value {
	return state.Value
}
