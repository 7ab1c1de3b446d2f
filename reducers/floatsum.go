package reducers

import (
	"github.com/go-sif/reduce"
	"github.com/go-sif/reduce/types"
)

// FloatSumReducer sums float columns. Values of any other kind are skipped.
type FloatSumReducer struct{}

// InitUnary creates the state of one row
func (FloatSumReducer) InitUnary(_ types.Key, value types.Value) (float64, bool) {
	return value.AsFloat()
}

// Combine sums every partial state, scaled by its count
func (FloatSumReducer) Combine(states []reduce.Weighted[float64]) float64 {
	sum := 0.0
	for _, w := range states {
		sum += w.State * float64(w.Count)
	}
	return sum
}

// Finish wraps the sum in a Value
func (FloatSumReducer) Finish(state float64) types.Value {
	return types.Float(state)
}
