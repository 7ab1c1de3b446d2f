package util

import (
	"fmt"

	"github.com/go-sif/reduce/types"
)

// ReduceOperation reduces the rows of a single group
type ReduceOperation func() (types.Value, bool, error)

// SafeReduceOperation wraps a ReduceOperation such that panics are recovered and nice error messages are constructed
func SafeReduceOperation(group types.Key, reduceOp ReduceOperation) (safeReduceOp ReduceOperation) {
	return func() (result types.Value, ok bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				result, ok = types.None, false
				if anErr, isErr := r.(error); isErr {
					err = fmt.Errorf("Reduction Panic: %w\nGroup: %s\n%s", anErr, group, GetTrace())
				} else {
					err = fmt.Errorf("Reduction Panic: %v\nGroup: %s\n%s", r, group, GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Reduction Error: %w\nGroup: %s", err, group)
			}
		}()
		result, ok, err = reduceOp()
		return
	}
}

// AccumulateOperation feeds rows into an Accumulator
type AccumulateOperation func() error

// SafeAccumulateOperation wraps an AccumulateOperation such that panics are recovered and nice error messages are constructed
func SafeAccumulateOperation(group types.Key, accOp AccumulateOperation) (safeAccOp AccumulateOperation) {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, isErr := r.(error); isErr {
					err = fmt.Errorf("Accumulate Panic: %w\nGroup: %s\n%s", anErr, group, GetTrace())
				} else {
					err = fmt.Errorf("Accumulate Panic: %v\nGroup: %s\n%s", r, group, GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Accumulate Error: %w\nGroup: %s", err, group)
			}
		}()
		err = accOp()
		return
	}
}

// SafeResultOperation wraps a ReduceOperation which finishes an accumulated group,
// such that panics are recovered. Returned errors are passed through unchanged.
func SafeResultOperation(group types.Key, resultOp ReduceOperation) (safeResultOp ReduceOperation) {
	return func() (result types.Value, ok bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				result, ok = types.None, false
				if anErr, isErr := r.(error); isErr {
					err = fmt.Errorf("Result Panic: %w\nGroup: %s\n%s", anErr, group, GetTrace())
				} else {
					err = fmt.Errorf("Result Panic: %v\nGroup: %s\n%s", r, group, GetTrace())
				}
			}
		}()
		result, ok, err = resultOp()
		return
	}
}
