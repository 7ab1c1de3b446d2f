package errors

import (
	"fmt"
)

// UnsupportedTypeError occurs when a reducer is applied to a Value of a kind it cannot aggregate
type UnsupportedTypeError struct {
	Reducer string
	Kind    string
}

// Error returns a textual representation of this UnsupportedTypeError
func (e UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type %s for %s", e.Kind, e.Reducer)
}

// MixedArrayTypesError occurs when integer and float arrays are summed together
type MixedArrayTypesError struct{}

// Error returns a textual representation of this MixedArrayTypesError
func (e MixedArrayTypesError) Error() string {
	return "mixing types in array_sum is not allowed"
}

// ShapeMismatchError occurs when arrays of different shapes are summed together
type ShapeMismatchError struct {
	Left  []int
	Right []int
}

// Error returns a textual representation of this ShapeMismatchError
func (e ShapeMismatchError) Error() string {
	return fmt.Sprintf("cannot add arrays of shapes %v and %v", e.Left, e.Right)
}

// NonUniqueValueError occurs when the unique reducer observes more than one distinct value within a group
type NonUniqueValueError struct {
	First  string
	Second string
}

// Error returns a textual representation of this NonUniqueValueError
func (e NonUniqueValueError) Error() string {
	return fmt.Sprintf("More than one distinct value passed to the unique reducer: %s and %s", e.First, e.Second)
}

// EmptyCombineError occurs when a reducer is asked to combine zero partial states
type EmptyCombineError struct{ Reducer string }

// Error returns a textual representation of this EmptyCombineError
func (e EmptyCombineError) Error() string {
	return fmt.Sprintf("%s: values should not be empty", e.Reducer)
}

// InvalidMultiplicityError occurs when a partial state is passed to combine with a count below one
type InvalidMultiplicityError struct{ Count int }

// Error returns a textual representation of this InvalidMultiplicityError
func (e InvalidMultiplicityError) Error() string {
	return fmt.Sprintf("multiplicity must be positive, got %d", e.Count)
}

// NegativeCountError occurs when retractions outnumber insertions for a row of a group
type NegativeCountError struct {
	Key   string
	Count int64
}

// Error returns a textual representation of this NegativeCountError
func (e NegativeCountError) Error() string {
	return fmt.Sprintf("row of group %s has negative multiplicity %d", e.Key, e.Count)
}

// IncompatibleAccumulatorError occurs when accumulators of different kinds are merged
type IncompatibleAccumulatorError struct{ Expected string }

// Error returns a textual representation of this IncompatibleAccumulatorError
func (e IncompatibleAccumulatorError) Error() string {
	return fmt.Sprintf("Incoming accumulator is not a %s Accumulator", e.Expected)
}

// UnknownReducerError occurs when a reducer name cannot be parsed
type UnknownReducerError struct{ Name string }

// Error returns a textual representation of this UnknownReducerError
func (e UnknownReducerError) Error() string {
	return fmt.Sprintf("unknown reducer %q", e.Name)
}

// NoSemigroupError occurs when a reducer without an invertible state is used for semigroup accumulation
type NoSemigroupError struct{ Reducer string }

// Error returns a textual representation of this NoSemigroupError
func (e NoSemigroupError) Error() string {
	return fmt.Sprintf("%s does not support semigroup accumulation", e.Reducer)
}
