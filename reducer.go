package reduce

import (
	errors "github.com/go-sif/reduce/errors"
)

// Weighted pairs a partial state with the number of equal rows it stands for.
// Count is always at least 1 when passed to Combine.
type Weighted[S any] struct {
	State S
	Count int
}

// A ReducerImpl turns the rows of a group into per-row states, merges them,
// and derives the group's output Value from the merged state.
// Combine must be associative and commutative over the weighted multiset of
// states it is given: any partition of the same rows, combined in any order,
// yields a state which finishes to the same Value. A state with Count n must
// be treated as if it appeared n times. Every new ReducerImpl needs a test
// demonstrating this property.
type ReducerImpl[S any] interface {
	// Init creates the state of a single row. values[0] is the reduced column,
	// any further values are auxiliary columns. false means the reducer does
	// not apply to this row, which should be skipped.
	Init(key Key, values []Value) (S, bool)
	// Combine merges a non-empty list of partial states
	Combine(states []Weighted[S]) S
	// Finish converts a merged state into the group's output
	Finish(state S) Value
}

// A UnaryReducerImpl is a ReducerImpl which only looks at the reduced column
type UnaryReducerImpl[S any] interface {
	InitUnary(key Key, value Value) (S, bool)
	Combine(states []Weighted[S]) S
	Finish(state S) Value
}

// Semigroup is a state forming a commutative group under PlusEquals, which
// allows rows to be retracted by adding their negated state.
type Semigroup[S any] interface {
	// IsZero returns true iff this is the neutral state
	IsZero() bool
	// PlusEquals returns the sum of this state and rhs, leaving both untouched
	PlusEquals(rhs S) S
	// Multiply scales this state by n, equivalent to adding it to itself n times
	Multiply(n int64) S
	// NetCount returns the number of rows this state was built from, net of retractions
	NetCount() int64
}

// A SemigroupReducerImpl aggregates states which are themselves semigroup
// elements. Combination is performed by the caller through PlusEquals and
// Multiply rather than by the reducer.
type SemigroupReducerImpl[S Semigroup[S]] interface {
	Init(key Key, value Value) (S, bool)
	Finish(state S) Value
}

type unaryReducer[S any] struct {
	UnaryReducerImpl[S]
}

func (u unaryReducer[S]) Init(key Key, values []Value) (S, bool) {
	return u.InitUnary(key, values[0])
}

// FromUnary lifts a UnaryReducerImpl into a ReducerImpl reading the first column
func FromUnary[S any](u UnaryReducerImpl[S]) ReducerImpl[S] {
	return unaryReducer[S]{u}
}

type semigroupReducer[S Semigroup[S]] struct {
	impl SemigroupReducerImpl[S]
	name string
}

func (s semigroupReducer[S]) Init(key Key, values []Value) (S, bool) {
	return s.impl.Init(key, values[0])
}

func (s semigroupReducer[S]) Combine(states []Weighted[S]) S {
	if len(states) == 0 {
		panic(errors.EmptyCombineError{Reducer: s.name})
	}
	acc := states[0].State.Multiply(int64(states[0].Count))
	for _, w := range states[1:] {
		acc = acc.PlusEquals(w.State.Multiply(int64(w.Count)))
	}
	return acc
}

func (s semigroupReducer[S]) Finish(state S) Value {
	return s.impl.Finish(state)
}

// SemigroupAsReducer lets a SemigroupReducerImpl be used wherever a ReducerImpl
// is expected, combining states by scaled addition
func SemigroupAsReducer[S Semigroup[S]](name string, r SemigroupReducerImpl[S]) ReducerImpl[S] {
	return semigroupReducer[S]{impl: r, name: name}
}
