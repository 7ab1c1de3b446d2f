package reduce

import (
	errors "github.com/go-sif/reduce/errors"
)

// State is the type-erased state of a Strategy
type State = interface{}

// A Strategy is a type-erased ReducerImpl, allowing reducers with different
// state types to be selected at runtime, once per reduced column.
type Strategy interface {
	Name() string
	Init(key Key, values []Value) (State, bool)
	Combine(states []Weighted[State]) State
	Finish(state State) Value
}

// A SemigroupStrategy is a type-erased SemigroupReducerImpl together with the
// operations of its state
type SemigroupStrategy interface {
	Name() string
	Init(key Key, value Value) (State, bool)
	Plus(l, r State) State
	Multiply(s State, n int64) State
	IsZero(s State) bool
	NetCount(s State) int64
	Finish(state State) Value
}

type erased[S any] struct {
	name string
	impl ReducerImpl[S]
}

// Erase hides the state type of a ReducerImpl
func Erase[S any](name string, impl ReducerImpl[S]) Strategy {
	return &erased[S]{name: name, impl: impl}
}

func (e *erased[S]) Name() string {
	return e.name
}

func (e *erased[S]) Init(key Key, values []Value) (State, bool) {
	s, ok := e.impl.Init(key, values)
	if !ok {
		return nil, false
	}
	return s, true
}

func (e *erased[S]) Combine(states []Weighted[State]) State {
	if len(states) == 0 {
		panic(errors.EmptyCombineError{Reducer: e.name})
	}
	typed := make([]Weighted[S], len(states))
	for i, w := range states {
		if w.Count < 1 {
			panic(errors.InvalidMultiplicityError{Count: w.Count})
		}
		typed[i] = Weighted[S]{State: w.State.(S), Count: w.Count}
	}
	return e.impl.Combine(typed)
}

func (e *erased[S]) Finish(state State) Value {
	return e.impl.Finish(state.(S))
}

type erasedSemigroup[S Semigroup[S]] struct {
	name string
	impl SemigroupReducerImpl[S]
}

// EraseSemigroup hides the state type of a SemigroupReducerImpl
func EraseSemigroup[S Semigroup[S]](name string, impl SemigroupReducerImpl[S]) SemigroupStrategy {
	return &erasedSemigroup[S]{name: name, impl: impl}
}

func (e *erasedSemigroup[S]) Name() string {
	return e.name
}

func (e *erasedSemigroup[S]) Init(key Key, value Value) (State, bool) {
	s, ok := e.impl.Init(key, value)
	if !ok {
		return nil, false
	}
	return s, true
}

func (e *erasedSemigroup[S]) Plus(l, r State) State {
	return l.(S).PlusEquals(r.(S))
}

func (e *erasedSemigroup[S]) Multiply(s State, n int64) State {
	return s.(S).Multiply(n)
}

func (e *erasedSemigroup[S]) IsZero(s State) bool {
	return s.(S).IsZero()
}

func (e *erasedSemigroup[S]) NetCount(s State) int64 {
	return s.(S).NetCount()
}

func (e *erasedSemigroup[S]) Finish(state State) Value {
	return e.impl.Finish(state.(S))
}
