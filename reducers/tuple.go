package reducers

import (
	"sort"

	"github.com/go-sif/reduce"
	"github.com/go-sif/reduce/types"
)

// expand concatenates partial states, repeating each element of a state as
// many times as the state's count
func expand[E any](states []reduce.Weighted[[]E]) []E {
	n := 0
	for _, w := range states {
		n += len(w.State) * w.Count
	}
	res := make([]E, 0, n)
	for _, w := range states {
		for _, e := range w.State {
			for i := 0; i < w.Count; i++ {
				res = append(res, e)
			}
		}
	}
	return res
}

// SortedTupleReducer collects the values of a group into a sorted tuple
type SortedTupleReducer struct {
	skipNones bool
}

// NewSortedTupleReducer creates a SortedTupleReducer. With skipNones, None values are not collected.
func NewSortedTupleReducer(skipNones bool) SortedTupleReducer {
	return SortedTupleReducer{skipNones: skipNones}
}

// InitUnary creates the state of one row
func (r SortedTupleReducer) InitUnary(_ types.Key, value types.Value) ([]types.Value, bool) {
	if value.IsNone() && r.skipNones {
		return []types.Value{}, true
	}
	return []types.Value{value}, true
}

// Combine concatenates all partial states, expanded by their counts
func (SortedTupleReducer) Combine(states []reduce.Weighted[[]types.Value]) []types.Value {
	return expand(states)
}

// Finish sorts the collected values
func (SortedTupleReducer) Finish(state []types.Value) types.Value {
	sorted := append([]types.Value(nil), state...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return types.Less(sorted[i], sorted[j])
	})
	return types.Tuple(sorted...)
}

// TupleEntry is one collected row of a TupleReducer
type TupleEntry struct {
	Order    types.Value // optional sorting column
	HasOrder bool
	Key      types.Key
	Value    types.Value
}

func compareTupleEntries(l, r TupleEntry) int {
	if l.HasOrder != r.HasOrder {
		if r.HasOrder {
			return -1
		}
		return 1
	}
	if c := types.Compare(l.Order, r.Order); c != 0 {
		return c
	}
	if c := l.Key.Compare(r.Key); c != 0 {
		return c
	}
	return types.Compare(l.Value, r.Value)
}

// TupleReducer collects the values of a group into a tuple ordered by an optional
// second column, then by row Key
type TupleReducer struct {
	skipNones bool
}

// NewTupleReducer creates a TupleReducer. With skipNones, None values are not collected.
func NewTupleReducer(skipNones bool) TupleReducer {
	return TupleReducer{skipNones: skipNones}
}

// Init creates the state of one row. values[1], if present, is the sorting column.
func (r TupleReducer) Init(key types.Key, values []types.Value) ([]TupleEntry, bool) {
	if values[0].IsNone() && r.skipNones {
		return []TupleEntry{}, true
	}
	entry := TupleEntry{Key: key, Value: values[0]}
	if len(values) > 1 {
		entry.Order, entry.HasOrder = values[1], true
	}
	return []TupleEntry{entry}, true
}

// Combine concatenates all partial states, expanded by their counts
func (TupleReducer) Combine(states []reduce.Weighted[[]TupleEntry]) []TupleEntry {
	return expand(states)
}

// Finish sorts the collected rows and returns their values
func (TupleReducer) Finish(state []TupleEntry) types.Value {
	sorted := append([]TupleEntry(nil), state...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareTupleEntries(sorted[i], sorted[j]) < 0
	})
	values := make([]types.Value, len(sorted))
	for i, e := range sorted {
		values[i] = e.Value
	}
	return types.Tuple(values...)
}
