package accumulators

import (
	"sort"

	"github.com/go-sif/reduce"
	errors "github.com/go-sif/reduce/errors"
	"github.com/go-sif/reduce/types"
)

type entry struct {
	state reduce.State
	count int64
}

// Grouped accumulates groups with any reducer. Since general reducer states
// cannot be subtracted, every group keeps the multiset of its distinct per-row
// states with their net counts, and Result combines them afresh. A retraction
// decrements the count of an equal state; states whose count reaches zero are
// forgotten.
type Grouped struct {
	conf     *Conf
	strategy reduce.Strategy
	groups   map[types.Key]map[string]*entry
}

// NewGrouped creates an empty Grouped Accumulator
func NewGrouped(conf *Conf) *Grouped {
	return &Grouped{
		conf:     conf.clone(),
		strategy: conf.Reducer.Strategy(),
		groups:   make(map[types.Key]map[string]*entry),
	}
}

// Accumulate adds a row to a group diff times. A negative diff retracts it.
func (a *Grouped) Accumulate(group types.Key, row types.Key, values []types.Value, diff int) error {
	if diff == 0 {
		return nil
	}
	state, ok := a.strategy.Init(row, a.conf.selectColumns(values))
	if !ok {
		return nil
	}
	return a.add(group, state, int64(diff))
}

func (a *Grouped) add(group types.Key, state reduce.State, diff int64) error {
	id, err := stateID(state)
	if err != nil {
		return err
	}
	entries, ok := a.groups[group]
	if !ok {
		entries = make(map[string]*entry)
		a.groups[group] = entries
	}
	e, ok := entries[id]
	if !ok {
		e = &entry{state: state}
		entries[id] = e
	}
	e.count += diff
	if e.count == 0 {
		delete(entries, id)
	}
	if len(entries) == 0 {
		delete(a.groups, group)
	}
	return nil
}

// Merge merges another Grouped Accumulator into this one
func (a *Grouped) Merge(o reduce.Accumulator) error {
	ga, ok := o.(*Grouped)
	if !ok || !a.conf.sameReduction(ga.conf) {
		return errors.IncompatibleAccumulatorError{Expected: a.conf.Reducer.String() + " Grouped"}
	}
	for group, entries := range ga.groups {
		for _, e := range entries {
			if err := a.add(group, e.state, e.count); err != nil {
				return err
			}
		}
	}
	return nil
}

// weighted lists the states of a group in a stable order
func (a *Grouped) weighted(group types.Key) ([]reduce.Weighted[reduce.State], error) {
	entries := a.groups[group]
	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	states := make([]reduce.Weighted[reduce.State], 0, len(ids))
	for _, id := range ids {
		e := entries[id]
		if e.count < 0 {
			return nil, errors.NegativeCountError{Key: group.String(), Count: e.count}
		}
		states = append(states, reduce.Weighted[reduce.State]{State: e.state, Count: int(e.count)})
	}
	return states, nil
}

// Result combines and finishes the states of a group. Reducer failures panic.
func (a *Grouped) Result(group types.Key) (types.Value, bool, error) {
	if _, ok := a.groups[group]; !ok {
		return types.None, false, nil
	}
	states, err := a.weighted(group)
	if err != nil {
		return types.None, false, err
	}
	return a.strategy.Finish(a.strategy.Combine(states)), true, nil
}

// Keys lists the groups with rows
func (a *Grouped) Keys() []types.Key {
	keys := make([]types.Key, 0, len(a.groups))
	for k := range a.groups {
		keys = append(keys, k)
	}
	return sortKeys(keys)
}

// ToBytes serializes this Accumulator
func (a *Grouped) ToBytes() ([]byte, error) {
	s := &serializedAccumulator{Reducer: a.conf.Reducer.String(), Columns: a.conf.Columns}
	for _, k := range a.Keys() {
		g := serializedGroup{Key: uint64(k)}
		ids := make([]string, 0, len(a.groups[k]))
		for id := range a.groups[k] {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			e := a.groups[k][id]
			g.Entries = append(g.Entries, serializedEntry{State: e.state, Count: e.count})
		}
		s.Groups = append(s.Groups, g)
	}
	return encode(a.conf.Codec, s)
}

// FromBytes produce a new Accumulator from serialized data
func (a *Grouped) FromBytes(buf []byte) (reduce.Accumulator, error) {
	s, conf, err := decode(buf)
	if err != nil {
		return nil, err
	}
	res := NewGrouped(conf)
	for _, g := range s.Groups {
		for _, e := range g.Entries {
			if err := res.add(types.Key(g.Key), e.State, e.Count); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}
