package accumulators

import (
	"github.com/go-sif/reduce"
	errors "github.com/go-sif/reduce/errors"
	"github.com/go-sif/reduce/types"
)

// Semigroup accumulates groups whose reducer state is a semigroup element:
// every group keeps a single running state, rows are added by scaled addition
// and retracted by adding their negated state. Groups whose state returns to
// zero are forgotten.
type Semigroup struct {
	conf     *Conf
	strategy reduce.SemigroupStrategy
	states   map[types.Key]reduce.State
}

// NewSemigroup creates an empty Semigroup Accumulator. The configured reducer
// must support semigroup accumulation.
func NewSemigroup(conf *Conf) (*Semigroup, error) {
	strategy, ok := conf.Reducer.SemigroupStrategy()
	if !ok {
		return nil, errors.NoSemigroupError{Reducer: conf.Reducer.String()}
	}
	return &Semigroup{
		conf:     conf.clone(),
		strategy: strategy,
		states:   make(map[types.Key]reduce.State),
	}, nil
}

// Accumulate adds a row to a group diff times. A negative diff retracts it.
func (a *Semigroup) Accumulate(group types.Key, row types.Key, values []types.Value, diff int) error {
	if diff == 0 {
		return nil
	}
	state, ok := a.strategy.Init(row, a.conf.selectColumns(values)[0])
	if !ok {
		return nil
	}
	a.add(group, a.strategy.Multiply(state, int64(diff)))
	return nil
}

func (a *Semigroup) add(group types.Key, state reduce.State) {
	if current, ok := a.states[group]; ok {
		state = a.strategy.Plus(current, state)
	}
	if a.strategy.IsZero(state) {
		delete(a.states, group)
		return
	}
	a.states[group] = state
}

// Merge merges another Semigroup Accumulator into this one
func (a *Semigroup) Merge(o reduce.Accumulator) error {
	sa, ok := o.(*Semigroup)
	if !ok || !a.conf.sameReduction(sa.conf) {
		return errors.IncompatibleAccumulatorError{Expected: a.conf.Reducer.String() + " Semigroup"}
	}
	for group, state := range sa.states {
		a.add(group, state)
	}
	return nil
}

// Result finishes the reduction of a group. A group that retracted more rows
// than it received has no result.
func (a *Semigroup) Result(group types.Key) (types.Value, bool, error) {
	state, ok := a.states[group]
	if !ok {
		return types.None, false, nil
	}
	if n := a.strategy.NetCount(state); n < 0 {
		return types.None, false, errors.NegativeCountError{Key: group.String(), Count: n}
	}
	return a.strategy.Finish(state), true, nil
}

// State returns the running state of a group
func (a *Semigroup) State(group types.Key) (reduce.State, bool) {
	state, ok := a.states[group]
	return state, ok
}

// Keys lists the groups with a non-zero state
func (a *Semigroup) Keys() []types.Key {
	keys := make([]types.Key, 0, len(a.states))
	for k := range a.states {
		keys = append(keys, k)
	}
	return sortKeys(keys)
}

// ToBytes serializes this Accumulator
func (a *Semigroup) ToBytes() ([]byte, error) {
	s := &serializedAccumulator{Reducer: a.conf.Reducer.String(), Columns: a.conf.Columns}
	for _, k := range a.Keys() {
		s.Groups = append(s.Groups, serializedGroup{
			Key:     uint64(k),
			Entries: []serializedEntry{{State: a.states[k], Count: 1}},
		})
	}
	return encode(a.conf.Codec, s)
}

// FromBytes produce a new Accumulator from serialized data
func (a *Semigroup) FromBytes(buf []byte) (reduce.Accumulator, error) {
	s, conf, err := decode(buf)
	if err != nil {
		return nil, err
	}
	res, err := NewSemigroup(conf)
	if err != nil {
		return nil, err
	}
	for _, g := range s.Groups {
		for _, e := range g.Entries {
			res.add(types.Key(g.Key), res.strategy.Multiply(e.State, e.Count))
		}
	}
	return res, nil
}
