package accumulators

import (
	"bytes"
	"encoding/gob"
	"sort"

	"github.com/go-sif/reduce"
	"github.com/go-sif/reduce/reducers"
	"github.com/go-sif/reduce/types"
)

// Conf configures a reducing Accumulator
type Conf struct {
	Reducer reducers.Reducer // the reduction to apply to each group
	Columns []int            // indices of the row values passed to the reducer, in order. All values if empty.
	Codec   Codec            // compression used by ToBytes
}

func (c *Conf) clone() *Conf {
	return &Conf{
		Reducer: c.Reducer,
		Columns: append([]int(nil), c.Columns...),
		Codec:   c.Codec,
	}
}

func (c *Conf) sameReduction(o *Conf) bool {
	if c.Reducer != o.Reducer || len(c.Columns) != len(o.Columns) {
		return false
	}
	for i := range c.Columns {
		if c.Columns[i] != o.Columns[i] {
			return false
		}
	}
	return true
}

// selectColumns picks the values this reduction consumes
func (c *Conf) selectColumns(values []types.Value) []types.Value {
	if len(c.Columns) == 0 {
		return values
	}
	selected := make([]types.Value, len(c.Columns))
	for i, idx := range c.Columns {
		if idx < len(values) {
			selected[i] = values[idx]
		}
	}
	return selected
}

// New creates an Accumulator for conf, preferring semigroup accumulation when the
// reducer supports it
func New(conf *Conf) reduce.Accumulator {
	if _, ok := conf.Reducer.SemigroupStrategy(); ok {
		acc, _ := NewSemigroup(conf)
		return acc
	}
	return NewGrouped(conf)
}

// Factory returns a function creating empty Accumulators for conf, for use with Compose
func Factory(conf *Conf) func() reduce.Accumulator {
	return func() reduce.Accumulator {
		return New(conf)
	}
}

type serializedEntry struct {
	State reduce.State
	Count int64
}

type serializedGroup struct {
	Key     uint64
	Entries []serializedEntry
}

type serializedAccumulator struct {
	Reducer string
	Columns []int
	Groups  []serializedGroup
}

func encode(c Codec, s *serializedAccumulator) ([]byte, error) {
	buff := new(bytes.Buffer)
	e := gob.NewEncoder(buff)
	if err := e.Encode(s); err != nil {
		return nil, err
	}
	return c.compress(buff.Bytes())
}

func decode(buf []byte) (*serializedAccumulator, *Conf, error) {
	data, err := decompress(buf)
	if err != nil {
		return nil, nil, err
	}
	var s serializedAccumulator
	d := gob.NewDecoder(bytes.NewBuffer(data))
	if err := d.Decode(&s); err != nil {
		return nil, nil, err
	}
	r, err := reducers.ParseReducer(s.Reducer)
	if err != nil {
		return nil, nil, err
	}
	return &s, &Conf{Reducer: r, Columns: s.Columns, Codec: Codec(buf[0])}, nil
}

// stateID produces the identity of a partial state: equal states produce equal ids
func stateID(state reduce.State) (string, error) {
	buff := new(bytes.Buffer)
	e := gob.NewEncoder(buff)
	if err := e.Encode(&state); err != nil {
		return "", err
	}
	return buff.String(), nil
}

func sortKeys(keys []types.Key) []types.Key {
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
