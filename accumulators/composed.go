package accumulators

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/go-sif/reduce"
	errors "github.com/go-sif/reduce/errors"
	"github.com/go-sif/reduce/types"
)

// Compose returns a new Composed Accumulator factory
func Compose(faccs ...func() reduce.Accumulator) func() reduce.Accumulator {
	return func() reduce.Accumulator {
		accs := make([]reduce.Accumulator, len(faccs))
		for i, f := range faccs {
			accs[i] = f()
		}
		return &Composed{accs: accs}
	}
}

// Composed composes other Accumulators, typically one per reduced column of the same groups
type Composed struct {
	accs []reduce.Accumulator
}

// GetResults returns the contained Accumulators, so that their results may be accessed
func (c *Composed) GetResults() []reduce.Accumulator {
	return c.accs
}

// Accumulate adds a row to all contained Accumulators
func (c *Composed) Accumulate(group types.Key, row types.Key, values []types.Value, diff int) error {
	for _, a := range c.accs {
		err := a.Accumulate(group, row, values, diff)
		if err != nil {
			return err
		}
	}
	return nil
}

// Merge merges another Composed Accumulator into this one, merging all contained Accumulators
func (c *Composed) Merge(o reduce.Accumulator) error {
	compa, ok := o.(*Composed)
	if !ok || len(compa.accs) != len(c.accs) {
		return errors.IncompatibleAccumulatorError{Expected: "Composed"}
	}
	for i, a := range c.accs {
		err := a.Merge(compa.accs[i])
		if err != nil {
			return err
		}
	}
	return nil
}

// Result returns a Tuple holding the result of every contained Accumulator for a
// group. Accumulators without rows for the group contribute None.
func (c *Composed) Result(group types.Key) (types.Value, bool, error) {
	values := make([]types.Value, len(c.accs))
	found := false
	for i, a := range c.accs {
		v, ok, err := a.Result(group)
		if err != nil {
			return types.None, false, err
		}
		values[i] = v
		found = found || ok
	}
	if !found {
		return types.None, false, nil
	}
	return types.Tuple(values...), true, nil
}

// Keys lists the groups with rows in any contained Accumulator
func (c *Composed) Keys() []types.Key {
	seen := make(map[types.Key]bool)
	var keys []types.Key
	for _, a := range c.accs {
		for _, k := range a.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return sortKeys(keys)
}

// ToBytes serializes this Accumulator
func (c *Composed) ToBytes() ([]byte, error) {
	result := make([][]byte, len(c.accs))
	for i, a := range c.accs {
		buff, err := a.ToBytes()
		if err != nil {
			return nil, err
		}
		result[i] = buff
	}
	buff := new(bytes.Buffer)
	e := gob.NewEncoder(buff)
	err := e.Encode(result)
	if err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// FromBytes produce a new Accumulator from serialized data
func (c *Composed) FromBytes(buff []byte) (reduce.Accumulator, error) {
	var deser [][]byte
	d := gob.NewDecoder(bytes.NewBuffer(buff))
	err := d.Decode(&deser)
	if err != nil {
		return nil, err
	}
	if len(deser) != len(c.accs) {
		return nil, fmt.Errorf("serialized Composed Accumulator holds %d accumulators, expected %d", len(deser), len(c.accs))
	}
	newAcs := make([]reduce.Accumulator, len(c.accs))
	for i, b := range deser {
		a, err := c.accs[i].FromBytes(b)
		if err != nil {
			return nil, err
		}
		newAcs[i] = a
	}
	return &Composed{accs: newAcs}, nil
}
