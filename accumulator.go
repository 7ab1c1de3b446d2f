package reduce

// An Accumulator maintains the reduction state of many groups incrementally.
// Rows are added with a positive diff and retracted with a negative one.
// Accumulators filled on different workers are merged into one before results
// are read, and are serialized for transfer between workers.
type Accumulator interface {
	Accumulate(group Key, row Key, values []Value, diff int) error // Accumulate adds (or retracts) a row of a group
	Merge(o Accumulator) error                                     // Merge merges another Accumulator into this one
	Result(group Key) (Value, bool, error)                         // Result finishes the reduction of a group, if it has any rows
	Keys() []Key                                                   // Keys lists the groups with rows, in Key order
	ToBytes() ([]byte, error)                                      // ToBytes serializes this Accumulator
	FromBytes(buf []byte) (Accumulator, error)                     // FromBytes produce a new Accumulator from serialized data
}
