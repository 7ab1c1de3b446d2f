package reduce

import "github.com/go-sif/reduce/types"

// Value is the tagged union of everything a reducer consumes and produces
type Value = types.Value

// Key identifies a row within a group
type Key = types.Key

// Row is one distinct row observed within a group: its own Key, its column
// values and its net multiplicity
type Row struct {
	Key    Key
	Values []Value
	Count  int
}

// Group is every row sharing a grouping Key
type Group struct {
	Key  Key
	Rows []Row
}
