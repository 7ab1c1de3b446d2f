package jsonl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sif/reduce/types"
	"github.com/tidwall/gjson"
)

// ToValue converts a parsed JSON value. Missing values and null are None,
// integral numbers are Ints and other numbers Floats. Arrays of numbers, or
// nested arrays of numbers with a regular shape, become numeric arrays; any
// other array becomes a Tuple. Objects are not supported.
func ToValue(r gjson.Result) (types.Value, error) {
	switch r.Type {
	case gjson.Null:
		return types.None, nil
	case gjson.False:
		return types.Bool(false), nil
	case gjson.True:
		return types.Bool(true), nil
	case gjson.String:
		return types.String(r.Str), nil
	case gjson.Number:
		if isIntegral(r) {
			return types.Int(r.Int()), nil
		}
		return types.Float(r.Float()), nil
	}
	if !r.IsArray() {
		return types.None, fmt.Errorf("unsupported JSON value %s", r.Raw)
	}
	if arr, ok := toArray(r); ok {
		return types.ArrayValue(arr), nil
	}
	elems := r.Array()
	values := make([]types.Value, len(elems))
	for i, e := range elems {
		v, err := ToValue(e)
		if err != nil {
			return types.None, err
		}
		values[i] = v
	}
	return types.Tuple(values...), nil
}

func isIntegral(r gjson.Result) bool {
	if strings.ContainsAny(r.Raw, ".eE") {
		return false
	}
	_, err := strconv.ParseInt(r.Raw, 10, 64)
	return err == nil
}

// arrayBuilder flattens nested JSON arrays in row-major order
type arrayBuilder struct {
	shape     []int
	leafDepth int
	leaves    []gjson.Result
}

func (b *arrayBuilder) add(r gjson.Result, depth int) bool {
	elems := r.Array()
	if depth == len(b.shape) {
		b.shape = append(b.shape, len(elems))
	} else if b.shape[depth] != len(elems) {
		return false
	}
	for _, e := range elems {
		switch {
		case e.IsArray():
			if b.leafDepth >= 0 && b.leafDepth <= depth {
				return false
			}
			if !b.add(e, depth+1) {
				return false
			}
		case e.Type == gjson.Number:
			if b.leafDepth < 0 {
				b.leafDepth = depth
			}
			if b.leafDepth != depth || len(b.shape) != depth+1 {
				return false
			}
			b.leaves = append(b.leaves, e)
		default:
			return false
		}
	}
	return true
}

// toArray converts a non-empty, regularly shaped nest of JSON number arrays.
// Arrays holding only integers become IntArrays, others FloatArrays.
func toArray(r gjson.Result) (*types.Array, bool) {
	b := &arrayBuilder{leafDepth: -1}
	if !b.add(r, 0) || len(b.leaves) == 0 {
		return nil, false
	}
	integral := true
	for _, l := range b.leaves {
		if !isIntegral(l) {
			integral = false
			break
		}
	}
	if integral {
		data := make([]int64, len(b.leaves))
		for i, l := range b.leaves {
			data[i] = l.Int()
		}
		return types.NewIntArray(b.shape, data), true
	}
	data := make([]float64, len(b.leaves))
	for i, l := range b.leaves {
		data[i] = l.Float()
	}
	return types.NewFloatArray(b.shape, data), true
}
