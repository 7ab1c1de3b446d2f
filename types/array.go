package types

import (
	"cmp"
	"fmt"
	"strings"

	errors "github.com/go-sif/reduce/errors"
)

// Array is an n-dimensional, row-major numeric array holding either int64 or float64 elements.
// Arrays are shared between Values and must not be modified once wrapped in a Value;
// AddInPlace is only ever applied to arrays produced by Clone or Scale.
type Array struct {
	shape   []int
	isFloat bool
	ints    []int64
	floats  []float64
}

// NewIntArray creates an integer Array with the given shape. The product of shape must equal len(data).
func NewIntArray(shape []int, data []int64) *Array {
	checkShape(shape, len(data))
	return &Array{shape: append([]int(nil), shape...), ints: data}
}

// NewFloatArray creates a float Array with the given shape. The product of shape must equal len(data).
func NewFloatArray(shape []int, data []float64) *Array {
	checkShape(shape, len(data))
	return &Array{shape: append([]int(nil), shape...), isFloat: true, floats: data}
}

func checkShape(shape []int, n int) {
	size := 1
	for _, d := range shape {
		if d < 0 {
			panic(fmt.Errorf("negative dimension in shape %v", shape))
		}
		size *= d
	}
	if size != n {
		panic(fmt.Errorf("shape %v does not match %d elements", shape, n))
	}
}

// IsInt returns true iff this Array holds int64 elements
func (a *Array) IsInt() bool {
	return !a.isFloat
}

// Shape returns the dimensions of this Array
func (a *Array) Shape() []int {
	return a.shape
}

// Len returns the number of elements of this Array
func (a *Array) Len() int {
	if a.IsInt() {
		return len(a.ints)
	}
	return len(a.floats)
}

// Ints returns the row-major elements of an integer Array
func (a *Array) Ints() []int64 {
	return a.ints
}

// Floats returns the row-major elements of a float Array
func (a *Array) Floats() []float64 {
	return a.floats
}

// Clone produces a deep copy of this Array
func (a *Array) Clone() *Array {
	c := &Array{shape: append([]int(nil), a.shape...), isFloat: a.isFloat}
	if a.IsInt() {
		c.ints = append(make([]int64, 0, len(a.ints)), a.ints...)
	} else {
		c.floats = append(make([]float64, 0, len(a.floats)), a.floats...)
	}
	return c
}

// Scale produces a new Array with every element multiplied by n
func (a *Array) Scale(n int64) *Array {
	c := &Array{shape: append([]int(nil), a.shape...), isFloat: a.isFloat}
	if a.IsInt() {
		c.ints = make([]int64, len(a.ints))
		for i, v := range a.ints {
			c.ints[i] = v * n
		}
	} else {
		c.floats = make([]float64, len(a.floats))
		f := float64(n)
		for i, v := range a.floats {
			c.floats[i] = v * f
		}
	}
	return c
}

// AddInPlace adds rhs to this Array element-wise. Both Arrays must share an
// element type and a shape, otherwise AddInPlace panics.
func (a *Array) AddInPlace(rhs *Array) {
	if a.IsInt() != rhs.IsInt() {
		panic(errors.MixedArrayTypesError{})
	}
	if !sameShape(a.shape, rhs.shape) {
		panic(errors.ShapeMismatchError{Left: a.shape, Right: rhs.shape})
	}
	if a.IsInt() {
		for i, v := range rhs.ints {
			a.ints[i] += v
		}
		return
	}
	for i, v := range rhs.floats {
		a.floats[i] += v
	}
}

func sameShape(l, r []int) bool {
	if len(l) != len(r) {
		return false
	}
	for i := range l {
		if l[i] != r[i] {
			return false
		}
	}
	return true
}

func compareArrays(l, r *Array) int {
	if c := cmp.Compare(len(l.shape), len(r.shape)); c != 0 {
		return c
	}
	for i := range l.shape {
		if c := cmp.Compare(l.shape[i], r.shape[i]); c != 0 {
			return c
		}
	}
	if l.IsInt() {
		for i := range l.ints {
			if c := cmp.Compare(l.ints[i], r.ints[i]); c != 0 {
				return c
			}
		}
		return 0
	}
	for i := range l.floats {
		if c := compareFloats(l.floats[i], r.floats[i]); c != 0 {
			return c
		}
	}
	return 0
}

// String produces a nested representation of this Array, one bracket level per dimension
func (a *Array) String() string {
	var res strings.Builder
	a.format(&res, 0, 0)
	return res.String()
}

func (a *Array) format(res *strings.Builder, dim int, offset int) {
	if len(a.shape) == 0 {
		a.formatElem(res, 0)
		return
	}
	stride := 1
	for _, d := range a.shape[dim+1:] {
		stride *= d
	}
	res.WriteString("[")
	for i := 0; i < a.shape[dim]; i++ {
		if i > 0 {
			res.WriteString(", ")
		}
		if dim == len(a.shape)-1 {
			a.formatElem(res, offset+i)
		} else {
			a.format(res, dim+1, offset+i*stride)
		}
	}
	res.WriteString("]")
}

func (a *Array) formatElem(res *strings.Builder, i int) {
	if a.IsInt() {
		fmt.Fprintf(res, "%d", a.ints[i])
	} else {
		fmt.Fprintf(res, "%v", a.floats[i])
	}
}
