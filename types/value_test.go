package types

import (
	"cmp"
	"encoding/binary"
	"math"
	"sort"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestCompareAcrossKinds(t *testing.T) {
	ordered := []Value{
		None,
		Bool(false),
		Bool(true),
		Int(-3),
		Int(7),
		Float(-1.5),
		Float(math.NaN()),
		Pointer(Key(1)),
		String("a"),
		String("b"),
		Bytes([]byte("a")),
		Tuple(Int(1)),
		Tuple(Int(1), Int(2)),
		IntArray(1, 2),
		FloatArray(0.5),
	}
	for i := range ordered {
		for j := range ordered {
			expected := cmp.Compare(i, j)
			require.Equal(t, expected, Compare(ordered[i], ordered[j]), "%s vs %s", ordered[i], ordered[j])
		}
	}
}

func TestCompareFloats(t *testing.T) {
	require.True(t, Equal(Float(0), Float(math.Copysign(0, -1))))
	require.True(t, Equal(Float(math.NaN()), Float(math.NaN())))
	require.True(t, Less(Float(math.Inf(1)), Float(math.NaN())))
	require.True(t, Less(Float(math.Inf(-1)), Float(-1e308)))
}

func TestCompareArrays(t *testing.T) {
	// rank first, then shape, then elements
	flat := IntArray(9, 9, 9, 9)
	square := ArrayValue(NewIntArray([]int{2, 2}, []int64{0, 0, 0, 0}))
	require.True(t, Less(flat, square))
	require.True(t, Less(IntArray(5), IntArray(1, 1)))
	require.True(t, Less(IntArray(1, 2), IntArray(1, 3)))
	require.True(t, Equal(FloatArray(1, 2), FloatArray(1, 2)))
}

func TestSortValues(t *testing.T) {
	values := []Value{Int(3), None, Int(1), Int(4), Int(1), Int(5)}
	sort.SliceStable(values, func(i, j int) bool { return Less(values[i], values[j]) })
	require.Equal(t, "None 1 1 3 4 5", joinValues(values))
}

func joinValues(values []Value) string {
	res := ""
	for i, v := range values {
		if i > 0 {
			res += " "
		}
		res += v.String()
	}
	return res
}

func TestValueString(t *testing.T) {
	require.Equal(t, "None", None.String())
	require.Equal(t, "True", Bool(true).String())
	require.Equal(t, "(1, \"a\", None)", Tuple(Int(1), String("a"), None).String())
	require.Equal(t, "[[1, 2], [3, 4]]", ArrayValue(NewIntArray([]int{2, 2}, []int64{1, 2, 3, 4})).String())
	require.Equal(t, "[0.5, 1.5]", FloatArray(0.5, 1.5).String())
	require.Equal(t, "^00000000000000FF", Pointer(Key(255)).String())
}

func TestBinaryRoundTrip(t *testing.T) {
	values := []Value{
		None,
		Bool(true),
		Int(-42),
		Float(2.5),
		Pointer(Key(12345)),
		String("hello"),
		Bytes([]byte{0, 1, 2}),
		Tuple(Int(1), Tuple(String("x"), None)),
		ArrayValue(NewIntArray([]int{2, 3}, []int64{1, 2, 3, 4, 5, 6})),
		FloatArray(0.25, -8),
	}
	for _, v := range values {
		data, err := v.MarshalBinary()
		require.Nil(t, err)
		var decoded Value
		require.Nil(t, decoded.UnmarshalBinary(data))
		require.True(t, Equal(v, decoded), "%s != %s", v, decoded)
		require.Equal(t, v.Kind(), decoded.Kind())
	}
}

func TestUnmarshalBinaryRejectsGarbage(t *testing.T) {
	var v Value
	require.NotNil(t, v.UnmarshalBinary(nil))
	require.NotNil(t, v.UnmarshalBinary([]byte{byte(IntKind), 1, 2}))
	require.NotNil(t, v.UnmarshalBinary([]byte{200}))
	require.NotNil(t, v.UnmarshalBinary([]byte{byte(NoneKind), 0}))
	require.NotNil(t, v.UnmarshalBinary([]byte{byte(BoolKind), 2, 0, 0, 0, 0, 0, 0, 0}))
}

func TestUnmarshalBinaryRejectsOversizedArrays(t *testing.T) {
	var v Value
	// shape [2^32, 2^32] with no elements
	buf := []byte{byte(IntArrayKind), 2}
	buf = binary.AppendUvarint(buf, 1<<32)
	buf = binary.AppendUvarint(buf, 1<<32)
	require.NotNil(t, v.UnmarshalBinary(buf))

	// shape [2^63 + 1] overflows int
	buf = []byte{byte(FloatArrayKind), 1}
	buf = binary.AppendUvarint(buf, 1<<63+1)
	require.NotNil(t, v.UnmarshalBinary(buf))

	// shape [2, 2] followed by only two elements
	buf = []byte{byte(IntArrayKind), 2, 2, 2}
	buf = binary.LittleEndian.AppendUint64(buf, 1)
	buf = binary.LittleEndian.AppendUint64(buf, 2)
	require.NotNil(t, v.UnmarshalBinary(buf))

	// a well-formed 2x2 array still decodes
	encoded, err := ArrayValue(NewIntArray([]int{2, 2}, []int64{1, 2, 3, 4})).MarshalBinary()
	require.Nil(t, err)
	require.Nil(t, v.UnmarshalBinary(encoded))
	a, ok := v.AsArray()
	require.True(t, ok)
	require.Equal(t, []int{2, 2}, a.Shape())
	require.Equal(t, "[[1, 2], [3, 4]]", v.String())
}

func TestUnmarshalBinaryBools(t *testing.T) {
	for _, b := range []bool{true, false} {
		encoded, err := Bool(b).MarshalBinary()
		require.Nil(t, err)
		var v Value
		require.Nil(t, v.UnmarshalBinary(encoded))
		require.True(t, Equal(Bool(b), v))
	}
}

func hashOf(v Value) uint64 {
	hasher := xxhash.New()
	v.Hash(hasher)
	return hasher.Sum64()
}

func TestHashFollowsEquality(t *testing.T) {
	require.Equal(t, hashOf(Float(0)), hashOf(Float(math.Copysign(0, -1))))
	require.Equal(t, hashOf(Float(math.NaN())), hashOf(Float(-math.NaN())))
	require.Equal(t, hashOf(Tuple(Int(1), String("a"))), hashOf(Tuple(Int(1), String("a"))))
	require.NotEqual(t, hashOf(Int(1)), hashOf(Float(1)))
	require.NotEqual(t, hashOf(String("ab")), hashOf(Bytes([]byte("ab"))))
}

func TestKeys(t *testing.T) {
	require.Equal(t, KeyFor(String("a"), Int(1)), KeyFor(String("a"), Int(1)))
	require.NotEqual(t, KeyFor(String("a")), KeyFor(String("b")))
	k := Key(7)
	require.Equal(t, k.SaltedWith(0xDEADBEEF), k.SaltedWith(0xDEADBEEF))
	require.NotEqual(t, k.SaltedWith(1), k.SaltedWith(2))
	require.Equal(t, -1, Key(1).Compare(Key(2)))
	require.Equal(t, 0, Key(2).Compare(Key(2)))
}
