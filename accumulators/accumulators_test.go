package accumulators

import (
	"testing"

	"github.com/go-sif/reduce"
	errors "github.com/go-sif/reduce/errors"
	"github.com/go-sif/reduce/reducers"
	"github.com/go-sif/reduce/types"
	"github.com/stretchr/testify/require"
)

func requireResult(t *testing.T, acc reduce.Accumulator, group types.Key, expected types.Value) {
	t.Helper()
	v, ok, err := acc.Result(group)
	require.Nil(t, err)
	require.True(t, ok)
	require.True(t, types.Equal(expected, v), "expected %s, got %s", expected, v)
}

func requireNoResult(t *testing.T, acc reduce.Accumulator, group types.Key) {
	t.Helper()
	_, ok, err := acc.Result(group)
	require.Nil(t, err)
	require.False(t, ok)
}

func TestNewPrefersSemigroup(t *testing.T) {
	_, isSemigroup := New(&Conf{Reducer: reducers.Of(reducers.IntSum)}).(*Semigroup)
	require.True(t, isSemigroup)
	_, isGrouped := New(&Conf{Reducer: reducers.Of(reducers.Min)}).(*Grouped)
	require.True(t, isGrouped)
	_, err := NewSemigroup(&Conf{Reducer: reducers.Of(reducers.Max)})
	require.Equal(t, errors.NoSemigroupError{Reducer: "max"}, err)
}

func TestSemigroupRetraction(t *testing.T) {
	acc, err := NewSemigroup(&Conf{Reducer: reducers.Of(reducers.IntSum)})
	require.Nil(t, err)
	g := types.Key(1)
	require.Nil(t, acc.Accumulate(g, types.Key(10), []types.Value{types.Int(5)}, 1))
	require.Nil(t, acc.Accumulate(g, types.Key(11), []types.Value{types.Int(-3)}, 1))
	require.Nil(t, acc.Accumulate(g, types.Key(12), []types.Value{types.Int(10)}, 2))
	requireResult(t, acc, g, types.Int(22))
	state, ok := acc.State(g)
	require.True(t, ok)
	require.Equal(t, reducers.IntSumState{Count: 4, Sum: 22}, state)

	require.Nil(t, acc.Accumulate(g, types.Key(12), []types.Value{types.Int(10)}, -2))
	requireResult(t, acc, g, types.Int(2))
	require.Nil(t, acc.Accumulate(g, types.Key(10), []types.Value{types.Int(5)}, -1))
	require.Nil(t, acc.Accumulate(g, types.Key(11), []types.Value{types.Int(-3)}, -1))
	requireNoResult(t, acc, g)
	require.Empty(t, acc.Keys())
}

func TestGroupedRetraction(t *testing.T) {
	acc := NewGrouped(&Conf{Reducer: reducers.Of(reducers.Min)})
	g := types.Key(7)
	for i, v := range []int64{3, 1, 4} {
		require.Nil(t, acc.Accumulate(g, types.Key(i), []types.Value{types.Int(v)}, 1))
	}
	requireResult(t, acc, g, types.Int(1))
	require.Nil(t, acc.Accumulate(g, types.Key(1), []types.Value{types.Int(1)}, -1))
	requireResult(t, acc, g, types.Int(3))
	require.Equal(t, []types.Key{g}, acc.Keys())
}

func TestGroupedUniqueRecoversAfterRetraction(t *testing.T) {
	acc := NewGrouped(&Conf{Reducer: reducers.Of(reducers.Unique)})
	g := types.Key(1)
	require.Nil(t, acc.Accumulate(g, types.Key(1), []types.Value{types.String("a")}, 1))
	require.Nil(t, acc.Accumulate(g, types.Key(2), []types.Value{types.String("b")}, 1))
	require.Panics(t, func() { _, _, _ = acc.Result(g) })
	require.Nil(t, acc.Accumulate(g, types.Key(2), []types.Value{types.String("b")}, -1))
	requireResult(t, acc, g, types.String("a"))
}

func TestGroupedNegativeCount(t *testing.T) {
	acc := NewGrouped(&Conf{Reducer: reducers.Of(reducers.Max)})
	g := types.Key(3)
	require.Nil(t, acc.Accumulate(g, types.Key(1), []types.Value{types.Int(1)}, -1))
	_, _, err := acc.Result(g)
	require.Equal(t, errors.NegativeCountError{Key: g.String(), Count: -1}, err)
}

func TestSemigroupNegativeCount(t *testing.T) {
	acc, err := NewSemigroup(&Conf{Reducer: reducers.Of(reducers.IntSum)})
	require.Nil(t, err)
	g := types.Key(1)
	require.Nil(t, acc.Accumulate(g, types.Key(1), []types.Value{types.Int(5)}, -1))
	_, ok, err := acc.Result(g)
	require.False(t, ok)
	require.Equal(t, errors.NegativeCountError{Key: g.String(), Count: -1}, err)

	// the group recovers once the missing row arrives
	require.Nil(t, acc.Accumulate(g, types.Key(1), []types.Value{types.Int(5)}, 1))
	requireNoResult(t, acc, g)
	require.Nil(t, acc.Accumulate(g, types.Key(2), []types.Value{types.Int(4)}, 1))
	require.Nil(t, acc.Accumulate(g, types.Key(3), []types.Value{types.Int(7)}, -2))
	_, _, err = acc.Result(g)
	require.Equal(t, errors.NegativeCountError{Key: g.String(), Count: -1}, err)
	require.Nil(t, acc.Accumulate(g, types.Key(3), []types.Value{types.Int(7)}, 2))
	requireResult(t, acc, g, types.Int(4))
}

func TestGroupedColumnsAndMultiplicity(t *testing.T) {
	acc := NewGrouped(&Conf{Reducer: reducers.TupleOf(false), Columns: []int{1, 2}})
	g := types.Key(9)
	require.Nil(t, acc.Accumulate(g, types.Key(2), []types.Value{types.None, types.String("b"), types.Int(1)}, 2))
	require.Nil(t, acc.Accumulate(g, types.Key(1), []types.Value{types.None, types.String("a"), types.Int(5)}, 1))
	requireResult(t, acc, g, types.Tuple(types.String("b"), types.String("b"), types.String("a")))
}

func TestMergeMatchesSingleAccumulator(t *testing.T) {
	confs := []*Conf{
		{Reducer: reducers.Of(reducers.IntSum)},
		{Reducer: reducers.Of(reducers.ArgMax)},
		{Reducer: reducers.SortedTupleOf(true)},
		{Reducer: reducers.Of(reducers.Any)},
	}
	for _, conf := range confs {
		t.Run(conf.Reducer.String(), func(t *testing.T) {
			whole := New(conf)
			left, right := New(conf), New(conf)
			for i := 0; i < 20; i++ {
				group := types.Key(i % 3)
				row := types.Key(i)
				values := []types.Value{types.Int(int64(i * 7 % 5))}
				require.Nil(t, whole.Accumulate(group, row, values, 1))
				part := left
				if i%2 == 1 {
					part = right
				}
				require.Nil(t, part.Accumulate(group, row, values, 1))
			}
			require.Nil(t, left.Merge(right))
			require.Equal(t, whole.Keys(), left.Keys())
			for _, k := range whole.Keys() {
				expected, _, err := whole.Result(k)
				require.Nil(t, err)
				requireResult(t, left, k, expected)
			}
		})
	}
}

func TestMergeRejectsOtherReductions(t *testing.T) {
	minAcc := NewGrouped(&Conf{Reducer: reducers.Of(reducers.Min)})
	maxAcc := NewGrouped(&Conf{Reducer: reducers.Of(reducers.Max)})
	require.NotNil(t, minAcc.Merge(maxAcc))
	sum, err := NewSemigroup(&Conf{Reducer: reducers.Of(reducers.IntSum)})
	require.Nil(t, err)
	require.NotNil(t, minAcc.Merge(sum))
	require.NotNil(t, sum.Merge(minAcc))
}

func TestSerializationRoundTrip(t *testing.T) {
	for _, codec := range []Codec{LZ4, Snappy, Zstd, NoCompression} {
		t.Run(codec.String(), func(t *testing.T) {
			grouped := NewGrouped(&Conf{Reducer: reducers.TupleOf(false), Columns: []int{0, 1}, Codec: codec})
			sum := New(&Conf{Reducer: reducers.Of(reducers.IntSum), Codec: codec})
			for i := 0; i < 10; i++ {
				values := []types.Value{types.Int(int64(i)), types.Float(float64(10 - i))}
				if i == 4 {
					values[0] = types.None
				}
				require.Nil(t, grouped.Accumulate(types.Key(i%2), types.Key(i), values, 1+i%3))
				require.Nil(t, sum.Accumulate(types.Key(i%2), types.Key(i), []types.Value{types.Int(int64(i))}, 1))
			}
			for _, acc := range []reduce.Accumulator{grouped, sum} {
				buf, err := acc.ToBytes()
				require.Nil(t, err)
				require.Equal(t, byte(codec), buf[0])
				restored, err := acc.FromBytes(buf)
				require.Nil(t, err)
				require.Equal(t, acc.Keys(), restored.Keys())
				for _, k := range acc.Keys() {
					expected, _, err := acc.Result(k)
					require.Nil(t, err)
					requireResult(t, restored, k, expected)
				}
			}
		})
	}
}

func TestFromBytesRejectsGarbage(t *testing.T) {
	acc := NewGrouped(&Conf{Reducer: reducers.Of(reducers.Min)})
	_, err := acc.FromBytes(nil)
	require.NotNil(t, err)
	_, err = acc.FromBytes([]byte{byte(NoCompression), 1, 2, 3})
	require.NotNil(t, err)
	_, err = acc.FromBytes([]byte{42})
	require.NotNil(t, err)
}

func TestComposed(t *testing.T) {
	factory := Compose(
		Factory(&Conf{Reducer: reducers.Of(reducers.IntSum), Columns: []int{0}}),
		Factory(&Conf{Reducer: reducers.Of(reducers.Max), Columns: []int{1}, Codec: Snappy}),
	)
	acc := factory()
	other := factory()
	require.Nil(t, acc.Accumulate(types.Key(1), types.Key(1), []types.Value{types.Int(2), types.String("x")}, 1))
	require.Nil(t, other.Accumulate(types.Key(1), types.Key(2), []types.Value{types.Int(3), types.String("y")}, 1))
	require.Nil(t, acc.Merge(other))
	requireResult(t, acc, types.Key(1), types.Tuple(types.Int(5), types.String("y")))
	requireNoResult(t, acc, types.Key(2))
	require.Len(t, acc.(*Composed).GetResults(), 2)

	buf, err := acc.ToBytes()
	require.Nil(t, err)
	restored, err := factory().FromBytes(buf)
	require.Nil(t, err)
	requireResult(t, restored, types.Key(1), types.Tuple(types.Int(5), types.String("y")))
	require.NotNil(t, acc.Merge(NewGrouped(&Conf{Reducer: reducers.Of(reducers.Min)})))
}

func TestParseCodec(t *testing.T) {
	for _, c := range []Codec{LZ4, Snappy, Zstd, NoCompression} {
		parsed, err := ParseCodec(c.String())
		require.Nil(t, err)
		require.Equal(t, c, parsed)
	}
	_, err := ParseCodec("brotli")
	require.NotNil(t, err)
}
