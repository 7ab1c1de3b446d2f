package reducers

import (
	"testing"

	"github.com/go-sif/reduce"
	"github.com/go-sif/reduce/types"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	key    types.Key
	values []types.Value
	count  int
}

func row(key uint64, count int, values ...types.Value) testRow {
	return testRow{key: types.Key(key), values: values, count: count}
}

func initRows(s reduce.Strategy, rows []testRow) []reduce.Weighted[reduce.State] {
	var states []reduce.Weighted[reduce.State]
	for _, r := range rows {
		if state, ok := s.Init(r.key, r.values); ok {
			states = append(states, reduce.Weighted[reduce.State]{State: state, Count: r.count})
		}
	}
	return states
}

func reduceRows(s reduce.Strategy, rows []testRow) types.Value {
	return s.Finish(s.Combine(initRows(s, rows)))
}

// reduceSplit combines two partitions of rows separately, then merges the partial results
func reduceSplit(s reduce.Strategy, rows []testRow, split int) types.Value {
	left := s.Combine(initRows(s, rows[:split]))
	right := s.Combine(initRows(s, rows[split:]))
	return s.Finish(s.Combine([]reduce.Weighted[reduce.State]{{State: right, Count: 1}, {State: left, Count: 1}}))
}

func reversed(rows []testRow) []testRow {
	res := make([]testRow, len(rows))
	for i, r := range rows {
		res[len(rows)-1-i] = r
	}
	return res
}

func requireEqualValues(t *testing.T, expected, actual types.Value) {
	t.Helper()
	require.True(t, types.Equal(expected, actual), "expected %s, got %s", expected, actual)
}

func TestCombineIsPartitionIndependent(t *testing.T) {
	numeric := []testRow{
		row(4, 1, types.Int(3)),
		row(9, 2, types.Int(1)),
		row(2, 1, types.Int(4)),
		row(7, 3, types.Int(1)),
		row(5, 1, types.Int(5)),
	}
	floats := []testRow{
		row(1, 1, types.Float(0.5)),
		row(2, 4, types.Float(0.25)),
		row(3, 1, types.String("skipped")),
		row(4, 2, types.Float(2)),
	}
	arrays := []testRow{
		row(1, 1, types.IntArray(1, 2)),
		row(2, 2, types.IntArray(3, 4)),
		row(3, 5, types.IntArray(-1, 0)),
	}
	withNones := []testRow{
		row(3, 1, types.None),
		row(1, 2, types.Int(3)),
		row(8, 1, types.Int(1)),
		row(6, 2, types.None),
	}
	ordered := []testRow{
		row(3, 1, types.String("c"), types.Int(2)),
		row(1, 2, types.String("a"), types.Int(9)),
		row(8, 1, types.None),
		row(6, 1, types.String("d"), types.Int(2)),
	}
	constant := []testRow{
		row(3, 1, types.String("x")),
		row(1, 4, types.String("x")),
		row(2, 1, types.String("x")),
	}
	cases := []struct {
		reducer Reducer
		rows    []testRow
	}{
		{Of(IntSum), numeric},
		{Of(FloatSum), floats},
		{Of(ArraySum), arrays},
		{Of(Unique), constant},
		{Of(Min), numeric},
		{Of(Max), numeric},
		{Of(ArgMin), numeric},
		{Of(ArgMax), numeric},
		{Of(Any), numeric},
		{SortedTupleOf(true), withNones},
		{SortedTupleOf(false), withNones},
		{TupleOf(true), ordered},
		{TupleOf(false), ordered},
	}
	for _, c := range cases {
		t.Run(c.reducer.String(), func(t *testing.T) {
			s := c.reducer.Strategy()
			expected := reduceRows(s, c.rows)
			requireEqualValues(t, expected, reduceRows(s, reversed(c.rows)))
			for split := 1; split < len(c.rows); split++ {
				requireEqualValues(t, expected, reduceSplit(s, c.rows, split))
				requireEqualValues(t, expected, reduceSplit(s, reversed(c.rows), split))
			}
		})
	}
}

func TestMultiplicityExpansion(t *testing.T) {
	for _, r := range []Reducer{SortedTupleOf(false), TupleOf(false), Of(IntSum), Of(FloatSum), Of(ArraySum)} {
		t.Run(r.String(), func(t *testing.T) {
			s := r.Strategy()
			value := types.Int(7)
			switch r.Kind {
			case FloatSum:
				value = types.Float(1.5)
			case ArraySum:
				value = types.IntArray(2, 3)
			}
			weighted := reduceRows(s, []testRow{row(1, 3, value), row(2, 1, value)})
			expanded := reduceRows(s, []testRow{row(1, 1, value), row(1, 1, value), row(1, 1, value), row(2, 1, value)})
			requireEqualValues(t, expanded, weighted)
		})
	}
}

func TestParseReducer(t *testing.T) {
	for _, r := range []Reducer{Of(FloatSum), Of(IntSum), Of(ArraySum), Of(Unique), Of(Min), Of(ArgMin),
		Of(Max), Of(ArgMax), Of(Any), SortedTupleOf(true), SortedTupleOf(false), TupleOf(true), TupleOf(false)} {
		parsed, err := ParseReducer(r.String())
		require.Nil(t, err)
		require.Equal(t, r, parsed)
	}
	_, err := ParseReducer("median")
	require.NotNil(t, err)
	_, err = ParseReducer("min:skip_nones")
	require.NotNil(t, err)
	parsed, err := ParseReducer(" Tuple:Skip_Nones ")
	require.Nil(t, err)
	require.Equal(t, TupleOf(true), parsed)
}

func TestSemigroupStrategy(t *testing.T) {
	s, ok := Of(IntSum).SemigroupStrategy()
	require.True(t, ok)
	require.Equal(t, "int_sum", s.Name())
	five, ok := s.Init(types.Key(1), types.Int(5))
	require.True(t, ok)
	total := s.Plus(five, s.Multiply(five, 3))
	requireEqualValues(t, types.Int(20), s.Finish(total))
	require.True(t, s.IsZero(s.Plus(total, s.Multiply(total, -1))))

	_, ok = Of(Min).SemigroupStrategy()
	require.False(t, ok)
}
