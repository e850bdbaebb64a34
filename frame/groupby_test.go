package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func grouped(t *testing.T) *Grouped {
	t.Helper()
	f, err := New([]Column{
		Strings("A", "x", "y", "x", "y", "z"),
		Ints("B", 10, 20, 30, 40, 50),
	})
	require.NoError(t, err)

	g, err := f.GroupBy("A")
	require.NoError(t, err)
	return g
}

func TestGroupBy_Mean(t *testing.T) {
	g := grouped(t)

	mean, err := g.Mean("B")
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y", "z"}, mean.Index())
	require.Equal(t, []string{"B"}, mean.Columns())
	require.Equal(t, []Value{Float(20), Float(30), Float(50)}, column(t, mean, "B"))

	want := "" +
		"A     B\n" +
		"x  20.0\n" +
		"y  30.0\n" +
		"z  50.0\n"
	require.Equal(t, want, mean.String())
}

func TestGroupBy_Agg(t *testing.T) {
	g := grouped(t)

	agg, err := g.Agg("B", Max, Min)
	require.NoError(t, err)
	require.Equal(t, []string{"max", "min"}, agg.Columns())
	require.Equal(t, []Value{Int(30), Int(40), Int(50)}, column(t, agg, "max"))
	require.Equal(t, []Value{Int(10), Int(20), Int(50)}, column(t, agg, "min"))

	agg, err = g.Agg("B", Sum, Median, Count)
	require.NoError(t, err)
	require.Equal(t, []Value{Int(40), Int(60), Int(50)}, column(t, agg, "sum"))
	require.Equal(t, []Value{Float(20), Float(30), Float(50)}, column(t, agg, "median"))
	require.Equal(t, []Value{Int(2), Int(2), Int(1)}, column(t, agg, "count"))

	_, err = g.Agg("B")
	require.Error(t, err)

	_, err = g.Agg("A", Mean)
	require.ErrorIs(t, err, ErrKind)

	_, err = g.Agg("Q", Mean)
	require.ErrorIs(t, err, ErrNoSuchColumn)
}

func TestGroupBy_KeyOrder(t *testing.T) {
	f, err := New([]Column{
		Col("k", Int(10), Int(9), NA, Int(10)),
		Col("v", Int(1), NA, Int(3), NA),
	})
	require.NoError(t, err)

	g, err := f.GroupBy("k")
	require.NoError(t, err)
	require.Equal(t, []Value{Int(9), Int(10)}, g.Keys())

	agg, err := g.Agg("v", Mean, Max, Count)
	require.NoError(t, err)
	require.Equal(t, []string{"9", "10"}, agg.Index())
	require.Equal(t, []Value{Missing(KindFloat), Float(1)}, column(t, agg, "mean"))
	require.Equal(t, []Value{Missing(KindInt), Int(1)}, column(t, agg, "max"))
	require.Equal(t, []Value{Int(0), Int(1)}, column(t, agg, "count"))

	group, err := g.Group(1)
	require.NoError(t, err)
	require.Equal(t, []string{"0", "3"}, group.Index())

	_, err = g.Group(2)
	require.ErrorIs(t, err, ErrOutOfRange)
}
