package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func basics(t *testing.T) *Frame {
	t.Helper()
	f, err := New([]Column{
		Ints("A", 1, 2, 3, 4),
		Ints("B", 10, 20, 30, 40),
		Strings("C", "a", "b", "c", "d"),
	})
	require.NoError(t, err)
	return f
}

func column(t *testing.T, f *Frame, name string) []Value {
	t.Helper()
	values, err := f.Column(name)
	require.NoError(t, err)
	return values
}

func TestNew_ShapeMismatch(t *testing.T) {
	_, err := New([]Column{
		Ints("A", 1, 2, 3),
		Ints("B", 1, 2),
	})
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = New([]Column{Ints("A", 1, 2)}, WithIndex("x"))
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestNew_Duplicates(t *testing.T) {
	_, err := New([]Column{Ints("A", 1), Ints("A", 2)})
	require.ErrorIs(t, err, ErrDuplicateColumn)

	_, err = New([]Column{Ints("A", 1, 2)}, WithIndex("x", "x"))
	require.ErrorIs(t, err, ErrDuplicateLabel)
}

func TestNew_Kinds(t *testing.T) {
	f, err := New([]Column{
		Col("mixed", Int(1), Float(2.5), NA),
		Col("ints", Int(1), NA, Int(3)),
	})
	require.NoError(t, err)

	kind, err := f.Kind("mixed")
	require.NoError(t, err)
	require.Equal(t, KindFloat, kind)
	require.Equal(t, []Value{Float(1), Float(2.5), Missing(KindFloat)}, column(t, f, "mixed"))

	kind, err = f.Kind("ints")
	require.NoError(t, err)
	require.Equal(t, KindInt, kind)

	_, err = New([]Column{Col("bad", Int(1), String("x"))})
	require.ErrorIs(t, err, ErrKind)
}

func TestFilter_KeepsLabelsAndOrder(t *testing.T) {
	f := basics(t)

	got := f.Filter(func(r Row) bool {
		return r.Get("B").Greater(Int(15))
	})

	require.Equal(t, []string{"1", "2", "3"}, got.Index())
	require.Equal(t, []Value{Int(20), Int(30), Int(40)}, column(t, got, "B"))
	require.Equal(t, []Value{Int(2), Int(3), Int(4)}, column(t, got, "A"))

	// the source is untouched
	require.Equal(t, 4, f.Len())
}

func TestSlice(t *testing.T) {
	f := basics(t)

	got := f.Slice(1, 3)
	require.Equal(t, []string{"1", "2"}, got.Index())
	require.Equal(t, []Value{String("b"), String("c")}, column(t, got, "C"))

	require.Equal(t, 0, f.Slice(3, 1).Len())
	require.Equal(t, 4, f.Slice(-5, 100).Len())
}

func TestLocAndILoc(t *testing.T) {
	f, err := New([]Column{
		Ints("A", 10, 20, 30),
		Ints("B", 100, 200, 300),
	}, WithIndex("x", "y", "z"))
	require.NoError(t, err)

	first, err := f.Loc("x")
	require.NoError(t, err)
	second, err := f.Loc("x")
	require.NoError(t, err)
	require.Equal(t, first.Values(), second.Values())
	require.Equal(t, []Value{Int(10), Int(100)}, first.Values())

	pos, err := f.ILoc(0)
	require.NoError(t, err)
	require.Equal(t, "x", pos.Label())
	require.Equal(t, first.Values(), pos.Values())

	_, err = f.Loc("w")
	require.ErrorIs(t, err, ErrNoSuchLabel)
	_, err = f.ILoc(3)
	require.ErrorIs(t, err, ErrOutOfRange)

	sub, err := f.Labels("z", "x")
	require.NoError(t, err)
	require.Equal(t, []string{"z", "x"}, sub.Index())
	require.Equal(t, []Value{Int(30), Int(10)}, column(t, sub, "A"))

	_, err = f.Labels("x", "x")
	require.ErrorIs(t, err, ErrDuplicateLabel)
}

func TestAssign(t *testing.T) {
	f := basics(t)

	err := f.Assign("D", func(r Row) (Value, error) {
		return r.Get("A").Mul(Int(2))
	})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C", "D"}, f.Columns())
	require.Equal(t, []Value{Int(2), Int(4), Int(6), Int(8)}, column(t, f, "D"))

	// overwriting keeps the position
	err = f.Assign("A", func(r Row) (Value, error) {
		return r.Get("A").Div(Int(2))
	})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C", "D"}, f.Columns())
	require.Equal(t, []Value{Float(0.5), Float(1), Float(1.5), Float(2)}, column(t, f, "A"))

	err = f.Assign("E", func(r Row) (Value, error) {
		return r.Get("C").Add(Int(1))
	})
	require.ErrorIs(t, err, ErrKind)
	require.NotContains(t, f.Columns(), "E")
}

func TestDrop(t *testing.T) {
	f := basics(t)

	dropped, err := f.Drop("C")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, dropped.Columns())
	require.Equal(t, []string{"A", "B", "C"}, f.Columns())

	require.NoError(t, f.DropInPlace("C", "A"))
	require.Equal(t, []string{"B"}, f.Columns())

	_, err = f.Drop("nope")
	require.ErrorIs(t, err, ErrNoSuchColumn)
	require.ErrorIs(t, f.DropInPlace("nope"), ErrNoSuchColumn)
	require.Equal(t, []string{"B"}, f.Columns())
}

func TestSelect(t *testing.T) {
	f := basics(t)

	got, err := f.Select("C", "A")
	require.NoError(t, err)
	require.Equal(t, []string{"C", "A"}, got.Columns())
	require.Equal(t, f.Index(), got.Index())

	_, err = f.Select("Z")
	require.ErrorIs(t, err, ErrNoSuchColumn)
}

func TestRows(t *testing.T) {
	f := basics(t)

	var labels []string
	for r := range f.Rows().All() {
		labels = append(labels, r.Label()+":"+r.Get("C").String())
	}
	require.Equal(t, []string{"0:a", "1:b", "2:c", "3:d"}, labels)
}

func TestString(t *testing.T) {
	f := basics(t)

	want := "" +
		"   A   B  C\n" +
		"0  1  10  a\n" +
		"1  2  20  b\n" +
		"2  3  30  c\n" +
		"3  4  40  d\n"
	require.Equal(t, want, f.String())
}

func TestRowString(t *testing.T) {
	f, err := New([]Column{
		Ints("A", 10, 20),
		Ints("B", 100, 200),
	}, WithIndex("x", "y"))
	require.NoError(t, err)

	r, err := f.Loc("x")
	require.NoError(t, err)

	want := "" +
		"A   10\n" +
		"B  100\n" +
		"Name: x\n"
	require.Equal(t, want, r.String())
}
