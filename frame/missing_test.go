package frame

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withGaps(t *testing.T) *Frame {
	t.Helper()
	f, err := New([]Column{
		Floats("A", 1, 2, math.NaN(), 4),
		Col("B", Int(5), NA, NA, Int(8)),
	})
	require.NoError(t, err)
	return f
}

func TestDropNA(t *testing.T) {
	f := withGaps(t)

	all, err := f.DropNA()
	require.NoError(t, err)
	require.Equal(t, []string{"0", "3"}, all.Index())

	subset, err := f.DropNA("A")
	require.NoError(t, err)
	require.Equal(t, []string{"0", "1", "3"}, subset.Index())
	require.Equal(t, []Value{Int(5), Missing(KindInt), Int(8)}, column(t, subset, "B"))

	_, err = f.DropNA("C")
	require.ErrorIs(t, err, ErrNoSuchColumn)
}

func TestIsNA(t *testing.T) {
	f := withGaps(t)

	na := f.IsNA()
	require.Equal(t, []Value{Bool(false), Bool(false), Bool(true), Bool(false)}, column(t, na, "A"))
	require.Equal(t, []Value{Bool(false), Bool(true), Bool(true), Bool(false)}, column(t, na, "B"))
	require.Equal(t, f.Index(), na.Index())
}

func TestMissingString(t *testing.T) {
	f := withGaps(t)

	want := "" +
		"     A    B\n" +
		"0  1.0    5\n" +
		"1  2.0  NaN\n" +
		"2  NaN  NaN\n" +
		"3  4.0    8\n"
	require.Equal(t, want, f.String())
}

func dates(t *testing.T) *Frame {
	t.Helper()
	f, err := New([]Column{Strings("date", "2023-01-01", "2023/02/15", "invalid_date")})
	require.NoError(t, err)
	return f
}

func TestToDatetime_Coerce(t *testing.T) {
	f := dates(t)

	require.NoError(t, f.ToDatetime("date", "%Y-%m-%d", Coerce))

	kind, err := f.Kind("date")
	require.NoError(t, err)
	require.Equal(t, KindTime, kind)

	values := column(t, f, "date")
	first, ok := values[0].Time()
	require.True(t, ok)
	require.True(t, first.Equal(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, values[1].IsMissing())
	require.True(t, values[2].IsMissing())
	require.Equal(t, "NaT", values[2].String())
}

func TestToDatetime_Raise(t *testing.T) {
	f := dates(t)

	err := f.ToDatetime("date", "%Y-%m-%d", Raise)
	require.ErrorIs(t, err, ErrParse)

	kind, err := f.Kind("date")
	require.NoError(t, err)
	require.Equal(t, KindString, kind)
}

func TestToDatetime_OutOfRange(t *testing.T) {
	for _, str := range []string{"2023-02-30", "2023-13-01"} {
		t.Run(str, func(t *testing.T) {
			f, err := New([]Column{Strings("date", "2024-02-29", str)})
			require.NoError(t, err)

			require.ErrorIs(t, f.ToDatetime("date", "%Y-%m-%d", Raise), ErrParse)
			kind, err := f.Kind("date")
			require.NoError(t, err)
			require.Equal(t, KindString, kind)

			require.NoError(t, f.ToDatetime("date", "%Y-%m-%d", Coerce))
			values := column(t, f, "date")
			leap, ok := values[0].Time()
			require.True(t, ok)
			require.True(t, leap.Equal(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)))
			require.True(t, values[1].IsMissing())
		})
	}
}

func TestToDatetime_WrongKind(t *testing.T) {
	f := basics(t)
	require.ErrorIs(t, f.ToDatetime("A", "%Y", Coerce), ErrKind)
}

func TestDatePart(t *testing.T) {
	f := dates(t)
	require.NoError(t, f.ToDatetime("date", "%Y-%m-%d", Coerce))

	require.NoError(t, f.DatePart("date", "year", Year))
	require.NoError(t, f.DatePart("date", "month", Month))
	require.NoError(t, f.DatePart("date", "day", Day))

	require.Equal(t, []string{"date", "year", "month", "day"}, f.Columns())
	require.Equal(t, []Value{Int(2023), Missing(KindInt), Missing(KindInt)}, column(t, f, "year"))
	require.Equal(t, []Value{Int(1), Missing(KindInt), Missing(KindInt)}, column(t, f, "month"))
	require.Equal(t, []Value{Int(1), Missing(KindInt), Missing(KindInt)}, column(t, f, "day"))

	want := "" +
		"         date  year  month  day\n" +
		"0  2023-01-01  2023      1    1\n" +
		"1         NaT   NaN    NaN  NaN\n" +
		"2         NaT   NaN    NaN  NaN\n"
	require.Equal(t, want, f.String())

	require.ErrorIs(t, f.DatePart("year", "x", Day), ErrKind)
}
