package tutorial

import (
	"fmt"
	"io"

	"github.com/tmr232/pandagen/frame"
)

// Basics builds a small table and walks through selection, derived columns
// and dropping columns, then looks rows up by label and by position.
func Basics(w io.Writer) error {
	df, err := frame.New([]frame.Column{
		frame.Ints("A", 1, 2, 3, 4),
		frame.Ints("B", 10, 20, 30, 40),
		frame.Strings("C", "a", "b", "c", "d"),
	})
	if err != nil {
		return err
	}
	fmt.Fprint(w, df)

	fmt.Fprint(w, df.Filter(func(r frame.Row) bool {
		return r.Get("B").Greater(frame.Int(15))
	}))
	fmt.Fprint(w, df.Slice(1, 3))

	err = df.Assign("D", func(r frame.Row) (frame.Value, error) {
		return r.Get("A").Mul(frame.Int(2))
	})
	if err != nil {
		return err
	}
	fmt.Fprint(w, df)

	if err := df.DropInPlace("C"); err != nil {
		return err
	}
	fmt.Fprint(w, df)

	fmt.Fprintln(w, "----------")
	df, err = frame.New([]frame.Column{
		frame.Ints("A", 10, 20, 30),
		frame.Ints("B", 100, 200, 300),
	}, frame.WithIndex("x", "y", "z"))
	if err != nil {
		return err
	}
	fmt.Fprint(w, df)

	row, err := df.Loc("x")
	if err != nil {
		return err
	}
	fmt.Fprint(w, row)

	row, err = df.ILoc(0)
	if err != nil {
		return err
	}
	fmt.Fprint(w, row)
	return nil
}
