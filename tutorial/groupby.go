package tutorial

import (
	"fmt"
	"io"

	"github.com/tmr232/pandagen/frame"
)

// GroupBy summarizes B within each group of A.
func GroupBy(w io.Writer) error {
	df, err := frame.New([]frame.Column{
		frame.Strings("A", "x", "y", "x", "y", "z"),
		frame.Ints("B", 10, 20, 30, 40, 50),
	})
	if err != nil {
		return err
	}

	groups, err := df.GroupBy("A")
	if err != nil {
		return err
	}

	mean, err := groups.Mean("B")
	if err != nil {
		return err
	}
	fmt.Fprint(w, mean)

	agg, err := groups.Agg("B", frame.Max, frame.Min)
	if err != nil {
		return err
	}
	fmt.Fprint(w, agg)
	return nil
}
