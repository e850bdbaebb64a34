package tutorial

import (
	"fmt"
	"io"
	"math"

	"github.com/tmr232/pandagen/frame"
)

// Clean drops rows with missing values, then parses a column of dates and
// splits it into calendar fields.
func Clean(w io.Writer) error {
	df, err := frame.New([]frame.Column{
		frame.Floats("A", 1, 2, math.NaN(), 4),
		frame.Floats("B", 5, math.NaN(), math.NaN(), 8),
	})
	if err != nil {
		return err
	}
	fmt.Fprint(w, df)

	// rows with a missing value in any column
	cleaned, err := df.DropNA()
	if err != nil {
		return err
	}
	fmt.Fprint(w, cleaned)

	// rows with a missing value in A
	cleaned, err = df.DropNA("A")
	if err != nil {
		return err
	}
	fmt.Fprint(w, cleaned)

	df, err = frame.New([]frame.Column{
		frame.Strings("date", "2023-01-01", "2023/02/15", "invalid_date"),
	})
	if err != nil {
		return err
	}
	if err := df.ToDatetime("date", "%Y-%m-%d", frame.Coerce); err != nil {
		return err
	}
	for _, part := range []struct {
		name  string
		field frame.DateField
	}{
		{"year", frame.Year},
		{"month", frame.Month},
		{"day", frame.Day},
	} {
		if err := df.DatePart("date", part.name, part.field); err != nil {
			return err
		}
	}
	fmt.Fprint(w, df)
	return nil
}
