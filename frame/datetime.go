package frame

import (
	"errors"
	"fmt"
	"time"

	"github.com/itchyny/timefmt-go"
)

// ErrParse is returned when a string can't be converted under the Raise policy.
var ErrParse = errors.New("frame: unparsable value")

// ErrorPolicy decides what happens to entries that can't be converted.
type ErrorPolicy int

const (
	// Raise fails the whole conversion on the first bad entry.
	Raise ErrorPolicy = iota
	// Coerce replaces bad entries with a missing value and carries on.
	Coerce
)

// ToDatetime converts a string column to date/times using a strftime
// format such as "%Y-%m-%d". Entries that don't match the format exactly
// are bad entries, handled by policy. Under Raise, f is left unchanged when
// an error is returned.
func (f *Frame) ToDatetime(name, format string, policy ErrorPolicy) error {
	_, s, err := f.column(name)
	if err != nil {
		return err
	}
	switch s.kind {
	case KindTime:
		return nil
	case KindString, KindUnknown:
	default:
		return fmt.Errorf("%w: cannot parse %v column %q as time", ErrKind, s.kind, name)
	}

	values := make([]Value, len(s.values))
	for i, v := range s.values {
		str, ok := v.Str()
		if !ok {
			values[i] = Missing(KindTime)
			continue
		}

		t, err := parseExact(str, format)
		if err != nil {
			if policy == Raise {
				return fmt.Errorf("%w: column %q, row %s: %w", ErrParse, name, f.index[i], err)
			}
			values[i] = Missing(KindTime)
			continue
		}
		values[i] = Time(t)
	}

	// a column of only missing values would otherwise have no kind
	s, err = newSeries(name, values)
	if err != nil {
		return err
	}
	s.kind = KindTime
	return f.replaceColumn(s)
}

// parseExact parses str with format and rejects results that don't format
// back to str, such as "2023-02-30" rolling over into March.
func parseExact(str, format string) (time.Time, error) {
	t, err := timefmt.Parse(str, format)
	if err != nil {
		return time.Time{}, err
	}
	if got := timefmt.Format(t, format); got != str {
		return time.Time{}, fmt.Errorf("%q is not a valid %q date (normalizes to %q)", str, format, got)
	}
	return t, nil
}

func (f *Frame) replaceColumn(s *series) error {
	i, _, err := f.column(s.name)
	if err != nil {
		return err
	}
	f.columns[i] = s
	return nil
}

// DateField is a calendar component of a date.
type DateField int

const (
	Year DateField = iota
	Month
	Day
)

func (d DateField) String() string {
	switch d {
	case Year:
		return "year"
	case Month:
		return "month"
	case Day:
		return "day"
	}
	return fmt.Sprintf("DateField(%d)", int(d))
}

// DatePart stores field of each date in the src column into the dst column
// as integers. Missing dates give missing fields.
func (f *Frame) DatePart(src, dst string, field DateField) error {
	_, s, err := f.column(src)
	if err != nil {
		return err
	}
	if s.kind != KindTime {
		return fmt.Errorf("%w: column %q is %v, not time", ErrKind, src, s.kind)
	}

	values := make([]Value, len(s.values))
	for i, v := range s.values {
		t, ok := v.Time()
		if !ok {
			values[i] = Missing(KindInt)
			continue
		}
		switch field {
		case Year:
			values[i] = Int(int64(t.Year()))
		case Month:
			values[i] = Int(int64(t.Month()))
		case Day:
			values[i] = Int(int64(t.Day()))
		default:
			return fmt.Errorf("unknown date field %v", field)
		}
	}

	out, err := newSeries(dst, values)
	if err != nil {
		return err
	}
	out.kind = KindInt
	if _, _, err := f.column(dst); err == nil {
		return f.replaceColumn(out)
	}
	f.columns = append(f.columns, out)
	return nil
}
