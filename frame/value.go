package frame

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the type of the data held by a Value or a column.
type Kind int

const (
	// KindUnknown is the kind of an untyped missing value, which takes the
	// kind of the column it is placed in.
	KindUnknown Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) numeric() bool {
	return k == KindInt || k == KindFloat
}

// Value is a single cell. A Value is either present, holding data of its
// Kind, or missing.
type Value struct {
	kind  Kind
	valid bool

	i int64
	f float64
	s string
	b bool
	t time.Time
}

// NA is an untyped missing value.
var NA = Value{}

// Missing returns a missing value of kind k.
func Missing(k Kind) Value {
	return Value{kind: k}
}

// Int returns an integer value.
func Int(v int64) Value {
	return Value{kind: KindInt, valid: true, i: v}
}

// Float returns a floating point value. NaN is stored as missing.
func Float(v float64) Value {
	if math.IsNaN(v) {
		return Missing(KindFloat)
	}
	return Value{kind: KindFloat, valid: true, f: v}
}

// String returns a string value.
func String(v string) Value {
	return Value{kind: KindString, valid: true, s: v}
}

// Bool returns a boolean value.
func Bool(v bool) Value {
	return Value{kind: KindBool, valid: true, b: v}
}

// Time returns a date/time value.
func Time(v time.Time) Value {
	return Value{kind: KindTime, valid: true, t: v}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v holds no data.
func (v Value) IsMissing() bool { return !v.valid }

// Int returns the integer held by v.
func (v Value) Int() (int64, bool) {
	return v.i, v.valid && v.kind == KindInt
}

// Float returns v as a float. Integers are converted.
func (v Value) Float() (float64, bool) {
	if !v.valid {
		return 0, false
	}
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	}
	return 0, false
}

// Str returns the string held by v.
func (v Value) Str() (string, bool) {
	return v.s, v.valid && v.kind == KindString
}

// Bool returns the boolean held by v.
func (v Value) Bool() (bool, bool) {
	return v.b, v.valid && v.kind == KindBool
}

// Time returns the date/time held by v.
func (v Value) Time() (time.Time, bool) {
	return v.t, v.valid && v.kind == KindTime
}

// withKind gives an untyped missing value the kind k.
func (v Value) withKind(k Kind) Value {
	if v.valid {
		return v
	}
	return Missing(k)
}

func (v Value) arith(o Value, op string, fi func(a, b int64) int64, ff func(a, b float64) float64) (Value, error) {
	kind := v.kind
	if o.kind != kind && o.kind != KindUnknown && kind != KindUnknown {
		kind = KindFloat
	}
	if kind == KindUnknown {
		kind = o.kind
	}
	if fi == nil {
		kind = KindFloat
	}
	if (v.kind != KindUnknown && !v.kind.numeric()) || (o.kind != KindUnknown && !o.kind.numeric()) {
		return Value{}, fmt.Errorf("%w: %v %s %v", ErrKind, v.kind, op, o.kind)
	}
	if !v.valid || !o.valid {
		return Missing(kind), nil
	}

	if kind == KindInt && fi != nil {
		return Int(fi(v.i, o.i)), nil
	}
	a, _ := v.Float()
	b, _ := o.Float()
	return Float(ff(a, b)), nil
}

// Add returns v + o. A missing operand gives a missing result.
func (v Value) Add(o Value) (Value, error) {
	return v.arith(o, "+",
		func(a, b int64) int64 { return a + b },
		func(a, b float64) float64 { return a + b })
}

// Sub returns v - o.
func (v Value) Sub(o Value) (Value, error) {
	return v.arith(o, "-",
		func(a, b int64) int64 { return a - b },
		func(a, b float64) float64 { return a - b })
}

// Mul returns v * o.
func (v Value) Mul(o Value) (Value, error) {
	return v.arith(o, "*",
		func(a, b int64) int64 { return a * b },
		func(a, b float64) float64 { return a * b })
}

// Div returns v / o as a float, also for integers.
func (v Value) Div(o Value) (Value, error) {
	return v.arith(o, "/", nil,
		func(a, b float64) float64 { return a / b })
}

// compare orders two present values of compatible kinds. Integers and
// floats compare numerically.
func (v Value) compare(o Value) (int, bool) {
	if !v.valid || !o.valid {
		return 0, false
	}
	if v.kind.numeric() && o.kind.numeric() {
		if v.kind == KindInt && o.kind == KindInt {
			return cmp.Compare(v.i, o.i), true
		}
		a, _ := v.Float()
		b, _ := o.Float()
		return cmp.Compare(a, b), true
	}
	if v.kind != o.kind {
		return 0, false
	}
	switch v.kind {
	case KindString:
		return strings.Compare(v.s, o.s), true
	case KindTime:
		return v.t.Compare(o.t), true
	case KindBool:
		switch {
		case v.b == o.b:
			return 0, true
		case o.b:
			return -1, true
		default:
			return 1, true
		}
	}
	return 0, false
}

// Equal reports whether v and o are both present and hold the same data.
func (v Value) Equal(o Value) bool {
	c, ok := v.compare(o)
	return ok && c == 0
}

// Greater reports whether v > o. It is false when either value is
// missing or the kinds can't be compared.
func (v Value) Greater(o Value) bool {
	c, ok := v.compare(o)
	return ok && c > 0
}

// Less reports whether v < o.
func (v Value) Less(o Value) bool {
	c, ok := v.compare(o)
	return ok && c < 0
}

// String formats v for display. Missing values print as NaN, or NaT for
// date/time columns.
func (v Value) String() string {
	if !v.valid {
		if v.kind == KindTime {
			return "NaT"
		}
		return "NaN"
	}

	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindString:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		if v.t.Hour() == 0 && v.t.Minute() == 0 && v.t.Second() == 0 && v.t.Nanosecond() == 0 {
			return v.t.Format("2006-01-02")
		}
		return v.t.Format("2006-01-02 15:04:05")
	}
	return "?"
}

// formatFloat always shows a decimal point, so 20 prints as 20.0.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsInf(f, 0) || strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}
