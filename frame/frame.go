// Package frame is a small column-oriented table: ordered named columns of
// equal length, labelled rows, and an explicit missing marker in place of
// sentinel values.
//
// Operations that derive a table return a new Frame. The exceptions mutate
// the receiver and say so: Assign, DropInPlace, ToDatetime and DatePart.
package frame

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tmr232/pandagen/producer"
)

var (
	ErrShapeMismatch   = errors.New("frame: shape mismatch")
	ErrDuplicateColumn = errors.New("frame: duplicate column")
	ErrDuplicateLabel  = errors.New("frame: duplicate row label")
	ErrNoSuchColumn    = errors.New("frame: no such column")
	ErrNoSuchLabel     = errors.New("frame: no such row label")
	ErrOutOfRange      = errors.New("frame: position out of range")
	ErrKind            = errors.New("frame: incompatible kind")
)

// Column is a named sequence of values used to build a Frame.
type Column struct {
	Name   string
	Values []Value
}

// Col returns a column of the given values.
func Col(name string, values ...Value) Column {
	return Column{Name: name, Values: values}
}

// Ints returns a column of integers.
func Ints(name string, values ...int64) Column {
	c := Column{Name: name, Values: make([]Value, len(values))}
	for i, v := range values {
		c.Values[i] = Int(v)
	}
	return c
}

// Floats returns a column of floats. NaN entries are missing.
func Floats(name string, values ...float64) Column {
	c := Column{Name: name, Values: make([]Value, len(values))}
	for i, v := range values {
		c.Values[i] = Float(v)
	}
	return c
}

// Strings returns a column of strings.
func Strings(name string, values ...string) Column {
	c := Column{Name: name, Values: make([]Value, len(values))}
	for i, v := range values {
		c.Values[i] = String(v)
	}
	return c
}

type series struct {
	name   string
	kind   Kind
	values []Value
}

// newSeries settles the kind of a column: all present values must share a
// kind, except that integers mixed with floats become floats. Missing
// values take the column's kind.
func newSeries(name string, values []Value) (*series, error) {
	kind := KindUnknown
	for _, v := range values {
		switch {
		case v.kind == KindUnknown || v.kind == kind:
		case kind == KindUnknown:
			kind = v.kind
		case kind.numeric() && v.kind.numeric():
			kind = KindFloat
		default:
			return nil, fmt.Errorf("%w: column %q mixes %v and %v", ErrKind, name, kind, v.kind)
		}
	}

	s := &series{name: name, kind: kind, values: make([]Value, len(values))}
	for i, v := range values {
		if kind == KindFloat && v.kind == KindInt {
			f, _ := v.Float()
			v = Float(f)
		}
		s.values[i] = v.withKind(kind)
	}
	return s, nil
}

func (s *series) clone() *series {
	values := make([]Value, len(s.values))
	copy(values, s.values)
	return &series{name: s.name, kind: s.kind, values: values}
}

func (s *series) take(rows []int) *series {
	values := make([]Value, len(rows))
	for i, r := range rows {
		values[i] = s.values[r]
	}
	return &series{name: s.name, kind: s.kind, values: values}
}

// Frame is a table of equally long columns with one label per row.
type Frame struct {
	columns   []*series
	index     []string
	indexName string
	labels    map[string]int
}

// Option configures New.
type Option func(*options)

type options struct {
	index     []string
	indexName string
}

// WithIndex sets explicit row labels. Without it, rows are labelled by
// position, starting at "0".
func WithIndex(labels ...string) Option {
	return func(o *options) {
		o.index = labels
	}
}

// WithIndexName sets the name shown above the row labels.
func WithIndexName(name string) Option {
	return func(o *options) {
		o.indexName = name
	}
}

// New builds a frame from columns, in the order given. All columns must
// have the same length, and so must the index if one is set.
func New(columns []Column, opts ...Option) (*Frame, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	rows := 0
	if len(columns) > 0 {
		rows = len(columns[0].Values)
	} else if o.index != nil {
		rows = len(o.index)
	}

	f := &Frame{indexName: o.indexName}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if len(c.Values) != rows {
			return nil, fmt.Errorf("%w: column %q has %d values, want %d", ErrShapeMismatch, c.Name, len(c.Values), rows)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		seen[c.Name] = true

		s, err := newSeries(c.Name, c.Values)
		if err != nil {
			return nil, err
		}
		f.columns = append(f.columns, s)
	}

	index := o.index
	if index == nil {
		index = make([]string, rows)
		for i := range index {
			index[i] = strconv.Itoa(i)
		}
	}
	if len(index) != rows {
		return nil, fmt.Errorf("%w: index has %d labels, want %d", ErrShapeMismatch, len(index), rows)
	}

	if err := f.setIndex(index); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Frame) setIndex(index []string) error {
	labels := make(map[string]int, len(index))
	for i, label := range index {
		if _, ok := labels[label]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
		}
		labels[label] = i
	}
	f.index = index
	f.labels = labels
	return nil
}

// derive returns a frame holding the given rows of f, in that order.
func (f *Frame) derive(rows []int) *Frame {
	out := &Frame{
		indexName: f.indexName,
		columns:   make([]*series, len(f.columns)),
		index:     make([]string, len(rows)),
		labels:    make(map[string]int, len(rows)),
	}
	for i, s := range f.columns {
		out.columns[i] = s.take(rows)
	}
	for i, r := range rows {
		out.index[i] = f.index[r]
		out.labels[f.index[r]] = i
	}
	return out
}

func (f *Frame) all() []int {
	rows := make([]int, f.Len())
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func (f *Frame) column(name string) (int, *series, error) {
	for i, s := range f.columns {
		if s.name == name {
			return i, s, nil
		}
	}
	return -1, nil, fmt.Errorf("%w: %q", ErrNoSuchColumn, name)
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.index)
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.columns))
	for i, s := range f.columns {
		names[i] = s.name
	}
	return names
}

// Index returns the row labels in order.
func (f *Frame) Index() []string {
	index := make([]string, len(f.index))
	copy(index, f.index)
	return index
}

// Kind returns the kind of the named column.
func (f *Frame) Kind(name string) (Kind, error) {
	_, s, err := f.column(name)
	if err != nil {
		return KindUnknown, err
	}
	return s.kind, nil
}

// Column returns a copy of the values in the named column.
func (f *Frame) Column(name string) ([]Value, error) {
	_, s, err := f.column(name)
	if err != nil {
		return nil, err
	}
	return s.clone().values, nil
}

// Loc returns the row with the given label.
func (f *Frame) Loc(label string) (Row, error) {
	pos, ok := f.labels[label]
	if !ok {
		return Row{}, fmt.Errorf("%w: %q", ErrNoSuchLabel, label)
	}
	return Row{frame: f, pos: pos}, nil
}

// ILoc returns the row at position i.
func (f *Frame) ILoc(i int) (Row, error) {
	if i < 0 || i >= f.Len() {
		return Row{}, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, i, f.Len())
	}
	return Row{frame: f, pos: i}, nil
}

// Labels returns the rows with the given labels, in the order given.
func (f *Frame) Labels(labels ...string) (*Frame, error) {
	rows := make([]int, len(labels))
	seen := make(map[string]bool, len(labels))
	for i, label := range labels {
		pos, ok := f.labels[label]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNoSuchLabel, label)
		}
		if seen[label] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
		}
		seen[label] = true
		rows[i] = pos
	}
	return f.derive(rows), nil
}

// Slice returns the rows at positions [start, end). Bounds are clamped to
// the frame.
func (f *Frame) Slice(start, end int) *Frame {
	start = max(0, min(start, f.Len()))
	end = max(start, min(end, f.Len()))
	return f.derive(f.all()[start:end])
}

// Filter returns the rows for which keep returns true, keeping their labels
// and order.
func (f *Frame) Filter(keep func(Row) bool) *Frame {
	var rows []int
	for i := range f.index {
		if keep(Row{frame: f, pos: i}) {
			rows = append(rows, i)
		}
	}
	return f.derive(rows)
}

// Select returns a frame with only the named columns, in the order given.
func (f *Frame) Select(names ...string) (*Frame, error) {
	out := f.derive(f.all())
	out.columns = out.columns[:0]
	for _, name := range names {
		_, s, err := f.column(name)
		if err != nil {
			return nil, err
		}
		out.columns = append(out.columns, s.clone())
	}
	return out, nil
}

// Expr computes the value of a derived column for one row.
type Expr func(Row) (Value, error)

// Assign sets the named column to expr evaluated on every row. An existing
// column keeps its position; a new one is appended.
func (f *Frame) Assign(name string, expr Expr) error {
	values := make([]Value, f.Len())
	for i := range f.index {
		v, err := expr(Row{frame: f, pos: i})
		if err != nil {
			return fmt.Errorf("assign %q, row %s: %w", name, f.index[i], err)
		}
		values[i] = v
	}
	return f.setColumn(name, values)
}

func (f *Frame) setColumn(name string, values []Value) error {
	s, err := newSeries(name, values)
	if err != nil {
		return err
	}
	if i, _, err := f.column(name); err == nil {
		f.columns[i] = s
		return nil
	}
	f.columns = append(f.columns, s)
	return nil
}

// Drop returns a copy of f without the named columns.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	out := f.derive(f.all())
	if err := out.DropInPlace(names...); err != nil {
		return nil, err
	}
	return out, nil
}

// DropInPlace removes the named columns from f.
func (f *Frame) DropInPlace(names ...string) error {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		if _, _, err := f.column(name); err != nil {
			return err
		}
		drop[name] = true
	}

	kept := f.columns[:0]
	for _, s := range f.columns {
		if !drop[s.name] {
			kept = append(kept, s)
		}
	}
	f.columns = kept
	return nil
}

// Rows returns a producer yielding each row in order.
func (f *Frame) Rows() *producer.Producer[Row] {
	rows := make([]Row, f.Len())
	for i := range rows {
		rows[i] = Row{frame: f, pos: i}
	}
	return producer.FromSlice(rows)
}

// Row is a view of one row of a Frame.
type Row struct {
	frame *Frame
	pos   int
}

// Label returns the row's label.
func (r Row) Label() string {
	return r.frame.index[r.pos]
}

// Lookup returns the value in the named column.
func (r Row) Lookup(name string) (Value, bool) {
	_, s, err := r.frame.column(name)
	if err != nil {
		return NA, false
	}
	return s.values[r.pos], true
}

// Get returns the value in the named column, or NA if there is no such column.
func (r Row) Get(name string) Value {
	v, _ := r.Lookup(name)
	return v
}

// Values returns the row's values in column order.
func (r Row) Values() []Value {
	values := make([]Value, len(r.frame.columns))
	for i, s := range r.frame.columns {
		values[i] = s.values[r.pos]
	}
	return values
}
