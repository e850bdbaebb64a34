package frame

import (
	"fmt"
	"slices"

	"github.com/montanaflynn/stats"
)

// Reduction summarizes the values of one group.
type Reduction int

const (
	Mean Reduction = iota
	Max
	Min
	Sum
	Median
	Count
)

func (r Reduction) String() string {
	switch r {
	case Mean:
		return "mean"
	case Max:
		return "max"
	case Min:
		return "min"
	case Sum:
		return "sum"
	case Median:
		return "median"
	case Count:
		return "count"
	}
	return fmt.Sprintf("Reduction(%d)", int(r))
}

// Grouped is a frame partitioned by the values of a key column.
type Grouped struct {
	frame *Frame
	key   string
	keys  []Value
	rows  [][]int
}

// GroupBy partitions the rows of f by the value in the key column. Groups
// are ordered by key; rows with a missing key belong to no group.
func (f *Frame) GroupBy(key string) (*Grouped, error) {
	_, s, err := f.column(key)
	if err != nil {
		return nil, err
	}

	g := &Grouped{frame: f, key: key}
	for i, v := range s.values {
		if v.IsMissing() {
			continue
		}
		n, found := slices.BinarySearchFunc(g.keys, v, func(a, b Value) int {
			c, _ := a.compare(b)
			return c
		})
		if !found {
			g.keys = slices.Insert(g.keys, n, v)
			g.rows = slices.Insert(g.rows, n, []int{})
		}
		g.rows[n] = append(g.rows[n], i)
	}
	return g, nil
}

// Len returns the number of groups.
func (g *Grouped) Len() int {
	return len(g.keys)
}

// Keys returns the group keys in order.
func (g *Grouped) Keys() []Value {
	return slices.Clone(g.keys)
}

// Group returns the rows belonging to the i-th group.
func (g *Grouped) Group(i int) (*Frame, error) {
	if i < 0 || i >= len(g.rows) {
		return nil, fmt.Errorf("%w: group %d not in [0, %d)", ErrOutOfRange, i, len(g.rows))
	}
	return g.frame.derive(g.rows[i]), nil
}

// Agg applies each reduction to the named column within every group. The
// result has one row per group, labelled by the key, and one column per
// reduction, named after it. Missing values are skipped; a group without
// any present value reduces to missing, except for Count.
func (g *Grouped) Agg(name string, reductions ...Reduction) (*Frame, error) {
	_, s, err := g.frame.column(name)
	if err != nil {
		return nil, err
	}
	if len(reductions) == 0 {
		return nil, fmt.Errorf("agg %q: no reductions", name)
	}

	columns := make([]Column, len(reductions))
	for j, r := range reductions {
		columns[j].Name = r.String()
		columns[j].Values = make([]Value, len(g.rows))
		for i, rows := range g.rows {
			v, err := reduce(r, s, rows)
			if err != nil {
				return nil, fmt.Errorf("agg %q: %w", name, err)
			}
			columns[j].Values[i] = v
		}
	}

	index := make([]string, len(g.keys))
	for i, k := range g.keys {
		index[i] = k.String()
	}
	return New(columns, WithIndex(index...), WithIndexName(g.key))
}

// Mean returns the mean of the named column within every group, in a
// column of the same name.
func (g *Grouped) Mean(name string) (*Frame, error) {
	f, err := g.Agg(name, Mean)
	if err != nil {
		return nil, err
	}
	f.columns[0].name = name
	return f, nil
}

func reduce(r Reduction, s *series, rows []int) (Value, error) {
	data := make(stats.Float64Data, 0, len(rows))
	for _, i := range rows {
		if f, ok := s.values[i].Float(); ok {
			data = append(data, f)
		}
	}

	if r == Count {
		n := 0
		for _, i := range rows {
			if !s.values[i].IsMissing() {
				n++
			}
		}
		return Int(int64(n)), nil
	}

	if !s.kind.numeric() {
		return Value{}, fmt.Errorf("%w: %v of %v column", ErrKind, r, s.kind)
	}

	// reductions that stay within the values keep integers integral
	integral := s.kind == KindInt && (r == Max || r == Min || r == Sum)
	if len(data) == 0 {
		if integral {
			return Missing(KindInt), nil
		}
		return Missing(KindFloat), nil
	}

	var (
		res float64
		err error
	)
	switch r {
	case Mean:
		res, err = stats.Mean(data)
	case Max:
		res, err = stats.Max(data)
	case Min:
		res, err = stats.Min(data)
	case Sum:
		res, err = stats.Sum(data)
	case Median:
		res, err = stats.Median(data)
	default:
		return Value{}, fmt.Errorf("unknown reduction %v", r)
	}
	if err != nil {
		return Value{}, err
	}

	if integral {
		return Int(int64(res)), nil
	}
	return Float(res), nil
}
