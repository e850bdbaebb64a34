package frame

// IsNA returns a frame of the same shape and labels holding true where f
// has a missing value.
func (f *Frame) IsNA() *Frame {
	out := f.derive(f.all())
	for _, s := range out.columns {
		for i, v := range s.values {
			s.values[i] = Bool(v.IsMissing())
		}
		s.kind = KindBool
	}
	return out
}

// DropNA returns the rows without a missing value in any of the subset
// columns. An empty subset means all columns.
func (f *Frame) DropNA(subset ...string) (*Frame, error) {
	cols := f.columns
	if len(subset) > 0 {
		cols = make([]*series, len(subset))
		for i, name := range subset {
			_, s, err := f.column(name)
			if err != nil {
				return nil, err
			}
			cols[i] = s
		}
	}

	var rows []int
next:
	for i := range f.index {
		for _, s := range cols {
			if s.values[i].IsMissing() {
				continue next
			}
		}
		rows = append(rows, i)
	}
	return f.derive(rows), nil
}
