package frame

import (
	"strings"
	"unicode/utf8"
)

func pad(s string, width int, right bool) string {
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// String renders f as a table: row labels on the left, then one
// right-aligned column per frame column, separated by two spaces.
func (f *Frame) String() string {
	cells := make([][]string, len(f.columns))
	widths := make([]int, len(f.columns))
	for j, s := range f.columns {
		cells[j] = make([]string, len(s.values))
		widths[j] = utf8.RuneCountInString(s.name)
		for i, v := range s.values {
			cells[j][i] = v.String()
			widths[j] = max(widths[j], utf8.RuneCountInString(cells[j][i]))
		}
	}

	labelWidth := utf8.RuneCountInString(f.indexName)
	for _, label := range f.index {
		labelWidth = max(labelWidth, utf8.RuneCountInString(label))
	}

	var sb strings.Builder
	line := func(label string, cell func(j int) string) {
		var l strings.Builder
		l.WriteString(pad(label, labelWidth, false))
		for j := range f.columns {
			l.WriteString("  ")
			l.WriteString(pad(cell(j), widths[j], true))
		}
		sb.WriteString(strings.TrimRight(l.String(), " "))
		sb.WriteString("\n")
	}

	line(f.indexName, func(j int) string { return f.columns[j].name })
	for i, label := range f.index {
		line(label, func(j int) string { return cells[j][i] })
	}
	return sb.String()
}

// String renders r as one line per column followed by the row label.
func (r Row) String() string {
	nameWidth, valueWidth := 0, 0
	values := r.Values()
	for j, s := range r.frame.columns {
		nameWidth = max(nameWidth, utf8.RuneCountInString(s.name))
		valueWidth = max(valueWidth, utf8.RuneCountInString(values[j].String()))
	}

	var sb strings.Builder
	for j, s := range r.frame.columns {
		sb.WriteString(pad(s.name, nameWidth, false))
		sb.WriteString("  ")
		sb.WriteString(pad(values[j].String(), valueWidth, true))
		sb.WriteString("\n")
	}
	sb.WriteString("Name: ")
	sb.WriteString(r.Label())
	sb.WriteString("\n")
	return sb.String()
}
