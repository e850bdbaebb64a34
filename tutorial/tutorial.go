//go:build !gengen

// Package tutorial holds short walkthroughs of the frame and generator
// packages. Each one writes what it shows to an io.Writer.
package tutorial

import (
	"fmt"
	"io"
)

// Tutorial is a named walkthrough.
type Tutorial struct {
	Name  string
	Usage string
	Run   func(w io.Writer) error
}

// All lists the tutorials in the order they are meant to be read.
var All = []Tutorial{
	{Name: "basics", Usage: "construct, select, derive and drop", Run: Basics},
	{Name: "clean", Usage: "missing values and dates", Run: Clean},
	{Name: "groupby", Usage: "grouped reductions", Run: GroupBy},
	{Name: "yield", Usage: "a resumable generator", Run: Yield},
}

// Yield drains MyGenerator, printing every value it hands out.
func Yield(w io.Writer) error {
	gen := MyGenerator(w)
	for gen.Next() {
		fmt.Fprintln(w, gen.Value())
	}
	return gen.Error()
}
