//go:build !gengen

// Package gengen holds the syntax used to write generator functions.
//
// A generator function is written in a file built with the gengen tag. It
// returns a Generator and calls Yield at each pause point:
//
//	//go:build gengen
//
//	func Greet(w io.Writer) gengen.Generator[int] {
//		fmt.Fprintln(w, "Start")
//		gengen.Yield(10)
//		fmt.Fprintln(w, "End")
//		return nil
//	}
//
// Running cmd/gengen over the package turns each such function into a
// producer.Machine plus a constructor with the same signature, written to a
// file built without the tag.
package gengen

// Generator is a sequence of values, pulled one at a time.
type Generator[T any] interface {
	// Next advances to the next value and reports whether there is one.
	Next() bool
	// Value returns the current value.
	Value() T
	// Error returns the error that ended the sequence, if any.
	Error() error
}
