//go:build gengen

package gengen

// Yield marks a pause point in a generator function, handing value to the caller.
func Yield(value any) {}

// Generator is a placeholder for generator definitions. It is an error so
// that a generator function can end with `return nil` or `return err`.
// It doesn't work if executed.
type Generator[T any] interface {
	error
}
