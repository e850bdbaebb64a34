//go:build gengen

//go:generate go run github.com/tmr232/pandagen/cmd/gengen

package sample

import (
	"github.com/tmr232/pandagen/gengen"
)

func Empty() gengen.Generator[string] {
	return nil
	gengen.Yield("never")
	return nil
}

func EmptyWithError() gengen.Generator[int] {
	return SomeGenError{}
	gengen.Yield(0)
	return nil
}

func Yield() gengen.Generator[int] {
	gengen.Yield(1)
	return nil
}

func Pair(first, second string) gengen.Generator[string] {
	gengen.Yield(first)
	gengen.Yield(second)
	return nil
}

// Countdown yields n, n-1 and n-2.
func Countdown(n int) gengen.Generator[int] {
	gengen.Yield(n)
	n--
	gengen.Yield(n)
	n--
	gengen.Yield(n)
	return nil
}

// Checked fails after its first value when n is negative.
func Checked(n int) gengen.Generator[int] {
	gengen.Yield(n)
	if n < 0 {
		return SomeGenError{}
	}
	gengen.Yield(-n)
	return nil
}

// Summary yields the length of values, then their sum.
func Summary(values []int) gengen.Generator[int] {
	total := 0
	for _, v := range values {
		total += v
	}
	gengen.Yield(len(values))
	gengen.Yield(total)
	return nil
}
