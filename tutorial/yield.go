//go:build gengen

//go:generate go run github.com/tmr232/pandagen/cmd/gengen

package tutorial

import (
	"fmt"
	"io"

	"github.com/tmr232/pandagen/gengen"
)

// MyGenerator reports its progress to w around each of the values it yields.
func MyGenerator(w io.Writer) gengen.Generator[int] {
	fmt.Fprintln(w, "Start")
	gengen.Yield(10)
	fmt.Fprintln(w, "Middle")
	gengen.Yield(20)
	fmt.Fprintln(w, "End")
	return nil
}
