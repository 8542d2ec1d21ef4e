// pkg/directive/gofile.go
package directive

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// cgoDirectiveFlags rewrites Windows separators: #cgo lines treat a
// backslash as an escape and reject it as unsafe, forward slashes work
// for the Windows linker too
func cgoDirectiveFlags(flags []string) []string {
	out := make([]string, len(flags))
	for i, f := range flags {
		out[i] = strings.ReplaceAll(f, `\`, "/")
	}
	return out
}

type goFileEmitter struct {
	pkg string
}

func (goFileEmitter) Format() Format { return FormatGoFile }

func (e goFileEmitter) Emit(w io.Writer, ds []Directive) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "// Code generated by ulconfig. DO NOT EDIT.")
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "package %s\n\n", e.pkg)
	// warnings stay out of the cgo preamble, which is C source
	warned := false
	for _, d := range ds {
		if d.Kind == Warning {
			fmt.Fprintf(bw, "// %s\n", d.Value)
			warned = true
		}
	}
	if warned {
		fmt.Fprintln(bw)
	}
	fmt.Fprintf(bw, "// #cgo LDFLAGS: %s\n", JoinFlags(cgoDirectiveFlags(LDFlags(ds))))
	fmt.Fprintln(bw, `import "C"`)
	return bw.Flush()
}
