// pkg/directive/cgo.go
package directive

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LDFlags translates link directives into linker flags.
// Re-run triggers and warnings have no linker meaning and are skipped.
func LDFlags(ds []Directive) []string {
	var flags []string
	for _, d := range ds {
		switch d.Kind {
		case LinkSearch:
			flags = append(flags, "-L"+strings.TrimPrefix(d.Value, "native="))
		case LinkLib:
			flags = append(flags, "-l"+strings.TrimPrefix(d.Value, "dylib="))
		case LinkArg:
			flags = append(flags, d.Value)
		}
	}
	return flags
}

type cgoEmitter struct{}

func (cgoEmitter) Format() Format { return FormatCgo }

func (cgoEmitter) Emit(w io.Writer, ds []Directive) error {
	bw := bufio.NewWriter(w)
	for _, d := range ds {
		if d.Kind == Warning {
			fmt.Fprintf(bw, "# %s\n", d.Value)
		}
	}
	fmt.Fprintf(bw, "export CGO_LDFLAGS=%s\n", shellQuote(JoinFlags(LDFlags(ds))))
	return bw.Flush()
}

// JoinFlags joins flags the way the go command splits CGO_LDFLAGS and
// #cgo lines: a flag holding whitespace is quoted so it stays one argument
func JoinFlags(flags []string) string {
	quoted := make([]string, len(flags))
	for i, f := range flags {
		quoted[i] = quoteFlag(f)
	}
	return strings.Join(quoted, " ")
}

func quoteFlag(f string) string {
	if !strings.ContainsAny(f, " \t\n\r'\"") {
		return f
	}
	if strings.Contains(f, `"`) {
		return "'" + f + "'"
	}
	return `"` + f + `"`
}

// shellQuote wraps s in single quotes for POSIX shells
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
