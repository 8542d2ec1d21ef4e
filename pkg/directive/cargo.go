// pkg/directive/cargo.go
package directive

import (
	"bufio"
	"fmt"
	"io"
)

var cargoKeys = map[Kind]string{
	LinkSearch:        "rustc-link-search",
	LinkLib:           "rustc-link-lib",
	LinkArg:           "rustc-link-arg",
	RerunIfChanged:    "rerun-if-changed",
	RerunIfEnvChanged: "rerun-if-env-changed",
	Warning:           "warning",
}

type cargoEmitter struct{}

func (cargoEmitter) Format() Format { return FormatCargo }

func (cargoEmitter) Emit(w io.Writer, ds []Directive) error {
	bw := bufio.NewWriter(w)
	for _, d := range ds {
		key, ok := cargoKeys[d.Kind]
		if !ok {
			return fmt.Errorf("cargo: unknown directive kind %q", d.Kind)
		}
		fmt.Fprintf(bw, "cargo:%s=%s\n", key, d.Value)
	}
	return bw.Flush()
}
