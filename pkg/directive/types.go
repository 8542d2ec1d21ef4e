// pkg/directive/types.go
package directive

import (
	"fmt"
	"io"
)

// Kind is the type of a build directive
type Kind string

const (
	// LinkSearch adds a native library search path
	LinkSearch Kind = "link-search"
	// LinkLib links a dynamic library by logical name
	LinkLib Kind = "link-lib"
	// LinkArg passes a raw argument to the linker
	LinkArg Kind = "link-arg"
	// RerunIfChanged re-runs the build step when a path changes
	RerunIfChanged Kind = "rerun-if-changed"
	// RerunIfEnvChanged re-runs the build step when a variable changes
	RerunIfEnvChanged Kind = "rerun-if-env-changed"
	// Warning is a free-form diagnostic line
	Warning Kind = "warning"
)

// Directive is one line of build configuration
type Directive struct {
	Kind  Kind   `json:"kind" yaml:"kind"`
	Value string `json:"value" yaml:"value"`
}

func (d Directive) String() string {
	return fmt.Sprintf("%s=%s", d.Kind, d.Value)
}

// Format selects how directives are written
type Format string

const (
	// FormatCargo prints cargo: lines for a Cargo build script
	FormatCargo Format = "cargo"
	// FormatCgo prints a shell export of CGO_LDFLAGS
	FormatCgo Format = "cgo"
	// FormatGoFile prints a Go source file with a #cgo LDFLAGS preamble
	FormatGoFile Format = "gofile"
	// FormatJSON prints the directive list as JSON
	FormatJSON Format = "json"
	// FormatYAML prints the directive list as YAML
	FormatYAML Format = "yaml"
)

// Formats lists every supported format
var Formats = []Format{FormatCargo, FormatCgo, FormatGoFile, FormatJSON, FormatYAML}

// Emitter writes directives for a build toolchain
type Emitter interface {
	// Emit writes all directives to w
	Emit(w io.Writer, ds []Directive) error

	// Format returns the emitter's format
	Format() Format
}

// Options configures emitters that need extra input
type Options struct {
	// Package is the package clause of generated Go files (default: main)
	Package string
}

// New returns the emitter for a format
func New(format Format, opts Options) (Emitter, error) {
	switch format {
	case FormatCargo, "":
		return cargoEmitter{}, nil
	case FormatCgo:
		return cgoEmitter{}, nil
	case FormatGoFile:
		pkg := opts.Package
		if pkg == "" {
			pkg = "main"
		}
		return goFileEmitter{pkg: pkg}, nil
	case FormatJSON:
		return jsonEmitter{}, nil
	case FormatYAML:
		return yamlEmitter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
