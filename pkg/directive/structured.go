// pkg/directive/structured.go
package directive

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

type jsonEmitter struct{}

func (jsonEmitter) Format() Format { return FormatJSON }

func (jsonEmitter) Emit(w io.Writer, ds []Directive) error {
	if ds == nil {
		ds = []Directive{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ds)
}

type yamlEmitter struct{}

func (yamlEmitter) Format() Format { return FormatYAML }

func (yamlEmitter) Emit(w io.Writer, ds []Directive) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ds); err != nil {
		return err
	}
	return enc.Close()
}
