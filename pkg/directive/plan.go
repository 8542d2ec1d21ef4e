// pkg/directive/plan.go
package directive

// Plan is the linkage configuration for a located library directory
type Plan struct {
	Dir      string   // directory holding the libraries
	Libs     []string // logical names to link, in order
	Rpath    bool     // embed Dir as a runtime search path
	WatchEnv []string // variables that should trigger a re-run
	Warnings []string // diagnostics printed before the link directives
}

// Build turns a plan into directives: the search path, one link per
// library, the rpath argument when enabled, then the re-run triggers.
func Build(p Plan) []Directive {
	var ds []Directive
	for _, w := range p.Warnings {
		ds = append(ds, Directive{Kind: Warning, Value: w})
	}

	ds = append(ds, Directive{Kind: LinkSearch, Value: "native=" + p.Dir})
	for _, lib := range p.Libs {
		ds = append(ds, Directive{Kind: LinkLib, Value: "dylib=" + lib})
	}
	if p.Rpath {
		ds = append(ds, Directive{Kind: LinkArg, Value: "-Wl,-rpath," + p.Dir})
	}

	ds = append(ds, Directive{Kind: RerunIfChanged, Value: p.Dir})
	for _, v := range p.WatchEnv {
		ds = append(ds, Directive{Kind: RerunIfEnvChanged, Value: v})
	}
	return ds
}
