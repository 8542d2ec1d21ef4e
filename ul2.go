// ul2.go
package ul2

import (
	"context"
	"io"
	"log"

	"github.com/vanlueckn/ul2/pkg/directive"
	"github.com/vanlueckn/ul2/pkg/locator"
	"github.com/vanlueckn/ul2/pkg/manifest"
	"github.com/vanlueckn/ul2/pkg/platform"
)

// Re-export types for convenience
type (
	Manifest  = manifest.Manifest
	Platform  = platform.Platform
	Result    = locator.Result
	Candidate = locator.Candidate
	Probe     = locator.Probe
	Directive = directive.Directive
	Format    = directive.Format
)

// Re-export output formats
const (
	FormatCargo  = directive.FormatCargo
	FormatCgo    = directive.FormatCgo
	FormatGoFile = directive.FormatGoFile
	FormatJSON   = directive.FormatJSON
	FormatYAML   = directive.FormatYAML
)

// DefaultManifest returns the Ultralight library set
func DefaultManifest() *Manifest {
	return manifest.Default()
}

// Options configures a lookup
type Options struct {
	// Manifest is the library set (default: Ultralight)
	Manifest *Manifest

	// TargetOS overrides the target detected from the build environment
	TargetOS string

	// LookupEnv reads environment variables (default: os.LookupEnv)
	LookupEnv func(key string) (string, bool)

	// WorkDir anchors relative search dirs (default: process working directory)
	WorkDir string

	// ExtraDirs are searched after the built-in candidates
	ExtraDirs []string

	// NixStore enables Nix store candidates
	NixStore    bool
	NixStoreDir string

	// Debug enables debug logging
	Debug bool

	// Logger for custom logging
	Logger *log.Logger
}

// Resolution is a located library directory together with its directives
type Resolution struct {
	*Result
	Directives []Directive
}

// NewLocator builds a locator from options
func NewLocator(opts Options) *locator.Locator {
	logger := opts.Logger
	if logger == nil || !opts.Debug {
		logger = log.New(io.Discard, "", 0)
	}

	return locator.New(locator.Options{
		Manifest:    opts.Manifest,
		Platform:    platform.Detect(opts.TargetOS, opts.LookupEnv),
		LookupEnv:   opts.LookupEnv,
		WorkDir:     opts.WorkDir,
		ExtraDirs:   opts.ExtraDirs,
		NixStore:    opts.NixStore,
		NixStoreDir: opts.NixStoreDir,
		Logger:      logger,
	})
}

// Locate finds the directory holding every required library.
// The only failure is ErrLibrariesNotFound (or a canceled context).
func Locate(ctx context.Context, opts Options) (*Result, error) {
	return NewLocator(opts).Locate(ctx)
}

// Resolve locates the libraries and plans the link directives for them
func Resolve(ctx context.Context, opts Options) (*Resolution, error) {
	l := NewLocator(opts)
	res, err := l.Locate(ctx)
	if err != nil {
		return nil, err
	}
	return &Resolution{
		Result:     res,
		Directives: Directives(res, l.Manifest()),
	}, nil
}

// Directives returns the build directives for a located directory
func Directives(res *Result, m *Manifest) []Directive {
	if m == nil {
		m = manifest.Default()
	}
	return directive.Build(directive.Plan{
		Dir:      res.Dir,
		Libs:     m.LinkNames(),
		Rpath:    res.Platform.SupportsRpath(),
		WatchEnv: m.EnvVars(),
		Warnings: []string{res.Message()},
	})
}

// Emit writes directives in the given format
func Emit(w io.Writer, format Format, ds []Directive, opts directive.Options) error {
	e, err := directive.New(format, opts)
	if err != nil {
		return &Error{Op: "emit", Err: ErrUnsupportedFormat, Detail: string(format)}
	}
	if err := e.Emit(w, ds); err != nil {
		return &Error{Op: "emit", Detail: string(format), Err: err}
	}
	return nil
}

// LoadManifest reads a TOML library set, or returns the default for an empty path
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return manifest.Default(), nil
	}
	m, err := manifest.Load(path)
	if err != nil {
		return nil, &Error{Op: "load manifest", Detail: path, Err: err}
	}
	return m, nil
}
