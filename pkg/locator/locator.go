// pkg/locator/locator.go
package locator

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/vanlueckn/ul2/pkg/manifest"
	"github.com/vanlueckn/ul2/pkg/platform"
)

// Locator finds the directory holding a native library set
type Locator struct {
	opts      Options
	manifest  *manifest.Manifest
	files     []string
	lookupEnv platform.LookupFunc
	stat      StatFunc
	logger    *log.Logger
}

// New creates a Locator. Zero options search for Ultralight using the
// process environment and the real filesystem.
func New(opts Options) *Locator {
	l := &Locator{
		opts:      opts,
		manifest:  opts.Manifest,
		lookupEnv: opts.LookupEnv,
		stat:      opts.Stat,
		logger:    opts.Logger,
	}
	if l.manifest == nil {
		l.manifest = manifest.Default()
	}
	if l.lookupEnv == nil {
		l.lookupEnv = os.LookupEnv
	}
	if l.stat == nil {
		l.stat = os.Stat
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard, "", 0)
	}
	l.files = opts.Platform.LibraryFilenames(l.manifest.Libs)
	return l
}

// Files returns the required filenames for the target platform
func (l *Locator) Files() []string {
	return l.files
}

// Manifest returns the library set being searched for
func (l *Locator) Manifest() *manifest.Manifest {
	return l.manifest
}

// Locate returns the first candidate holding every required file.
// Sources are consulted in priority order and the search stops at the first match.
func (l *Locator) Locate(ctx context.Context) (*Result, error) {
	l.logger.Printf("Looking for %v (%s)", l.files, l.opts.Platform)

	var tried []Probe
	for _, src := range l.sources() {
		for _, c := range src() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			p := l.Probe(c)
			if !p.OK() {
				tried = append(tried, p)
				continue
			}

			l.logger.Printf("Selected %s (%s)", p.Dir, c.Source)
			return &Result{
				Name:      l.manifest.Name,
				Dir:       p.Dir,
				Candidate: c,
				Files:     l.files,
				Platform:  l.opts.Platform,
				Tried:     tried,
			}, nil
		}
	}

	return nil, &NotFoundError{
		Name:  l.manifest.Name,
		Env:   l.manifest.Env,
		Tried: tried,
	}
}

// Search probes every candidate without stopping at the first match
func (l *Locator) Search(ctx context.Context) ([]Probe, error) {
	var probes []Probe
	for _, c := range l.Candidates() {
		if err := ctx.Err(); err != nil {
			return probes, err
		}
		probes = append(probes, l.Probe(c))
	}
	return probes, nil
}

// Probe tests a single candidate. The directory must exist before its
// children are checked; presence is existence only.
func (l *Locator) Probe(c Candidate) Probe {
	p := Probe{
		Candidate: c,
		Dir:       l.resolve(c.Path),
	}

	info, err := l.stat(p.Dir)
	if err != nil || !info.IsDir() {
		l.logger.Printf("  %s: not a directory", p.Dir)
		p.Missing = append([]string(nil), l.files...)
		return p
	}
	p.Exists = true

	for _, f := range l.files {
		if !l.fileExists(filepath.Join(p.Dir, f)) {
			p.Missing = append(p.Missing, f)
		}
	}
	if len(p.Missing) > 0 {
		l.logger.Printf("  %s: missing %v", p.Dir, p.Missing)
	}
	return p
}

func (l *Locator) resolve(path string) string {
	if l.opts.WorkDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.opts.WorkDir, path)
}

// fileExists checks if a file exists
func (l *Locator) fileExists(path string) bool {
	_, err := l.stat(path)
	return err == nil
}
