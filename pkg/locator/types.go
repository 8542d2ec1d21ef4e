// pkg/locator/types.go
package locator

import (
	"fmt"
	"io/fs"
	"log"

	"github.com/vanlueckn/ul2/pkg/manifest"
	"github.com/vanlueckn/ul2/pkg/platform"
)

// Source identifies where a candidate directory came from
type Source int

const (
	// SourceEnv is the primary override variable or one of its subdirectories
	SourceEnv Source = iota
	// SourceLegacyEnv is the compatibility override variable
	SourceLegacyEnv
	// SourceSystem is a conventional install location
	SourceSystem
	// SourceBinSibling is the lib directory next to a relative bin directory
	SourceBinSibling
	// SourceExtra comes from the tool configuration
	SourceExtra
	// SourceNixStore is a lib directory inside a Nix store path
	SourceNixStore
)

func (s Source) String() string {
	switch s {
	case SourceEnv:
		return "env"
	case SourceLegacyEnv:
		return "legacy-env"
	case SourceSystem:
		return "system"
	case SourceBinSibling:
		return "bin-sibling"
	case SourceExtra:
		return "extra"
	case SourceNixStore:
		return "nix-store"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// Candidate is a directory that may hold the library set
type Candidate struct {
	Path   string // path as listed, relative paths are relative to the work dir
	Source Source
	Label  string // how diagnostics refer to it, e.g. "UL_DIR/lib"
}

// Probe is the outcome of testing one candidate
type Probe struct {
	Candidate Candidate
	Dir       string   // path actually tested
	Exists    bool     // Dir exists and is a directory
	Missing   []string // required filenames not found in Dir
}

// OK reports whether the candidate holds every required file
func (p Probe) OK() bool {
	return p.Exists && len(p.Missing) == 0
}

// Result is the selected directory
type Result struct {
	Name      string // library set name
	Dir       string
	Candidate Candidate
	Files     []string // required filenames, all present in Dir
	Platform  platform.Platform
	Tried     []Probe // failed probes before the match, in order
}

// Message describes the selection the way it is reported to the operator
func (r *Result) Message() string {
	switch r.Candidate.Source {
	case SourceEnv, SourceLegacyEnv:
		return fmt.Sprintf("Using %s from %s: %s", r.Name, r.Candidate.Label, r.Dir)
	default:
		return fmt.Sprintf("Found %s libraries at: %s", r.Name, r.Dir)
	}
}

// StatFunc matches os.Stat
type StatFunc func(name string) (fs.FileInfo, error)

// Options configures a Locator
type Options struct {
	// Manifest is the library set to look for (default: Ultralight)
	Manifest *manifest.Manifest

	// Platform is the link target
	Platform platform.Platform

	// LookupEnv reads override variables (default: os.LookupEnv)
	LookupEnv platform.LookupFunc

	// Stat is used for existence checks (default: os.Stat)
	Stat StatFunc

	// WorkDir anchors relative candidates; empty means the process working directory
	WorkDir string

	// ExtraDirs are tried after all built-in candidates
	ExtraDirs []string

	// NixStore enables Nix store candidates, tried last
	NixStore bool

	// NixStoreDir overrides the store location (default: /nix/store)
	NixStoreDir string

	// Logger for debug output
	Logger *log.Logger
}
