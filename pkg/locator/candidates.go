// pkg/locator/candidates.go
package locator

import (
	"path/filepath"

	"github.com/vanlueckn/ul2/pkg/nixstore"
)

// source yields the candidates of one priority tier.
// Tiers are evaluated lazily so a match never consults later sources.
type source func() []Candidate

func (l *Locator) sources() []source {
	return []source{
		l.primaryEnvCandidates,
		l.legacyEnvCandidates,
		l.systemCandidates,
		l.binSiblingCandidates,
		l.extraCandidates,
		l.nixStoreCandidates,
	}
}

// Candidates returns every candidate in priority order
func (l *Locator) Candidates() []Candidate {
	var all []Candidate
	for _, src := range l.sources() {
		all = append(all, src()...)
	}
	return all
}

func (l *Locator) envValue(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	v, ok := l.lookupEnv(key)
	if !ok || v == "" {
		l.logger.Printf("%s is not set", key)
		return "", false
	}
	l.logger.Printf("%s=%s", key, v)
	return v, true
}

// The primary variable is tried as given, then its lib subdirectory, then
// the lib directory next to it (for when a bin directory was given).
func (l *Locator) primaryEnvCandidates() []Candidate {
	key := l.manifest.Env
	dir, ok := l.envValue(key)
	if !ok {
		return nil
	}

	cands := []Candidate{
		{Path: dir, Source: SourceEnv, Label: key},
		{Path: filepath.Join(dir, "lib"), Source: SourceEnv, Label: key + "/lib"},
	}
	clean := filepath.Clean(dir)
	if parent := filepath.Dir(clean); parent != clean {
		cands = append(cands, Candidate{
			Path:   filepath.Join(parent, "lib"),
			Source: SourceEnv,
			Label:  key + " parent's lib",
		})
	}
	return cands
}

func (l *Locator) legacyEnvCandidates() []Candidate {
	key := l.manifest.LegacyEnv
	dir, ok := l.envValue(key)
	if !ok {
		return nil
	}
	return []Candidate{
		{Path: dir, Source: SourceLegacyEnv, Label: key},
		{Path: filepath.Join(dir, "lib"), Source: SourceLegacyEnv, Label: key + "/lib"},
	}
}

func (l *Locator) systemCandidates() []Candidate {
	cands := make([]Candidate, 0, len(l.manifest.SearchDirs))
	for _, dir := range l.manifest.SearchDirs {
		cands = append(cands, Candidate{Path: dir, Source: SourceSystem, Label: dir})
	}
	return cands
}

func (l *Locator) binSiblingCandidates() []Candidate {
	cands := make([]Candidate, 0, len(l.manifest.BinDirs))
	for _, dir := range l.manifest.BinDirs {
		lib := filepath.Join(filepath.Dir(dir), "lib")
		cands = append(cands, Candidate{Path: lib, Source: SourceBinSibling, Label: dir + " sibling lib"})
	}
	return cands
}

func (l *Locator) extraCandidates() []Candidate {
	cands := make([]Candidate, 0, len(l.opts.ExtraDirs))
	for _, dir := range l.opts.ExtraDirs {
		cands = append(cands, Candidate{Path: dir, Source: SourceExtra, Label: dir})
	}
	return cands
}

func (l *Locator) nixStoreCandidates() []Candidate {
	if !l.opts.NixStore || l.manifest.NixName == "" {
		return nil
	}
	dirs, err := nixstore.LibDirs(l.opts.NixStoreDir, l.manifest.NixName)
	if err != nil {
		l.logger.Printf("skipping nix store: %v", err)
		return nil
	}
	cands := make([]Candidate, 0, len(dirs))
	for _, dir := range dirs {
		cands = append(cands, Candidate{Path: dir, Source: SourceNixStore, Label: dir})
	}
	return cands
}
