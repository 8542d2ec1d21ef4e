// pkg/nixstore/store.go
package nixstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"zombiezen.com/go/nix"
)

// DefaultDir is where Nix keeps store objects
const DefaultDir = "/nix/store"

// LibDirs returns the lib directories of store objects whose name contains
// match (case-insensitive), sorted by store path.
// Entries that are not valid store paths, derivations or without a lib
// directory are skipped.
func LibDirs(storeDir, match string) ([]string, error) {
	if storeDir == "" {
		storeDir = DefaultDir
	}
	match = strings.ToLower(match)

	entries, err := os.ReadDir(storeDir)
	if err != nil {
		return nil, fmt.Errorf("reading store %s: %w", storeDir, err)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sp, err := nix.ParseStorePath(filepath.Join(storeDir, entry.Name()))
		if err != nil {
			continue
		}
		if !strings.Contains(strings.ToLower(sp.Name()), match) {
			continue
		}
		lib := filepath.Join(string(sp), "lib")
		if info, err := os.Stat(lib); err == nil && info.IsDir() {
			dirs = append(dirs, lib)
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}
