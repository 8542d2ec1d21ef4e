// pkg/manifest/manifest.go
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest describes a native library set and where to look for it
type Manifest struct {
	Name       string   `toml:"name"`        // display name used in diagnostics
	Libs       []string `toml:"libs"`        // logical names that must all be present, in check order
	Link       []string `toml:"link"`        // logical names to link, in link order (defaults to Libs)
	Env        string   `toml:"env"`         // primary override variable
	LegacyEnv  string   `toml:"legacy_env"`  // secondary override variable, kept for compatibility
	SearchDirs []string `toml:"search_dirs"` // conventional install locations, in priority order
	BinDirs    []string `toml:"bin_dirs"`    // relative bin paths whose sibling lib dir is tried last
	NixName    string   `toml:"nix_name"`    // substring matched against Nix store path names
}

// Default returns the Ultralight SDK manifest
func Default() *Manifest {
	return &Manifest{
		Name:      "Ultralight",
		Libs:      []string{"Ultralight", "AppCore", "UltralightCore", "WebCore"},
		Link:      []string{"AppCore", "Ultralight", "UltralightCore", "WebCore"},
		Env:       "UL_DIR",
		LegacyEnv: "ULTRALIGHT_DIR",
		SearchDirs: []string{
			// Linux
			"/usr/local/lib",
			"/usr/lib",
			"/usr/local/ultralight/lib",
			"/usr/lib/ultralight/lib",
			// macOS
			"/usr/local/opt/ultralight/lib",
			"/opt/homebrew/opt/ultralight/lib",
			// Windows
			`C:\Program Files\Ultralight\lib`,
			`C:\Ultralight\lib`,
			// relative to the build directory
			"ultralight/lib",
			"./ultralight/lib",
			"../ultralight/lib",
			"lib",
			"./lib",
			"../lib",
			"bin",
			"./bin",
			"../bin",
		},
		BinDirs: []string{"bin", "./bin", "../bin"},
		NixName: "ultralight",
	}
}

// Load reads and parses a manifest file.
// Fields left out of the file keep their Ultralight defaults, except Link,
// which follows Libs when Libs is overridden.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: reading %s: %w", filepath.Base(path), err)
	}

	m := Default()
	m.Link = nil
	if _, err := toml.Decode(string(data), m); err != nil {
		return nil, fmt.Errorf("manifest: failed to parse '%s': %w", path, err)
	}
	if len(m.Link) == 0 {
		if sameNames(m.Libs, Default().Libs) {
			m.Link = Default().Link
		} else {
			m.Link = append([]string(nil), m.Libs...)
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that the manifest can drive a search
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest: name is required")
	}
	if len(m.Libs) == 0 {
		return fmt.Errorf("manifest: '%s' lists no libraries", m.Name)
	}
	for _, l := range m.Libs {
		if l == "" {
			return fmt.Errorf("manifest: '%s' has an empty library name", m.Name)
		}
	}
	if m.Env == "" {
		return fmt.Errorf("manifest: '%s' has no override variable", m.Name)
	}
	return nil
}

// EnvVars returns the override variables in priority order
func (m *Manifest) EnvVars() []string {
	vars := []string{m.Env}
	if m.LegacyEnv != "" {
		vars = append(vars, m.LegacyEnv)
	}
	return vars
}

// LinkNames returns the libraries to link, falling back to Libs
func (m *Manifest) LinkNames() []string {
	if len(m.Link) > 0 {
		return m.Link
	}
	return m.Libs
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
