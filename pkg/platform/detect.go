// pkg/platform/detect.go
package platform

import (
	"fmt"
	"os"
	"runtime"
)

// Family groups target operating systems by their shared library conventions
type Family int

const (
	// Unix covers Linux, the BSDs and anything unrecognized
	Unix Family = iota
	// Apple covers macOS
	Apple
	// Windows uses import libraries without a prefix
	Windows
)

func (f Family) String() string {
	switch f {
	case Apple:
		return "apple"
	case Windows:
		return "windows"
	default:
		return "unix"
	}
}

// Platform describes the target the libraries are linked for
type Platform struct {
	OS   string // target OS as reported by the build environment (linux, macos, darwin, windows, ...)
	Arch string // target architecture, informational only
}

// Target environment variables, checked in order
var targetOSVars = []string{"CARGO_CFG_TARGET_OS", "GOOS"}

var targetArchVars = []string{"CARGO_CFG_TARGET_ARCH", "GOARCH"}

// LookupFunc matches os.LookupEnv
type LookupFunc func(key string) (string, bool)

// Detect determines the target platform from the build environment.
// An explicit override wins, then the build environment variables, then the
// host the tool is running on.
func Detect(override string, lookup LookupFunc) Platform {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	p := Platform{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}
	if v := firstSet(lookup, targetOSVars); v != "" {
		p.OS = v
	}
	if v := firstSet(lookup, targetArchVars); v != "" {
		p.Arch = v
	}
	if override != "" {
		p.OS = override
	}
	return p
}

// ForOS returns a platform for the given target OS string
func ForOS(goos string) Platform {
	return Platform{OS: goos}
}

// Family returns the naming convention family of the target.
// Matching is exact: "Windows" or "MacOS" fall back to Unix.
func (p Platform) Family() Family {
	switch p.OS {
	case "windows":
		return Windows
	case "macos", "darwin":
		return Apple
	default:
		return Unix
	}
}

// SupportsRpath reports whether a runtime search path is embedded for this target.
// Only Linux and macOS targets get one.
func (p Platform) SupportsRpath() bool {
	switch p.OS {
	case "linux", "macos", "darwin":
		return true
	}
	return false
}

// String returns a string representation of the platform
func (p Platform) String() string {
	if p.Arch == "" {
		return fmt.Sprintf("%s (%s)", p.OS, p.Family())
	}
	return fmt.Sprintf("%s/%s (%s)", p.OS, p.Arch, p.Family())
}
