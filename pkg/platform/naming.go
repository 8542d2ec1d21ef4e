// pkg/platform/naming.go
package platform

// LibraryPrefix returns the filename prefix for linkable libraries
func (p Platform) LibraryPrefix() string {
	if p.Family() == Windows {
		return ""
	}
	return "lib"
}

// LibraryExtension returns the extension (without dot) of the file the linker consumes.
// On Windows that is the import library, not the DLL.
func (p Platform) LibraryExtension() string {
	switch p.Family() {
	case Windows:
		return "lib"
	case Apple:
		return "dylib"
	default:
		return "so"
	}
}

// LibraryFilename expands a logical library name into its on-disk filename,
// e.g. "Ultralight" -> "libUltralight.dylib" on macOS
func (p Platform) LibraryFilename(name string) string {
	return p.LibraryPrefix() + name + "." + p.LibraryExtension()
}

// LibraryFilenames expands all names, keeping their order
func (p Platform) LibraryFilenames(names []string) []string {
	files := make([]string, 0, len(names))
	for _, n := range names {
		files = append(files, p.LibraryFilename(n))
	}
	return files
}
