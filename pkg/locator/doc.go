// pkg/locator/doc.go

/*
Package locator finds the directory holding a native library set.

It handles:
  - Expanding logical library names into platform filenames
  - Building the candidate list (override variables, install locations, bin/lib siblings)
  - Accepting the first directory that holds every required file

Basic Usage:

	l := locator.New(locator.Options{
	    Platform: platform.Detect("", nil),
	})

	res, err := l.Locate(ctx)
	if err != nil {
	    log.Fatal(err) // Could not find Ultralight libraries. Please set UL_DIR ...
	}
	fmt.Println(res.Message()) // Using Ultralight from UL_DIR/lib: /opt/ultralight/lib

Candidate Order:

The primary override variable (UL_DIR) is tried as given, then its lib
subdirectory, then the lib directory next to it. The legacy variable
(ULTRALIGHT_DIR) follows with itself and its lib subdirectory. Then come
the conventional install locations of the manifest, then the lib siblings
of the relative bin directories. Configured extra directories and Nix store
paths, when enabled, are tried last.

An override variable set to the empty string counts as unset: it is logged
as not set and contributes no candidates, rather than probing the working
directory.

A directory with only some of the libraries is never accepted.
*/
package locator
