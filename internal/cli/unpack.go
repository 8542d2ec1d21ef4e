// internal/cli/unpack.go
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vanlueckn/ul2"
	"github.com/vanlueckn/ul2/pkg/archive"
)

var unpackCmd = &cobra.Command{
	Use:   "unpack <archive> <dest>",
	Short: "Unpack a local SDK archive and check it holds the libraries",
	Long: `Extract an SDK archive already on disk (.tar.xz, .tar.gz, .tar, .zip,
.nar, .nar.xz) into dest, then locate the libraries inside it as if the
override variable pointed at dest.`,
	Args: cobra.ExactArgs(2),
	RunE: runUnpack,
}

func runUnpack(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	src, dest := args[0], args[1]

	absDest, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("resolving destination: %w", err)
	}

	stats, err := archive.New(newLogger()).Extract(ctx, src, absDest)
	if err != nil {
		return fmt.Errorf("unpacking %s: %w", src, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Unpacked %d files into %s\n", stats.Files, absDest)

	opts, err := lookupOptions()
	if err != nil {
		return err
	}
	envVar := opts.Manifest.Env
	opts.LookupEnv = func(key string) (string, bool) {
		if key == envVar {
			return absDest, true
		}
		return "", false
	}
	// restrict the search to the unpacked tree and its top-level folders
	opts.Manifest.LegacyEnv = ""
	opts.Manifest.SearchDirs = nil
	opts.Manifest.BinDirs = nil
	opts.ExtraDirs = sdkRoots(absDest)
	opts.NixStore = false

	res, err := ul2.Locate(ctx, opts)
	if err != nil {
		return fmt.Errorf("%s does not contain the %s libraries: %w", absDest, opts.Manifest.Name, err)
	}

	fmt.Fprintln(out, res.Message())
	fmt.Fprintf(out, "export %s=%s\n", envVar, res.Dir)
	return nil
}

// sdkRoots lists the lib directories of the top-level folders in dir, since
// SDK archives usually wrap everything in one versioned folder
func sdkRoots(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var roots []string
	for _, e := range entries {
		if e.IsDir() {
			roots = append(roots, filepath.Join(dir, e.Name()), filepath.Join(dir, e.Name(), "lib"))
		}
	}
	return roots
}
