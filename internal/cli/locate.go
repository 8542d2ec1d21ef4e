// internal/cli/locate.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vanlueckn/ul2"
	"github.com/vanlueckn/ul2/pkg/directive"
)

var (
	goPackage  string
	outputPath string
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Locate the libraries and print link directives",
	Long: `Search the candidate directories in priority order and print the link
directives for the first one holding every required library.`,
	Args: cobra.NoArgs,
	RunE: runLocate,
}

func init() {
	addLocateFlags(locateCmd)
}

func addLocateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&goPackage, "package", "main", "package clause for --format gofile")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write directives to a file instead of stdout")
}

func runLocate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lookup, err := lookupOptions()
	if err != nil {
		return err
	}

	res, err := ul2.Resolve(ctx, lookup)
	if err != nil {
		return err
	}

	opts := directive.Options{Package: goPackage}
	if outputPath == "" {
		return ul2.Emit(cmd.OutOrStdout(), ul2.Format(config.Format), res.Directives, opts)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := ul2.Emit(f, ul2.Format(config.Format), res.Directives, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
