// internal/cli/search.go
package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vanlueckn/ul2"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Show every candidate directory and what it is missing",
	Long: `Probe all candidate directories without stopping at the first match.
Useful to find out why a build picked (or did not find) a directory.`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	opts, err := lookupOptions()
	if err != nil {
		return err
	}

	l := ul2.NewLocator(opts)
	probes, err := l.Search(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Library set: %s %v\n\n", l.Manifest().Name, l.Files())

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tSOURCE\tDIRECTORY\tSTATUS")
	selected := false
	for _, p := range probes {
		mark := " "
		if p.OK() && !selected {
			mark = "*"
			selected = true
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, p.Candidate.Source, p.Dir, probeStatus(p))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !selected {
		fmt.Fprintf(out, "\nNo candidate holds every library; set %s.\n", l.Manifest().Env)
	}
	return nil
}

func probeStatus(p ul2.Probe) string {
	switch {
	case p.OK():
		return "ok"
	case !p.Exists:
		return "no such directory"
	default:
		return "missing " + strings.Join(p.Missing, ", ")
	}
}
