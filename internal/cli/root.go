// internal/cli/root.go
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/vanlueckn/ul2"
	"github.com/vanlueckn/ul2/pkg/core"
)

var (
	cfgFile      string
	targetOS     string
	manifestPath string
	format       string
	nixStore     bool
	debug        bool
	config       *core.Config
)

// rootCmd represents the base command. Without a subcommand it locates the
// libraries and prints the directives, which is how build scripts call it.
var rootCmd = &cobra.Command{
	Use:   "ulconfig",
	Short: "Locate native Ultralight libraries and print link directives",
	Long: `ulconfig - native library locator

Finds a directory holding every required Ultralight library (UL_DIR,
ULTRALIGHT_DIR, then conventional install locations) and prints the
linker configuration for it as Cargo directives, cgo flags or a Go file.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runLocate,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/ulconfig/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&targetOS, "target-os", "", "target OS (default from CARGO_CFG_TARGET_OS, GOOS or the host)")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "TOML file describing the library set (default: Ultralight)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "output format (cargo, cgo, gofile, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&nixStore, "nix-store", false, "also search the Nix store")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	addLocateFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(unpackCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if targetOS != "" {
		config.TargetOS = targetOS
	}
	if manifestPath != "" {
		config.Manifest = manifestPath
	}
	if format != "" {
		config.Format = format
	}
	if nixStore {
		config.NixStore = true
	}
	if debug {
		config.Debug = true
	}
}

func newLogger() *log.Logger {
	if !config.Debug {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "[ulconfig] ", 0)
}

// lookupOptions builds locator options from the effective config
func lookupOptions() (ul2.Options, error) {
	m, err := ul2.LoadManifest(config.Manifest)
	if err != nil {
		return ul2.Options{}, err
	}
	return ul2.Options{
		Manifest:    m,
		TargetOS:    config.TargetOS,
		ExtraDirs:   config.ExtraDirs,
		NixStore:    config.NixStore,
		NixStoreDir: config.NixStoreDir,
		Debug:       config.Debug,
		Logger:      newLogger(),
	}, nil
}
