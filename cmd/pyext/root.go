package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/contriboss/python-extension-go/internal/config"
	"github.com/contriboss/python-extension-go/internal/output"
)

// Build-time variables set via ldflags.
var (
	toolVersion = "v0.0.0-dev"
	gitCommit   = "unknown"
)

var (
	// Global flags
	flagVerbose   bool
	flagConfig    string
	flagDirectory string
)

// rootCmd is the base command for the pyext CLI.
var rootCmd = &cobra.Command{
	Use:   "pyext",
	Short: "Native Python extension build driver",
	Long: `pyext builds compiled Python extension modules.

It configures and invokes the project's native build system (CMake, Meson
or Cargo), then stages the produced shared library into the Python package
layout under the platform extension-module filename. The package version is
resolved from git metadata with a PKG-INFO fallback.`,
	PersistentPreRunE: initializeGlobals,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.Version = toolVersion + " (" + gitCommit + ")"

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "increase output verbosity")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (env: PYEXT_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&flagDirectory, "directory", "C", ".", "project directory")

	// Add subcommands
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// initializeGlobals sets up logging based on global flags.
func initializeGlobals(_ *cobra.Command, _ []string) error {
	output.SetupLogging(flagVerbose)
	return nil
}

// loadUserConfig loads the user-level configuration, honoring the --config
// flag and the PYEXT_CONFIG environment variable.
func loadUserConfig() (*config.Config, error) {
	cfgFile := flagConfig
	if cfgFile == "" {
		cfgFile = os.Getenv("PYEXT_CONFIG")
	}

	return config.NewLoader().Load(cfgFile)
}
