package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	pyext "github.com/contriboss/python-extension-go"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the resolved package version",
		Long: `Display the package version resolved from version-control metadata.

Sources are tried in order: git describe output, the PKG-INFO file from a
previously generated egg-info directory, and finally "0.0.0".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := filepath.Abs(flagDirectory)
			if err != nil {
				return err
			}

			packageName := ""
			if manifest, err := pyext.LoadManifest(dir); err == nil {
				packageName = manifest.Package
			}

			resolver := &pyext.VersionResolver{Dir: dir, PackageName: packageName}
			fmt.Fprintln(cmd.OutOrStdout(), resolver.Resolve())
			return nil
		},
	}
}
