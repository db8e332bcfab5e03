package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	pyext "github.com/contriboss/python-extension-go"
	"github.com/contriboss/python-extension-go/internal/output"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove build artifacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := filepath.Abs(flagDirectory)
			if err != nil {
				return err
			}

			manifest, err := pyext.LoadManifest(dir)
			if err != nil {
				return err
			}

			config := &pyext.BuildConfig{
				SourceDir: filepath.Join(dir, manifest.SourceDir),
				BuildDir:  filepath.Join(dir, "build", "temp"),
			}
			manifest.ApplyTo(config)

			factory := pyext.NewBuilderFactory()
			buildFile, err := factory.DetectBuildFile(config.SourceDir)
			if err != nil {
				return err
			}

			output.Debug("cleaning", "package", config.PackageName, "build_file", buildFile)
			return factory.CleanProject(cmd.Context(), config, buildFile)
		},
	}
}
