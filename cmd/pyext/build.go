package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pyext "github.com/contriboss/python-extension-go"
	"github.com/contriboss/python-extension-go/internal/output"
)

func newBuildCmd() *cobra.Command {
	var (
		flagDebug      bool
		flagNinja      bool
		flagTest       bool
		flagJobs       int
		flagPython     string
		flagDefines    []string
		flagCleanFirst bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the native extension and stage it into the package",
		Long: `Build the native extension.

The project's build system is detected from its build file (CMakeLists.txt,
meson.build or Cargo.toml), configured and invoked, and the produced shared
library is copied into the Python package directory under the platform
extension-module filename.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userCfg, err := loadUserConfig()
			if err != nil {
				return err
			}

			dir, err := filepath.Abs(flagDirectory)
			if err != nil {
				return err
			}

			manifest, err := pyext.LoadManifest(dir)
			if err != nil {
				return err
			}

			pythonPath := flagPython
			if pythonPath == "" {
				pythonPath = userCfg.Python
			}
			python, err := pyext.FindPython(pythonPath)
			if err != nil {
				output.Warn("no python interpreter found, staging with platform defaults")
			}

			jobs := flagJobs
			if jobs == 0 {
				jobs = userCfg.Jobs
			}

			defines, err := parseDefines(flagDefines)
			if err != nil {
				return err
			}

			config := &pyext.BuildConfig{
				SourceDir:  filepath.Join(dir, manifest.SourceDir),
				BuildDir:   filepath.Join(dir, "build", "temp"),
				OutputDir:  filepath.Join(dir, "build", "lib"),
				PackageDir: filepath.Join(dir, manifest.Package),
				PythonPath: python,
				Parallel:   jobs,
				Defines:    defines,
				Debug:      flagDebug,
				Ninja:      flagNinja || userCfg.Ninja,
				RunTests:   flagTest,
				Verbose:    flagVerbose,
				CleanFirst: flagCleanFirst,
			}
			manifest.ApplyTo(config)

			factory := pyext.NewBuilderFactory()
			buildFile, err := factory.DetectBuildFile(config.SourceDir)
			if err != nil {
				return err
			}

			output.Info("building extension",
				"package", config.PackageName,
				"build_file", buildFile,
				"type", config.BuildType(),
			)
			if flagTest {
				output.Info("native test suite enabled")
			}

			result, err := factory.BuildProject(cmd.Context(), config, buildFile)
			if err != nil {
				output.Println(output.Errorf("build failed for %s", config.PackageName))
				return err
			}

			suffix := pyext.ExtensionSuffix(python)
			staged, err := pyext.StageExtension(config, suffix)
			if err != nil {
				return err
			}
			result.Staged = staged

			output.Println(output.Successf("built %s", output.Noun(config.PackageName)) +
				" -> " + output.Noun(staged))
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagDebug, "debug", false, "build the Debug configuration")
	cmd.Flags().BoolVar(&flagNinja, "ninja", false, "prefer the Ninja backend when available")
	cmd.Flags().BoolVar(&flagTest, "test", false, "build and run the native test suite")
	cmd.Flags().IntVarP(&flagJobs, "jobs", "j", 0, "parallel jobs forwarded to the build tool")
	cmd.Flags().StringVar(&flagPython, "python", "", "path to the target python interpreter")
	cmd.Flags().StringArrayVarP(&flagDefines, "define", "D", nil, "extra configure definition (key=value, repeatable)")
	cmd.Flags().BoolVar(&flagCleanFirst, "clean-first", false, "run the clean target before building")

	return cmd
}

// parseDefines turns repeated key=value flags into a definition map.
func parseDefines(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	defines := make(map[string]string, len(raw))
	for _, entry := range raw {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid define %q, expected key=value", entry)
		}
		defines[key] = value
	}

	return defines, nil
}
