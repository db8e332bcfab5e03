package pyext

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// MesonBuilder handles Meson-based extension builds.
//
// Meson is the build system behind meson-python packages (numpy and scipy
// moved to it). The workflow mirrors the CMake path: a setup step writes
// ninja files into the scratch build directory, then meson compile drives
// the backend.
type MesonBuilder struct{}

// Name returns the builder name
func (b *MesonBuilder) Name() string {
	return "Meson"
}

// RequiredTools returns the tools needed for Meson builds
func (b *MesonBuilder) RequiredTools() []ToolRequirement {
	return []ToolRequirement{
		{
			Name:    "meson",
			Purpose: "Meson build system",
		},
		{
			Name:    ninjaProgram,
			Purpose: "Ninja backend used by Meson",
		},
	}
}

// CheckTools verifies that meson and ninja are available
func (b *MesonBuilder) CheckTools() error {
	return CheckRequiredTools(b.RequiredTools())
}

// CanBuild checks if this builder can handle the build file
func (b *MesonBuilder) CanBuild(buildFile string) bool {
	return MatchesPattern(buildFile, `meson\.build$`)
}

// Build compiles the extension using meson setup + meson compile
func (b *MesonBuilder) Build(ctx context.Context, config *BuildConfig) (*BuildResult, error) {
	if err := b.CheckTools(); err != nil {
		result := &BuildResult{Success: false, Error: err}
		return result, err
	}

	return runCommonBuild(ctx, config, CommonBuildSteps{
		ConfigureFunc: b.runSetup,
		BuildFunc:     b.runCompile,
		FindFunc:      b.findBuiltArtifacts,
	})
}

// Clean removes build artifacts
func (b *MesonBuilder) Clean(ctx context.Context, config *BuildConfig) error {
	if _, err := os.Stat(filepath.Join(config.BuildDir, "build.ninja")); err != nil {
		return nil
	}

	cleanCmd := exec.CommandContext(ctx, ninjaProgram, "-C", config.BuildDir, "clean")
	// Ignore errors, the clean target may be gone already
	_ = cleanCmd.Run()
	return nil
}

// SetupArgs returns the meson setup arguments for config. Custom options
// are emitted in sorted key order so repeated invocations produce an
// identical command line.
func (b *MesonBuilder) SetupArgs(config *BuildConfig) []string {
	args := []string{"setup", config.BuildDir, config.SourceDir,
		"--buildtype", strings.ToLower(config.BuildType())}

	// Interpreter selection goes through a machine file; meson has no
	// builtin option for it
	if config.PythonPath != "" {
		args = append(args, "--native-file", b.nativeFilePath(config))
	}

	keys := make([]string, 0, len(config.Defines))
	for key := range config.Defines {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		args = append(args, fmt.Sprintf("-D%s=%s", key, config.Defines[key]))
	}

	return args
}

// nativeFilePath returns where the generated machine file lives. Keeping it
// inside the build directory means Clean discards it with the rest.
func (b *MesonBuilder) nativeFilePath(config *BuildConfig) string {
	return filepath.Join(config.BuildDir, "python-native.ini")
}

// writeNativeFile generates the machine file that points meson at the
// target interpreter.
func (b *MesonBuilder) writeNativeFile(config *BuildConfig) error {
	content := fmt.Sprintf("[binaries]\npython = '%s'\n", config.PythonPath)
	return os.WriteFile(b.nativeFilePath(config), []byte(content), 0o644)
}

// runSetup executes meson setup to configure the build tree
func (b *MesonBuilder) runSetup(ctx context.Context, config *BuildConfig, result *BuildResult) error {
	if config.PythonPath != "" {
		if err := b.writeNativeFile(config); err != nil {
			return BuildError(b.Name(), result.Output, fmt.Errorf("failed to write machine file: %v", err))
		}
	}

	args := append([]string{"meson"}, b.SetupArgs(config)...)

	// An already configured tree needs an explicit reconfigure
	if _, err := os.Stat(filepath.Join(config.BuildDir, "meson-info")); err == nil {
		args = append(args, "--reconfigure")
	}

	return runTool(ctx, config, result, "Meson", config.SourceDir, args...)
}

// runCompile executes meson compile, then the test suite when enabled
func (b *MesonBuilder) runCompile(ctx context.Context, config *BuildConfig, result *BuildResult) error {
	args := []string{"meson", "compile", "-C", config.BuildDir}
	if config.Parallel > 0 {
		args = append(args, "-j", fmt.Sprintf("%d", config.Parallel))
	}

	if err := runTool(ctx, config, result, "Meson", config.SourceDir, args...); err != nil {
		return err
	}

	if config.RunTests {
		testArgs := []string{"meson", "test", "-C", config.BuildDir, "--print-errorlogs"}
		return runTool(ctx, config, result, "Meson Test", config.SourceDir, testArgs...)
	}

	return nil
}

// findBuiltArtifacts locates the produced shared libraries. Meson emits
// into the build tree rather than a configurable output directory, so the
// build directory is searched when the output directory comes up empty.
func (b *MesonBuilder) findBuiltArtifacts(config *BuildConfig) ([]string, error) {
	artifacts, err := findSharedLibraries(config.OutputDir, ".")
	if err != nil {
		return nil, err
	}
	if len(artifacts) > 0 {
		return artifacts, nil
	}

	return findSharedLibraries(config.BuildDir, ".", "src", config.PackageName)
}
