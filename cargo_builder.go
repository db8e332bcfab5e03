package pyext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// CargoBuilder handles Rust-based extension builds using Cargo.
//
// Rust Python extensions (pyo3 projects) compile to a cdylib named
// lib<crate>.so; the builder renames the artifact into the output directory
// under the package's shared-library name so staging treats it like any
// other build system's output.
type CargoBuilder struct{}

// Name returns the builder name
func (b *CargoBuilder) Name() string {
	return "Cargo"
}

// CanBuild checks if this builder can handle the build file
func (b *CargoBuilder) CanBuild(buildFile string) bool {
	return MatchesPattern(buildFile, `Cargo\.toml$`)
}

// RequiredTools returns the tools needed for Cargo builds
func (b *CargoBuilder) RequiredTools() []ToolRequirement {
	return []ToolRequirement{
		{
			Name:    "cargo",
			Purpose: "Rust compiler and package manager",
		},
	}
}

// CheckTools verifies that cargo is available
func (b *CargoBuilder) CheckTools() error {
	return CheckRequiredTools(b.RequiredTools())
}

// Build compiles the extension using cargo
func (b *CargoBuilder) Build(ctx context.Context, config *BuildConfig) (*BuildResult, error) {
	if err := b.CheckTools(); err != nil {
		result := &BuildResult{Success: false, Error: err}
		return result, err
	}

	result := &BuildResult{
		Success: false,
		Output:  []string{},
	}

	// Step 1: Run cargo to build the Rust extension
	if err := b.runCargo(ctx, config, result); err != nil {
		result.Error = err
		return result, err
	}

	// Step 2: Rename built cdylibs into the output directory
	if err := b.processBuiltArtifacts(config, result); err != nil {
		result.Error = err
		return result, err
	}

	result.Success = true
	return result, nil
}

// Clean removes build artifacts
func (b *CargoBuilder) Clean(ctx context.Context, config *BuildConfig) error {
	result := &BuildResult{}
	return runTool(ctx, config, result, "Cargo", config.SourceDir, b.getCargoPath(), "clean")
}

// CargoArgs returns the cargo command line for config.
func (b *CargoBuilder) CargoArgs(config *BuildConfig) []string {
	args := []string{"rustc", "--crate-type", "cdylib"}

	if !config.Debug {
		args = append(args, "--release")
	}

	if target := os.Getenv("CARGO_BUILD_TARGET"); target != "" {
		args = append(args, "--target", target)
	}

	// Use locked dependencies if Cargo.lock exists
	lockPath := filepath.Join(config.SourceDir, "Cargo.lock")
	if _, err := os.Stat(lockPath); err == nil {
		args = append(args, "--locked")
	}

	if config.Parallel > 0 {
		args = append(args, "--jobs", fmt.Sprintf("%d", config.Parallel))
	}

	if extra := b.getRustcArgs(); len(extra) > 0 {
		args = append(args, "--")
		args = append(args, extra...)
	}

	return args
}

// runCargo executes cargo to build the Rust extension
func (b *CargoBuilder) runCargo(ctx context.Context, config *BuildConfig, result *BuildResult) error {
	if config.CleanFirst {
		if err := b.Clean(ctx, config); err != nil {
			result.Output = append(result.Output, fmt.Sprintf("cargo clean failed: %v", err))
		}
	}

	if config.PythonPath != "" {
		if config.Env == nil {
			config.Env = map[string]string{}
		}
		// pyo3 picks the target interpreter up from this variable
		config.Env["PYO3_PYTHON"] = config.PythonPath
	}

	args := append([]string{b.getCargoPath()}, b.CargoArgs(config)...)
	return runTool(ctx, config, result, "Cargo", config.SourceDir, args...)
}

// processBuiltArtifacts finds built cdylibs and renames them for Python
func (b *CargoBuilder) processBuiltArtifacts(config *BuildConfig, result *BuildResult) error {
	targetDir := filepath.Join(config.SourceDir, "target")
	if target := os.Getenv("CARGO_BUILD_TARGET"); target != "" {
		targetDir = filepath.Join(targetDir, target)
	}
	if config.Debug {
		targetDir = filepath.Join(targetDir, "debug")
	} else {
		targetDir = filepath.Join(targetDir, "release")
	}

	builtLibs, err := findSharedLibraries(targetDir, ".")
	if err != nil {
		return BuildError("Cargo", result.Output, fmt.Errorf("failed to find cargo outputs: %v", err))
	}

	if len(builtLibs) == 0 {
		return BuildError("Cargo", result.Output, fmt.Errorf("no dynamic libraries found in %s", targetDir))
	}

	// Rename the cdylib to the bare module name staging expects
	builtLib := preferredArtifact(builtLibs, config.PackageName)
	moduleName := config.PackageName + defaultExtensionSuffix()
	modulePath := filepath.Join(config.OutputDir, moduleName)

	if err := copyFile(builtLib, modulePath); err != nil {
		return BuildError("Cargo", result.Output,
			fmt.Errorf("failed to copy %s to %s: %v", builtLib, modulePath, err))
	}

	result.Artifacts = append(result.Artifacts, modulePath)

	if config.Verbose {
		result.Output = append(result.Output, fmt.Sprintf("Copied %s -> %s", builtLib, modulePath))
	}

	return nil
}

// preferredArtifact picks the library matching the package name when a crate
// emits more than one cdylib. Cargo names outputs lib<crate>.so on Unix and
// <crate>.dll on Windows.
func preferredArtifact(builtLibs []string, packageName string) string {
	for _, lib := range builtLibs {
		base := filepath.Base(lib)
		if strings.HasPrefix(base, "lib"+packageName+".") || strings.HasPrefix(base, packageName+".") {
			return lib
		}
	}
	return builtLibs[0]
}

// getRustcArgs returns extra rustc arguments for Python integration
func (b *CargoBuilder) getRustcArgs() []string {
	switch runtime.GOOS {
	case platformDarwin:
		// CPython symbols resolve at import time on macOS
		return []string{"-C", "link-arg=-Wl,-undefined,dynamic_lookup"}
	default:
		return nil
	}
}

// getCargoPath returns the path to the cargo executable
func (b *CargoBuilder) getCargoPath() string {
	if cargoPath := os.Getenv("CARGO"); cargoPath != "" {
		return cargoPath
	}
	return "cargo"
}
