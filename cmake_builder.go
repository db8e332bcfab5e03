package pyext

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Build tool constants
const (
	cmakeProgram = "cmake"
	ninjaProgram = "ninja"
	ctestProgram = "ctest"
	makeProgram  = "make"
	nmakeProgram = "nmake"
)

// CMakeBuilder handles CMake-based extension builds.
//
// This is the primary build path: configure with cmake into a scratch build
// directory, compile through the selected backend (Ninja when preferred and
// available, the platform build driver on Windows, make otherwise), and
// leave the shared library in the configured output directory.
type CMakeBuilder struct{}

// Name returns the builder name
func (b *CMakeBuilder) Name() string {
	return "CMake"
}

// CanBuild checks if this builder can handle the build file
func (b *CMakeBuilder) CanBuild(buildFile string) bool {
	return MatchesPattern(buildFile, `CMakeLists\.txt$`)
}

// RequiredTools returns the tools needed for CMake builds.
// Only cmake itself is a hard requirement; a missing cmake binary is a
// fatal configuration error surfaced before any build subprocess runs.
func (b *CMakeBuilder) RequiredTools() []ToolRequirement {
	return []ToolRequirement{
		{
			Name:    cmakeProgram,
			Purpose: "CMake build system",
		},
		{
			Name:     ninjaProgram,
			Optional: true,
			Purpose:  "Ninja build backend",
		},
		{
			Name:         makeProgram,
			Alternatives: []string{"gmake", nmakeProgram},
			Optional:     true,
			Purpose:      "Makefile build backend",
		},
	}
}

// CheckTools verifies that cmake is available
func (b *CMakeBuilder) CheckTools() error {
	return CheckRequiredTools(b.RequiredTools())
}

// Build compiles the extension using the cmake configure/build workflow
func (b *CMakeBuilder) Build(ctx context.Context, config *BuildConfig) (*BuildResult, error) {
	// Fail before any subprocess when cmake is missing
	if err := b.CheckTools(); err != nil {
		result := &BuildResult{Success: false, Error: err}
		return result, err
	}

	return runCommonBuild(ctx, config, CommonBuildSteps{
		ConfigureFunc: b.runConfigure,
		BuildFunc:     b.runBuild,
		FindFunc:      b.findBuiltArtifacts,
	})
}

// Clean removes build artifacts
func (b *CMakeBuilder) Clean(ctx context.Context, config *BuildConfig) error {
	if _, err := os.Stat(config.BuildDir); err != nil {
		return nil
	}

	// Try cmake --build . --target clean first
	cleanCmd := exec.CommandContext(ctx, cmakeProgram, "--build", ".", "--target", "clean")
	cleanCmd.Dir = config.BuildDir
	if err := cleanCmd.Run(); err != nil {
		// Fall back to make clean if a Makefile was generated
		makefilePath := filepath.Join(config.BuildDir, "Makefile")
		if _, err := os.Stat(makefilePath); err == nil {
			makeCmd := exec.CommandContext(ctx, b.getMakeProgram(), "clean")
			makeCmd.Dir = config.BuildDir
			return makeCmd.Run()
		}
	}

	return nil
}

// ConfigureArgs returns the cmake configuration arguments for config.
//
// The argument list is deterministic: repeating an invocation without
// source changes yields an identical configuration command line. Custom
// definitions are emitted in sorted key order for that reason.
func (b *CMakeBuilder) ConfigureArgs(config *BuildConfig) []string {
	args := []string{config.SourceDir}

	if config.OutputDir != "" {
		args = append(args, fmt.Sprintf("-DCMAKE_LIBRARY_OUTPUT_DIRECTORY=%s", config.OutputDir))
	}

	if config.PythonPath != "" {
		args = append(args, fmt.Sprintf("-DPYTHON_EXECUTABLE=%s", config.PythonPath))
	}

	if config.RunTests {
		args = append(args, "-DBUILD_TESTING=ON")
	}

	if runtime.GOOS == platformWindows {
		// Multi-config generators ignore CMAKE_BUILD_TYPE; pin the output
		// directory for the active configuration instead.
		args = append(args, fmt.Sprintf("-DCMAKE_LIBRARY_OUTPUT_DIRECTORY_%s=%s",
			strings.ToUpper(config.BuildType()), config.OutputDir))
		args = append(args, "-A", b.windowsArch())
	} else {
		args = append(args, fmt.Sprintf("-DCMAKE_BUILD_TYPE=%s", config.BuildType()))
	}

	if b.useNinja(config) {
		args = append(args, "-G", "Ninja")
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

// runConfigure executes cmake to configure the build
func (b *CMakeBuilder) runConfigure(ctx context.Context, config *BuildConfig, result *BuildResult) error {
	args := append([]string{cmakeProgram}, b.ConfigureArgs(config)...)
	return runTool(ctx, config, result, "CMake", config.BuildDir, args...)
}

// runBuild executes the backend build command
func (b *CMakeBuilder) runBuild(ctx context.Context, config *BuildConfig, result *BuildResult) error {
	if config.CleanFirst {
		cleanCmd := exec.CommandContext(ctx, cmakeProgram, "--build", ".", "--target", "clean")
		cleanCmd.Dir = config.BuildDir
		// Clean target may not exist yet
		_ = cleanCmd.Run()
	}

	target := config.BindingTarget()

	switch {
	case runtime.GOOS == platformWindows:
		args := []string{cmakeProgram, "--build", ".", "--target", target, "--config", config.BuildType(), "--", "/m"}
		if err := runTool(ctx, config, result, "CMake Build", config.BuildDir, args...); err != nil {
			return err
		}

	case b.useNinja(config):
		args := []string{ninjaProgram}
		if config.Parallel > 0 {
			args = append(args, "-j", fmt.Sprintf("%d", config.Parallel))
		}
		if config.RunTests {
			// Test mode builds everything so the suite's fixtures exist
			if err := runTool(ctx, config, result, "Ninja", config.BuildDir, args...); err != nil {
				return err
			}
		} else {
			args = append(args, target)
			if err := runTool(ctx, config, result, "Ninja", config.BuildDir, args...); err != nil {
				return err
			}
		}

	default:
		args := []string{b.getMakeProgram()}
		if config.Parallel > 0 {
			args = append(args, fmt.Sprintf("-j%d", config.Parallel))
		}
		if config.RunTests {
			args = append(args, "all")
		} else {
			args = append(args, target)
		}
		if err := runTool(ctx, config, result, "Make", config.BuildDir, args...); err != nil {
			return err
		}
	}

	if config.RunTests {
		return b.runTests(ctx, config, result)
	}

	return nil
}

// runTests executes the native test suite through ctest
func (b *CMakeBuilder) runTests(ctx context.Context, config *BuildConfig, result *BuildResult) error {
	args := []string{ctestProgram, "--output-on-failure"}
	if config.Parallel > 0 {
		args = append(args, "-j", fmt.Sprintf("%d", config.Parallel))
	}
	if runtime.GOOS == platformWindows {
		args = append(args, "-C", config.BuildType())
	}

	return runTool(ctx, config, result, "CTest", config.BuildDir, args...)
}

// findBuiltArtifacts locates the produced shared libraries
func (b *CMakeBuilder) findBuiltArtifacts(config *BuildConfig) ([]string, error) {
	return findSharedLibraries(config.OutputDir, ".", config.BuildType())
}

// useNinja reports whether the Ninja backend should be used: it has to be
// both preferred by configuration and present on PATH.
func (b *CMakeBuilder) useNinja(config *BuildConfig) bool {
	return config.Ninja && CheckToolAvailable(ninjaProgram) == nil
}

// windowsArch maps the host architecture to a Visual Studio platform name
func (b *CMakeBuilder) windowsArch() string {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return "x64"
	default:
		return "Win32"
	}
}

// getMakeProgram returns the appropriate make program for the platform
func (b *CMakeBuilder) getMakeProgram() string {
	if makeEnv := os.Getenv("MAKE"); makeEnv != "" {
		return makeEnv
	}

	if runtime.GOOS == platformWindows {
		return nmakeProgram
	}
	return makeProgram
}
