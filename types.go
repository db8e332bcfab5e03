package pyext

import "context"

// BuildResult contains the output and status of a build operation.
//
// After a build completes, this structure provides:
//   - Success status indicating if the build completed without errors
//   - Output lines captured from the build process (stdout/stderr)
//   - Artifacts list of compiled shared libraries found in the output dir
//   - Error information if the build failed
type BuildResult struct {
	Success   bool     // True if build completed successfully
	Output    []string // Lines of output from the build process
	Artifacts []string // Paths to built shared libraries
	Error     error    // Error if build failed, nil otherwise
	Staged    string   // Final staged extension path, set after staging
}

// BuildConfig contains configuration for the build process.
//
// Source paths define where files are located:
//   - SourceDir: Project root containing the build file (CMakeLists.txt, ...)
//   - BuildDir: Scratch directory where the build system writes its files
//   - OutputDir: Directory the shared library is emitted into
//   - PackageDir: Python package directory the extension is staged into
//
// Build configuration:
//   - PackageName: Importable package name; also the shared library basename
//   - Target: Build target for the binding library (default "py<package>")
//   - Defines: Extra -D style definitions forwarded to the configure step
//   - Env: Environment variables set for build subprocesses
//   - Parallel: Parallelism degree forwarded to the build tool (0 = default)
//
// Python environment:
//   - PythonPath: Path to the Python interpreter the extension targets
//
// Build behavior:
//   - Debug: Build the Debug configuration instead of Release
//   - Ninja: Prefer the Ninja backend when it is available
//   - RunTests: Enable and run the native test suite after building
//   - Verbose: Record the executed command lines in the result output
//   - CleanFirst: Run the clean target before building
//   - StopOnFailure: Stop a multi-project build after the first failure
type BuildConfig struct {
	// Source paths
	SourceDir  string // Project root containing the build file
	BuildDir   string // Scratch directory for generated build files
	OutputDir  string // Directory the built shared library lands in
	PackageDir string // Python package directory to stage into

	// Build configuration
	PackageName string            // Importable package name
	Target      string            // Binding build target (default "py<package>")
	Defines     map[string]string // Extra configure definitions
	Env         map[string]string // Environment variables for build subprocesses
	Parallel    int               // Parallel jobs forwarded to the build tool

	// Python configuration
	PythonPath string // Path to the target Python interpreter

	// Build options
	Debug      bool // Build Debug instead of Release
	Ninja      bool // Prefer the Ninja backend when available
	RunTests   bool // Enable and run the native test suite
	Verbose    bool // Record executed command lines in output
	CleanFirst bool // Run clean before build

	// Multi-project builds
	StopOnFailure bool // Stop BuildAll after the first failed project
}

// BindingTarget returns the build target for the extension binding,
// defaulting to "py<package>" when no explicit target is configured.
func (c *BuildConfig) BindingTarget() string {
	if c.Target != "" {
		return c.Target
	}
	return "py" + c.PackageName
}

// BuildType returns the configuration name understood by the build tools.
func (c *BuildConfig) BuildType() string {
	if c.Debug {
		return "Debug"
	}
	return "Release"
}

// CommonBuildSteps defines the standard 3-step build pattern shared by builders.
//
// The supported build systems follow a common pattern:
//  1. Configure: Generate native build files (Makefile, build.ninja, ...)
//  2. Build: Compile the extension
//  3. Find: Locate the produced shared libraries
//
// This structure allows builders to implement the pattern consistently while
// customizing each step's behavior.
type CommonBuildSteps struct {
	// ConfigureFunc prepares the build tree (e.g. run cmake, meson setup)
	ConfigureFunc func(ctx context.Context, config *BuildConfig, result *BuildResult) error

	// BuildFunc compiles the extension (e.g. run ninja, make, cargo build)
	BuildFunc func(ctx context.Context, config *BuildConfig, result *BuildResult) error

	// FindFunc locates the produced shared libraries after the build completes
	FindFunc func(config *BuildConfig) ([]string, error)
}
