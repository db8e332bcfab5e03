package pyext

import "context"

// Builder defines the interface that all extension builders must implement.
//
// Each builder is responsible for a specific build system (CMake, Meson,
// Cargo) and must implement these methods to integrate with the
// BuilderFactory.
//
// # Builder Lifecycle
//
//  1. CanBuild() - Factory calls this to find the right builder for a build file
//  2. Build() - Factory calls this to compile the extension
//  3. Clean() - Optional cleanup of build artifacts
//
// # Thread Safety
//
// Builder implementations should be stateless and thread-safe.
// The same builder instance may be used for multiple projects.
type Builder interface {
	// Name returns the human-readable name of this builder.
	//
	// This name is used in error messages and logs.
	// Examples: "CMake", "Meson", "Cargo"
	Name() string

	// CanBuild checks if this builder can handle the given build file.
	//
	// The buildFile parameter is typically just the filename
	// (e.g. "CMakeLists.txt") or a relative path (e.g. "native/meson.build").
	//
	// Returns true if this builder should be used for the file.
	CanBuild(buildFile string) bool

	// Build compiles the extension and returns the result.
	//
	// This method should:
	//  1. Verify required tools and fail before any subprocess if one is missing
	//  2. Configure the build (generate Makefile, build.ninja, ...)
	//  3. Compile the extension
	//  4. Locate the produced shared libraries
	//
	// Returns:
	//   - BuildResult with Success=true and Artifacts list on success
	//   - BuildResult with Success=false and Error on failure
	//
	// Failure of any build subprocess is fatal for the whole operation;
	// there is no partial-failure recovery or retry.
	Build(ctx context.Context, config *BuildConfig) (*BuildResult, error)

	// Clean removes build artifacts.
	//
	// This is optional - some builders may not support cleaning.
	// Returns nil if cleaning is not supported or completes successfully.
	Clean(ctx context.Context, config *BuildConfig) error
}
