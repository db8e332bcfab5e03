package pyext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// buildFileCandidates are the build files the factory probes for, in
// priority order, when asked to detect a project's build system.
var buildFileCandidates = []string{
	"CMakeLists.txt",
	"meson.build",
	"Cargo.toml",
}

// BuilderFactory manages the registration and selection of extension builders.
//
// The factory maintains a registry of Builder implementations and provides
// methods to:
//   - Register new builders
//   - Find the appropriate builder for a build file
//   - Drive a full project build including prerequisite checks
//
// # Builder Selection
//
// When building a project, the factory:
//  1. Extracts the filename from the build file path
//  2. Calls CanBuild() on each registered builder in order
//  3. Uses the first builder that returns true
//  4. Returns an error if no builder can handle the file
//
// # Thread Safety
//
// BuilderFactory is NOT thread-safe for registration.
// Register all builders before concurrent use.
// After registration, read operations (BuilderFor, BuildProject) are safe.
type BuilderFactory struct {
	builders []Builder
}

// NewBuilderFactory creates a factory with all standard builders registered.
//
// The standard builders are registered in this order:
//  1. CMakeBuilder - CMakeLists.txt
//  2. MesonBuilder - meson.build
//  3. CargoBuilder - Cargo.toml
//
// This is the recommended way to create a BuilderFactory for most use cases.
func NewBuilderFactory() *BuilderFactory {
	factory := &BuilderFactory{}

	factory.Register(&CMakeBuilder{})
	factory.Register(&MesonBuilder{})
	factory.Register(&CargoBuilder{})

	return factory
}

// Register adds a new builder to the factory.
//
// Builders are checked in the order they are registered.
// If multiple builders can handle the same file type, the first
// registered builder will be used.
//
// Not thread-safe. Register all builders before concurrent use.
func (f *BuilderFactory) Register(builder Builder) {
	f.builders = append(f.builders, builder)
}

// BuilderFor returns the appropriate builder for the given build file.
//
// The buildFile can be a full path (e.g. "native/CMakeLists.txt") or just a
// filename (e.g. "CMakeLists.txt"). Only the base filename is used for
// matching.
//
// Returns the first builder whose CanBuild() method returns true,
// or an error if no builder can handle the file.
func (f *BuilderFactory) BuilderFor(buildFile string) (Builder, error) {
	filename := filepath.Base(buildFile)

	for _, builder := range f.builders {
		if builder.CanBuild(filename) {
			return builder, nil
		}
	}

	return nil, fmt.Errorf("no builder found for build file: %s", filename)
}

// ListBuilders returns a copy of all registered builders.
//
// The returned slice is a copy and can be modified without affecting
// the factory's internal state.
func (f *BuilderFactory) ListBuilders() []Builder {
	return append([]Builder{}, f.builders...)
}

// DetectBuildFile probes sourceDir for a supported build file and returns
// its name. Candidates are checked in priority order so that a project
// carrying both a CMakeLists.txt and a Cargo.toml builds with CMake.
func (f *BuilderFactory) DetectBuildFile(sourceDir string) (string, error) {
	for _, candidate := range buildFileCandidates {
		if _, err := os.Stat(filepath.Join(sourceDir, candidate)); err == nil {
			if _, berr := f.BuilderFor(candidate); berr == nil {
				return candidate, nil
			}
		}
	}

	return "", fmt.Errorf("no supported build file found in %s", sourceDir)
}

// BuildProject drives a single project build end to end:
//
//  1. Check for context cancellation
//  2. Find the appropriate builder for the build file
//  3. Verify the builder's required tools; a missing required tool aborts
//     the operation before any build subprocess is attempted
//  4. Build the extension
//
// Returns the BuildResult (possibly partial on failure) and the first error
// encountered. Failure is fatal for the whole operation; callers rerun the
// invocation rather than resuming.
func (f *BuilderFactory) BuildProject(ctx context.Context, config *BuildConfig, buildFile string) (*BuildResult, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &BuildResult{Success: false, Error: ctxErr}, ctxErr
	}

	builder, err := f.BuilderFor(buildFile)
	if err != nil {
		return &BuildResult{Success: false, Error: err}, err
	}

	if checker, ok := builder.(ToolChecker); ok {
		if err := checker.CheckTools(); err != nil {
			err = fmt.Errorf("%s: %w", builder.Name(), err)
			return &BuildResult{Success: false, Error: err}, err
		}
	}

	result, err := builder.Build(ctx, config)
	if err != nil && result == nil {
		result = &BuildResult{Success: false, Error: err}
	}

	return result, err
}

// BuildAll builds multiple projects sequentially, one per build file.
//
// Each build file goes through the full BuildProject pipeline, including the
// prerequisite tool check. The returned slice holds one BuildResult per
// processed file, and the error is the first one encountered.
//
// If config.StopOnFailure is true, processing stops after the first failed
// project and the results cover the files up to and including the failure.
// Otherwise every file is processed and all results are returned.
//
// Context cancellation stops processing immediately; a result carrying the
// context error is appended for the file that was not attempted.
func (f *BuilderFactory) BuildAll(ctx context.Context, config *BuildConfig, buildFiles []string) ([]*BuildResult, error) {
	if len(buildFiles) == 0 {
		return nil, nil
	}

	var results []*BuildResult
	var firstError error

	for _, buildFile := range buildFiles {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if firstError == nil {
				firstError = ctxErr
			}
			results = append(results, &BuildResult{Success: false, Error: ctxErr})
			break
		}

		result, err := f.BuildProject(ctx, config, buildFile)
		if err != nil && firstError == nil {
			firstError = err
		}

		results = append(results, result)

		if !result.Success && config.StopOnFailure {
			break
		}
	}

	return results, firstError
}

// CleanProject removes build artifacts for the project using the builder
// detected for buildFile. Builders treat missing clean targets as a no-op.
func (f *BuilderFactory) CleanProject(ctx context.Context, config *BuildConfig, buildFile string) error {
	builder, err := f.BuilderFor(buildFile)
	if err != nil {
		return err
	}

	return builder.Clean(ctx, config)
}
