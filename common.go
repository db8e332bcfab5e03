package pyext

import (
	"context"
	"fmt"
	"os"
)

// runCommonBuild executes the standard 3-step build process.
//
// The supported build systems follow a similar pattern:
//  1. Configure: Generate native build files (Makefile, build.ninja, ...)
//  2. Build: Compile the extension using the generated files
//  3. Find: Locate the produced shared libraries (.so, .dylib, .pyd, .dll)
//
// The scratch build directory is created before the configure step runs.
// If any step fails, processing stops and the error is returned with
// Success=false; there is no cleanup and no retry. The BuildResult.Output
// field is populated by the step functions as they execute.
func runCommonBuild(ctx context.Context, config *BuildConfig, steps CommonBuildSteps) (*BuildResult, error) {
	result := &BuildResult{
		Success: false,
		Output:  []string{},
	}

	if config.BuildDir != "" {
		if err := os.MkdirAll(config.BuildDir, 0o755); err != nil {
			result.Error = fmt.Errorf("creating build directory %s: %w", config.BuildDir, err)
			return result, result.Error
		}
	}

	// Step 1: Configure/prepare the build
	if err := steps.ConfigureFunc(ctx, config, result); err != nil {
		result.Error = err
		return result, err
	}

	// Step 2: Build/compile the extension
	if err := steps.BuildFunc(ctx, config, result); err != nil {
		result.Error = err
		return result, err
	}

	// Step 3: Find the built shared libraries
	artifacts, err := steps.FindFunc(config)
	if err != nil {
		result.Error = err
		return result, err
	}

	result.Artifacts = artifacts
	result.Success = true
	return result, nil
}
