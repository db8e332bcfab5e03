package pyext

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// MatchesPattern checks if a filename matches any of the given regex patterns.
//
// This is a helper function for builder implementations to determine if they
// can handle a given build file based on filename patterns.
// If a pattern is invalid regex, it is silently skipped.
//
//	if MatchesPattern(filename, `CMakeLists\.txt$`) {
//	    // Handle CMake projects
//	}
func MatchesPattern(filename string, patterns ...string) bool {
	for _, pattern := range patterns {
		if matched, _ := regexp.MatchString(pattern, filename); matched {
			return true
		}
	}
	return false
}

// BuildError creates a standardized build error with output context.
//
// This helper formats build errors consistently across all builders,
// including the captured build output for debugging:
//
//	CMake build failed: exit status 1
//
//	Build output:
//	...
func BuildError(builder string, output []string, err error) error {
	outputStr := strings.Join(output, "\n")

	var prefix string
	if err != nil {
		prefix = fmt.Sprintf("%s build failed: %v", builder, err)
	} else {
		prefix = fmt.Sprintf("%s build failed", builder)
	}

	if outputStr != "" {
		return fmt.Errorf("%s\n\nBuild output:\n%s", prefix, outputStr)
	}

	return fmt.Errorf("%s", prefix)
}

// runTool executes a build subprocess in dir, capturing combined output into
// the result. The child inherits the calling process environment plus the
// per-config overrides, copied once per invocation. A non-zero exit is
// returned as a BuildError carrying the full captured output.
func runTool(ctx context.Context, config *BuildConfig, result *BuildResult, builder, dir string, args ...string) error {
	//nolint:gosec // Command comes from trusted builder configuration
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir

	cmd.Env = os.Environ()
	for key, value := range config.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	output, err := cmd.CombinedOutput()
	result.Output = append(result.Output, strings.Split(string(output), "\n")...)

	if config.Verbose {
		result.Output = append(result.Output,
			fmt.Sprintf("Running: %s", strings.Join(args, " ")),
			fmt.Sprintf("Working directory: %s", dir))
	}

	if err != nil {
		return BuildError(builder, result.Output, err)
	}

	return nil
}
