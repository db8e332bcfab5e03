package pyext

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var nativeLibraryExtensions = map[string]struct{}{
	".so":    {},
	".dylib": {},
	".pyd":   {},
	".dll":   {},
}

// StageExtension copies the built shared library from the build output
// directory into the Python package directory, renaming it to the platform
// extension-module filename.
//
// The build systems emit the library under the bare platform suffix (the
// last dot-component of extSuffix, so "lief.so" for a suffix of
// ".cpython-312-x86_64-linux-gnu.so"); staging renames it to the full
// importable filename. When the expected name is absent, the first shared
// library found in the output directory is staged instead.
//
// Returns the path of the staged extension module.
func StageExtension(config *BuildConfig, extSuffix string) (string, error) {
	libSuffix := extSuffix
	if idx := strings.LastIndex(extSuffix, "."); idx >= 0 {
		libSuffix = extSuffix[idx:]
	}

	src := filepath.Join(config.OutputDir, config.PackageName+libSuffix)
	if _, err := os.Stat(src); err != nil {
		found, ferr := findSharedLibraries(config.OutputDir, ".", config.BuildType())
		if ferr != nil {
			return "", ferr
		}
		if len(found) == 0 {
			return "", fmt.Errorf("no built extension found in %s", config.OutputDir)
		}
		src = found[0]
	}

	dst := filepath.Join(config.PackageDir, ExtensionFilename(config.PackageName, extSuffix))
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("staging extension: %w", err)
	}

	return dst, nil
}

// findSharedLibraries globs for shared-library files under the given
// subdirectories of root, returning absolute paths. Missing directories
// are skipped silently.
func findSharedLibraries(root string, subdirs ...string) ([]string, error) {
	if root == "" {
		return nil, nil
	}

	var libraries []string

	for _, subdir := range subdirs {
		dir := filepath.Join(root, subdir)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}

		for _, ext := range []string{".so", ".dylib", ".pyd", ".dll"} {
			matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
			if err != nil {
				return nil, fmt.Errorf("failed to glob *%s in %s: %v", ext, dir, err)
			}
			libraries = append(libraries, matches...)
		}
	}

	return uniqueStrings(libraries), nil
}

func isNativeLibrary(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := nativeLibraryExtensions[ext]
	return ok
}

func copyFile(srcPath, destPath string) error {
	info, err := os.Stat(srcPath)
	if err != nil {
		return err
	}

	dir := filepath.Dir(destPath)
	if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
		return mkErr
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{})
	var result []string

	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}

	return result
}
