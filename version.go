package pyext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/sh"
)

// defaultVersion is returned when no version source is usable.
const defaultVersion = "0.0.0"

// VersionResolver derives a package version string, mirroring the
// setuptools-git-version scheme.
//
// Sources are tried in order:
//  1. git describe output, when Dir contains a .git directory
//  2. the Version header of <PackageName>.egg-info/PKG-INFO under Dir
//  3. the "0.0.0" default
//
// Failures are swallowed and treated as "try the next source"; Resolve
// never retries and never errors.
type VersionResolver struct {
	// Dir is the project working directory.
	Dir string

	// PackageName names the egg-info directory holding fallback metadata.
	PackageName string
}

// Resolve returns the version string for the project.
func (r *VersionResolver) Resolve() string {
	gitDir := filepath.Join(r.Dir, ".git")
	if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
		tagged := r.headIsTagged()
		if version, err := r.gitVersion(tagged); err == nil {
			return version
		}
	}

	if version, err := ReadPackageVersion(r.pkgInfoPath()); err == nil {
		return version
	}

	return defaultVersion
}

func (r *VersionResolver) pkgInfoPath() string {
	return filepath.Join(r.Dir, r.PackageName+".egg-info", "PKG-INFO")
}

// headIsTagged reports whether HEAD sits exactly on a tag. Any git failure
// counts as "not tagged".
func (r *VersionResolver) headIsTagged() bool {
	out, err := sh.Output("git", "-C", r.Dir, "tag", "--list", "--points-at=HEAD")
	return err == nil && strings.TrimSpace(out) != ""
}

func (r *VersionResolver) gitVersion(tagged bool) (string, error) {
	out, err := sh.Output("git", "-C", r.Dir, "describe", "--tags", "--long", "--dirty")
	if err != nil {
		return "", err
	}
	return formatDescribe(strings.TrimSpace(out), tagged)
}

// formatDescribe turns `git describe --tags --long --dirty` output into a
// version string.
//
// The output has the shape <tag>-<count>-g<sha>[-dirty]. Tags may contain
// dashes themselves, so the count and sha are taken from the end. A tagged
// HEAD collapses to the bare tag, as does a clean checkout with zero
// commits since the tag; anything else formats as <tag>.dev0 (the sha is
// discarded).
func formatDescribe(describe string, tagged bool) (string, error) {
	parts := strings.Split(describe, "-")

	dirty := false
	if parts[len(parts)-1] == "dirty" {
		dirty = true
		parts = parts[:len(parts)-1]
	}

	if len(parts) < 3 {
		return "", fmt.Errorf("unexpected git describe output: %q", describe)
	}

	sha := parts[len(parts)-1]
	count := parts[len(parts)-2]
	tag := strings.Join(parts[:len(parts)-2], "-")

	if !strings.HasPrefix(sha, "g") {
		return "", fmt.Errorf("unexpected git describe output: %q", describe)
	}

	if tagged || (count == "0" && !dirty) {
		return tag, nil
	}

	return tag + ".dev0", nil
}
