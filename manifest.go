package pyext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// manifestCandidates are the manifest filenames probed by LoadManifest,
// in priority order.
var manifestCandidates = []string{
	"extension.toml",
	"extension.yaml",
	"extension.yml",
}

// Manifest describes an extension project: the importable package name,
// the binding build target and any extra configure definitions. It lives
// next to the build file as extension.toml or extension.yaml.
//
//	package = "lief"
//	target = "pyLIEF"
//
//	[defines]
//	LIEF_PYTHON_API = "on"
type Manifest struct {
	// Package is the importable package name. Required.
	Package string `toml:"package" yaml:"package"`

	// Target is the binding build target. Defaults to "py<package>".
	Target string `toml:"target" yaml:"target"`

	// SourceDir is the directory holding the build file, relative to the
	// manifest. Defaults to the manifest's own directory.
	SourceDir string `toml:"source_dir" yaml:"source_dir"`

	// Defines are extra definitions forwarded to the configure step.
	Defines map[string]string `toml:"defines" yaml:"defines"`
}

// LoadManifest probes dir for an extension manifest and parses the first
// one found.
func LoadManifest(dir string) (*Manifest, error) {
	for _, candidate := range manifestCandidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return ParseManifest(path)
		}
	}

	return nil, fmt.Errorf("no extension manifest found in %s", dir)
}

// ParseManifest parses a manifest file, choosing the decoder by file
// extension.
func ParseManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	manifest := &Manifest{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, manifest); err != nil {
			return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, manifest); err != nil {
			return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format: %s", path)
	}

	if manifest.Package == "" {
		return nil, fmt.Errorf("manifest %s: package name is required", path)
	}

	if manifest.SourceDir == "" {
		manifest.SourceDir = "."
	}

	return manifest, nil
}

// ApplyTo fills the manifest-driven fields of a BuildConfig, leaving
// anything the caller already set alone.
func (m *Manifest) ApplyTo(config *BuildConfig) {
	if config.PackageName == "" {
		config.PackageName = m.Package
	}
	if config.Target == "" {
		config.Target = m.Target
	}

	if len(m.Defines) > 0 {
		if config.Defines == nil {
			config.Defines = map[string]string{}
		}
		for key, value := range m.Defines {
			if _, ok := config.Defines[key]; !ok {
				config.Defines[key] = value
			}
		}
	}
}
