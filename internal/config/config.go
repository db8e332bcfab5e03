// Package config loads user configuration for the pyext CLI.
//
// Configuration is merged from three sources, later ones winning:
// built-in defaults, an optional YAML config file, and PYEXT_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for pyext configuration.
const envPrefix = "PYEXT"

// Config holds user-level defaults for build invocations.
type Config struct {
	// Jobs is the default parallelism degree forwarded to the build tool.
	Jobs int `mapstructure:"jobs"`

	// Python is the default interpreter path.
	Python string `mapstructure:"python"`

	// Ninja prefers the Ninja backend by default.
	Ninja bool `mapstructure:"ninja"`
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("jobs", "PYEXT_JOBS")
	_ = v.BindEnv("python", "PYEXT_PYTHON")
	_ = v.BindEnv("ninja", "PYEXT_NINJA")

	return &Loader{v: v}
}

// Load loads configuration from the given file path. If configFile is
// empty, the default config file path is used. A missing config file is
// not an error; environment variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		configFile = DefaultConfigFile()
	}

	if configFile != "" {
		l.v.SetConfigFile(configFile)
		l.v.SetConfigType("yaml")

		if err := l.v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					return nil, fmt.Errorf("reading config file: %w", err)
				}
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfigFile returns the default user config path,
// $XDG_CONFIG_HOME/pyext/config.yaml, or "" when no home is resolvable.
func DefaultConfigFile() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "pyext", "config.yaml")
}
