package releaseme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file name looked up under the project root.
const DefaultConfigFile = ".release.yml"

// Config is the project configuration stored in .release.yml.
type Config struct {
	Name       string `yaml:"name,omitempty"`
	Version    string `yaml:"version,omitempty"`
	Repository string `yaml:"repository,omitempty"`
	// Default enables the built-in locations. Absent means enabled.
	Default    *bool    `yaml:"default,omitempty"`
	Ecosystems []string `yaml:"ecosystems,omitempty"`
	Excludes   []string `yaml:"excludes,omitempty"`
	// GoModule rewrites the go.mod module path suffix on major bumps.
	GoModule  bool              `yaml:"gomod,omitempty"`
	Locations []LocationPattern `yaml:"locations"`
}

// DefaultConfig returns a configuration that relies on the built-in locations only.
func DefaultConfig() *Config {
	enabled := true
	return &Config{Default: &enabled}
}

// UseBuiltinDefaults reports whether the built-in catalog should be merged.
func (c *Config) UseBuiltinDefaults() bool {
	return c.Default == nil || *c.Default
}

// Validate checks the fields that can be checked without touching the filesystem.
func (c *Config) Validate() error {
	if c.Version != "" {
		if _, err := ParseVersion(c.Version); err != nil {
			return fmt.Errorf("version: %w", err)
		}
	}
	for i, l := range c.Locations {
		if len(l.Paths) == 0 {
			return fmt.Errorf("locations[%d] (%s): no paths", i, l)
		}
		if len(l.Patterns) == 0 {
			return fmt.Errorf("locations[%d] (%s): no patterns", i, l)
		}
	}
	return nil
}

// Merge overlays the fields set in other onto c. Locations and excludes
// are appended.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Name != "" {
		c.Name = other.Name
	}
	if other.Version != "" {
		c.Version = other.Version
	}
	if other.Repository != "" {
		c.Repository = other.Repository
	}
	if other.Default != nil {
		d := *other.Default
		c.Default = &d
	}
	if len(other.Ecosystems) > 0 {
		c.Ecosystems = append([]string(nil), other.Ecosystems...)
	}
	if other.GoModule {
		c.GoModule = true
	}
	c.Excludes = append(c.Excludes, other.Excludes...)
	c.Locations = append(c.Locations, cloneLocations(other.Locations)...)
}

// ResolveOptions converts the configuration into Resolve inputs.
func (c *Config) ResolveOptions(log zerolog.Logger) ResolveOptions {
	return ResolveOptions{
		Locations:          c.Locations,
		UseBuiltinDefaults: c.UseBuiltinDefaults(),
		Ecosystems:         c.Ecosystems,
		Repository:         c.Repository,
		Excludes:           c.Excludes,
		Logger:             log,
	}
}

// ConfigPath joins path onto root unless path is absolute.
func ConfigPath(root, path string) string {
	if path == "" {
		path = DefaultConfigFile
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read config", Path: path, Err: err}
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

// LoadConfigOrDefault loads path, falling back to DefaultConfig with a
// warning when the file does not exist. Other failures are returned.
func LoadConfigOrDefault(path string, log zerolog.Logger) (*Config, error) {
	config, err := LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", path).Msg("No configuration file, using built-in locations")
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("locations", len(config.Locations)).Msg("Configuration loaded")
	return config, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &IOError{Op: "create config directory", Path: dir, Err: err}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &IOError{Op: "write config", Path: path, Err: err}
	}
	return nil
}
