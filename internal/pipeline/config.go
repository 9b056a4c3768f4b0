package pipeline

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the asset pipeline configuration, usually read from
// aseimport.yaml.
type Config struct {
	// Debug turns on aseanim's import warning logs.
	Debug bool `yaml:"debug"`

	// Root is the directory asset sources are relative to.
	Root string `yaml:"root"`

	// CacheApp is the application name imported sets are cached under (see
	// Cache). Empty disables the cache.
	CacheApp string `yaml:"cache_app,omitempty"`

	// Watch keeps the pipeline running and re-imports assets when their
	// source files change.
	Watch bool `yaml:"watch"`

	Assets []Asset `yaml:"assets"`
}

// Asset is one Aseprite JSON export to import.
type Asset struct {
	// Name identifies the imported set. Defaults to the source file name
	// without its extension.
	Name string `yaml:"name,omitempty"`

	// Source is the slash-separated path of the export, relative to Root.
	Source string `yaml:"source"`
}

// DefaultConfig returns the configuration used for fields a config file
// leaves unset.
func DefaultConfig() *Config {
	return &Config{
		Root: ".",
	}
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates YAML config data, applying defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// assetNamePattern keeps asset names usable as cache keys on every platform.
var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Validate fills in default asset names and checks the config for missing
// sources and duplicate or unusable names.
func (c *Config) Validate() error {
	if c.Root == "" {
		c.Root = "."
	}
	seen := make(map[string]bool, len(c.Assets))
	for i := range c.Assets {
		a := &c.Assets[i]
		if a.Source == "" {
			return fmt.Errorf("asset #%d: missing 'source'", i)
		}
		if a.Name == "" {
			base := path.Base(a.Source)
			a.Name = strings.TrimSuffix(base, path.Ext(base))
		}
		if !assetNamePattern.MatchString(a.Name) {
			return fmt.Errorf("asset #%d: invalid name %q", i, a.Name)
		}
		if seen[a.Name] {
			return fmt.Errorf("asset #%d: duplicate name %q", i, a.Name)
		}
		seen[a.Name] = true
	}
	return nil
}
