// Package config provides layered configuration for cmdseq.
// Configuration is loaded from multiple sources with the following precedence:
// embedded defaults → global file → env vars → CLI flags
package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/alexander-akhmetov/cmdseq/internal/dirs"
)

//go:embed defaults/config.yaml
var defaultsFS embed.FS

// Config holds all configuration settings for cmdseq.
// Fields ending in *Set track whether that field was explicitly set, so an
// explicit false in a later layer can override an earlier true.
type Config struct {
	StateDir         string `yaml:"state_dir"`
	Shell            string `yaml:"shell"`
	AdvanceOnFailure bool   `yaml:"advance_on_failure"`

	AdvanceOnFailureSet bool `yaml:"-"`

	configDir string
	sources   []string // ordered list of sources that contributed to this config
}

// Sources returns the ordered list of sources that contributed to this config.
func (c *Config) Sources() []string {
	return c.sources
}

// ConfigDir returns the global config directory.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// ResolvedStateDir returns the configured state directory or the default one.
func (c *Config) ResolvedStateDir() string {
	if c.StateDir != "" {
		return c.StateDir
	}
	return dirs.DefaultStateDir()
}

// Load loads configuration from the default locations.
func Load() (*Config, error) {
	return LoadWithDir(dirs.ConfigDir())
}

// LoadWithDir loads configuration using configDir as the global config directory.
// A missing config file is not an error and nothing is written to disk.
func LoadWithDir(configDir string) (*Config, error) {
	cfg, err := loadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("load embedded defaults: %w", err)
	}
	cfg.sources = append(cfg.sources, "embedded")

	globalPath := filepath.Join(configDir, "config.yaml")
	if globalCfg, err := loadFile(globalPath); err == nil {
		cfg.mergeFrom(globalCfg)
		cfg.sources = append(cfg.sources, globalPath)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("load global config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.configDir = configDir
	return cfg, nil
}

// loadEmbedded loads config from the embedded defaults.
func loadEmbedded() (*Config, error) {
	data, err := defaultsFS.ReadFile("defaults/config.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded defaults: %w", err)
	}
	return parseConfig(data)
}

// loadFile loads config from a file path.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user's config file
	if err != nil {
		return nil, err
	}
	return parseConfigWithTracking(data)
}

// parseConfig parses YAML config data into a Config struct.
func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// parseConfigWithTracking parses YAML config and tracks which fields were set.
func parseConfigWithTracking(data []byte) (*Config, error) {
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if _, ok := raw["advance_on_failure"]; ok {
		cfg.AdvanceOnFailureSet = true
	}

	return cfg, nil
}

// applyEnv applies environment variables on top of the file layers.
func (c *Config) applyEnv() error {
	if v := os.Getenv("CMDSEQ_STATE_DIR"); v != "" {
		c.StateDir = v
		c.sources = append(c.sources, "env:CMDSEQ_STATE_DIR")
	}

	if v := os.Getenv("CMDSEQ_SHELL"); v != "" {
		c.Shell = v
		c.sources = append(c.sources, "env:CMDSEQ_SHELL")
	}

	if v := os.Getenv("CMDSEQ_ADVANCE_ON_FAILURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid CMDSEQ_ADVANCE_ON_FAILURE %q: %w", v, err)
		}
		c.AdvanceOnFailure = b
		c.AdvanceOnFailureSet = true
		c.sources = append(c.sources, "env:CMDSEQ_ADVANCE_ON_FAILURE")
	}

	return nil
}

// mergeFrom merges non-empty/set values from src into c.
func (c *Config) mergeFrom(src *Config) {
	if src.StateDir != "" {
		c.StateDir = src.StateDir
	}
	if src.Shell != "" {
		c.Shell = src.Shell
	}
	if src.AdvanceOnFailureSet {
		c.AdvanceOnFailure = src.AdvanceOnFailure
		c.AdvanceOnFailureSet = true
	}
}

// ApplyCLIFlags applies CLI flag overrides to the config.
// CLI flags have the highest precedence; empty values leave the config untouched.
func (c *Config) ApplyCLIFlags(stateDir, shell string) {
	if stateDir != "" {
		c.StateDir = stateDir
		c.sources = append(c.sources, "cli:dir")
	}
	if shell != "" {
		c.Shell = shell
		c.sources = append(c.sources, "cli:shell")
	}
}
