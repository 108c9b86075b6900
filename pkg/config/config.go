// Package config resolves fleetscan settings from built-in defaults, an
// optional YAML config file, and FLEETSCAN_* environment variables, in
// that order of precedence (later wins).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Presets are the built-in environment shortcuts. Each maps to a
// sibling cluster list file named <preset>_clusters.txt unless the
// config file overrides the path.
var Presets = []string{"prod", "stg", "dev"}

// Config holds fleetscan settings.
type Config struct {
	// ClusterListDir is where preset cluster list files live.
	ClusterListDir string `yaml:"clusterListDir"`

	// OutputDir is the default directory for scan artifacts.
	OutputDir string `yaml:"outputDir"`

	// LoginCommand is the external cluster login executable.
	LoginCommand string `yaml:"loginCommand"`

	// PresetPaths overrides the cluster list path per preset.
	PresetPaths map[string]string `yaml:"presetPaths"`
}

// DefaultConfig returns sensible defaults with environment overrides
// applied.
func DefaultConfig() *Config {
	cfg := &Config{
		ClusterListDir: ".",
		OutputDir:      ".",
		LoginCommand:   "login",
	}
	cfg.applyEnv()
	return cfg
}

// Load reads a YAML config file and applies environment overrides on
// top. Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ClusterListDir: ".",
		OutputDir:      ".",
		LoginCommand:   "login",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// IsPreset reports whether name is a built-in environment shortcut.
func IsPreset(name string) bool {
	for _, p := range Presets {
		if name == p {
			return true
		}
	}
	return false
}

// ClusterListPath returns the cluster list file path for a preset.
func (c *Config) ClusterListPath(preset string) string {
	if path, ok := c.PresetPaths[preset]; ok {
		return path
	}
	return filepath.Join(c.ClusterListDir, preset+"_clusters.txt")
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FLEETSCAN_CLUSTER_DIR"); v != "" {
		c.ClusterListDir = v
	}
	if v := os.Getenv("FLEETSCAN_OUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("FLEETSCAN_LOGIN_COMMAND"); v != "" {
		c.LoginCommand = v
	}
}
