// Package config handles configuration for simtap.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the workspace configuration (.simtap.yaml).
// Every field is a default; command-line flags override all of them.
type Config struct {
	// Device settings
	UDID    string `yaml:"udid"`    // Default simulator UDID
	IDBPath string `yaml:"idbPath"` // Path to the idb binary

	// Gesture defaults (seconds, 0-10)
	PreDelay  *float64 `yaml:"preDelay"`
	PostDelay *float64 `yaml:"postDelay"`

	// Logging
	LogFile string `yaml:"logFile"` // Log file path
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromDir looks for .simtap.yaml or .simtap.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range []string{".simtap.yaml", ".simtap.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	// No config file found, return empty config
	return &Config{}, nil
}
