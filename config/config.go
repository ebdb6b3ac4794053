// Package config is the assembler's ambient configuration layer,
// modeled directly on the teacher repository's config/config.go: a TOML
// file with sane defaults, loadable from and savable to a platform
// config directory.
//
// It carries the runtime strict/liberal mode value design note §9 calls
// for (replacing the original's compile-time toggle) plus the
// diagnostic-verbosity knob C7 consults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/lc3tools/lc3asm/mode"
)

// Config holds the assembler's runtime configuration.
type Config struct {
	Assembler struct {
		Mode    string `toml:"mode"` // "strict" or "liberal"
		Verbose bool   `toml:"verbose"`
	} `toml:"assembler"`

	Output struct {
		ObjectExtension string `toml:"object_extension"`
	} `toml:"output"`
}

// ModeValue returns the configured mode.Mode, defaulting to Strict for
// any unrecognized value.
func (c *Config) ModeValue() mode.Mode {
	if c.Assembler.Mode == "liberal" {
		return mode.Liberal
	}
	return mode.Strict
}

// DefaultConfig returns a Config with sane defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Assembler.Mode = "strict"
	cfg.Assembler.Verbose = false
	cfg.Output.ObjectExtension = ".obj"
	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "lc3asm")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "lc3asm")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file is
// not an error: DefaultConfig is returned.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
