// Package config holds the typed texsnip configuration, loaded through viper
// from the user's config file, environment variables, and defaults.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete texsnip configuration
type Config struct {
	Renderer RendererConfig `mapstructure:"renderer"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Paths    PathsConfig    `mapstructure:"paths"`
}

// RendererConfig controls how the external LaTeX renderer is invoked
type RendererConfig struct {
	// Command is the renderer executable name or path (default: "pdflatex")
	Command string `mapstructure:"command"`
	// TimeoutSeconds is the maximum runtime of a single renderer invocation
	// in seconds (0 = no timeout)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// ExpectStatus is the exit status the renderer reports on success
	ExpectStatus int `mapstructure:"expect_status"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
	// BufferCapacity is the number of recent records retained for deferred
	// display to the user (default: 100)
	BufferCapacity int `mapstructure:"buffer_capacity"`
}

// PathsConfig controls where texsnip stores data
type PathsConfig struct {
	// LogDir is the directory for log files. If empty, logs are written
	// under the config directory. Supports ~ for home directory expansion.
	LogDir string `mapstructure:"log_dir"`
}

// Timeout returns the renderer timeout as a time.Duration (0 means disabled)
func (r *RendererConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// ResolveLogDir returns the resolved log directory path.
// If LogDir is empty, it returns the default path under the config directory.
// If LogDir starts with ~, it expands to the user's home directory.
func (p *PathsConfig) ResolveLogDir() string {
	if p.LogDir == "" {
		return filepath.Join(ConfigDir(), "logs")
	}

	path := p.LogDir
	if path == "~" || len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				return home
			}
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Renderer: RendererConfig{
			Command:        "pdflatex",
			TimeoutSeconds: 60,
			ExpectStatus:   0,
		},
		Logging: LoggingConfig{
			Enabled:        true,
			Level:          "info",
			MaxSizeMB:      10,
			MaxBackups:     3,
			BufferCapacity: 100,
		},
		Paths: PathsConfig{
			LogDir: "", // Empty means use default: {config dir}/logs
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Renderer defaults
	viper.SetDefault("renderer.command", defaults.Renderer.Command)
	viper.SetDefault("renderer.timeout_seconds", defaults.Renderer.TimeoutSeconds)
	viper.SetDefault("renderer.expect_status", defaults.Renderer.ExpectStatus)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.buffer_capacity", defaults.Logging.BufferCapacity)

	// Paths defaults
	viper.SetDefault("paths.log_dir", defaults.Paths.LogDir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "texsnip")
	}
	// Fall back to ~/.config/texsnip
	home, err := os.UserHomeDir()
	if err != nil {
		return ".texsnip"
	}
	return filepath.Join(home, ".config", "texsnip")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
