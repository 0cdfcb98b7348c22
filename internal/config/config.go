package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dablenparty/dablenutil/logging"
	"github.com/spf13/viper"
)

// Config represents the complete dablenutil CLI configuration
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig controls where logs are written and how they are rotated
type LoggingConfig struct {
	// Dir is the log folder (default: "logs")
	Dir string `mapstructure:"dir" yaml:"dir"`
	// File is the active log's name inside Dir (default: "latest.log")
	File string `mapstructure:"file" yaml:"file"`
	// ConsoleLevel is the terminal verbosity: off, error, warn, info, debug, trace (default: "info")
	ConsoleLevel string `mapstructure:"console_level" yaml:"console_level"`
	// FileLevel is the log file verbosity (default: "debug")
	FileLevel string `mapstructure:"file_level" yaml:"file_level"`
	// PackageName prefixes archive names; empty means no prefix
	PackageName string `mapstructure:"package_name" yaml:"package_name"`
	// MaxSizeMB rotates the active log by size during a session (0 = disabled)
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of size-rotated backups to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
	// Color controls console colors: auto, always, never (default: "auto")
	Color string `mapstructure:"color" yaml:"color"`
	// RotateOnStart archives the previous log before logging starts (default: true)
	RotateOnStart bool `mapstructure:"rotate_on_start" yaml:"rotate_on_start"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Dir:           "logs",
			File:          logging.DefaultFileName,
			ConsoleLevel:  "info",
			FileLevel:     "debug",
			PackageName:   "",
			MaxSizeMB:     0,
			MaxBackups:    3,
			Color:         "auto",
			RotateOnStart: true,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Logging defaults
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.file", defaults.Logging.File)
	viper.SetDefault("logging.console_level", defaults.Logging.ConsoleLevel)
	viper.SetDefault("logging.file_level", defaults.Logging.FileLevel)
	viper.SetDefault("logging.package_name", defaults.Logging.PackageName)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.color", defaults.Logging.Color)
	viper.SetDefault("logging.rotate_on_start", defaults.Logging.RotateOnStart)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ToLogging converts the CLI settings into a logging.Config.
// Invalid levels are left at their defaults; see Validate.
func (c *LoggingConfig) ToLogging() logging.Config {
	cfg := logging.NewConfig(c.Dir).
		WithFileName(c.File).
		WithPackageName(c.PackageName).
		WithSizeRotation(c.MaxSizeMB, c.MaxBackups).
		WithColor(parseColor(c.Color))

	if lvl, err := logging.ParseLevel(c.ConsoleLevel); err == nil {
		cfg = cfg.WithConsoleLevel(lvl)
	}
	if lvl, err := logging.ParseLevel(c.FileLevel); err == nil {
		cfg = cfg.WithFileLevel(lvl)
	}
	return cfg
}

func parseColor(s string) logging.ColorMode {
	switch strings.ToLower(s) {
	case "always":
		return logging.ColorAlways
	case "never":
		return logging.ColorNever
	default:
		return logging.ColorAuto
	}
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dablenutil")
	}
	// Fall back to ~/.config/dablenutil
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dablenutil"
	}
	return filepath.Join(home, ".config", "dablenutil")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ValidColorModes returns the list of valid console color modes
func ValidColorModes() []string {
	return []string{"auto", "always", "never"}
}
