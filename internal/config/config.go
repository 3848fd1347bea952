// Package config provides centralized configuration management using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for oli.
type Config struct {
	AdvanceDelay  time.Duration `mapstructure:"advance_delay" yaml:"advance_delay"`
	ValidateDelay time.Duration `mapstructure:"validate_delay" yaml:"validate_delay"`
	SlotsDelay    time.Duration `mapstructure:"slots_delay" yaml:"slots_delay"`
	SubmitDelay   time.Duration `mapstructure:"submit_delay" yaml:"submit_delay"`
	LookaheadDays int           `mapstructure:"lookahead_days" yaml:"lookahead_days"`
	IDPrefix      string        `mapstructure:"id_prefix" yaml:"id_prefix"`
	Seed          uint64        `mapstructure:"seed" yaml:"seed"`
	LogLevel      string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile       string        `mapstructure:"log_file" yaml:"log_file"`
	EventsEnabled bool          `mapstructure:"events_enabled" yaml:"events_enabled"`
	EventsPort    int           `mapstructure:"events_port" yaml:"events_port"`
	MCPPort       int           `mapstructure:"mcp_port" yaml:"mcp_port"`
}

// keys lists every config key; each is bound to OLI_<KEY>.
var keys = []string{
	"advance_delay", "validate_delay", "slots_delay", "submit_delay",
	"lookahead_days", "id_prefix", "seed", "log_level", "log_file",
	"events_enabled", "events_port", "mcp_port",
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		AdvanceDelay:  500 * time.Millisecond,
		ValidateDelay: 500 * time.Millisecond,
		SlotsDelay:    500 * time.Millisecond,
		SubmitDelay:   1500 * time.Millisecond,
		LookaheadDays: 14,
		IDPrefix:      "OLI",
		LogLevel:      "info",
	}
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("oli")

	def := Default()
	v.SetDefault("advance_delay", def.AdvanceDelay)
	v.SetDefault("validate_delay", def.ValidateDelay)
	v.SetDefault("slots_delay", def.SlotsDelay)
	v.SetDefault("submit_delay", def.SubmitDelay)
	v.SetDefault("lookahead_days", def.LookaheadDays)
	v.SetDefault("id_prefix", def.IDPrefix)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("events_enabled", def.EventsEnabled)
	v.SetDefault("events_port", def.EventsPort)
	v.SetDefault("mcp_port", def.MCPPort)

	v.SetEnvPrefix("OLI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit bindings so Unmarshal sees env-only keys.
	for _, key := range keys {
		if err := v.BindEnv(key, "OLI_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for values the wizard can't run with.
func (c *Config) Validate() error {
	var errs []error
	for name, d := range map[string]time.Duration{
		"advance_delay":  c.AdvanceDelay,
		"validate_delay": c.ValidateDelay,
		"slots_delay":    c.SlotsDelay,
		"submit_delay":   c.SubmitDelay,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %s", name, d))
		}
	}
	if c.LookaheadDays <= 0 {
		errs = append(errs, fmt.Errorf("lookahead_days must be positive, got %d", c.LookaheadDays))
	}
	if c.EventsPort < 0 || c.EventsPort > 65535 {
		errs = append(errs, fmt.Errorf("events_port out of range: %d", c.EventsPort))
	}
	if c.MCPPort < 0 || c.MCPPort > 65535 {
		errs = append(errs, fmt.Errorf("mcp_port out of range: %d", c.MCPPort))
	}
	if strings.ContainsAny(c.IDPrefix, "- \t") {
		errs = append(errs, fmt.Errorf("id_prefix must be a single word, got %q", c.IDPrefix))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/oli/oli.yml or $XDG_CONFIG_HOME/oli/oli.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "oli", "oli.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "oli", "oli.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "oli.yml"
}

// ActivePath returns the file edits should go to: the project file if it
// exists, otherwise the global one.
func ActivePath() string {
	if fileExists(ProjectPath()) {
		return ProjectPath()
	}
	return GlobalPath()
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
