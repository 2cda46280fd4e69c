// Package config provides Viper-based configuration loading for bossgen.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// GeneratorConfig holds boss generation settings.
type GeneratorConfig struct {
	// Seed fixes the random source for reproducible output. 0 draws a fresh
	// seed per request.
	Seed int64 `mapstructure:"seed"`
	// ValidateInputs rejects non-positive player counts and group sizes.
	ValidateInputs bool `mapstructure:"validate_inputs"`
}

// OutputConfig controls how results are presented.
type OutputConfig struct {
	// Format is "text", "json" or "yaml".
	Format string `mapstructure:"format"`
	// Color enables ANSI styling of text output.
	Color bool `mapstructure:"color"`
	// Locale, when set, formats numbers with locale-specific grouping (e.g. "en-US").
	Locale string `mapstructure:"locale"`
}

// APIConfig holds HTTP API settings.
type APIConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	// MaxLevel bounds the magnitude of the party level a request may ask for.
	MaxLevel          int           `mapstructure:"max_level"`
	// MaxPlayers bounds the player count a request may ask for.
	MaxPlayers        int           `mapstructure:"max_players"`
	// MaxGroupSize bounds the number of bosses in a group request.
	MaxGroupSize      int           `mapstructure:"max_group_size"`
}

// Addr returns the "host:port" listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (a APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Output    OutputConfig    `mapstructure:"output"`
	API       APIConfig       `mapstructure:"api"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateOutput(c.Output); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateAPI(c.API); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateOutput(o OutputConfig) error {
	var errs []string
	validFormats := map[string]bool{"text": true, "json": true, "yaml": true}
	if !validFormats[o.Format] {
		errs = append(errs, fmt.Sprintf("output.format must be one of [text, json, yaml], got %q", o.Format))
	}
	if o.Locale != "" {
		if _, err := language.Parse(o.Locale); err != nil {
			errs = append(errs, fmt.Sprintf("output.locale %q is not a valid language tag", o.Locale))
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateAPI(a APIConfig) error {
	var errs []string
	if a.Host == "" {
		errs = append(errs, "api.host must not be empty")
	}
	if a.Port < 1 || a.Port > 65535 {
		errs = append(errs, fmt.Sprintf("api.port must be 1-65535, got %d", a.Port))
	}
	if a.ReadHeaderTimeout < 0 {
		errs = append(errs, "api.read_header_timeout must not be negative")
	}
	if a.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("api.shutdown_timeout must be > 0, got %s", a.ShutdownTimeout))
	}
	if a.MaxLevel < 1 {
		errs = append(errs, fmt.Sprintf("api.max_level must be >= 1, got %d", a.MaxLevel))
	}
	if a.MaxPlayers < 1 {
		errs = append(errs, fmt.Sprintf("api.max_players must be >= 1, got %d", a.MaxPlayers))
	}
	if a.MaxGroupSize < 1 {
		errs = append(errs, fmt.Sprintf("api.max_group_size must be >= 1, got %d", a.MaxGroupSize))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment overrides.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Read is Load without validation, for callers that layer further overrides
// on top and validate the merged result themselves.
func Read(path string) (Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return unmarshal(v)
}

// Default returns the defaults with environment overrides applied.
//
// Postcondition: Returns a valid Config or a non-nil error if an environment
// override is invalid.
func Default() (Config, error) {
	return Load("")
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	cfg, err := unmarshal(v)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func unmarshal(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with BOSSGEN_ prefix
	v.SetEnvPrefix("BOSSGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	v.SetDefault("generator.seed", 0)
	v.SetDefault("generator.validate_inputs", true)

	v.SetDefault("output.format", "text")
	v.SetDefault("output.color", false)
	v.SetDefault("output.locale", "")

	v.SetDefault("api.host", "127.0.0.1")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.read_header_timeout", "10s")
	v.SetDefault("api.shutdown_timeout", "15s")
	v.SetDefault("api.max_level", 1000)
	v.SetDefault("api.max_players", 100)
	v.SetDefault("api.max_group_size", 50)
}
